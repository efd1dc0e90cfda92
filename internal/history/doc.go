// Package history persists one row per build in a SQLite database so past
// runs can be listed with "cryswap history".
package history
