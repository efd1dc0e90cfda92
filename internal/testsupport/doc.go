// Package testsupport builds throwaway configs, source archives and pool
// directories for package and CLI tests.
package testsupport
