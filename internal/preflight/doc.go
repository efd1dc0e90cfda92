// Package preflight provides readiness checks for the binaries and
// filesystem paths a build depends on.
//
// These checks run in two contexts:
//   - "cryswap build" calls RunAll before opening the source archive and
//     refuses to start when a required check fails.
//   - "cryswap check" renders every result, including the ffmpeg encoder check, as
//     a table.
package preflight
