// Package main hosts the cryswap CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, runs preflight checks,
// drives a build through the pipeline package, and renders results as tables.
// It centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
