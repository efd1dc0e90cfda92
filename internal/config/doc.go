// Package config loads, normalizes, and validates cryswap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CRYSWAP_WORKERS and FFMPEG_BINARY. The Config type centralizes every knob
// the build pipeline needs: the source archive, the asset pool directories,
// form selection rules, deep copies, and pack metadata.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, parsed selection rules, and clear validation errors.
package config
