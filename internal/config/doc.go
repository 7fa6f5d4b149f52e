// Package config loads, normalizes, and validates mimedex configuration.
//
// Configuration comes from a TOML file (default ~/.config/mimedex/config.toml,
// falling back to ./mimedex.toml) with environment overrides applied during
// normalization: MIMEDEX_CACHE, MIMEDEX_DATA, and MIMEDEX_LAZY_LOAD. Loading
// always succeeds without a file; defaults cover every field.
package config
