// Package config loads, normalizes, and validates the TOML configuration
// for the migration toolkit. All paths are expanded to absolute form at
// load time; core logic receives an explicit *Config and never reads
// ambient state.
package config
