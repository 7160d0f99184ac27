// Package config loads, normalizes, and validates Newsreel's TOML
// configuration.
//
// Configuration is resolved from, in order: an explicit --config path, then
// ~/.config/newsreel/config.toml, then ./newsreel.toml. Missing files fall
// back to the built-in defaults; a present file only needs to list the
// settings it overrides.
package config
