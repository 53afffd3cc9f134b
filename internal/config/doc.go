// Package config loads, normalizes, and validates the TOML configuration
// for the rVJ export backend.
package config
