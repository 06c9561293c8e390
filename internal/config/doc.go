// Package config loads, normalizes, and validates the TOML configuration
// used by bunkerlab. Configuration is constructed once at startup and passed
// explicitly to the components that need it.
package config
