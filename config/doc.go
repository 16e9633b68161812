// Package config assembles caretrack host settings from built-in
// defaults, CARETRACK_* environment variables and command-line overrides.
//
//	cfg, err := config.Load(&config.Config{Backend: "redis"})
//
// Layers are merged in order and a later non-zero value replaces an
// earlier one, so a flag that was not set leaves the environment or
// default value in place.
package config
