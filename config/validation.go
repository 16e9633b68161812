package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks the settings needed by the selected backend.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBadger:
		if c.Badger.Dir == "" && !c.Badger.InMemory {
			return fmt.Errorf("%w: directory is required", ErrInvalidBadgerConfig)
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: address is required", ErrInvalidRedisConfig)
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("%w: db must not be negative", ErrInvalidRedisConfig)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	if c.Media.MaxSize <= 0 {
		return fmt.Errorf("%w: max size must be positive", ErrInvalidMediaConfig)
	}
	if c.Media.PoolSize <= 0 {
		return fmt.Errorf("%w: pool size must be positive", ErrInvalidMediaConfig)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps debug, info, warn or error to a slog level.
// An empty string means info.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
}
