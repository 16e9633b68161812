package config

import "errors"

var (
	// ErrUnknownBackend indicates the store backend is neither badger nor redis.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrInvalidBadgerConfig indicates missing badger settings.
	ErrInvalidBadgerConfig = errors.New("invalid badger configuration")

	// ErrInvalidRedisConfig indicates missing redis settings.
	ErrInvalidRedisConfig = errors.New("invalid redis configuration")

	// ErrInvalidMediaConfig indicates a non-positive media limit.
	ErrInvalidMediaConfig = errors.New("invalid media configuration")

	// ErrInvalidLogLevel indicates an unrecognized log level.
	ErrInvalidLogLevel = errors.New("invalid log level")
)
