package config

import (
	"time"
)

// Store backends.
const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config holds the settings the caretrack host needs to open a journal.
// Environment variables carry the CARETRACK_ prefix, e.g. CARETRACK_STORE
// or CARETRACK_REDIS_ADDR.
type Config struct {
	Backend   string        `env:"STORE"`
	LogLevel  string        `env:"LOG_LEVEL"`
	NotifyTTL time.Duration `env:"NOTIFY_TTL"`
	Badger    Badger        `envPrefix:"BADGER_"`
	Redis     Redis         `envPrefix:"REDIS_"`
	Media     Media         `envPrefix:"MEDIA_"`
}

// Badger configures the embedded store. An in-memory store keeps nothing
// across restarts and rejects values over 1 MiB, so saves start failing
// once the conversations carry a few photos; use it for tests and demos.
type Badger struct {
	Dir      string `env:"DIR"`
	InMemory bool   `env:"IN_MEMORY"`
}

// Redis configures the networked store.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
	Prefix   string `env:"PREFIX"`
}

// Media configures file intake.
type Media struct {
	MaxSize  int64 `env:"MAX_SIZE"`
	PoolSize int   `env:"POOL_SIZE"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend:   BackendBadger,
		LogLevel:  "info",
		NotifyTTL: 3 * time.Second,
		Badger: Badger{
			Dir: "caretrack.db",
		},
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "caretrack:",
		},
		Media: Media{
			MaxSize:  10 * 1024 * 1024,
			PoolSize: 2,
		},
	}
}
