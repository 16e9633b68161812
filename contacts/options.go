package contacts

import (
	"log/slog"
	"time"

	"github.com/poiesic/caretrack/notify"
)

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// WithNotifier sets where user-facing notifications go.
// Default is notify.Discard.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Repository) {
		if n == nil {
			n = notify.Discard
		}
		r.notifier = n
	}
}

// WithClock sets the time source for timestamps.
// Default is time.Now in UTC.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithIDGenerator sets the identifier source.
// Default is core.NewID.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) {
		if gen != nil {
			r.newID = gen
		}
	}
}
