package notify

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Kind identifies the event a notification reports.
type Kind string

const (
	KindContactAdded   Kind = "contact_added"
	KindContactUpdated Kind = "contact_updated"
	KindAvatarUpdated  Kind = "avatar_updated"
	KindContactDeleted Kind = "contact_deleted"
	KindMediaSent      Kind = "media_sent"
)

// Notification is a transient user-facing message.
type Notification struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Destructive bool
	CreatedAt   time.Time
}

// Notifier receives notifications. Notify must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// Center keeps notifications alive for a fixed TTL, after which they are
// dismissed automatically.
type Center struct {
	cache    *cache.Cache
	ttl      time.Duration
	onNotify func(Notification)
	logger   *slog.Logger

	mu  sync.Mutex
	seq uint64
}

var _ Notifier = (*Center)(nil)

type entry struct {
	n   Notification
	seq uint64
}

// Option configures a Center.
type Option func(*Center)

// WithTTL sets how long notifications stay active.
// Default is DefaultTTL; non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithHook registers a function called synchronously for every notification.
func WithHook(fn func(Notification)) Option {
	return func(c *Center) {
		c.onNotify = fn
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Center) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewCenter creates a notification center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = cache.New(c.ttl, 2*c.ttl)
	return c
}

// Notify shows n until the TTL elapses. A missing ID or creation time is
// filled in.
func (c *Center) Notify(n Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.cache.Set(n.ID, entry{n: n, seq: seq}, cache.DefaultExpiration)
	c.logger.Debug("notification", "kind", n.Kind, "title", n.Title)

	if c.onNotify != nil {
		c.onNotify(n)
	}
}

// Active returns the notifications that have not expired yet, oldest first.
func (c *Center) Active() []Notification {
	items := c.cache.Items()
	entries := make([]entry, 0, len(items))
	for _, item := range items {
		if e, ok := item.Object.(entry); ok {
			entries = append(entries, e)
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	out := make([]Notification, len(entries))
	for i, e := range entries {
		out[i] = e.n
	}
	return out
}

// Dismiss removes a notification before its TTL elapses.
func (c *Center) Dismiss(id string) {
	c.cache.Delete(id)
}

// Clear dismisses every notification.
func (c *Center) Clear() {
	c.cache.Flush()
}
