// Package notify keeps the transient success/error toasts shown above the
// employee grid. Each toast expires a fixed interval after it is pushed
// unless it is dismissed first.
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	ExpiresAt time.Time
}

// Remaining is the time left before n auto-dismisses, never negative.
func (n Notification) Remaining(now time.Time) time.Duration {
	return max(n.ExpiresAt.Sub(now), 0)
}

// Center holds the live toasts. It is safe for concurrent use.
type Center struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []Notification
}

type Option func(*Center)

func WithTTL(d time.Duration) Option {
	return func(c *Center) { c.ttl = d }
}

// WithClock substitutes the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

func NewCenter(opts ...Option) *Center {
	c := &Center{ttl: DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Center) Push(kind Kind, message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		ExpiresAt: c.now().Add(c.ttl),
	}
	c.items = append(c.items, n)
	return n
}

func (c *Center) Success(message string) Notification { return c.Push(KindSuccess, message) }
func (c *Center) Error(message string) Notification   { return c.Push(KindError, message) }

// Dismiss removes the toast with the given id. It reports whether the
// toast was still live.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	i := slices.IndexFunc(c.items, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// Active returns the unexpired toasts, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	return slices.Clone(c.items)
}

// Now reports the center's current time.
func (c *Center) Now() time.Time { return c.now() }

func (c *Center) pruneLocked() {
	now := c.now()
	c.items = slices.DeleteFunc(c.items, func(n Notification) bool {
		return !now.Before(n.ExpiresAt)
	})
}
