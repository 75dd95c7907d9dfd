// Package notify keeps the bounded, most-recent-first activity feed.
package notify

import (
	"context"
	"sync"

	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/pkg/metrics"
)

const defaultCap = 5

// Log is the in-memory notification feed. Pushing beyond the cap evicts the
// oldest entries. Identical texts are not deduplicated.
type Log struct {
	mu      sync.RWMutex
	entries []model.Notification
	cap     int
	nextID  int64
}

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithCap sets the maximum number of retained notifications.
func WithCap(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.cap = n
		}
	}
}

// New creates a notification log with configuration options.
func New(opts ...Option) *Log {
	l := &Log{
		cap:    defaultCap,
		nextID: 1,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Push prepends a notification and truncates to the cap.
func (l *Log) Push(ctx context.Context, text string) model.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := model.Notification{
		ID:   l.nextID,
		Text: text,
		Time: "Just now",
	}
	l.nextID++

	l.entries = append([]model.Notification{n}, l.entries...)
	metrics.RecordNotificationPushed()
	for len(l.entries) > l.cap {
		l.entries = l.entries[:len(l.entries)-1]
		metrics.RecordNotificationDropped()
	}
	return n
}

// List returns the retained notifications, most recent first.
func (l *Log) List(ctx context.Context) []model.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Notification, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained notifications.
func (l *Log) Len(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
