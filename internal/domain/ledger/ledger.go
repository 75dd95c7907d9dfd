// Package ledger is the central store of registrations. It owns the
// at-most-one-registration-per-event invariant.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/pkg/logger"
	"github.com/evento-hq/evento/pkg/metrics"
)

// Notifier receives human-readable activity messages on state transitions.
type Notifier interface {
	Push(ctx context.Context, text string) model.Notification
}

// Ledger stores registrations in insertion order, keyed by event id.
type Ledger struct {
	mu      sync.RWMutex
	regs    []model.Registration
	byEvent map[int]struct{}
	seq     int

	feed Notifier
	log  logger.Logger
}

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithLogger sets a custom logger for the ledger.
func WithLogger(log logger.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a ledger emitting to the given notifier.
func New(feed Notifier, opts ...Option) *Ledger {
	l := &Ledger{
		byEvent: make(map[int]struct{}),
		feed:    feed,
		log:     logger.Get().Named("ledger"),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// RegisterIntent fulfills an intent to attend an event.
//
// A duplicate intent fails with ErrAlreadyRegistered without mutating
// anything. A free event is registered immediately with a synthesized
// PaymentRecord. A paid event is NOT inserted; pending=true tells the caller
// to hand off to the payment simulator and come back through Finalize.
func (l *Ledger) RegisterIntent(ctx context.Context, event model.Event) (model.Registration, bool, error) {
	l.mu.Lock()
	if _, exists := l.byEvent[event.ID]; exists {
		l.mu.Unlock()
		metrics.RecordDuplicateRegistration()
		return model.Registration{}, false, fmt.Errorf("event %d: %w", event.ID, ErrAlreadyRegistered)
	}

	if event.IsPaid {
		l.mu.Unlock()
		l.log.Debug(ctx, "paid intent pending payment",
			logger.Int("eventID", event.ID),
			logger.Int("price", event.Price),
		)
		return model.Registration{}, true, nil
	}

	reg := l.insertLocked(event, model.PaymentRecord{Method: model.MethodFree, Amount: 0})
	l.mu.Unlock()

	l.feed.Push(ctx, fmt.Sprintf("Successfully registered for %s!", event.Title))
	l.log.Info(ctx, "registration created",
		logger.String("registrationID", reg.RegistrationID),
		logger.Int("eventID", event.ID),
	)
	return reg, false, nil
}

// Finalize inserts the registration for a paid event after the payment
// simulator reported success. The at-most-one invariant still holds; a
// second finalize for the same event id fails with ErrAlreadyRegistered.
func (l *Ledger) Finalize(ctx context.Context, event model.Event, payment model.PaymentRecord) (model.Registration, error) {
	l.mu.Lock()
	if _, exists := l.byEvent[event.ID]; exists {
		l.mu.Unlock()
		metrics.RecordDuplicateRegistration()
		return model.Registration{}, fmt.Errorf("event %d: %w", event.ID, ErrAlreadyRegistered)
	}
	reg := l.insertLocked(event, payment)
	l.mu.Unlock()

	l.feed.Push(ctx, fmt.Sprintf("Payment confirmed! Successfully registered for %s!", event.Title))
	l.log.Info(ctx, "registration finalized",
		logger.String("registrationID", reg.RegistrationID),
		logger.String("transactionID", payment.TransactionID),
		logger.Int("eventID", event.ID),
	)
	return reg, nil
}

// insertLocked snapshots the event and appends the registration.
// Callers must hold the write lock.
func (l *Ledger) insertLocked(event model.Event, payment model.PaymentRecord) model.Registration {
	l.seq++
	reg := model.Registration{
		Event:          event,
		RegistrationID: fmt.Sprintf("EVT-%06d", l.seq),
		RegisteredAt:   time.Now(),
		Payment:        payment,
	}
	l.regs = append(l.regs, reg)
	l.byEvent[event.ID] = struct{}{}

	metrics.RecordRegistration()
	metrics.RecordRevenue(payment.Amount)
	return reg
}

// List returns the registrations in insertion order.
func (l *Ledger) List(ctx context.Context) []model.Registration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Registration, len(l.regs))
	copy(out, l.regs)
	return out
}

// Get returns the registration for an event id, if any.
func (l *Ledger) Get(ctx context.Context, eventID int) (model.Registration, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.regs {
		if r.Event.ID == eventID {
			return r, true
		}
	}
	return model.Registration{}, false
}

// Count returns the total number of registrations.
func (l *Ledger) Count(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.regs)
}

// Revenue returns the sum of payment amounts across all registrations.
func (l *Ledger) Revenue(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := 0
	for _, r := range l.regs {
		total += r.Payment.Amount
	}
	return total
}

// CountForEvent returns the number of registrations for a given event id.
// With the at-most-one invariant this is 0 or 1; the aggregate shape is kept
// for reporting consumers.
func (l *Ledger) CountForEvent(ctx context.Context, eventID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, r := range l.regs {
		if r.Event.ID == eventID {
			n++
		}
	}
	return n
}
