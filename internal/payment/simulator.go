// Package payment implements the mock payment flow. No real settlement
// happens; a scripted pair of delays stands in for gateway latency.
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/pkg/logger"
	"github.com/evento-hq/evento/pkg/metrics"
)

// State is the position of a session in the mock flow.
type State string

// Session states.
const (
	StateIdle       State = "Idle"
	StateProcessing State = "Processing"
	StateConfirmed  State = "Confirmed"
)

// Default gateway delays: 1.5s of "processing" followed by
// a 2s confirmation screen before the success callback fires.
const (
	defaultProcessingDelay = 1500 * time.Millisecond
	defaultConfirmDelay    = 2000 * time.Millisecond
)

// SuccessFunc receives the synthesized record exactly once per session.
type SuccessFunc func(rec model.PaymentRecord)

// Session is one in-flight payment. Sessions are independent state
// machines; starting a payment for another event does not block this one.
type Session struct {
	ID      string `json:"id"`
	EventID int    `json:"event_id"`
	Method  string `json:"method"`
	Amount  int    `json:"amount"`

	mu        sync.Mutex
	state     State
	cancelled bool
	onSuccess SuccessFunc
	confirm   *time.Timer
	callback  *time.Timer
	startedAt time.Time
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Simulator starts and tracks payment sessions. There is intentionally no
// global concurrency limit across sessions.
type Simulator struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	processingDelay time.Duration
	confirmDelay    time.Duration
	log             logger.Logger
}

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithDelays sets the processing and confirmation delays.
func WithDelays(processing, confirm time.Duration) Option {
	return func(s *Simulator) {
		if processing > 0 {
			s.processingDelay = processing
		}
		if confirm > 0 {
			s.confirmDelay = confirm
		}
	}
}

// WithLogger sets a custom logger for the simulator.
func WithLogger(log logger.Logger) Option {
	return func(s *Simulator) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a simulator with configuration options.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		sessions:        make(map[string]*Session),
		processingDelay: defaultProcessingDelay,
		confirmDelay:    defaultConfirmDelay,
		log:             logger.Get().Named("payment"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit starts a session for the event and schedules the two transitions.
// The callback fires after both delays unless the session is cancelled
// first; a cancelled session never reaches the callback.
func (s *Simulator) Submit(ctx context.Context, event model.Event, method string, onSuccess SuccessFunc) (*Session, error) {
	if method != "card" && method != "upi" {
		return nil, fmt.Errorf("method %q: %w", method, ErrUnknownMethod)
	}
	if onSuccess == nil {
		return nil, ErrNilCallback
	}

	sess := &Session{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		Method:    method,
		Amount:    event.Price,
		state:     StateProcessing,
		onSuccess: onSuccess,
		startedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	metrics.RecordPaymentStarted()
	s.log.Info(ctx, "payment session started",
		logger.String("sessionID", sess.ID),
		logger.Int("eventID", event.ID),
		logger.String("method", method),
		logger.Int("amount", event.Price),
	)

	sess.mu.Lock()
	sess.confirm = time.AfterFunc(s.processingDelay, func() { s.confirmSession(sess) })
	sess.mu.Unlock()

	return sess, nil
}

// confirmSession transitions Processing -> Confirmed and schedules the
// success callback.
func (s *Simulator) confirmSession(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.cancelled {
		return
	}
	sess.state = StateConfirmed
	sess.callback = time.AfterFunc(s.confirmDelay, func() { s.fireCallback(sess) })
}

// fireCallback synthesizes the PaymentRecord and invokes the one-shot
// continuation, then discards the session.
func (s *Simulator) fireCallback(sess *Session) {
	sess.mu.Lock()
	if sess.cancelled || sess.onSuccess == nil {
		sess.mu.Unlock()
		return
	}
	cb := sess.onSuccess
	sess.onSuccess = nil
	paidAt := time.Now()
	rec := model.PaymentRecord{
		Method:        sess.Method,
		Amount:        sess.Amount,
		TransactionID: "TXN-" + uuid.NewString(),
		PaidAt:        &paidAt,
	}
	elapsed := time.Since(sess.startedAt)
	sess.mu.Unlock()

	metrics.RecordPaymentConfirmed()
	metrics.RecordPaymentLatency(float64(elapsed.Milliseconds()))

	cb(rec)

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
}

// Cancel dismisses an in-flight session. All scheduled work is discarded;
// a cancelled session never creates a registration. Cancelling an unknown
// or already-completed session returns ErrSessionNotFound.
func (s *Simulator) Cancel(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}

	sess.mu.Lock()
	sess.cancelled = true
	sess.onSuccess = nil
	if sess.confirm != nil {
		sess.confirm.Stop()
	}
	if sess.callback != nil {
		sess.callback.Stop()
	}
	sess.mu.Unlock()

	metrics.RecordPaymentAbandoned()
	s.log.Info(ctx, "payment session abandoned", logger.String("sessionID", sessionID))
	return nil
}

// Status returns the state of an in-flight session.
func (s *Simulator) Status(ctx context.Context, sessionID string) (State, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return StateIdle, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	return sess.State(), nil
}

// InFlight returns the number of sessions currently tracked.
func (s *Simulator) InFlight(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
