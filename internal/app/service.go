// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evento-hq/evento/internal/artifact"
	"github.com/evento-hq/evento/internal/credential"
	"github.com/evento-hq/evento/internal/domain/assistant"
	"github.com/evento-hq/evento/internal/domain/catalog"
	"github.com/evento-hq/evento/internal/domain/ledger"
	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/internal/domain/notify"
	"github.com/evento-hq/evento/internal/domain/team"
	"github.com/evento-hq/evento/internal/payment"
	"github.com/evento-hq/evento/internal/render/pdfdoc"
	"github.com/evento-hq/evento/internal/render/raster"
	"github.com/evento-hq/evento/pkg/logger"
)

// defaultActor is the display name joined members are recorded under when
// the caller supplies none; the simulation has a single logical user.
const defaultActor = "You"

// Service owns all engine stores and exposes the operations the HTTP API
// needs. Stores live from Start to Stop; nothing survives the process.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog    *catalog.Catalog
	feed       *notify.Log
	ledger     *ledger.Ledger
	teams      *team.Registry
	simulator  *payment.Simulator
	rasterizer *raster.Rasterizer
	writer     *pdfdoc.Writer
	queue      *artifact.MemoryQueue
	pool       *artifact.Pool
	pipeline   *credential.Pipeline

	// Configuration
	notificationCap        int
	paymentProcessingDelay time.Duration
	paymentConfirmDelay    time.Duration
	artifactDir            string
	artifactQueueSize      int
	renderWorkerCount      int
	rasterScale            int
	seed                   []model.Event

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithPaymentDelays sets the simulated gateway delays.
func WithPaymentDelays(processing, confirm time.Duration) Option {
	return func(s *Service) {
		if processing > 0 {
			s.paymentProcessingDelay = processing
		}
		if confirm > 0 {
			s.paymentConfirmDelay = confirm
		}
	}
}

// WithNotificationCap sets the activity feed bound.
func WithNotificationCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.notificationCap = n
		}
	}
}

// WithArtifactDir sets where generated documents are written.
func WithArtifactDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.artifactDir = dir
		}
	}
}

// WithArtifactQueueSize bounds the render job queue.
func WithArtifactQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.artifactQueueSize = n
		}
	}
}

// WithRenderWorkerCount sets the number of render workers.
func WithRenderWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.renderWorkerCount = n
		}
	}
}

// WithRasterScale sets the card raster pixel scale.
func WithRasterScale(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rasterScale = n
		}
	}
}

// WithCatalogSeed replaces the stock catalog seed.
func WithCatalogSeed(events []model.Event) Option {
	return func(s *Service) {
		s.seed = events
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		notificationCap:        5,
		paymentProcessingDelay: 1500 * time.Millisecond,
		paymentConfirmDelay:    2000 * time.Millisecond,
		artifactDir:            "./artifacts",
		artifactQueueSize:      256,
		renderWorkerCount:      2,
		rasterScale:            2,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting registration engine...")

	var catalogOpts []catalog.Option
	if s.seed != nil {
		catalogOpts = append(catalogOpts, catalog.WithSeed(s.seed))
	}
	s.catalog = catalog.New(catalogOpts...)
	s.feed = notify.New(notify.WithCap(s.notificationCap))
	s.ledger = ledger.New(s.feed, ledger.WithLogger(s.logger.Named("ledger")))
	s.teams = team.New()
	s.simulator = payment.New(
		payment.WithDelays(s.paymentProcessingDelay, s.paymentConfirmDelay),
		payment.WithLogger(s.logger.Named("payment")),
	)
	s.rasterizer = raster.New(raster.WithScale(s.rasterScale))

	writer, err := pdfdoc.NewWriter(s.artifactDir)
	if err != nil {
		return fmt.Errorf("init document writer: %w", err)
	}
	s.writer = writer

	s.queue = artifact.NewMemoryQueue(artifact.WithCapacity(s.artifactQueueSize))
	s.pool = artifact.NewPool(s.renderWorkerCount, s.queue, s.rasterizer, s.writer, s.feed)
	s.pool.Start(ctx)

	s.pipeline = credential.New(s.ledger, s.rasterizer, s.queue,
		credential.WithLogger(s.logger.Named("credential")),
	)

	s.feed.Push(ctx, "Welcome to Evento! Explore trending events now.")

	s.started = true
	s.logger.Info(ctx, "registration engine started",
		logger.Int("events", s.catalog.Count(ctx)),
		logger.Int("renderWorkers", s.renderWorkerCount),
		logger.Duration("paymentProcessingDelay", s.paymentProcessingDelay),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping registration engine...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "registration engine stopped")
}

// ListEvents returns the catalog in order.
func (s *Service) ListEvents(ctx context.Context) []model.Event {
	return s.catalog.List(ctx)
}

// CreateEvent appends a catalog entry and announces it.
func (s *Service) CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	e, err := s.catalog.Append(ctx, req)
	if err != nil {
		return model.Event{}, err
	}
	s.feed.Push(ctx, "New Event Created: "+e.Title)
	return e, nil
}

// DeleteEvent removes a catalog entry and announces the cancellation.
// Existing registrations keep their snapshot of the event.
func (s *Service) DeleteEvent(ctx context.Context, id int) error {
	e, err := s.catalog.Remove(ctx, id)
	if err != nil {
		return err
	}
	s.feed.Push(ctx, "Event Cancelled: "+e.Title)
	return nil
}

// RegisterIntent fulfills a registration intent for the event. For paid
// events pending=true and the caller must start a payment session.
func (s *Service) RegisterIntent(ctx context.Context, eventID int) (model.Registration, bool, error) {
	event, err := s.catalog.Get(ctx, eventID)
	if err != nil {
		return model.Registration{}, false, err
	}
	return s.ledger.RegisterIntent(ctx, event)
}

// StartPayment opens a payment session for a pending paid intent. The
// success callback finalizes the registration in the ledger; cancelling
// the session leaves the ledger untouched.
func (s *Service) StartPayment(ctx context.Context, eventID int, method string) (*payment.Session, error) {
	event, err := s.catalog.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, exists := s.ledger.Get(ctx, eventID); exists {
		return nil, fmt.Errorf("event %d: %w", eventID, ledger.ErrAlreadyRegistered)
	}

	return s.simulator.Submit(ctx, event, method, func(rec model.PaymentRecord) {
		// The callback runs on a timer goroutine, detached from the
		// request that started the session.
		if _, err := s.ledger.Finalize(context.Background(), event, rec); err != nil {
			s.logger.Warn(context.Background(), "payment confirmed but finalize rejected",
				logger.Int("eventID", event.ID),
				logger.Error(err),
			)
		}
	})
}

// CancelPayment abandons an in-flight session.
func (s *Service) CancelPayment(ctx context.Context, sessionID string) error {
	return s.simulator.Cancel(ctx, sessionID)
}

// PaymentStatus reports the state of an in-flight session.
func (s *Service) PaymentStatus(ctx context.Context, sessionID string) (payment.State, error) {
	return s.simulator.Status(ctx, sessionID)
}

// ListRegistrations returns the ledger contents in insertion order.
func (s *Service) ListRegistrations(ctx context.Context) []model.Registration {
	return s.ledger.List(ctx)
}

// JoinTeam applies a join request and announces it.
func (s *Service) JoinTeam(ctx context.Context, eventID int, name, actor string) (model.Team, error) {
	if actor == "" {
		actor = defaultActor
	}
	t, err := s.teams.Join(ctx, eventID, name, actor)
	if err != nil {
		return model.Team{}, err
	}
	s.feed.Push(ctx, fmt.Sprintf("Joined team %q for event.", t.Name))
	return t, nil
}

// Team returns the active team for an event, if any.
func (s *Service) Team(ctx context.Context, eventID int) (model.Team, bool) {
	return s.teams.Get(ctx, eventID)
}

// SubmitProfile stores credential data and resumes a suspended card request.
func (s *Service) SubmitProfile(ctx context.Context, eventID int, profile model.Profile) error {
	return s.pipeline.SubmitProfile(ctx, eventID, profile)
}

// RequestCard asks for the credential card artifact.
func (s *Service) RequestCard(ctx context.Context, eventID int) (credential.Status, error) {
	return s.pipeline.RequestCard(ctx, eventID)
}

// RequestConfirmation asks for the registration receipt artifact.
func (s *Service) RequestConfirmation(ctx context.Context, eventID int) error {
	return s.pipeline.RequestConfirmation(ctx, eventID)
}

// Notifications returns the activity feed, most recent first.
func (s *Service) Notifications(ctx context.Context) []model.Notification {
	return s.feed.List(ctx)
}

// Ask answers a free-text assistant question.
func (s *Service) Ask(ctx context.Context, question string) string {
	return assistant.Reply(question)
}

// EventStats is one per-event row of the reporting aggregate.
type EventStats struct {
	EventID       int    `json:"event_id"`
	Title         string `json:"title"`
	Price         int    `json:"price"`
	IsPaid        bool   `json:"is_paid"`
	Registrations int    `json:"registrations"`
	Revenue       int    `json:"revenue"`
}

// GetStats returns the aggregates consumed by dashboard views. All values
// derive from the ledger and catalog; nothing is stored.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	events := s.catalog.List(ctx)
	perEvent := make([]EventStats, 0, len(events))
	for _, e := range events {
		revenue := 0
		if reg, ok := s.ledger.Get(ctx, e.ID); ok {
			revenue = reg.Payment.Amount
		}
		perEvent = append(perEvent, EventStats{
			EventID:       e.ID,
			Title:         e.Title,
			Price:         e.Price,
			IsPaid:        e.IsPaid,
			Registrations: s.ledger.CountForEvent(ctx, e.ID),
			Revenue:       revenue,
		})
	}

	return map[string]interface{}{
		"totalEvents":        s.catalog.Count(ctx),
		"freeEvents":         s.catalog.FreeCount(ctx),
		"totalRegistrations": s.ledger.Count(ctx),
		"totalRevenue":       s.ledger.Revenue(ctx),
		"paymentsInFlight":   s.simulator.InFlight(ctx),
		"queuedArtifacts":    s.queue.Len(ctx),
		"events":             perEvent,
	}
}
