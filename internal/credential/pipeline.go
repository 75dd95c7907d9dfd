// Package credential sequences artifact issuance against user-supplied
// profile data.
//
// Card issuance is a two-phase flow per event: a card request without a
// stored profile suspends itself as an explicit resume continuation, and
// submitting the profile invokes that continuation directly. Confirmation
// documents have no profile precondition.
package credential

import (
	"context"
	"fmt"
	"sync"

	"github.com/evento-hq/evento/internal/artifact"
	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/internal/render/raster"
	"github.com/evento-hq/evento/pkg/logger"
)

// Status reports what happened to a card request.
type Status string

// Card request outcomes.
const (
	// StatusQueued means the render job was handed to the worker pool.
	StatusQueued Status = "queued"
	// StatusCollecting means the request is suspended until a profile
	// for the event is submitted.
	StatusCollecting Status = "collecting"
)

// codePlaceholder stands in for the machine-readable code on the card.
const codePlaceholder = "QR CODE"

// RegistrationReader looks up registrations by event id.
type RegistrationReader interface {
	Get(ctx context.Context, eventID int) (model.Registration, bool)
}

// TemplateRegistry is the slice of the rasterizer the pipeline drives.
type TemplateRegistry interface {
	RegisterTemplate(ctx context.Context, eventID int, t raster.Template)
	HasTemplate(ctx context.Context, eventID int) bool
}

// Enqueuer hands finished render requests to the artifact queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, j artifact.Job) bool
}

// resumeFunc is the continuation a suspended card request leaves behind.
type resumeFunc func(ctx context.Context) (Status, error)

// Pipeline owns profiles and the per-event issuance state machine.
type Pipeline struct {
	mu       sync.Mutex
	profiles map[int]model.Profile
	pending  map[int]resumeFunc

	regs      RegistrationReader
	templates TemplateRegistry
	queue     Enqueuer
	log       logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a credential pipeline with its collaborators.
func New(regs RegistrationReader, templates TemplateRegistry, queue Enqueuer, opts ...Option) *Pipeline {
	p := &Pipeline{
		profiles:  make(map[int]model.Profile),
		pending:   make(map[int]resumeFunc),
		regs:      regs,
		templates: templates,
		queue:     queue,
		log:       logger.Get().Named("credential"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// RequestCard asks for a credential card for a registered event.
//
// Without a stored profile the request suspends: a resume continuation is
// parked on the event and StatusCollecting is returned; no render happens.
// With a profile the render job is enqueued immediately.
func (p *Pipeline) RequestCard(ctx context.Context, eventID int) (Status, error) {
	reg, ok := p.regs.Get(ctx, eventID)
	if !ok {
		return "", fmt.Errorf("event %d: %w", eventID, ErrNotRegistered)
	}

	p.mu.Lock()
	_, hasProfile := p.profiles[eventID]
	if !hasProfile {
		p.pending[eventID] = func(ctx context.Context) (Status, error) {
			return p.RequestCard(ctx, eventID)
		}
		p.mu.Unlock()
		p.log.Debug(ctx, "card request suspended, collecting profile",
			logger.Int("eventID", eventID),
		)
		return StatusCollecting, nil
	}
	p.mu.Unlock()

	return p.issueCard(ctx, eventID, reg)
}

// issueCard enqueues the render job for an event whose profile exists.
func (p *Pipeline) issueCard(ctx context.Context, eventID int, reg model.Registration) (Status, error) {
	if !p.templates.HasTemplate(ctx, eventID) {
		return "", fmt.Errorf("event %d: %w", eventID, raster.ErrTemplateNotFound)
	}
	ok := p.queue.Enqueue(ctx, artifact.Job{
		Kind:    artifact.KindCard,
		EventID: eventID,
		Title:   reg.Title,
	})
	if !ok {
		return "", fmt.Errorf("event %d: %w", eventID, artifact.ErrQueueFull)
	}
	return StatusQueued, nil
}

// SubmitProfile stores the one-time profile for an event, registers the
// card template, and resumes the suspended card request if one is parked.
func (p *Pipeline) SubmitProfile(ctx context.Context, eventID int, profile model.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	reg, ok := p.regs.Get(ctx, eventID)
	if !ok {
		return fmt.Errorf("event %d: %w", eventID, ErrNotRegistered)
	}

	p.mu.Lock()
	if _, exists := p.profiles[eventID]; exists {
		p.mu.Unlock()
		return fmt.Errorf("event %d: %w", eventID, ErrProfileExists)
	}
	p.profiles[eventID] = profile
	resume := p.pending[eventID]
	delete(p.pending, eventID)
	p.mu.Unlock()

	p.templates.RegisterTemplate(ctx, eventID, raster.Template{
		EventTitle:     reg.Title,
		EventDate:      reg.Date,
		RegistrationID: reg.RegistrationID,
		Profile:        profile,
		Code:           codePlaceholder,
	})

	p.log.Info(ctx, "profile collected",
		logger.Int("eventID", eventID),
		logger.String("role", string(profile.Role)),
	)

	if resume != nil {
		if _, err := resume(ctx); err != nil {
			return fmt.Errorf("resume card request: %w", err)
		}
	}
	return nil
}

// RequestConfirmation enqueues the registration receipt document. No
// profile is required; the registration existing is the only precondition.
func (p *Pipeline) RequestConfirmation(ctx context.Context, eventID int) error {
	reg, ok := p.regs.Get(ctx, eventID)
	if !ok {
		return fmt.Errorf("event %d: %w", eventID, ErrNotRegistered)
	}
	enqueued := p.queue.Enqueue(ctx, artifact.Job{
		Kind:         artifact.KindConfirmation,
		EventID:      eventID,
		Title:        reg.Title,
		Registration: reg,
	})
	if !enqueued {
		return fmt.Errorf("event %d: %w", eventID, artifact.ErrQueueFull)
	}
	return nil
}

// Profile returns the stored profile for an event, if collected.
func (p *Pipeline) Profile(ctx context.Context, eventID int) (model.Profile, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.profiles[eventID]
	return prof, ok
}
