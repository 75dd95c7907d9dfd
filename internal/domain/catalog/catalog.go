// Package catalog holds the ordered in-memory event list the engine reads.
//
// The catalog is an external collaborator from the engine's point of view:
// the ledger snapshots events out of it, and never writes back.
package catalog

import (
	"context"
	"sync"

	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/pkg/metrics"
)

const (
	defaultPaidPrice = 999
	defaultImage     = "https://images.unsplash.com/photo-1501281668745-f7f57925c3b4?auto=format&fit=crop&q=80&w=800"
)

// Catalog is an ordered, mutex-guarded list of events.
type Catalog struct {
	mu     sync.RWMutex
	events []model.Event
	nextID int
}

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithSeed replaces the default seed events.
func WithSeed(events []model.Event) Option {
	return func(c *Catalog) {
		c.events = append([]model.Event(nil), events...)
	}
}

// New creates a catalog seeded with the stock event list unless overridden.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		events: seedEvents(),
	}

	for _, opt := range opts {
		opt(c)
	}

	for _, e := range c.events {
		if e.ID >= c.nextID {
			c.nextID = e.ID + 1
		}
	}
	if c.nextID == 0 {
		c.nextID = 1
	}

	metrics.UpdateEventsActive(len(c.events))
	return c
}

// List returns the events in catalog order.
func (c *Catalog) List(ctx context.Context) []model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Get returns the event with the given id, or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, id int) (model.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, ErrNotFound
}

// Append builds an event from the request and adds it to the end of the
// list. Paid events without a price fall back to the stock default, free
// events are forced to price 0.
func (c *Catalog) Append(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	if err := req.Validate(); err != nil {
		return model.Event{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	price := 0
	if req.IsPaid {
		price = req.Price
		if price == 0 {
			price = defaultPaidPrice
		}
	}
	image := req.Image
	if image == "" {
		image = defaultImage
	}

	e := model.Event{
		ID:          c.nextID,
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Category:    req.Category,
		Price:       price,
		IsPaid:      req.IsPaid,
		Image:       image,
		Description: req.Description,
	}
	c.nextID++
	c.events = append(c.events, e)
	metrics.UpdateEventsActive(len(c.events))
	return e, nil
}

// Remove deletes the event with the given id and returns it.
func (c *Catalog) Remove(ctx context.Context, id int) (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.events {
		if e.ID == id {
			c.events = append(c.events[:i], c.events[i+1:]...)
			metrics.UpdateEventsActive(len(c.events))
			return e, nil
		}
	}
	return model.Event{}, ErrNotFound
}

// Count returns the number of events currently listed.
func (c *Catalog) Count(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// FreeCount returns the number of free events currently listed.
func (c *Catalog) FreeCount(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.events {
		if !e.IsPaid {
			n++
		}
	}
	return n
}
