// Package team tracks the ad-hoc team formed for each event.
package team

import (
	"context"
	"strings"
	"sync"

	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/pkg/metrics"
)

// Registry maps event ids to their single active team.
type Registry struct {
	mu    sync.RWMutex
	teams map[int]model.Team
}

// New creates an empty team registry.
func New() *Registry {
	return &Registry{
		teams: make(map[int]model.Team),
	}
}

// Join applies a join request for the given event.
//
// No team yet, or a team with a different name: the event's team is replaced
// by a fresh one named after the request, with the requested name and the
// actor as its members. A team with the same name: the actor is appended to
// the member list. Repeated identical joins append duplicate actor entries;
// the list is a join history, not a set.
func (r *Registry) Join(ctx context.Context, eventID int, name, actor string) (model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Team{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.teams[eventID]
	if !ok || current.Name != name {
		t := model.Team{Name: name, Members: []string{name, actor}}
		r.teams[eventID] = t
		metrics.RecordTeamJoin()
		return t, nil
	}

	current.Members = append(append([]string(nil), current.Members...), actor)
	r.teams[eventID] = current
	metrics.RecordTeamJoin()
	return current, nil
}

// Get returns the active team for an event, if any.
func (r *Registry) Get(ctx context.Context, eventID int) (model.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.teams[eventID]
	if !ok {
		return model.Team{}, false
	}
	t.Members = append([]string(nil), t.Members...)
	return t, true
}
