// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/evento-hq/evento/internal/domain/model"
)

// EventsHandler handles catalog and per-event sub-resource requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleEvents handles GET /events and POST /events requests.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.events"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.ListEvents(r.Context()))
	case http.MethodPost:
		var req model.CreateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		event, err := h.deps.CreateEvent(r.Context(), req)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, event)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
	}
}

// HandleEvent routes /events/{id} and /events/{id}/{action} requests.
func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.event"
	path := strings.TrimPrefix(r.URL.Path, "/events/")
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	id, err := pathID(segments[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if len(segments) == 1 {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
			return
		}
		if err := h.deps.DeleteEvent(r.Context(), id); err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
		return
	}

	if len(segments) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch segments[1] {
	case "register":
		h.handleRegister(w, r, id)
	case "team":
		h.handleTeam(w, r, id)
	case "profile":
		h.handleProfile(w, r, id)
	case "card":
		h.handleCard(w, r, id)
	case "confirmation":
		h.handleConfirmation(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// registerResponse reports the outcome of a registration intent.
type registerResponse struct {
	Status       string              `json:"status"`
	Registration *model.Registration `json:"registration,omitempty"`
}

func (h *EventsHandler) handleRegister(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.register"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	reg, pending, err := h.deps.RegisterIntent(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if pending {
		// Paid event: nothing recorded until a payment session confirms.
		writeJSON(w, http.StatusAccepted, registerResponse{Status: "payment_required"})
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{Status: "registered", Registration: &reg})
}

type teamRequest struct {
	Name  string `json:"name"`
	Actor string `json:"actor,omitempty"`
}

func (h *EventsHandler) handleTeam(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.team"
	switch r.Method {
	case http.MethodGet:
		t, ok := h.deps.Team(r.Context(), id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeJSON(w, http.StatusOK, t)
	case http.MethodPost:
		var req teamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		t, err := h.deps.JoinTeam(r.Context(), id, req.Name, req.Actor)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
	}
}

func (h *EventsHandler) handleProfile(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.profile"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.SubmitProfile(r.Context(), id, profile); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "collected"})
}

func (h *EventsHandler) handleCard(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.card"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	status, err := h.deps.RequestCard(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": string(status)})
}

func (h *EventsHandler) handleConfirmation(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.confirmation"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	if err := h.deps.RequestConfirmation(r.Context(), id); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
