// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/evento-hq/evento/internal/artifact"
	"github.com/evento-hq/evento/internal/credential"
	"github.com/evento-hq/evento/internal/domain/catalog"
	"github.com/evento-hq/evento/internal/domain/ledger"
	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/internal/domain/team"
	"github.com/evento-hq/evento/internal/payment"
	"github.com/evento-hq/evento/internal/render/raster"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Catalog operations.
	ListEvents(ctx context.Context) []model.Event
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error)
	DeleteEvent(ctx context.Context, id int) error

	// Registration and payment operations.
	RegisterIntent(ctx context.Context, eventID int) (model.Registration, bool, error)
	StartPayment(ctx context.Context, eventID int, method string) (*payment.Session, error)
	CancelPayment(ctx context.Context, sessionID string) error
	PaymentStatus(ctx context.Context, sessionID string) (payment.State, error)
	ListRegistrations(ctx context.Context) []model.Registration

	// Team operations.
	JoinTeam(ctx context.Context, eventID int, name, actor string) (model.Team, error)
	Team(ctx context.Context, eventID int) (model.Team, bool)

	// Credential operations.
	SubmitProfile(ctx context.Context, eventID int, profile model.Profile) error
	RequestCard(ctx context.Context, eventID int) (credential.Status, error)
	RequestConfirmation(ctx context.Context, eventID int) error

	// Feed and assistant.
	Notifications(ctx context.Context) []model.Notification
	Ask(ctx context.Context, question string) string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	eventsHandler        *EventsHandler
	paymentsHandler      *PaymentsHandler
	registrationsHandler *RegistrationsHandler
	notificationsHandler *NotificationsHandler
	assistantHandler     *AssistantHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		eventsHandler:        NewEventsHandler(deps),
		paymentsHandler:      NewPaymentsHandler(deps),
		registrationsHandler: NewRegistrationsHandler(deps),
		notificationsHandler: NewNotificationsHandler(deps),
		assistantHandler:     NewAssistantHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEvent, "events"))
	mux.HandleFunc("/payments", MetricsMiddleware(s.paymentsHandler.HandlePostPayment, "payments"))
	mux.HandleFunc("/payments/", MetricsMiddleware(s.paymentsHandler.HandlePayment, "payments"))
	mux.HandleFunc("/registrations", MetricsMiddleware(s.registrationsHandler.HandleGetRegistrations, "registrations"))
	mux.HandleFunc("/notifications", MetricsMiddleware(s.notificationsHandler.HandleGetNotifications, "notifications"))
	mux.HandleFunc("/assistant", MetricsMiddleware(s.assistantHandler.HandlePostAssistant, "assistant"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain sentinels to HTTP status codes so the
// per-resource handlers stay free of mapping tables.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, payment.ErrSessionNotFound),
		errors.Is(err, credential.ErrNotRegistered):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, ledger.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "already_registered", Wrap(op, err))
	case errors.Is(err, credential.ErrProfileExists):
		writeError(w, http.StatusConflict, "profile_exists", Wrap(op, err))
	case errors.Is(err, artifact.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", Wrap(op, err))
	case errors.Is(err, raster.ErrTemplateNotFound):
		writeError(w, http.StatusInternalServerError, "template_not_found", Wrap(op, err))
	case errors.Is(err, model.ErrInvalidEvent),
		errors.Is(err, model.ErrInvalidProfile),
		errors.Is(err, team.ErrEmptyName),
		errors.Is(err, payment.ErrUnknownMethod):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// pathID parses a numeric path segment, rejecting empty and non-numeric input.
func pathID(segment string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(segment))
	if err != nil {
		return 0, NewKind("api.path_id", ErrBadRequest)
	}
	return id, nil
}
