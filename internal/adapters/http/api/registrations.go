// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// RegistrationsHandler handles ledger read requests.
type RegistrationsHandler struct {
	deps Dependencies
}

// NewRegistrationsHandler creates a new registrations handler.
func NewRegistrationsHandler(deps Dependencies) *RegistrationsHandler {
	return &RegistrationsHandler{deps: deps}
}

// HandleGetRegistrations handles GET /registrations requests.
func (h *RegistrationsHandler) HandleGetRegistrations(w http.ResponseWriter, r *http.Request) {
	const op = "api.registrations"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ListRegistrations(r.Context()))
}
