// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// NotificationsHandler handles activity feed requests.
type NotificationsHandler struct {
	deps Dependencies
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(deps Dependencies) *NotificationsHandler {
	return &NotificationsHandler{deps: deps}
}

// HandleGetNotifications handles GET /notifications requests. Entries come
// back most recent first, bounded by the feed cap.
func (h *NotificationsHandler) HandleGetNotifications(w http.ResponseWriter, r *http.Request) {
	const op = "api.notifications"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Notifications(r.Context()))
}
