// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// PaymentsHandler handles payment session requests.
type PaymentsHandler struct {
	deps Dependencies
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(deps Dependencies) *PaymentsHandler {
	return &PaymentsHandler{deps: deps}
}

// paymentRequest mirrors the schema for POST /payments.
type paymentRequest struct {
	EventID int    `json:"event_id"`
	Method  string `json:"method"`
}

// paymentResponse reports an open session to the caller.
type paymentResponse struct {
	SessionID string `json:"session_id"`
	EventID   int    `json:"event_id"`
	Method    string `json:"method"`
	Amount    int    `json:"amount"`
	State     string `json:"state"`
}

// HandlePostPayment handles POST /payments requests.
func (h *PaymentsHandler) HandlePostPayment(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_payment"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	sess, err := h.deps.StartPayment(r.Context(), req.EventID, req.Method)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, paymentResponse{
		SessionID: sess.ID,
		EventID:   sess.EventID,
		Method:    sess.Method,
		Amount:    sess.Amount,
		State:     string(sess.State()),
	})
}

// HandlePayment routes GET /payments/{id} and POST /payments/{id}/cancel.
func (h *PaymentsHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	const op = "api.payment"
	path := strings.TrimPrefix(r.URL.Path, "/payments/")
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	sessionID := segments[0]

	switch {
	case len(segments) == 1 && r.Method == http.MethodGet:
		state, err := h.deps.PaymentStatus(r.Context(), sessionID)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"session_id": sessionID, "state": string(state)})
	case len(segments) == 2 && segments[1] == "cancel" && r.Method == http.MethodPost:
		if err := h.deps.CancelPayment(r.Context(), sessionID); err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"session_id": sessionID, "state": "Idle"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
	}
}
