// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// AssistantHandler handles help assistant requests.
type AssistantHandler struct {
	deps Dependencies
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(deps Dependencies) *AssistantHandler {
	return &AssistantHandler{deps: deps}
}

type assistantRequest struct {
	Question string `json:"question"`
}

type assistantResponse struct {
	Answer string `json:"answer"`
}

// HandlePostAssistant handles POST /assistant requests.
func (h *AssistantHandler) HandlePostAssistant(w http.ResponseWriter, r *http.Request) {
	const op = "api.assistant"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, assistantResponse{Answer: h.deps.Ask(r.Context(), req.Question)})
}
