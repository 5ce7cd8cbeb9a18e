package web

import (
	"net/http"
)

func (h *Handler) askAssistant(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string         `json:"question"`
		Context  map[string]any `json:"context"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Question == "" {
		writeError(w, r, "question is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	resp, err := h.svc.AskAssistant(r.Context(), payload.Question, payload.Context)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) faq(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.FAQ())
}
