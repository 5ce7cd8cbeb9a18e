package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"lmnp-ledger/internal/app"
	"lmnp-ledger/internal/constants"
	"lmnp-ledger/internal/store"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONStatus writes a JSON response with an explicit status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps service-layer sentinel errors onto HTTP statuses.
// Missing fiscal constants are a data problem (422), not a missing resource.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, "ressource introuvable", "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, store.ErrYearLocked):
		writeError(w, r, "exercice verrouillé", "YEAR_LOCKED", http.StatusConflict)
	case errors.Is(err, constants.ErrNotFound):
		writeError(w, r, "constantes fiscales indisponibles pour cet exercice", "CONSTANTS_UNAVAILABLE", http.StatusUnprocessableEntity)
	case errors.Is(err, app.ErrAssistantUnavailable):
		writeError(w, r, "l'assistant IA n'est pas configuré (OPENAI_API_KEY manquante)", "ASSISTANT_UNAVAILABLE", http.StatusServiceUnavailable)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
