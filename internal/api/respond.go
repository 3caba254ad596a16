package api

import (
	"encoding/json"
	"net/http"

	"github.com/strrl/claude-explorer/internal/observability"
)

// Stable error codes of the API error envelope.
const (
	codeNotFound       = "not_found"
	codeInvalidRequest = "invalid_request"
	codeInternal       = "internal"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// dataEnvelope wraps list responses that carry no pagination metadata.
type dataEnvelope struct {
	Data any `json:"data"`
}

// writeJSON marshals v as the response body. Encoding failures are
// logged, not surfaced: headers are already gone by then.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.LoggerFromContext(r.Context()).Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeNotFound(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusNotFound, codeNotFound, message)
}

func writeInvalid(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, codeInvalidRequest, message)
}

func writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
	writeError(w, r, http.StatusInternalServerError, codeInternal, "internal error")
}
