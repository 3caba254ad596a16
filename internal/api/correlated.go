package api

import (
	"errors"
	"net/http"

	"github.com/strrl/claude-explorer/internal/correlate"
)

// Correlation endpoints operate on a session id alone: the probes scan
// the sibling stores, so no project id is needed and an unknown session
// simply correlates to nothing.

func (h *Handler) correlated(w http.ResponseWriter, r *http.Request) {
	data := h.svc.Correlator().Collect(r.PathValue("sessionId"))
	writeJSON(w, r, http.StatusOK, data)
}

func (h *Handler) sessionTodos(w http.ResponseWriter, r *http.Request) {
	todos := h.svc.Correlator().Todos(r.PathValue("sessionId"))
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: todos})
}

func (h *Handler) sessionFileHistory(w http.ResponseWriter, r *http.Request) {
	changes := h.svc.Correlator().FilesChanged(r.PathValue("sessionId"))
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: changes})
}

func (h *Handler) sessionBackupContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.svc.Correlator().BackupContent(r.PathValue("sessionId"), r.PathValue("backupFileName"))
	if errors.Is(err, correlate.ErrInvalidName) {
		writeInvalid(w, r, "invalid backup file name")
		return
	}
	if errors.Is(err, correlate.ErrNotFound) {
		writeNotFound(w, r, "backup not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, content)
}

func (h *Handler) sessionDebugLogs(w http.ResponseWriter, r *http.Request) {
	logs := h.svc.Correlator().DebugLogs(r.PathValue("sessionId"))
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: logs})
}

func (h *Handler) sessionEnvironment(w http.ResponseWriter, r *http.Request) {
	env := h.svc.Correlator().Environment(r.PathValue("sessionId"))
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: env})
}

func (h *Handler) sessionSubAgents(w http.ResponseWriter, r *http.Request) {
	info := h.svc.Correlator().SubAgents(r.PathValue("sessionId"))
	writeJSON(w, r, http.StatusOK, info)
}
