package api

import (
	"errors"
	"net/http"

	"github.com/strrl/claude-explorer/internal/sessions"
)

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListSessions(r.PathValue("id"), sessions.SessionListOptions{
		Type:   r.URL.Query().Get("type"),
		Limit:  intQuery(r, "limit", 0),
		Offset: intQuery(r, "offset", 0),
	})
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "project not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetSession(r.PathValue("id"), r.PathValue("sessionId"))
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "session not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListMessages(r.PathValue("id"), r.PathValue("sessionId"), sessions.MessageListOptions{
		Type:   r.URL.Query().Get("type"),
		Limit:  intQuery(r, "limit", 0),
		Offset: intQuery(r, "offset", 0),
	})
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "session not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (h *Handler) getMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.GetMessage(r.PathValue("id"), r.PathValue("sessionId"), r.PathValue("messageId"))
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "message not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, msg)
}
