package api

import (
	"errors"
	"net/http"

	"github.com/strrl/claude-explorer/internal/config"
	"github.com/strrl/claude-explorer/internal/db"
	"github.com/strrl/claude-explorer/internal/observability"
	"github.com/strrl/claude-explorer/internal/sessions"
)

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := h.svc.History(sessions.HistoryOptions{
		Project:   q.Get("project"),
		Search:    q.Get("search"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Limit:     intQuery(r, "limit", 0),
		Offset:    intQuery(r, "offset", 0),
	})
	writeJSON(w, r, http.StatusOK, page)
}

// stats serves the precomputed cache verbatim when one exists, then
// tries the SQL aggregate, then falls back to the filesystem walk.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.svc.CachedStats(); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}
	stats, err := db.Stats(h.svc.Dir().Projects())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn("stats query failed, using filesystem walk", "error", err)
		stats = h.svc.ComputeStats()
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (h *Handler) dailyStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := h.svc.DailyStats(sessions.DailyStatsOptions{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Limit:     intQuery(r, "limit", 0),
	})
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: days})
}

func (h *Handler) modelStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: h.svc.ModelStats()})
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	raw := h.svc.RawConfig()
	if raw == nil {
		raw = map[string]any{}
	}
	writeJSON(w, r, http.StatusOK, config.Redact(raw))
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Settings())
}

func (h *Handler) browseFiles(w http.ResponseWriter, r *http.Request) {
	content, err := h.svc.Browse(r.URL.Query().Get("path"))
	if errors.Is(err, sessions.ErrInvalidName) {
		writeInvalid(w, r, "path must stay within the data directory")
		return
	}
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "path not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, content)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
