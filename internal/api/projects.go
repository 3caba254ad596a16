package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/strrl/claude-explorer/internal/config"
	"github.com/strrl/claude-explorer/internal/sessions"
)

// intQuery parses an integer query parameter, falling back to dflt for
// absent or malformed values.
func intQuery(r *http.Request, key string, dflt int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return dflt
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return dflt
	}
	return v
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := h.svc.ListProjects(sessions.ProjectListOptions{
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
		Limit:        intQuery(r, "limit", 0),
		Offset:       intQuery(r, "offset", 0),
		PathPrefixes: q["pathPrefix"],
	})
	writeJSON(w, r, http.StatusOK, page)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetProject(r.PathValue("id"))
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "project not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (h *Handler) getProjectConfig(w http.ResponseWriter, r *http.Request) {
	path, raw, err := h.svc.GetProjectConfig(r.PathValue("id"))
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "project not in config")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"path":   path,
		"config": config.Redact(raw),
	})
}

func (h *Handler) projectActivity(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Activity(r.PathValue("id"), sessions.ActivityOptions{
		Days: intQuery(r, "days", 0),
		Type: r.URL.Query().Get("type"),
	})
	if errors.Is(err, sessions.ErrNotFound) {
		writeNotFound(w, r, "project not found")
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (h *Handler) globalActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("startDate") == "" || q.Get("endDate") == "" {
		writeInvalid(w, r, "startDate and endDate are required (YYYY-MM-DD)")
		return
	}
	report, err := h.svc.GlobalActivity(sessions.GlobalActivityOptions{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Type:      q.Get("type"),
	})
	if err != nil {
		writeInvalid(w, r, "invalid date range: dates must be YYYY-MM-DD")
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
