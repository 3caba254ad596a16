package api

import (
	"net/http"

	"github.com/strrl/claude-explorer/internal/sessions"
)

// Handler holds the service dependencies of every route.
type Handler struct {
	svc *sessions.Service
}

// NewHandler assembles the route tree with logging, request-id, and
// CORS middleware applied to everything.
func NewHandler(svc *sessions.Service) http.Handler {
	h := &Handler{svc: svc}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/projects", h.listProjects)
	mux.HandleFunc("GET /api/v1/projects/{id}", h.getProject)
	mux.HandleFunc("GET /api/v1/projects/{id}/config", h.getProjectConfig)
	mux.HandleFunc("GET /api/v1/projects/{id}/sessions", h.listSessions)
	mux.HandleFunc("GET /api/v1/projects/{id}/sessions/{sessionId}", h.getSession)
	mux.HandleFunc("GET /api/v1/projects/{id}/sessions/{sessionId}/messages", h.listMessages)
	mux.HandleFunc("GET /api/v1/projects/{id}/sessions/{sessionId}/messages/{messageId}", h.getMessage)
	mux.HandleFunc("GET /api/v1/projects/{id}/activity", h.projectActivity)
	mux.HandleFunc("GET /api/v1/activity", h.globalActivity)

	mux.HandleFunc("GET /api/v1/sessions/{sessionId}/correlated", h.correlated)
	mux.HandleFunc("GET /api/v1/sessions/{sessionId}/todos", h.sessionTodos)
	mux.HandleFunc("GET /api/v1/sessions/{sessionId}/file-history", h.sessionFileHistory)
	mux.HandleFunc("GET /api/v1/sessions/{sessionId}/file-history/{backupFileName}", h.sessionBackupContent)
	mux.HandleFunc("GET /api/v1/sessions/{sessionId}/debug-logs", h.sessionDebugLogs)
	mux.HandleFunc("GET /api/v1/sessions/{sessionId}/environment", h.sessionEnvironment)
	mux.HandleFunc("GET /api/v1/sessions/{sessionId}/sub-agents", h.sessionSubAgents)

	mux.HandleFunc("GET /api/v1/plans", h.listPlans)
	mux.HandleFunc("GET /api/v1/plans/{name}", h.getPlan)
	mux.HandleFunc("GET /api/v1/skills", h.listSkills)
	mux.HandleFunc("GET /api/v1/skills/{name}", h.getSkill)
	mux.HandleFunc("GET /api/v1/commands", h.listCommands)
	mux.HandleFunc("GET /api/v1/commands/{name}", h.getCommand)
	mux.HandleFunc("GET /api/v1/plugins", h.listPlugins)
	mux.HandleFunc("GET /api/v1/plugins/{name}", h.getPlugin)

	mux.HandleFunc("GET /api/v1/history", h.history)
	mux.HandleFunc("GET /api/v1/stats", h.stats)
	mux.HandleFunc("GET /api/v1/stats/daily", h.dailyStats)
	mux.HandleFunc("GET /api/v1/stats/models", h.modelStats)
	mux.HandleFunc("GET /api/v1/config", h.getConfig)
	mux.HandleFunc("GET /api/v1/config/settings", h.getSettings)
	mux.HandleFunc("GET /api/v1/files", h.browseFiles)

	mux.HandleFunc("GET /health", h.health)

	return withRequestLogging(withCORS(mux))
}
