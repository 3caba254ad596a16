package api

import (
	"errors"
	"net/http"

	"github.com/strrl/claude-explorer/internal/sessions"
)

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: h.svc.ListPlans()})
}

func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.GetPlan(r.PathValue("name"))
	if err != nil {
		writeDocError(w, r, err, "plan")
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func (h *Handler) listSkills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: h.svc.ListSkills()})
}

func (h *Handler) getSkill(w http.ResponseWriter, r *http.Request) {
	skill, err := h.svc.GetSkill(r.PathValue("name"))
	if err != nil {
		writeDocError(w, r, err, "skill")
		return
	}
	writeJSON(w, r, http.StatusOK, skill)
}

func (h *Handler) listCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: h.svc.ListCommands()})
}

func (h *Handler) getCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.svc.GetCommand(r.PathValue("name"))
	if err != nil {
		writeDocError(w, r, err, "command")
		return
	}
	writeJSON(w, r, http.StatusOK, cmd)
}

func (h *Handler) listPlugins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dataEnvelope{Data: h.svc.ListPlugins()})
}

func (h *Handler) getPlugin(w http.ResponseWriter, r *http.Request) {
	plugin, err := h.svc.GetPlugin(r.PathValue("name"))
	if err != nil {
		writeDocError(w, r, err, "plugin")
		return
	}
	writeJSON(w, r, http.StatusOK, plugin)
}

// writeDocError maps the document-store error taxonomy onto the
// response envelope.
func writeDocError(w http.ResponseWriter, r *http.Request, err error, kind string) {
	switch {
	case errors.Is(err, sessions.ErrInvalidName):
		writeInvalid(w, r, "invalid "+kind+" name")
	case errors.Is(err, sessions.ErrNotFound):
		writeNotFound(w, r, kind+" not found")
	default:
		writeInternal(w, r, err)
	}
}
