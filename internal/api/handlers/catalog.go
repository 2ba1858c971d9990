package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/alliance-dashboard/internal/service"
)

type CatalogHandler struct {
	dashboard *service.DashboardService
}

func NewCatalogHandler(dashboard *service.DashboardService) *CatalogHandler {
	return &CatalogHandler{dashboard: dashboard}
}

type ModesResponse struct {
	Modes []string `json:"modes"`
}

type TeamResponse struct {
	Team       string   `json:"team"`
	Mode       string   `json:"mode"`
	Characters []string `json:"characters"`
}

type TeamsResponse struct {
	Mode  string         `json:"mode"`
	Teams []TeamResponse `json:"teams"`
}

func (h *CatalogHandler) Modes(w http.ResponseWriter, r *http.Request) {
	modes, err := h.dashboard.Modes()
	if err != nil {
		writeError(w, "catalog.Modes", err)
		return
	}
	if modes == nil {
		modes = []string{}
	}
	writeJSON(w, http.StatusOK, ModesResponse{Modes: modes})
}

func (h *CatalogHandler) Teams(w http.ResponseWriter, r *http.Request) {
	mode := strings.TrimSpace(r.URL.Query().Get("mode"))
	if mode == "" {
		http.Error(w, "mode is required", http.StatusBadRequest)
		return
	}

	teams, err := h.dashboard.Teams(mode)
	if err != nil {
		writeError(w, "catalog.Teams", err)
		return
	}

	resp := TeamsResponse{Mode: mode, Teams: make([]TeamResponse, len(teams))}
	for i, t := range teams {
		resp.Teams[i] = TeamResponse{Team: t.Name, Mode: t.Mode, Characters: t.Characters}
	}
	writeJSON(w, http.StatusOK, resp)
}
