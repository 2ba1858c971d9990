package handlers

import (
	"net/http"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/service"
	"github.com/go-chi/chi/v5"
)

type AllianceHandler struct {
	dashboard *service.DashboardService
}

func NewAllianceHandler(dashboard *service.DashboardService) *AllianceHandler {
	return &AllianceHandler{dashboard: dashboard}
}

type AlliancesResponse struct {
	Alliances []service.AllianceInfo `json:"alliances"`
}

type PlayersResponse struct {
	Alliance string          `json:"alliance"`
	Players  []domain.Player `json:"players"`
}

func (h *AllianceHandler) List(w http.ResponseWriter, r *http.Request) {
	alliances, err := h.dashboard.Alliances()
	if err != nil {
		writeError(w, "alliance.List", err)
		return
	}
	writeJSON(w, http.StatusOK, AlliancesResponse{Alliances: alliances})
}

func (h *AllianceHandler) Players(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "alliance")

	players, err := h.dashboard.Players(name)
	if err != nil {
		writeError(w, "alliance.Players", err)
		return
	}
	writeJSON(w, http.StatusOK, PlayersResponse{Alliance: name, Players: players})
}
