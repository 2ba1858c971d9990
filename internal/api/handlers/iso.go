package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/alliance-dashboard/internal/service"
)

type IsoHandler struct {
	dashboard *service.DashboardService
}

func NewIsoHandler(dashboard *service.DashboardService) *IsoHandler {
	return &IsoHandler{dashboard: dashboard}
}

func (h *IsoHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := strings.TrimSpace(q.Get("mode"))
	team := strings.TrimSpace(q.Get("team"))
	if mode == "" || team == "" {
		http.Error(w, "mode and team are required", http.StatusBadRequest)
		return
	}

	view, err := h.dashboard.IsoView(mode, team, q.Get("player"))
	if err != nil {
		writeError(w, "iso.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
