package handlers

import (
	"net/http"

	"github.com/dom/alliance-dashboard/internal/service"
)

type SnapshotHandler struct {
	dashboard *service.DashboardService
}

func NewSnapshotHandler(dashboard *service.DashboardService) *SnapshotHandler {
	return &SnapshotHandler{dashboard: dashboard}
}

func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.dashboard.Status()
	if err != nil {
		writeError(w, "snapshot.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Refresh reloads every source. 502 when a required source fails, 409 when
// a newer refresh overtook this one; the live snapshot is unchanged in both.
func (h *SnapshotHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	status, err := h.dashboard.Refresh(r.Context())
	if err != nil {
		writeError(w, "snapshot.Refresh", err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
