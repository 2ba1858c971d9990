package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/alliance-dashboard/internal/service"
)

type CharacterHandler struct {
	dashboard *service.DashboardService
}

func NewCharacterHandler(dashboard *service.DashboardService) *CharacterHandler {
	return &CharacterHandler{dashboard: dashboard}
}

func (h *CharacterHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	match, err := h.dashboard.ResolveCharacter(name)
	if err != nil {
		writeError(w, "character.Resolve", err)
		return
	}
	if match == nil {
		http.Error(w, "Character not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, match)
}
