package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/dom/alliance-dashboard/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RankingHandler struct {
	dashboard *service.DashboardService
	export    *service.ExportService
}

func NewRankingHandler(dashboard *service.DashboardService, export *service.ExportService) *RankingHandler {
	return &RankingHandler{dashboard: dashboard, export: export}
}

// rankingQuery reads mode, team and the alliance filter. alliance may repeat
// or hold a comma separated list.
func rankingQuery(r *http.Request) (mode, team string, alliances []string, ok bool) {
	q := r.URL.Query()
	mode = strings.TrimSpace(q.Get("mode"))
	team = strings.TrimSpace(q.Get("team"))
	for _, v := range q["alliance"] {
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				alliances = append(alliances, a)
			}
		}
	}
	return mode, team, alliances, mode != "" && team != ""
}

func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	mode, team, alliances, ok := rankingQuery(r)
	if !ok {
		http.Error(w, "mode and team are required", http.StatusBadRequest)
		return
	}

	ranking, err := h.dashboard.Rank(mode, team, alliances)
	if err != nil {
		writeError(w, "ranking.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (h *RankingHandler) Export(w http.ResponseWriter, r *http.Request) {
	mode, team, alliances, ok := rankingQuery(r)
	if !ok {
		http.Error(w, "mode and team are required", http.StatusBadRequest)
		return
	}

	ranking, err := h.dashboard.Rank(mode, team, alliances)
	if err != nil {
		writeError(w, "ranking.Export", err)
		return
	}

	var buf bytes.Buffer
	if err := h.export.RankingXLSX(ranking, &buf); err != nil {
		writeError(w, "ranking.Export", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(ranking)))
	w.Write(buf.Bytes())
}

func exportFilename(r *service.Ranking) string {
	clean := func(s string) string {
		return strings.Map(func(c rune) rune {
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
				return c
			case c == ' ' || c == '_':
				return '_'
			}
			return -1
		}, s)
	}
	return fmt.Sprintf("classement_%s_%s.xlsx", clean(r.Mode), clean(r.Team))
}
