package service

import (
	"github.com/dom/alliance-dashboard/internal/config"
	"github.com/dom/alliance-dashboard/internal/snapshot"
)

type Services struct {
	Dashboard *DashboardService
	Export    *ExportService
}

func NewServices(refresher *snapshot.Refresher, cfg *config.Config) *Services {
	return &Services{
		Dashboard: NewDashboardService(refresher, DashboardOptions{
			Thresholds:          cfg.Rules.Thresholds,
			TeamSlots:           cfg.Rules.TeamSlots,
			Alliances:           cfg.Rules.Alliances,
			IncludeUnrecognized: cfg.Rules.IncludeUnrecognizedAlliances,
		}),
		Export: NewExportService(),
	}
}
