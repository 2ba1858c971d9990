package api

import (
	"net/http"

	"github.com/dom/alliance-dashboard/internal/api/handlers"
	"github.com/dom/alliance-dashboard/internal/api/middleware"
	"github.com/dom/alliance-dashboard/internal/service"
	"github.com/dom/alliance-dashboard/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	snapshotHandler := handlers.NewSnapshotHandler(services.Dashboard)
	catalogHandler := handlers.NewCatalogHandler(services.Dashboard)
	allianceHandler := handlers.NewAllianceHandler(services.Dashboard)
	characterHandler := handlers.NewCharacterHandler(services.Dashboard)
	rankingHandler := handlers.NewRankingHandler(services.Dashboard, services.Export)
	isoHandler := handlers.NewIsoHandler(services.Dashboard)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/snapshot", snapshotHandler.Get)
		r.Post("/refresh", snapshotHandler.Refresh)

		r.Get("/modes", catalogHandler.Modes)
		r.Get("/teams", catalogHandler.Teams)

		r.Route("/alliances", func(r chi.Router) {
			r.Get("/", allianceHandler.List)
			r.Get("/{alliance}/players", allianceHandler.Players)
		})

		r.Get("/characters/resolve", characterHandler.Resolve)

		r.Route("/rankings", func(r chi.Router) {
			r.Get("/", rankingHandler.Get)
			r.Get("/export.xlsx", rankingHandler.Export)
		})

		r.Get("/iso", isoHandler.Get)

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
