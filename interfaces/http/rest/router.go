// Package rest exposes the timeline editing API over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"opencut-backend/application/commands/bus"
	"opencut-backend/application/ports"
	querybus "opencut-backend/application/queries/bus"
	"opencut-backend/interfaces/http/rest/handlers"
	"opencut-backend/interfaces/http/rest/middleware"
	"opencut-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	thumbnails ports.ThumbnailProvider
	collector  *observability.Collector
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance. thumbnails and collector may
// be nil when those features are disabled.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	thumbnails ports.ThumbnailProvider,
	collector *observability.Collector,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		thumbnails: thumbnails,
		collector:  collector,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.opencut.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		sessionHandler := handlers.NewSessionHandler(rt.commandBus, rt.queryBus, rt.logger)
		trackHandler := handlers.NewTrackHandler(rt.commandBus, rt.queryBus, rt.logger)
		clipHandler := handlers.NewClipHandler(rt.commandBus, rt.logger)
		selectionHandler := handlers.NewSelectionHandler(rt.commandBus, rt.queryBus, rt.logger)
		historyHandler := handlers.NewHistoryHandler(rt.commandBus, rt.queryBus, rt.logger)
		exportHandler := handlers.NewExportHandler(rt.queryBus, rt.thumbnails, rt.logger)

		r.Get("/snapshots", sessionHandler.ListSnapshots)
		r.Get("/media/{mediaID}/thumbnail", exportHandler.GetThumbnail)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)
			r.Post("/open", sessionHandler.OpenSession)
			r.Get("/", sessionHandler.ListSessions)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetTimeline)
				r.Delete("/", sessionHandler.CloseSession)
				r.Patch("/", sessionHandler.RenameTimeline)
				r.Post("/snapshot", sessionHandler.SaveSnapshot)
				r.Get("/duration", sessionHandler.GetDuration)
				r.Get("/export/edl", exportHandler.ExportEDL)

				r.Post("/undo", historyHandler.Undo)
				r.Post("/redo", historyHandler.Redo)
				r.Get("/history", historyHandler.GetStatus)

				r.Route("/selection", func(r chi.Router) {
					r.Get("/", selectionHandler.GetSelection)
					r.Put("/", selectionHandler.SetSelection)
					r.Delete("/", selectionHandler.ClearSelection)
					r.Post("/select", selectionHandler.SelectClip)
					r.Post("/delete", selectionHandler.DeleteSelected)
					r.Post("/split", selectionHandler.SplitSelected)
					r.Post("/duplicate", selectionHandler.DuplicateSelected)
				})

				r.Route("/tracks", func(r chi.Router) {
					r.Post("/", trackHandler.AddTrack)

					r.Route("/{trackID}", func(r chi.Router) {
						r.Get("/", trackHandler.GetTrack)
						r.Delete("/", trackHandler.RemoveTrack)
						r.Patch("/", trackHandler.RenameTrack)
						r.Post("/mute", trackHandler.ToggleMute)

						r.Route("/clips", func(r chi.Router) {
							r.Post("/", clipHandler.AddClip)

							r.Route("/{clipID}", func(r chi.Router) {
								r.Delete("/", clipHandler.RemoveClip)
								r.Patch("/", clipHandler.RenameClip)
								r.Post("/move", clipHandler.MoveClip)
								r.Post("/start", clipHandler.SetStart)
								r.Post("/trim", clipHandler.TrimClip)
								r.Post("/split", clipHandler.SplitClip)
								r.Post("/duplicate", clipHandler.DuplicateClip)
								r.Post("/freeze", clipHandler.FreezeFrame)
								r.Post("/mute", clipHandler.ToggleMute)
							})
						})
					})
				})
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
