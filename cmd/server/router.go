package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashloop/internal/api"
	apiMiddleware "github.com/phrazzld/flashloop/internal/api/middleware"
	"github.com/phrazzld/flashloop/internal/domain/rest"
)

// setupRouter builds the router with middleware and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.AccessLog)
	r.Use(middleware.Recoverer)

	sessionHandler := api.NewSessionHandler(
		app.registry,
		app.config.Session.PageSize,
		rest.NewCountdown(app.config.Session.RestDuration()),
		app.logger,
	)
	r.Route("/api", sessionHandler.Routes)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
