package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/flashloop/internal/api/shared"
	"github.com/phrazzld/flashloop/internal/domain/rest"
	"github.com/phrazzld/flashloop/internal/platform/logger"
	"github.com/phrazzld/flashloop/internal/session"
)

// SessionHandler exposes session controllers over HTTP. Every request runs
// under the registry's per-session lock, and reads apply one tick first so
// timers advance even without a background loop.
type SessionHandler struct {
	registry     *session.Registry
	defaultPage  int
	restDuration rest.Countdown
	logger       *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(
	registry *session.Registry,
	defaultPage int,
	restDuration rest.Countdown,
	logger *slog.Logger,
) *SessionHandler {
	if registry == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	if defaultPage < 1 {
		defaultPage = session.DefaultPage
	}
	return &SessionHandler{
		registry:     registry,
		defaultPage:  defaultPage,
		restDuration: restDuration,
		logger:       logger.With(slog.String("component", "session_handler")),
	}
}

// Routes registers the session endpoints on r.
func (h *SessionHandler) Routes(r chi.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.ExitSession)
		r.Post("/configure", h.ConfigureSession)
		r.Post("/advance", h.Advance)
		r.Post("/back", h.GoBack)
		r.Post("/auto", h.ToggleAuto)
		r.Post("/skip-rest", h.SkipRest)
		r.Post("/tick", h.Tick)
	})
	r.Get("/rest/phase", h.RestPhase)
}

// CreateSession handles POST /sessions: it registers a session, configures
// it and starts round one.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	id, err := h.registry.Create()
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}

	var snap session.Snapshot
	err = h.registry.Do(id, func(c *session.Controller) error {
		if err := configureAndStart(r.Context(), c, opts); err != nil {
			return err
		}
		snap = c.Snapshot()
		return nil
	})
	if err != nil {
		h.registry.Remove(id)
		HandleAPIError(w, r, err, "Failed to start session")
		return
	}

	log.Info("session created",
		slog.String("session_id", id.String()),
		slog.String("corpus", snap.Corpus),
		slog.Int("total", snap.Progress.Total))
	shared.RespondWithJSON(w, r, http.StatusCreated, snap)
}

// ConfigureSession handles POST /sessions/{id}/configure, starting a new
// run on an existing session from Summary or Halted.
func (h *SessionHandler) ConfigureSession(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}
	h.command(w, r, func(ctx context.Context, c *session.Controller) error {
		return configureAndStart(ctx, c, opts)
	})
}

// GetSession handles GET /sessions/{id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(ctx context.Context, c *session.Controller) error {
		_, err := c.Tick(ctx)
		return err
	})
}

// Advance handles POST /sessions/{id}/advance.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(ctx context.Context, c *session.Controller) error {
		return c.Advance(ctx)
	})
}

// GoBack handles POST /sessions/{id}/back.
func (h *SessionHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(ctx context.Context, c *session.Controller) error {
		return c.GoBack(ctx)
	})
}

// ToggleAuto handles POST /sessions/{id}/auto.
func (h *SessionHandler) ToggleAuto(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(ctx context.Context, c *session.Controller) error {
		_, err := c.ToggleAuto(ctx)
		return err
	})
}

// SkipRest handles POST /sessions/{id}/skip-rest.
func (h *SessionHandler) SkipRest(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(ctx context.Context, c *session.Controller) error {
		return c.SkipRest(ctx)
	})
}

// Tick handles POST /sessions/{id}/tick.
func (h *SessionHandler) Tick(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(ctx context.Context, c *session.Controller) error {
		_, err := c.Tick(ctx)
		return err
	})
}

// ExitSession handles DELETE /sessions/{id}. The session is exited if it is
// running and then forgotten.
func (h *SessionHandler) ExitSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	err = h.registry.Do(id, func(c *session.Controller) error {
		if c.State() == session.Idle {
			return nil
		}
		return c.Exit(r.Context())
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to exit session")
		return
	}
	h.registry.Remove(id)

	log.Info("session removed", slog.String("session_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// RestPhase handles GET /rest/phase?elapsed=<seconds>. It is a pure
// function of elapsed time and touches no session.
func (h *SessionHandler) RestPhase(w http.ResponseWriter, r *http.Request) {
	elapsed, err := getQuerySeconds(r, "elapsed", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RestPhaseResponse{
		ElapsedSeconds: elapsed.Seconds(),
		Status:         h.restDuration.StatusAt(elapsed),
	})
}

// command runs fn against the session named in the path and replies with
// the resulting snapshot.
func (h *SessionHandler) command(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, c *session.Controller) error,
) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var snap session.Snapshot
	err = h.registry.Do(id, func(c *session.Controller) error {
		if err := fn(r.Context(), c); err != nil {
			return err
		}
		snap = c.Snapshot()
		return nil
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, snap)
}

func (h *SessionHandler) decodeOptions(w http.ResponseWriter, r *http.Request) (session.Options, bool) {
	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			HandleAPIError(w, r, err, "")
		} else {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		}
		return session.Options{}, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return session.Options{}, false
	}
	return req.Options(h.defaultPage), true
}

func configureAndStart(ctx context.Context, c *session.Controller, opts session.Options) error {
	if err := c.Configure(ctx, opts); err != nil {
		return err
	}
	return c.StartRound1(ctx)
}
