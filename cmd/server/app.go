package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashloop/internal/config"
	"github.com/phrazzld/flashloop/internal/domain/selection"
	"github.com/phrazzld/flashloop/internal/events"
	"github.com/phrazzld/flashloop/internal/platform/corpusfile"
	"github.com/phrazzld/flashloop/internal/platform/postgres"
	"github.com/phrazzld/flashloop/internal/session"
	"github.com/phrazzld/flashloop/internal/speech"
	"github.com/phrazzld/flashloop/internal/store"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db         *sql.DB
	corpus     store.CorpusStore
	corpusFile *corpusfile.Store

	selector     selection.Service
	eventEmitter *events.InMemoryEventEmitter
	speech       *speech.Dispatcher
	registry     *session.Registry
}

// newApplication wires the corpus store, selection engine, event emitter,
// speech dispatcher and session registry.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Corpus.Backend {
	case config.BackendPostgres:
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.corpus = postgres.NewCorpusStore(db, logger)
	default:
		app.corpusFile = corpusfile.New(cfg.Corpus.Dir, logger)
		app.corpus = app.corpusFile
		logger.Info("serving corpus files", slog.String("dir", cfg.Corpus.Dir))
	}

	var err error
	app.selector, err = selection.NewDefaultService()
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create selection service: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	var speaker speech.Speaker = speech.LogSpeaker{Logger: logger.With(slog.String("component", "speech"))}
	if cfg.Speech.Enabled {
		speaker = speech.NewCommandSpeaker(cfg.Speech)
		logger.Info("speech enabled", slog.String("command", cfg.Speech.Command))
	}
	app.speech = speech.NewDispatcher(speaker, cfg.Speech.KODelay(), logger)
	app.eventEmitter.RegisterHandler(speech.NewCardShownHandler(app.speech))

	settings := session.Settings{
		RestDuration: cfg.Session.RestDuration(),
		AutoInterval: cfg.Session.AutoInterval(),
	}
	app.registry = session.NewRegistry(func(id uuid.UUID) (*session.Controller, error) {
		return session.NewController(session.Deps{
			Store:    app.corpus,
			Selector: app.selector,
			Emitter:  app.eventEmitter,
			Logger:   logger,
			Settings: settings,
			ID:       id,
		})
	})

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, watching corpus files for changes
// when the file backend is in use.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchDone := make(chan struct{})
	if app.corpusFile != nil {
		go func() {
			defer close(watchDone)
			if err := app.corpusFile.Watch(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Warn("corpus watcher stopped, caching disabled", slog.String("error", err.Error()))
			}
		}()
	} else {
		close(watchDone)
	}

	err := app.startHTTPServer(ctx, app.setupRouter())
	cancel()
	<-watchDone
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources in reverse order of creation.
func (app *application) cleanup() {
	if app.speech != nil {
		app.speech.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
