package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/hykocx/grabsanta.hyko.dev/app/modules/scores"
	"github.com/hykocx/grabsanta.hyko.dev/config"
	"github.com/hykocx/grabsanta.hyko.dev/db/bundb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
)

// shutdownTimeout bounds the drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

// App holds the process-wide resources: one connection pool, one HTTP
// router and the modules mounted on it.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Logger        *slog.Logger
	DB            *bun.DB
	Router        chi.Router
	Registry      *prometheus.Registry
	ScoresModule  *scores.Module

	server *http.Server
	wg     sync.WaitGroup
}

// Initialize opens the database pool and wires the modules.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	app.Logger = obs.Provider.Logger

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := bundb.Open(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = db
	if err := bundb.Ping(ctx, db, cfg.Postgres); err != nil {
		// The pool reconnects lazily; requests report storage unavailable until it does.
		app.Logger.WarnContext(ctx, "Database not reachable at startup", attr.Error(err))
	}

	app.Router = newRouter(app.Registry, app.Logger)

	scoresModule, err := scores.NewScoresModule(ctx, cfg, obs, db, app.Router, app.Registry)
	if err != nil {
		return fmt.Errorf("failed to initialize scores module: %w", err)
	}
	app.ScoresModule = scoresModule

	app.server = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	app.Logger.InfoContext(ctx, "Application initialized", attr.String("addr", cfg.HTTP.Addr))
	return nil
}
