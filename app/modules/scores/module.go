package scores

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
	scoresservice "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/application"
	scoreshandlers "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/handlers"
	scoresmetrics "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/metrics"
	scoresdb "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/repositories"
	scoresrouter "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/router"
	"github.com/hykocx/grabsanta.hyko.dev/config"
	"github.com/hykocx/grabsanta.hyko.dev/pkg/clock"
	"github.com/hykocx/grabsanta.hyko.dev/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

// Module represents the leaderboard module.
type Module struct {
	config        *config.Config
	observability observability.Observability
	ScoreService  scoresservice.Service
	ScoresRouter  *scoresrouter.ScoresRouter
	logger        *slog.Logger

	// stopped is canceled by Close; both are set once in NewScoresModule.
	stopped    context.Context
	cancelFunc context.CancelFunc
}

// NewScoresModule wires repository, limiter, service, handlers and routes.
// db may be nil when no database is configured.
func NewScoresModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	registry *prometheus.Registry,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "scores.NewScoresModule called")

	var reg prometheus.Registerer
	if registry != nil {
		reg = registry
	}
	metrics, err := scoresmetrics.NewPrometheus(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register scores metrics: %w", err)
	}

	// A typed nil *bun.DB must not reach the repository as a non-nil bun.IDB.
	var conn bun.IDB
	if db != nil {
		conn = db
	} else {
		logger.WarnContext(ctx, "DATABASE_URL not set; leaderboard storage is unavailable")
	}
	repo := scoresdb.NewRepository(conn)

	limiter := ratelimit.New(ratelimit.Config{
		Window:         cfg.RateLimit.Window,
		MaxRequests:    cfg.RateLimit.MaxRequests,
		SweepThreshold: cfg.RateLimit.SweepThreshold,
	}, clock.Real{})

	service := scoresservice.NewScoreService(repo, limiter, clock.Real{}, logger, metrics, tracer, db)

	handlers := scoreshandlers.NewScoreHandlers(service, scoreshandlers.AdminAuth{
		Token:       cfg.Admin.InitSecretToken,
		Environment: cfg.Observability.Environment,
	}, logger, tracer)

	router := scoresrouter.NewScoresRouter(logger, cfg.HTTP.AllowedOrigins)
	if httpRouter != nil {
		router.Configure(httpRouter, handlers)
	}

	stopped, cancel := context.WithCancel(context.Background())

	return &Module{
		config:        cfg,
		observability: obs,
		ScoreService:  service,
		ScoresRouter:  router,
		logger:        logger,
		stopped:       stopped,
		cancelFunc:    cancel,
	}, nil
}

// Run prepares the schema once and then blocks until ctx is canceled or
// Close is called. A failed schema init is logged and never fatal; the admin
// init endpoint can retry it.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting scores module")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(m.stopped, cancel)
	defer stop()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.ScoreService.EnsureSchema(ctx); err != nil {
		m.logger.WarnContext(ctx, "Startup schema init failed", attr.Error(err))
	} else {
		m.logger.InfoContext(ctx, "High score schema ready")
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Scores module goroutine stopped")
}

// Close stops the scores module.
func (m *Module) Close() error {
	m.logger.Info("Stopping scores module")
	m.cancelFunc()
	m.logger.Info("Scores module stopped")
	return nil
}
