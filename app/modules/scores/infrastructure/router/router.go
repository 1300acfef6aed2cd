package scoresrouter

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	scoreshandlers "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/handlers"
	"golang.org/x/time/rate"
)

const (
	// BasePath is where the leaderboard API is mounted.
	BasePath = "/api/scores"

	// Admin endpoints get a token bucket of adminRate requests per second
	// with bursts of adminBurst.
	adminRate  rate.Limit = 1
	adminBurst            = 5
)

// ScoresRouter mounts the leaderboard API on a chi router.
type ScoresRouter struct {
	logger         *slog.Logger
	allowedOrigins []string
}

// NewScoresRouter creates a new ScoresRouter.
func NewScoresRouter(logger *slog.Logger, allowedOrigins []string) *ScoresRouter {
	return &ScoresRouter{
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

// Configure registers the routes under BasePath.
func (r *ScoresRouter) Configure(httpRouter chi.Router, handlers scoreshandlers.Handlers) {
	adminLimiter := scoreshandlers.NewClientRateLimiter(adminRate, adminBurst)

	httpRouter.Route(BasePath, func(api chi.Router) {
		api.Use(scoreshandlers.RequestIDMiddleware)
		api.Use(scoreshandlers.CORSMiddleware(r.allowedOrigins))

		api.Get("/", handlers.HandleGetScores)
		api.Post("/", handlers.HandlePostScore)
		api.Get("/qualify", handlers.HandleQualify)

		api.Group(func(admin chi.Router) {
			admin.Use(scoreshandlers.RateLimitMiddleware(adminLimiter))
			admin.Get("/init", handlers.HandleInitSchema)
		})
	})

	r.logger.Info("Leaderboard routes registered", "base_path", BasePath)
}
