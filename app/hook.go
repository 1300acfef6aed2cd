package app

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
)

// shutdown drains in-flight requests, stops the modules and closes the pool.
func (app *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.Logger.ErrorContext(ctx, "HTTP server shutdown failed", attr.Error(err))
	}

	if app.ScoresModule != nil {
		if err := app.ScoresModule.Close(); err != nil {
			app.Logger.ErrorContext(ctx, "Failed to close scores module", attr.Error(err))
		}
	}
	app.wg.Wait()

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.ErrorContext(ctx, "Failed to close database", attr.Error(err))
		}
	}

	app.Logger.Info("Application shut down gracefully")
}
