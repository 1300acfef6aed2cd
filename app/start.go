package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
)

// Run starts the modules and the HTTP server and blocks until ctx is
// canceled or the server fails.
func (app *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.wg.Add(1)
	go app.ScoresModule.Run(runCtx, &app.wg)

	serveErr := make(chan error, 1)
	go func() {
		app.Logger.InfoContext(ctx, "HTTP server listening", attr.String("addr", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		app.Logger.InfoContext(ctx, "Shutdown signal received")
	case err, ok := <-serveErr:
		if ok {
			app.shutdown()
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	app.shutdown()
	return nil
}
