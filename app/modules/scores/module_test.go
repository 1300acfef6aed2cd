package scores

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hykocx/grabsanta.hyko.dev/config"
)

func newTestModule(t *testing.T) *Module {
	t.Helper()
	obs := observability.Observability{
		Provider: &observability.Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: &observability.Registry{Tracer: noop.NewTracerProvider().Tracer("test")},
	}
	m, err := NewScoresModule(context.Background(), &config.Config{}, obs, nil, chi.NewRouter(), nil)
	require.NoError(t, err)
	return m
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestModule_CloseStopsRun(t *testing.T) {
	tests := []struct {
		name       string
		closeFirst bool
	}{
		{name: "close while running"},
		{name: "close before run", closeFirst: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModule(t)
			if tt.closeFirst {
				require.NoError(t, m.Close())
			}

			var wg sync.WaitGroup
			wg.Add(1)
			go m.Run(context.Background(), &wg)

			if !tt.closeFirst {
				require.NoError(t, m.Close())
			}
			waitOrFail(t, &wg)
		})
	}
}

func TestModule_ParentCancelStopsRun(t *testing.T) {
	m := newTestModule(t)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(ctx, &wg)

	cancel()
	waitOrFail(t, &wg)
	require.NoError(t, m.Close())
}
