package scoresintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hykocx/grabsanta.hyko.dev/app/modules/scores"
	scoresdb "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/repositories"
	"github.com/hykocx/grabsanta.hyko.dev/config"
	"github.com/hykocx/grabsanta.hyko.dev/integration_tests/testutils"
)

const adminToken = "integration-secret"

type TestDeps struct {
	Ctx   context.Context
	BunDB *bun.DB
	Repo  scoresdb.Repository
}

// SetupTestRepository returns a repository over a freshly truncated table.
func SetupTestRepository(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.TruncateTables(env.Ctx, env.DB, scoresdb.TableName); err != nil {
		t.Fatalf("Failed to truncate score tables: %v", err)
	}

	return TestDeps{
		Ctx:   env.Ctx,
		BunDB: env.DB,
		Repo:  scoresdb.NewRepository(env.DB),
	}
}

func testObservability() observability.Observability {
	return observability.Observability{
		Provider: &observability.Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: &observability.Registry{Tracer: noop.NewTracerProvider().Tracer("test_scores_module")},
	}
}

// SetupTestServer mounts the full scores module on an httptest server.
func SetupTestServer(t *testing.T) (TestDeps, *httptest.Server) {
	t.Helper()

	deps := SetupTestRepository(t)

	cfg := &config.Config{
		Admin:     config.AdminConfig{InitSecretToken: adminToken},
		RateLimit: config.RateLimitConfig{Window: time.Minute, MaxRequests: 10},
		Observability: config.ObservabilityConfig{
			Environment: "test",
		},
	}

	router := chi.NewRouter()
	if _, err := scores.NewScoresModule(deps.Ctx, cfg, testObservability(), deps.BunDB, router, nil); err != nil {
		t.Fatalf("Failed to create scores module: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return deps, server
}
