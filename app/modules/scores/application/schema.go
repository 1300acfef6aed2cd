package scoresservice

import (
	"context"
	"errors"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	scoresdb "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/repositories"
)

type schemaResult = results.OperationResult[bool, error]

// EnsureSchema creates the store's table once. Callers serialize on schemaMu
// and a success is remembered, so later calls return without touching the
// database. Failures are not remembered.
func (s *ScoreService) EnsureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	if s.schemaReady {
		return nil
	}

	result, err := withTelemetry(s, ctx, "EnsureSchema", "", func(ctx context.Context) (schemaResult, error) {
		if err := s.repo.EnsureSchema(ctx, nil); err != nil {
			msg := scoresdomain.MsgInitFailed
			if errors.Is(err, scoresdb.ErrNotConfigured) {
				// Only the admin caller gets the configuration hint.
				msg = scoresdomain.MsgNotConfigured
			}
			return schemaResult{}, storageError(msg, err)
		}
		return results.SuccessResult[bool, error](true), nil
	})
	if _, err := unwrap(result, err); err != nil {
		return err
	}

	s.schemaReady = true
	return nil
}
