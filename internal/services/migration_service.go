package services

import (
	"context"

	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/migrate"
)

// MigrationService upgrades stored game documents
type MigrationService interface {
	// MigrateGames upgrades every v1 document of a game type. Idempotent.
	MigrateGames(ctx context.Context, gameType string) (migrate.Result, error)
	// MigrateAll runs the migration for every registered game type.
	MigrateAll(ctx context.Context) ([]migrate.Result, error)
}

type migrationService struct {
	migrator *migrate.Migrator
}

// NewMigrationService creates a new MigrationService
func NewMigrationService(migrator *migrate.Migrator) MigrationService {
	return &migrationService{migrator: migrator}
}

func (s *migrationService) MigrateGames(ctx context.Context, gameType string) (migrate.Result, error) {
	if games.RoundCount(gameType) == 0 {
		return migrate.Result{}, errors.NewNotFoundError("game type", gameType)
	}
	return s.migrator.MigrateGames(ctx, gameType)
}

func (s *migrationService) MigrateAll(ctx context.Context) ([]migrate.Result, error) {
	results := make([]migrate.Result, 0, 2)
	for _, gameType := range []string{games.GameType27, games.GameTypeBullseye} {
		res, err := s.migrator.MigrateGames(ctx, gameType)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
