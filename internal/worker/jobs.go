package worker

import (
	"context"

	"github.com/calmacil/dartscore/internal/logger"
)

// MigrateGamesJob upgrades a game type's stored documents in the
// background.
type MigrateGamesJob struct {
	Migrations MigrationRunner
	GameType   string
}

func (j *MigrateGamesJob) Name() string { return "migrate_games" }

func (j *MigrateGamesJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("game_type", j.GameType)

	res, err := j.Migrations.MigrateGames(ctx, j.GameType)
	if err != nil {
		return err
	}
	log.Info("migrated %d documents, skipped %d", res.Migrated, res.Skipped)
	return nil
}

// RefreshSummaryJob recomputes a game type's summary after its stored
// games change.
type RefreshSummaryJob struct {
	Summaries SummaryWarmer
	GameType  string
}

func (j *RefreshSummaryJob) Name() string { return "refresh_summary" }

func (j *RefreshSummaryJob) Run(ctx context.Context) error {
	return j.Summaries.Warm(ctx, j.GameType)
}
