package worker

import (
	"context"

	"github.com/calmacil/dartscore/internal/migrate"
)

// MigrationRunner runs stored-document migrations. Declared here rather
// than importing the services package to avoid an import cycle.
type MigrationRunner interface {
	MigrateGames(ctx context.Context, gameType string) (migrate.Result, error)
}

// SummaryWarmer recomputes a game type's summary so the next read is warm.
type SummaryWarmer interface {
	Warm(ctx context.Context, gameType string) error
}
