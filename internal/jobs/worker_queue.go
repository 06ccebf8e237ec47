package jobs

import (
	"github.com/calmacil/dartscore/internal/worker"
)

// WorkerQueue implements JobQueue using the worker pool
type WorkerQueue struct {
	pool       *worker.Pool
	migrations worker.MigrationRunner
	summaries  worker.SummaryWarmer
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, migrations worker.MigrationRunner, summaries worker.SummaryWarmer) JobQueue {
	return &WorkerQueue{
		pool:       pool,
		migrations: migrations,
		summaries:  summaries,
	}
}

func (q *WorkerQueue) EnqueueMigration(gameType string) error {
	q.pool.Submit(&worker.MigrateGamesJob{
		Migrations: q.migrations,
		GameType:   gameType,
	})
	return nil
}

func (q *WorkerQueue) EnqueueSummaryRefresh(gameType string) error {
	q.pool.Submit(&worker.RefreshSummaryJob{
		Summaries: q.summaries,
		GameType:  gameType,
	})
	return nil
}
