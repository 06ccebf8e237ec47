package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueMigration(gameType string) error
	EnqueueSummaryRefresh(gameType string) error
}
