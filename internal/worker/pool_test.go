package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmacil/dartscore/internal/migrate"
	"github.com/calmacil/dartscore/internal/worker"
)

type recordingJob struct {
	name string
	mu   *sync.Mutex
	runs *[]string
	done chan struct{}
	err  error
}

func (j *recordingJob) Name() string { return j.name }

func (j *recordingJob) Run(context.Context) error {
	j.mu.Lock()
	*j.runs = append(*j.runs, j.name)
	j.mu.Unlock()
	close(j.done)
	return j.err
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(2, 8)
	pool.Start(context.Background())
	defer pool.Stop()

	var mu sync.Mutex
	var runs []string
	first := &recordingJob{name: "first", mu: &mu, runs: &runs, done: make(chan struct{})}
	second := &recordingJob{name: "second", mu: &mu, runs: &runs, done: make(chan struct{})}

	pool.Submit(first)
	pool.Submit(second)

	for _, done := range []chan struct{}{first.done, second.done} {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run in time")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"first", "second"}, runs)
}

func TestPool_FailingJobDoesNotStopWorkers(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())
	defer pool.Stop()

	var mu sync.Mutex
	var runs []string
	failing := &recordingJob{name: "failing", mu: &mu, runs: &runs, done: make(chan struct{}), err: assert.AnError}
	after := &recordingJob{name: "after", mu: &mu, runs: &runs, done: make(chan struct{})}

	pool.Submit(failing)
	pool.Submit(after)

	select {
	case <-after.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job after a failure did not run")
	}
}

type panickyJob struct{}

func (panickyJob) Name() string              { return "panicky" }
func (panickyJob) Run(context.Context) error { panic("boom") }

func TestPool_PanickingJobDoesNotStopWorkers(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())
	defer pool.Stop()

	var mu sync.Mutex
	var runs []string
	after := &recordingJob{name: "after", mu: &mu, runs: &runs, done: make(chan struct{})}

	pool.Submit(panickyJob{})
	pool.Submit(after)

	select {
	case <-after.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job after a panic did not run")
	}
}

func TestPool_DefaultsInvalidSizes(t *testing.T) {
	pool := worker.NewPool(0, 0)
	require.NotNil(t, pool)
	assert.Equal(t, 0, pool.QueueSize())
	pool.Start(context.Background())
	pool.Stop()
}

type stubMigrations struct {
	gotType string
	err     error
}

func (s *stubMigrations) MigrateGames(_ context.Context, gameType string) (migrate.Result, error) {
	s.gotType = gameType
	return migrate.Result{GameType: gameType, Migrated: 3}, s.err
}

func TestMigrateGamesJob(t *testing.T) {
	stub := &stubMigrations{}
	job := &worker.MigrateGamesJob{Migrations: stub, GameType: "twentyseven"}

	assert.Equal(t, "migrate_games", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "twentyseven", stub.gotType)
}

type stubSummaries struct {
	gotType string
}

func (s *stubSummaries) Warm(_ context.Context, gameType string) error {
	s.gotType = gameType
	return nil
}

func TestRefreshSummaryJob(t *testing.T) {
	stub := &stubSummaries{}
	job := &worker.RefreshSummaryJob{Summaries: stub, GameType: "bullseye"}

	assert.Equal(t, "refresh_summary", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "bullseye", stub.gotType)
}
