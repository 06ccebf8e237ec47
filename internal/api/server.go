package api

import (
	"github.com/calmacil/dartscore/internal/db"
	"github.com/calmacil/dartscore/internal/jobs"
	"github.com/calmacil/dartscore/internal/prefs"
	"github.com/calmacil/dartscore/internal/services"
)

// Server holds the HTTP handlers' dependencies.
type Server struct {
	Players    services.PlayerService
	Games      services.GameService
	Summaries  services.SummaryService
	Migrations services.MigrationService
	Prefs      *prefs.Manager
	Queue      jobs.JobQueue
	DB         *db.DB
}

// NewServer creates a Server.
func NewServer(
	players services.PlayerService,
	games services.GameService,
	summaries services.SummaryService,
	migrations services.MigrationService,
	prefsMgr *prefs.Manager,
	queue jobs.JobQueue,
	database *db.DB,
) *Server {
	return &Server{
		Players:    players,
		Games:      games,
		Summaries:  summaries,
		Migrations: migrations,
		Prefs:      prefsMgr,
		Queue:      queue,
		DB:         database,
	}
}
