package repository

import (
	"context"
	"encoding/json"

	"github.com/calmacil/dartscore/internal/models"
)

// GamesPath returns the collection path for a game type's stored games.
func GamesPath(gameType string) string {
	return "game/" + gameType + "/games"
}

// PlayersPath is the player directory collection path.
const PlayersPath = "players"

// RawGameDoc is a stored game document before version-specific parsing,
// as the migrator consumes it.
type RawGameDoc struct {
	ID          string
	DataVersion int
	Data        json.RawMessage
}

// GameRepository handles stored game access
type GameRepository interface {
	// Save writes a finished game in the current document format.
	Save(ctx context.Context, gameType, id string, doc *models.GameDocV2) error
	// Get parses one stored game of any dataVersion into a GameResult.
	Get(ctx context.Context, gameType, id string) (*models.GameResult, error)
	// ListByType returns all parseable games of a type, ascending by date.
	// Malformed documents are logged and skipped, never fatal.
	ListByType(ctx context.Context, gameType string) ([]models.GameResult, error)
	// ListVersion returns the raw documents with the given dataVersion.
	ListVersion(ctx context.Context, gameType string, dataVersion int) ([]RawGameDoc, error)
	// ReplaceDoc overwrites a stored document in place, keeping its id.
	ReplaceDoc(ctx context.Context, gameType, id string, dataVersion int, data json.RawMessage) error
}

// PlayerRepository handles the player directory
type PlayerRepository interface {
	Get(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Upsert(ctx context.Context, player models.Player) error
	// DefaultOrder maps player id to defaultOrder for legacy ordering.
	DefaultOrder(ctx context.Context) (map[string]int, error)
}
