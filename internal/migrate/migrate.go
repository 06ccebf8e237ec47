package migrate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/repository"
)

// Migrator upgrades stored game documents from v1 to the current v2 shape.
// It selects strictly dataVersion == 1 documents, so re-running after a
// completed migration is a no-op.
type Migrator struct {
	gamesRepo repository.GameRepository
	players   repository.PlayerRepository
}

// New creates a Migrator.
func New(gamesRepo repository.GameRepository, players repository.PlayerRepository) *Migrator {
	return &Migrator{gamesRepo: gamesRepo, players: players}
}

// Result summarizes one migration run.
type Result struct {
	GameType string `json:"game_type"`
	Migrated int    `json:"migrated"`
	Skipped  int    `json:"skipped"`
}

// MigrateGames upgrades every v1 document of a game type in place, writing
// back under the same document id. Documents that fail to parse are logged
// and skipped; they stay at v1 for a later manual look.
func (m *Migrator) MigrateGames(ctx context.Context, gameType string) (Result, error) {
	log := logger.FromContext(ctx).WithPrefix("migrate")
	res := Result{GameType: gameType}

	raw, err := m.gamesRepo.ListVersion(ctx, gameType, models.GameDocVersion1)
	if err != nil {
		return res, err
	}
	if len(raw) == 0 {
		log.Info("no v1 documents for %s, nothing to migrate", gameType)
		return res, nil
	}

	order, err := m.players.DefaultOrder(ctx)
	if err != nil {
		return res, err
	}

	log.Info("migrating %d v1 documents for %s", len(raw), gameType)
	for _, doc := range raw {
		v2, err := upgradeDoc(doc.Data, gameType, order)
		if err != nil {
			log.Warn("skipping document %s/%s: %v", gameType, doc.ID, err)
			res.Skipped++
			continue
		}
		data, err := json.Marshal(v2)
		if err != nil {
			log.Warn("skipping document %s/%s: %v", gameType, doc.ID, err)
			res.Skipped++
			continue
		}
		if err := m.gamesRepo.ReplaceDoc(ctx, gameType, doc.ID, v2.DataVersion, data); err != nil {
			return res, err
		}
		res.Migrated++
	}
	log.Info("migration for %s done: %d migrated, %d skipped", gameType, res.Migrated, res.Skipped)
	return res, nil
}

// upgradeDoc converts one v1 document. Play order comes from the player
// directory's defaultOrder since v1 never stored it; the legacy date string
// becomes a unix timestamp at local midnight.
func upgradeDoc(data json.RawMessage, gameType string, defaultOrder map[string]int) (*models.GameDocV2, error) {
	v1, err := models.ParseGameDocV1(data)
	if err != nil {
		return nil, err
	}
	result, err := models.ResultFromV1("", gameType, v1, defaultOrder, games.StartScore(gameType), games.RoundCount(gameType))
	if err != nil {
		return nil, err
	}
	if len(result.Players) == 0 {
		return nil, errors.NewValidationError("game", "document has no players")
	}

	v2 := &models.GameDocV2{
		DataVersion: models.GameDocVersion2,
		Timestamp:   result.Date.In(time.Local).Unix(),
		Players:     result.Players,
		Game:        make(map[string]models.V2PlayerGame, len(v1.Game)),
	}
	if v1.Winner.Tie != nil {
		v2.Tiebreak = &models.Tiebreak{
			Players: v1.Winner.Tie.Players,
			Type:    "unknown",
			Winner:  v1.Winner.Tie.Tiebreak.Winner,
		}
	}
	for pid, pg := range v1.Game {
		rounds := make([]*int, 0, len(pg.Rounds))
		for _, v := range pg.Rounds {
			v := v
			rounds = append(rounds, &v)
		}
		start := games.StartScore(gameType) + pg.Handicap
		v2.Game[pid] = models.V2PlayerGame{
			Rounds:     rounds,
			Score:      pg.Score,
			Jesus:      pg.Jesus,
			StartScore: &start,
		}
	}
	return v2, nil
}
