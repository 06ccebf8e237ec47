package documents

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/repository"
)

type gameRepository struct {
	store   *docstore.Store
	players repository.PlayerRepository
}

// NewGameRepository creates a GameRepository over the document store. The
// player repository resolves legacy play order for v1 documents.
func NewGameRepository(store *docstore.Store, players repository.PlayerRepository) repository.GameRepository {
	return &gameRepository{store: store, players: players}
}

func (r *gameRepository) Save(ctx context.Context, gameType, id string, doc *models.GameDocV2) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	if doc.DataVersion != models.GameDocVersion2 {
		return errors.NewValidationError("dataVersion", "new games are always written as v2")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.NewInternalError(err)
	}
	log.Debug("saving game %s/%s", gameType, id)
	return r.store.Set(ctx, repository.GamesPath(gameType), id, doc.DataVersion, data)
}

func (r *gameRepository) Get(ctx context.Context, gameType, id string) (*models.GameResult, error) {
	doc, err := r.store.Get(ctx, repository.GamesPath(gameType), id)
	if err != nil {
		return nil, err
	}
	result, err := r.parse(ctx, gameType, doc)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *gameRepository) ListByType(ctx context.Context, gameType string) ([]models.GameResult, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	docs, err := r.store.Query(ctx, repository.GamesPath(gameType))
	if err != nil {
		return nil, err
	}

	results := make([]models.GameResult, 0, len(docs))
	for _, doc := range docs {
		result, err := r.parse(ctx, gameType, doc)
		if err != nil {
			log.Warn("skipping malformed game document %s/%s: %v", gameType, doc.ID, err)
			continue
		}
		results = append(results, result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})
	log.Debug("listed %d games for %s", len(results), gameType)
	return results, nil
}

func (r *gameRepository) ListVersion(ctx context.Context, gameType string, dataVersion int) ([]repository.RawGameDoc, error) {
	docs, err := r.store.Query(ctx, repository.GamesPath(gameType), docstore.WithDataVersion(dataVersion))
	if err != nil {
		return nil, err
	}
	raw := make([]repository.RawGameDoc, 0, len(docs))
	for _, doc := range docs {
		raw = append(raw, repository.RawGameDoc{
			ID:          doc.ID,
			DataVersion: doc.DataVersion,
			Data:        doc.Data,
		})
	}
	return raw, nil
}

func (r *gameRepository) ReplaceDoc(ctx context.Context, gameType, id string, dataVersion int, data json.RawMessage) error {
	return r.store.Set(ctx, repository.GamesPath(gameType), id, dataVersion, data)
}

func (r *gameRepository) parse(ctx context.Context, gameType string, doc docstore.Document) (models.GameResult, error) {
	version, err := models.DocDataVersion(doc.Data)
	if err != nil {
		return models.GameResult{}, err
	}
	switch version {
	case models.GameDocVersion1:
		v1, err := models.ParseGameDocV1(doc.Data)
		if err != nil {
			return models.GameResult{}, err
		}
		order, err := r.players.DefaultOrder(ctx)
		if err != nil {
			return models.GameResult{}, err
		}
		return models.ResultFromV1(doc.ID, gameType, v1, order, games.StartScore(gameType), games.RoundCount(gameType))
	case models.GameDocVersion2:
		v2, err := models.ParseGameDocV2(doc.Data)
		if err != nil {
			return models.GameResult{}, err
		}
		return models.ResultFromV2(doc.ID, gameType, v2, games.StartScore(gameType), games.RoundCount(gameType)), nil
	default:
		return models.GameResult{}, errors.NewValidationError("dataVersion", "unknown game document version")
	}
}
