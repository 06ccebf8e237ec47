package documents

import (
	"context"
	"encoding/json"

	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/repository"
)

type playerRepository struct {
	store *docstore.Store
}

// NewPlayerRepository creates a PlayerRepository over the document store
func NewPlayerRepository(store *docstore.Store) repository.PlayerRepository {
	return &playerRepository{store: store}
}

func (r *playerRepository) Get(ctx context.Context, id string) (*models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")

	doc, err := r.store.Get(ctx, repository.PlayersPath, id)
	if err != nil {
		return nil, err
	}
	var p models.Player
	if err := json.Unmarshal(doc.Data, &p); err != nil {
		log.Error("malformed player document %s: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	p.ID = id
	return &p, nil
}

func (r *playerRepository) List(ctx context.Context) ([]models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")

	docs, err := r.store.Query(ctx, repository.PlayersPath)
	if err != nil {
		return nil, err
	}
	players := make([]models.Player, 0, len(docs))
	for _, doc := range docs {
		var p models.Player
		if err := json.Unmarshal(doc.Data, &p); err != nil {
			log.Warn("skipping malformed player document %s: %v", doc.ID, err)
			continue
		}
		p.ID = doc.ID
		players = append(players, p)
	}
	log.Debug("listed %d players", len(players))
	return players, nil
}

func (r *playerRepository) Upsert(ctx context.Context, player models.Player) error {
	if player.ID == "" {
		return errors.NewValidationError("id", "player id is required")
	}
	data, err := json.Marshal(player)
	if err != nil {
		return errors.NewInternalError(err)
	}
	return r.store.Set(ctx, repository.PlayersPath, player.ID, 1, data)
}

func (r *playerRepository) DefaultOrder(ctx context.Context) (map[string]int, error) {
	players, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	order := make(map[string]int, len(players))
	for _, p := range players {
		order[p.ID] = p.DefaultOrder
	}
	return order, nil
}
