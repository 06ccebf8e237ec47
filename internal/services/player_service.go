package services

import (
	"context"
	"sort"

	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/repository"
)

// PlayerService handles the player directory
type PlayerService interface {
	Get(ctx context.Context, id string) (*models.Player, error)
	// List returns players sorted by defaultOrder then name. Disabled
	// players are excluded unless includeDisabled is set.
	List(ctx context.Context, includeDisabled bool) ([]models.Player, error)
	Upsert(ctx context.Context, player models.Player) error
	// DisplayNames maps every known player id to its display name.
	DisplayNames(ctx context.Context) (map[string]string, error)
}

type playerService struct {
	players repository.PlayerRepository
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(players repository.PlayerRepository) PlayerService {
	return &playerService{players: players}
}

func (s *playerService) Get(ctx context.Context, id string) (*models.Player, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "player id is required")
	}
	return s.players.Get(ctx, id)
}

func (s *playerService) List(ctx context.Context, includeDisabled bool) ([]models.Player, error) {
	log := logger.FromContext(ctx)

	all, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	players := make([]models.Player, 0, len(all))
	for _, p := range all {
		if p.Disabled && !includeDisabled {
			continue
		}
		players = append(players, p)
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].DefaultOrder != players[j].DefaultOrder {
			return players[i].DefaultOrder < players[j].DefaultOrder
		}
		return players[i].Name < players[j].Name
	})
	log.Debug("listed %d players (includeDisabled=%v)", len(players), includeDisabled)
	return players, nil
}

func (s *playerService) Upsert(ctx context.Context, player models.Player) error {
	if player.ID == "" {
		return errors.NewValidationError("id", "player id is required")
	}
	if player.Name == "" && !player.Guest {
		return errors.NewValidationError("name", "player name is required")
	}
	return s.players.Upsert(ctx, player)
}

func (s *playerService) DisplayNames(ctx context.Context) (map[string]string, error) {
	all, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, p := range all {
		names[p.ID] = p.DisplayName()
	}
	return names, nil
}
