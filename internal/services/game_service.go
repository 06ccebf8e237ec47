package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/prefs"
	"github.com/calmacil/dartscore/internal/repository"
)

// GameService handles live game play and persistence
type GameService interface {
	// Create starts a live game and returns its id.
	Create(ctx context.Context, gameType string, playerIDs []string) (string, games.Snapshot, error)
	Get(ctx context.Context, id string) (games.Snapshot, error)
	// SetTurn records or revises one player's hit count for a round.
	SetTurn(ctx context.Context, id, playerID, roundKey string, hits int) (games.Snapshot, error)
	// FinishPlayer ends a player's game early.
	FinishPlayer(ctx context.Context, id, playerID string) (games.Snapshot, error)
	SetJesus(ctx context.Context, id, playerID string, jesus bool) error
	// Submit persists a complete live game as a v2 document and drops it
	// from the live table.
	Submit(ctx context.Context, id string, tiebreak *models.Tiebreak) (*models.GameResult, error)
	// History returns the stored games of a type, ascending by date.
	History(ctx context.Context, gameType string) ([]models.GameResult, error)
}

type gameService struct {
	gamesRepo repository.GameRepository
	players   repository.PlayerRepository
	prefs     *prefs.Manager

	mu   sync.Mutex
	live map[string]games.Live
}

// NewGameService creates a new GameService
func NewGameService(gamesRepo repository.GameRepository, players repository.PlayerRepository, prefsMgr *prefs.Manager) GameService {
	return &gameService{
		gamesRepo: gamesRepo,
		players:   players,
		prefs:     prefsMgr,
		live:      make(map[string]games.Live),
	}
}

func (s *gameService) Create(ctx context.Context, gameType string, playerIDs []string) (string, games.Snapshot, error) {
	log := logger.FromContext(ctx)

	if err := s.checkPlayers(ctx, playerIDs); err != nil {
		return "", games.Snapshot{}, err
	}
	game, err := games.NewLive(gameType, playerIDs)
	if err != nil {
		return "", games.Snapshot{}, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.live[id] = game
	s.mu.Unlock()

	log.Info("created %s game %s with %d players", gameType, id, len(playerIDs))
	return id, game.Snapshot(), nil
}

// checkPlayers verifies every id against the directory. Unknown ids are
// treated as guests, which the allowGuestPlayers preference gates.
func (s *gameService) checkPlayers(ctx context.Context, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return errors.NewValidationError("players", "a game needs at least one player")
	}
	seen := make(map[string]bool, len(playerIDs))
	for _, pid := range playerIDs {
		if pid == "" {
			return errors.NewValidationError("players", "empty player id")
		}
		if seen[pid] {
			return errors.NewValidationError("players", "duplicate player id "+pid)
		}
		seen[pid] = true

		p, err := s.players.Get(ctx, pid)
		if err != nil {
			if !errors.IsNotFound(err) {
				return err
			}
			allowed, perr := s.prefs.Get(ctx, PlayerConfigStore, PrefAllowGuestPlayers)
			if perr != nil {
				return perr
			}
			if allowed != true {
				return errors.NewValidationError("players", "unknown player "+pid+" and guest players are disabled")
			}
			continue
		}
		if p.Disabled {
			return errors.NewValidationError("players", "player "+pid+" is disabled")
		}
	}
	return nil
}

func (s *gameService) get(id string) (games.Live, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.live[id]
	if !ok {
		return nil, errors.NewNotFoundError("live game", id)
	}
	return game, nil
}

func (s *gameService) Get(ctx context.Context, id string) (games.Snapshot, error) {
	game, err := s.get(id)
	if err != nil {
		return games.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.Snapshot(), nil
}

func (s *gameService) SetTurn(ctx context.Context, id, playerID, roundKey string, hits int) (games.Snapshot, error) {
	log := logger.FromContext(ctx)

	game, err := s.get(id)
	if err != nil {
		return games.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := game.SetTurn(playerID, roundKey, hits); err != nil {
		log.Debug("turn rejected for game %s: %v", id, err)
		return games.Snapshot{}, err
	}
	return game.Snapshot(), nil
}

func (s *gameService) FinishPlayer(ctx context.Context, id, playerID string) (games.Snapshot, error) {
	game, err := s.get(id)
	if err != nil {
		return games.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := game.Finish(playerID); err != nil {
		return games.Snapshot{}, err
	}
	return game.Snapshot(), nil
}

func (s *gameService) SetJesus(ctx context.Context, id, playerID string, jesus bool) error {
	game, err := s.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.SetJesus(playerID, jesus)
}

func (s *gameService) Submit(ctx context.Context, id string, tiebreak *models.Tiebreak) (*models.GameResult, error) {
	log := logger.FromContext(ctx)

	game, err := s.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !game.Complete() {
		s.mu.Unlock()
		return nil, errors.NewValidationError("game", "game is not complete")
	}
	if tiebreak != nil {
		valid := false
		for _, pid := range game.Players() {
			if pid == tiebreak.Winner {
				valid = true
				break
			}
		}
		if !valid {
			s.mu.Unlock()
			return nil, errors.NewValidationError("tiebreak", "winner is not in this game")
		}
	}
	doc := game.Document(time.Now(), tiebreak)
	gameType := game.Type()
	delete(s.live, id)
	s.mu.Unlock()

	if err := s.gamesRepo.Save(ctx, gameType, id, doc); err != nil {
		// Put the game back so the turn data is not lost on a write failure.
		s.mu.Lock()
		s.live[id] = game
		s.mu.Unlock()
		return nil, err
	}
	log.Info("submitted %s game %s", gameType, id)
	return s.gamesRepo.Get(ctx, gameType, id)
}

func (s *gameService) History(ctx context.Context, gameType string) ([]models.GameResult, error) {
	if games.RoundCount(gameType) == 0 {
		return nil, errors.NewNotFoundError("game type", gameType)
	}
	return s.gamesRepo.ListByType(ctx, gameType)
}
