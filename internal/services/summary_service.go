package services

import (
	"context"
	"sync"

	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/engine"
	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/prefs"
	"github.com/calmacil/dartscore/internal/repository"
	"github.com/calmacil/dartscore/internal/summary"
)

// SummaryView is the display-ready summary for one game type.
type SummaryView struct {
	GameType     string            `json:"game_type"`
	Players      []string          `json:"players"`
	DisplayNames map[string]string `json:"display_names"`
	NumGames     map[string]int    `json:"num_games"`
	NonEmpty     map[string]bool   `json:"non_empty"`
	Rows         []summary.Row     `json:"rows"`
}

// SummaryService folds stored games into summary statistics
type SummaryService interface {
	Summary(ctx context.Context, gameType string) (*SummaryView, error)
	// Warm recomputes and caches a game type's summary.
	Warm(ctx context.Context, gameType string) error
}

type summaryService struct {
	gamesRepo repository.GameRepository
	players   repository.PlayerRepository
	prefs     *prefs.Manager

	mu    sync.Mutex
	cache map[string]*SummaryView
}

// NewSummaryService creates a new SummaryService. The docstore subscription
// and preference watch keep the cached views from going stale: any change
// to stored games, the player directory, or preferences drops the cache,
// and the next read rebuilds from scratch.
func NewSummaryService(gamesRepo repository.GameRepository, players repository.PlayerRepository, prefsMgr *prefs.Manager, docs *docstore.Store) SummaryService {
	s := &summaryService{
		gamesRepo: gamesRepo,
		players:   players,
		prefs:     prefsMgr,
		cache:     make(map[string]*SummaryView),
	}
	for _, gameType := range []string{games.GameType27, games.GameTypeBullseye} {
		gameType := gameType
		docs.Subscribe(repository.GamesPath(gameType), func(docstore.Event) {
			s.invalidate(gameType)
		})
	}
	docs.Subscribe(repository.PlayersPath, func(docstore.Event) {
		s.invalidateAll()
	})
	prefsMgr.Watch(func(string) {
		s.invalidateAll()
	})
	return s
}

func (s *summaryService) invalidate(gameType string) {
	s.mu.Lock()
	delete(s.cache, gameType)
	s.mu.Unlock()
}

func (s *summaryService) invalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]*SummaryView)
	s.mu.Unlock()
}

// Summary returns the cached view when fresh, otherwise recomputes from
// storage. Every recompute builds a fresh accumulator over the current
// player filter, so a preference change is an atomic full recompute, never
// an in-place adjustment.
func (s *summaryService) Summary(ctx context.Context, gameType string) (*SummaryView, error) {
	s.mu.Lock()
	if view, ok := s.cache[gameType]; ok {
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()
	return s.compute(ctx, gameType)
}

// Warm recomputes unconditionally, for background refresh jobs.
func (s *summaryService) Warm(ctx context.Context, gameType string) error {
	_, err := s.compute(ctx, gameType)
	return err
}

func (s *summaryService) compute(ctx context.Context, gameType string) (*SummaryView, error) {
	var view *SummaryView
	var err error
	switch gameType {
	case games.GameType27:
		view, err = s.summary27(ctx)
	case games.GameTypeBullseye:
		view, err = s.summaryBullseye(ctx)
	default:
		return nil, errors.NewNotFoundError("game type", gameType)
	}
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache[gameType] = view
	s.mu.Unlock()
	return view, nil
}

// playerFilter reports which player ids the summary should include, driven
// by the playerConfig preference store and the player directory.
func (s *summaryService) playerFilter(ctx context.Context) (func(string) bool, map[string]string, error) {
	log := logger.FromContext(ctx)

	allowGuests, err := s.prefs.Get(ctx, PlayerConfigStore, PrefAllowGuestPlayers)
	if err != nil {
		return nil, nil, err
	}
	includeDisabled, err := s.prefs.Get(ctx, PlayerConfigStore, PrefIncludeDisabled)
	if err != nil {
		return nil, nil, err
	}
	hiddenVal, err := s.prefs.Get(ctx, PlayerConfigStore, PrefHiddenPlayers)
	if err != nil {
		return nil, nil, err
	}
	hidden := make(map[string]bool)
	if list, ok := hiddenVal.([]string); ok {
		for _, pid := range list {
			hidden[pid] = true
		}
	}

	directory, err := s.players.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	known := make(map[string]models.Player, len(directory))
	names := make(map[string]string, len(directory))
	for _, p := range directory {
		known[p.ID] = p
		names[p.ID] = p.DisplayName()
	}

	log.Debug("summary filter: guests=%v, disabled=%v, %d hidden", allowGuests, includeDisabled, len(hidden))
	include := func(pid string) bool {
		if hidden[pid] {
			return false
		}
		p, ok := known[pid]
		if !ok {
			return allowGuests == true
		}
		if p.Guest && allowGuests != true {
			return false
		}
		if p.Disabled && includeDisabled != true {
			return false
		}
		return true
	}
	return include, names, nil
}

// summarySettings27 reads the twentyseven summary knobs. The preference
// watch in NewSummaryService drops the cache when either changes, so a new
// setting takes effect on the next read.
func (s *summaryService) summarySettings27(ctx context.Context) (ddIncludeCliffs bool, rateDigits int, err error) {
	ddVal, err := s.prefs.Get(ctx, TwentySevenStore, PrefDDIncludeCliffs)
	if err != nil {
		return false, 0, err
	}
	digitsVal, err := s.prefs.Get(ctx, TwentySevenStore, PrefSummaryRateDigits)
	if err != nil {
		return false, 0, err
	}
	ddIncludeCliffs, _ = ddVal.(bool)
	rateDigits, ok := digitsVal.(int)
	if !ok {
		rateDigits = summary.DefaultRateDigits
	}
	return ddIncludeCliffs, rateDigits, nil
}

// outcome classifies a player's finish in one game.
func outcome(result models.GameResult, scores map[string]int, pid string) (won, tied bool) {
	positions := engine.ComputePositions(result.Players, scores, engine.HighestFirst)
	pos, ok := positions.ByPlayer[pid]
	if !ok || pos.Pos != 1 {
		return false, false
	}
	if len(pos.Players) == 1 {
		return true, false
	}
	// Shared first place: a recorded tiebreak settles it.
	if result.Tiebreak != nil && result.Tiebreak.Winner == pid {
		return true, true
	}
	return false, true
}

func (s *summaryService) summary27(ctx context.Context) (*SummaryView, error) {
	include, names, err := s.playerFilter(ctx)
	if err != nil {
		return nil, err
	}
	ddIncludeCliffs, rateDigits, err := s.summarySettings27(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.gamesRepo.ListByType(ctx, games.GameType27)
	if err != nil {
		return nil, err
	}

	acc := summary.NewAccumulator(games.Schema27(rateDigits), logger.FromContext(ctx))
	for _, result := range results {
		if !result.Completed() {
			continue
		}
		replayed := games.Replay27(result, ddIncludeCliffs)
		scores := make(map[string]int, len(replayed))
		for pid, rp := range replayed {
			scores[pid] = rp.Score
		}
		for _, pid := range result.Players {
			if !include(pid) {
				continue
			}
			rp := replayed[pid]
			won, tied := outcome(result, scores, pid)
			acc.Push(pid, games.SummaryGame27{Stats: rp.Stats, Score: rp.Score, Won: won, Tied: tied})
		}
	}
	return buildView(games.GameType27, acc.Players(), names, acc.RowsWithRateDigits(rateDigits), statsOf(acc)), nil
}

func (s *summaryService) summaryBullseye(ctx context.Context) (*SummaryView, error) {
	include, names, err := s.playerFilter(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.gamesRepo.ListByType(ctx, games.GameTypeBullseye)
	if err != nil {
		return nil, err
	}

	acc := summary.NewAccumulator(games.SchemaBullseye(), logger.FromContext(ctx))
	for _, result := range results {
		if !result.Completed() {
			continue
		}
		replayed := games.ReplayBullseye(result)
		scores := make(map[string]int, len(replayed))
		for pid, rp := range replayed {
			scores[pid] = rp.Score
		}
		for _, pid := range result.Players {
			if !include(pid) {
				continue
			}
			rp := replayed[pid]
			won, tied := outcome(result, scores, pid)
			acc.Push(pid, games.SummaryGameBullseye{Stats: rp.Stats, Score: rp.Score, Won: won, Tied: tied})
		}
	}
	return buildView(games.GameTypeBullseye, acc.Players(), names, acc.Rows(), statsOf(acc)), nil
}

type playerMeta struct {
	numGames map[string]int
	nonEmpty map[string]bool
}

func statsOf[G any](acc *summary.Accumulator[G]) playerMeta {
	meta := playerMeta{numGames: make(map[string]int), nonEmpty: make(map[string]bool)}
	for _, pid := range acc.Players() {
		if ps, ok := acc.Player(pid); ok {
			meta.numGames[pid] = ps.NumGames
			meta.nonEmpty[pid] = ps.NonEmpty
		}
	}
	return meta
}

func buildView(gameType string, players []string, names map[string]string, rows []summary.Row, meta playerMeta) *SummaryView {
	displayNames := make(map[string]string, len(players))
	for _, pid := range players {
		if name, ok := names[pid]; ok {
			displayNames[pid] = name
		} else {
			displayNames[pid] = pid
		}
	}
	return &SummaryView{
		GameType:     gameType,
		Players:      players,
		DisplayNames: displayNames,
		NumGames:     meta.numGames,
		NonEmpty:     meta.nonEmpty,
		Rows:         rows,
	}
}
