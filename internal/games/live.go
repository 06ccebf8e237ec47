package games

import (
	"fmt"
	"time"

	"github.com/calmacil/dartscore/internal/engine"
	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/models"
)

// RoundInfo describes one declared round for display.
type RoundInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TurnView is one resolved turn in a snapshot, taken or projected.
type TurnView struct {
	RoundKey   string      `json:"round_key"`
	Value      *int        `json:"value"`
	DeltaScore int         `json:"delta_score"`
	StartScore int         `json:"start_score"`
	EndScore   int         `json:"end_score"`
	Taken      bool        `json:"taken"`
	Stats      interface{} `json:"stats"`
}

// PositionView is one rank group for display.
type PositionView struct {
	Pos     int      `json:"pos"`
	Ordinal string   `json:"ordinal"`
	Players []string `json:"players"`
}

// Snapshot is a display-ready view of a live game.
type Snapshot struct {
	GameType  string                            `json:"game_type"`
	Players   []string                          `json:"players"`
	Rounds    []RoundInfo                       `json:"rounds"`
	Scores    map[string]int                    `json:"scores"`
	States    map[string]engine.CompletionState `json:"states"`
	Turns     map[string][]TurnView             `json:"turns"`
	Positions []PositionView                    `json:"positions"`
	Complete  bool                              `json:"complete"`
}

// Live is the game-type-agnostic handle the service layer holds for an
// in-progress game. Implementations are not safe for concurrent use; the
// owning service serializes access.
type Live interface {
	Type() string
	Players() []string
	// SetTurn records or revises a player's hit count for a round.
	SetTurn(playerID, roundKey string, hits int) error
	// Finish marks a player done ahead of the full round count.
	Finish(playerID string) error
	// SetJesus toggles the manually-awarded flag persisted with the game.
	SetJesus(playerID string, jesus bool) error
	Complete() bool
	Snapshot() Snapshot
	// Document renders the game into the current stored shape.
	Document(ts time.Time, tiebreak *models.Tiebreak) *models.GameDocV2
}

// NewLive creates a live game for a registered game type.
func NewLive(gameType string, playerIDs []string) (Live, error) {
	if len(playerIDs) == 0 {
		return nil, errors.NewValidationError("players", "a game needs at least one player")
	}
	switch gameType {
	case GameType27:
		return newLiveGame(Definition27(), playerIDs), nil
	case GameTypeBullseye:
		return newLiveGame(DefinitionBullseye(), playerIDs), nil
	default:
		return nil, errors.NewNotFoundError("game type", gameType)
	}
}

// liveGame adapts the generic accumulator to the Live interface. Both
// registered games take integer hit counts, so only the stats shape varies.
type liveGame[S any] struct {
	def   *engine.Definition[int, S]
	game  *engine.Game[int, S]
	jesus map[string]bool
}

func newLiveGame[S any](def *engine.Definition[int, S], playerIDs []string) *liveGame[S] {
	return &liveGame[S]{
		def:   def,
		game:  engine.NewGame(def, playerIDs),
		jesus: make(map[string]bool),
	}
}

func (l *liveGame[S]) Type() string      { return l.def.Key }
func (l *liveGame[S]) Players() []string { return l.game.Players() }

func (l *liveGame[S]) SetTurn(playerID, roundKey string, hits int) error {
	return l.game.SetValue(playerID, roundKey, hits)
}

func (l *liveGame[S]) Finish(playerID string) error {
	return l.game.FinishPlayer(playerID)
}

func (l *liveGame[S]) SetJesus(playerID string, jesus bool) error {
	found := false
	for _, pid := range l.game.Players() {
		if pid == playerID {
			found = true
			break
		}
	}
	if !found {
		return errors.NewContractError(fmt.Sprintf("player %q is not in this game", playerID))
	}
	l.jesus[playerID] = jesus
	return nil
}

func (l *liveGame[S]) Complete() bool { return l.game.Complete() }

func (l *liveGame[S]) Snapshot() Snapshot {
	players := l.game.Players()
	snap := Snapshot{
		GameType: l.def.Key,
		Players:  players,
		Rounds:   make([]RoundInfo, 0, len(l.def.Rounds)),
		Scores:   l.game.Scores(),
		States:   make(map[string]engine.CompletionState, len(players)),
		Turns:    make(map[string][]TurnView, len(players)),
		Complete: l.game.Complete(),
	}
	for _, r := range l.def.Rounds {
		snap.Rounds = append(snap.Rounds, RoundInfo{Key: r.Key, Label: r.Label})
	}
	for _, pid := range players {
		snap.States[pid] = l.game.CompletionState(pid)
		turns := l.game.AllTurns(pid)
		views := make([]TurnView, 0, len(turns))
		for _, t := range turns {
			views = append(views, TurnView{
				RoundKey:   t.RoundKey,
				Value:      t.Value,
				DeltaScore: t.DeltaScore,
				StartScore: t.StartScore,
				EndScore:   t.EndScore,
				Taken:      t.Taken(),
				Stats:      t.Stats,
			})
		}
		snap.Turns[pid] = views
	}
	for _, pos := range l.game.Positions().Ordered {
		snap.Positions = append(snap.Positions, PositionView{
			Pos:     pos.Pos,
			Ordinal: pos.Ordinal,
			Players: pos.Players,
		})
	}
	return snap
}

func (l *liveGame[S]) Document(ts time.Time, tiebreak *models.Tiebreak) *models.GameDocV2 {
	doc := &models.GameDocV2{
		DataVersion: models.GameDocVersion2,
		Timestamp:   ts.Unix(),
		Players:     l.game.Players(),
		Tiebreak:    tiebreak,
		Game:        make(map[string]models.V2PlayerGame, len(l.game.Players())),
	}
	for _, pid := range l.game.Players() {
		start := l.game.StartScore(pid)
		doc.Game[pid] = models.V2PlayerGame{
			Rounds:     l.game.Values(pid),
			Score:      l.game.Score(pid),
			Jesus:      l.jesus[pid],
			StartScore: &start,
		}
	}
	return doc
}
