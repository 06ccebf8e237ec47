package engine

import (
	"fmt"

	"github.com/calmacil/dartscore/internal/errors"
)

// CompletionState is the per-player game state machine.
type CompletionState string

const (
	NotStarted CompletionState = "notStarted"
	InProgress CompletionState = "inProgress"
	Finished   CompletionState = "finished"
)

// playerState tracks one player's progress through the rounds. Taken turns
// always form a prefix of the round list: new values are only accepted for
// the next untaken round, while earlier rounds may be revised in place.
type playerState[V, S any] struct {
	playerID   string
	startScore int
	// values holds the entered value per round index; nil = untaken.
	values []*V
	// taken is the resolved TurnData per round index for taken rounds.
	taken []TurnData[V, S]
	// finished is set by an explicit early-finish trigger.
	finished bool
}

// Game accumulates live per-player score and stats state as turns are
// entered. It is not safe for concurrent use; callers serialize access.
type Game[V, S any] struct {
	def     *Definition[V, S]
	players []string
	states  map[string]*playerState[V, S]
}

// NewGame creates a live game for the given players, in play order.
// Panics if the definition has an empty game type key: that is a wiring bug,
// not a runtime condition.
func NewGame[V, S any](def *Definition[V, S], playerIDs []string) *Game[V, S] {
	if def.Key == "" {
		panic("engine: game definition has empty key")
	}
	g := &Game[V, S]{
		def:     def,
		players: append([]string(nil), playerIDs...),
		states:  make(map[string]*playerState[V, S], len(playerIDs)),
	}
	for _, pid := range playerIDs {
		g.states[pid] = &playerState[V, S]{
			playerID:   pid,
			startScore: def.StartScore(pid),
			values:     make([]*V, len(def.Rounds)),
		}
	}
	return g
}

// Players returns the player ids in play order.
func (g *Game[V, S]) Players() []string {
	return append([]string(nil), g.players...)
}

// Definition returns the game type definition this game was built from.
func (g *Game[V, S]) Definition() *Definition[V, S] { return g.def }

// SetValue records (or revises) a player's value for a round.
//
// A round that has not been taken yet must be the player's next untaken
// round: play is strictly sequential. A round that has already been taken
// may be revised; the revised round's TurnData is recomputed and every later
// taken round's start/end scores cascade, but the later rounds' stats are
// left untouched since stats depend only on the round's own value.
//
// An unknown round key or player id is a contract error: it indicates a
// wiring bug in the caller, not bad user input.
func (g *Game[V, S]) SetValue(playerID, roundKey string, value V) error {
	st, ok := g.states[playerID]
	if !ok {
		return errors.NewContractError(fmt.Sprintf("player %q is not in this game", playerID))
	}
	idx := g.def.RoundIndex(roundKey)
	if idx < 0 {
		return errors.NewContractError(fmt.Sprintf("round %q is not declared for game %q", roundKey, g.def.Key))
	}
	next := len(st.taken)
	if idx > next {
		return errors.NewValidationError("roundKey", fmt.Sprintf("round %q is not the next untaken round for player %q", roundKey, playerID))
	}

	v := value
	st.values[idx] = &v
	if idx == next {
		start := st.startScore
		if next > 0 {
			start = st.taken[next-1].EndScore
		}
		st.taken = append(st.taken, ResolveTurn(g.def.Rounds[idx], st.values[idx], start, playerID))
		return nil
	}

	// Revision: recompute the revised round fully, then cascade start/end
	// scores through the later taken rounds keeping their stats.
	start := st.startScore
	if idx > 0 {
		start = st.taken[idx-1].EndScore
	}
	st.taken[idx] = ResolveTurn(g.def.Rounds[idx], st.values[idx], start, playerID)
	for i := idx + 1; i < len(st.taken); i++ {
		prevStats := st.taken[i].Stats
		recomputed := ResolveTurn(g.def.Rounds[i], st.values[i], st.taken[i-1].EndScore, playerID)
		recomputed.Stats = prevStats
		st.taken[i] = recomputed
	}
	return nil
}

// FinishPlayer marks a player's game as finished ahead of the full round
// count. Completion by playing every round needs no explicit trigger.
func (g *Game[V, S]) FinishPlayer(playerID string) error {
	st, ok := g.states[playerID]
	if !ok {
		return errors.NewContractError(fmt.Sprintf("player %q is not in this game", playerID))
	}
	st.finished = true
	return nil
}

// CompletionState reports the player's state machine position.
func (g *Game[V, S]) CompletionState(playerID string) CompletionState {
	st, ok := g.states[playerID]
	if !ok || len(st.taken) == 0 && !st.finished {
		return NotStarted
	}
	if st.finished || len(st.taken) == len(g.def.Rounds) {
		return Finished
	}
	return InProgress
}

// Complete reports whether every player has finished.
func (g *Game[V, S]) Complete() bool {
	for _, pid := range g.players {
		if g.CompletionState(pid) != Finished {
			return false
		}
	}
	return len(g.players) > 0
}

// Score returns the player's running score: the end score of the last taken
// turn, or the start score before any turn is taken.
func (g *Game[V, S]) Score(playerID string) int {
	st, ok := g.states[playerID]
	if !ok {
		return 0
	}
	if len(st.taken) == 0 {
		return st.startScore
	}
	return st.taken[len(st.taken)-1].EndScore
}

// StartScore returns the player's initial score.
func (g *Game[V, S]) StartScore(playerID string) int {
	if st, ok := g.states[playerID]; ok {
		return st.startScore
	}
	return 0
}

// Scores returns the current score for every player.
func (g *Game[V, S]) Scores() map[string]int {
	scores := make(map[string]int, len(g.players))
	for _, pid := range g.players {
		scores[pid] = g.Score(pid)
	}
	return scores
}

// TakenTurns returns the player's taken turns in round order.
func (g *Game[V, S]) TakenTurns(playerID string) []TurnData[V, S] {
	st, ok := g.states[playerID]
	if !ok {
		return nil
	}
	return append([]TurnData[V, S](nil), st.taken...)
}

// AllTurns returns one TurnData per declared round: taken turns as entered,
// later rounds resolved as untaken placeholders chained from the running
// score so projected totals are always displayable.
func (g *Game[V, S]) AllTurns(playerID string) []TurnData[V, S] {
	st, ok := g.states[playerID]
	if !ok {
		return nil
	}
	out := make([]TurnData[V, S], 0, len(g.def.Rounds))
	score := st.startScore
	for i, r := range g.def.Rounds {
		var t TurnData[V, S]
		if i < len(st.taken) {
			t = st.taken[i]
		} else {
			t = ResolveTurn(r, nil, score, playerID)
		}
		out = append(out, t)
		score = t.EndScore
	}
	return out
}

// Values returns the raw entered values per round index, nil for untaken
// rounds. This is the shape persisted in game documents.
func (g *Game[V, S]) Values(playerID string) []*V {
	st, ok := g.states[playerID]
	if !ok {
		return nil
	}
	return append([]*V(nil), st.values...)
}

// Positions ranks the players by their current scores.
func (g *Game[V, S]) Positions() Positions {
	return ComputePositions(g.players, g.Scores(), g.def.PositionOrder)
}
