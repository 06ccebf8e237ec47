package games

import (
	"github.com/calmacil/dartscore/internal/engine"
	"github.com/calmacil/dartscore/internal/models"
)

// RoundCount returns the declared round count for a game type, 0 if unknown.
func RoundCount(gameType string) int {
	switch gameType {
	case GameType27:
		return rounds27
	case GameTypeBullseye:
		return roundsBullseye
	default:
		return 0
	}
}

// StartScore returns the base start score for a game type.
func StartScore(gameType string) int {
	switch gameType {
	case GameType27:
		return startScore27
	default:
		return 0
	}
}

// replayTurns resolves a stored turn-value slice back through a definition,
// reproducing the TurnData sequence the live game produced. Rounds beyond
// the stored slice resolve as untaken.
func replayTurns[S any](def *engine.Definition[int, S], values []*int, startScore int, playerID string) []engine.TurnData[int, S] {
	out := make([]engine.TurnData[int, S], 0, len(def.Rounds))
	score := startScore
	for i, r := range def.Rounds {
		var v *int
		if i < len(values) {
			v = values[i]
		}
		t := engine.ResolveTurn(r, v, score, playerID)
		out = append(out, t)
		score = t.EndScore
	}
	return out
}

// Replayed27 is one player's game replayed for stats derivation.
type Replayed27 struct {
	Turns []engine.TurnData[int, TurnStats27]
	Score int
	Stats GameStats27
}

// Replay27 resolves every player of a stored twentyseven result, deriving
// the per-game stats the summary accumulator consumes. The stored score is
// authoritative for legacy docs; replay recomputes and prefers its own
// arithmetic, which matches for every well-formed document.
func Replay27(r models.GameResult, ddIncludeCliffs bool) map[string]Replayed27 {
	def := Definition27()
	out := make(map[string]Replayed27, len(r.Results))
	for pid, pr := range r.Results {
		turns := replayTurns(def, pr.Turns, pr.StartScore, pid)
		score := pr.StartScore
		if len(turns) > 0 {
			score = turns[len(turns)-1].EndScore
		}
		out[pid] = Replayed27{
			Turns: turns,
			Score: score,
			Stats: DeriveGameStats27(turns, score, pr.Jesus, ddIncludeCliffs),
		}
	}
	return out
}

// ReplayedBullseye is one player's bullseye game replayed for stats.
type ReplayedBullseye struct {
	Turns []engine.TurnData[int, TurnStatsBullseye]
	Score int
	Stats GameStatsBullseye
}

// ReplayBullseye resolves every player of a stored bullseye result.
func ReplayBullseye(r models.GameResult) map[string]ReplayedBullseye {
	def := DefinitionBullseye()
	out := make(map[string]ReplayedBullseye, len(r.Results))
	for pid, pr := range r.Results {
		turns := replayTurns(def, pr.Turns, pr.StartScore, pid)
		score := pr.StartScore
		if len(turns) > 0 {
			score = turns[len(turns)-1].EndScore
		}
		out[pid] = ReplayedBullseye{
			Turns: turns,
			Score: score,
			Stats: DeriveGameStatsBullseye(turns),
		}
	}
	return out
}
