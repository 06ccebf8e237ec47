package games

import (
	"fmt"

	"github.com/calmacil/dartscore/internal/engine"
)

// GameTypeBullseye is the storage key for the bullseye game.
const GameTypeBullseye = "bullseye"

const (
	roundsBullseye = 10
	bullValue      = 25
)

// TurnStatsBullseye are the per-turn stats for one bullseye round.
type TurnStatsBullseye struct {
	Hits int `json:"hits"`
	// FullHouse: all three darts on the bull.
	FullHouse bool `json:"fullHouse"`
}

// RoundBullseyeKey returns the round key for round n (1-based).
func RoundBullseyeKey(n int) string {
	return fmt.Sprintf("b%d", n)
}

// DefinitionBullseye builds the bullseye game definition: ten rounds of
// three darts at the bull, each hit worth 25, misses cost nothing.
func DefinitionBullseye() *engine.Definition[int, TurnStatsBullseye] {
	rounds := make([]engine.Round[int, TurnStatsBullseye], 0, roundsBullseye)
	for i := 0; i < roundsBullseye; i++ {
		rounds = append(rounds, engine.Round[int, TurnStatsBullseye]{
			Key:          RoundBullseyeKey(i + 1),
			Label:        fmt.Sprintf("%d", i+1),
			UntakenValue: 0,
			DeltaScore: func(hits int, _ int, _ string) int {
				return bullValue * clampHits(hits)
			},
			Stats: func(hits int, _ int, _ string) TurnStatsBullseye {
				hits = clampHits(hits)
				return TurnStatsBullseye{Hits: hits, FullHouse: hits == 3}
			},
		})
	}
	return &engine.Definition[int, TurnStatsBullseye]{
		Key:           GameTypeBullseye,
		Name:          "Bullseye",
		StartScore:    func(string) int { return 0 },
		Rounds:        rounds,
		PositionOrder: engine.HighestFirst,
	}
}

// GameStatsBullseye are the derived per-game stats for one player's
// completed bullseye game.
type GameStatsBullseye struct {
	TotalHits  int `json:"hits"`
	FullHouses int `json:"fullHouses"`
	BestRound  int `json:"bestRound"`
}

// DeriveGameStatsBullseye folds a player's resolved turns into per-game
// stats.
func DeriveGameStatsBullseye(turns []engine.TurnData[int, TurnStatsBullseye]) GameStatsBullseye {
	var s GameStatsBullseye
	for _, t := range turns {
		s.TotalHits += t.Stats.Hits
		if t.Stats.FullHouse {
			s.FullHouses++
		}
		if t.Stats.Hits > s.BestRound {
			s.BestRound = t.Stats.Hits
		}
	}
	return s
}
