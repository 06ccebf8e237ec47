package games

import (
	"fmt"

	"github.com/calmacil/dartscore/internal/engine"
)

// GameType27 is the storage key for the twentyseven game.
const GameType27 = "twentyseven"

const (
	rounds27     = 20
	startScore27 = 27
)

// TurnStats27 are the per-turn stats for one twentyseven round.
type TurnStats27 struct {
	// Cliff: all three darts hit the round's number.
	Cliff bool `json:"cliff"`
	// DoubleDouble: at least two darts hit.
	DoubleDouble bool `json:"dd"`
	Hits         int  `json:"hits"`
}

// Round27Key returns the round key for round n (1-based).
func Round27Key(n int) string {
	return fmt.Sprintf("r%d", n)
}

// Definition27 builds the twentyseven game definition: start at 27, twenty
// rounds targeting the numbers 1 through 20 with three darts each. Missing
// every dart on round N costs 2*N; each hit scores 2*N.
func Definition27() *engine.Definition[int, TurnStats27] {
	rounds := make([]engine.Round[int, TurnStats27], 0, rounds27)
	for i := 0; i < rounds27; i++ {
		n := i + 1
		rounds = append(rounds, engine.Round[int, TurnStats27]{
			Key:          Round27Key(n),
			Label:        fmt.Sprintf("%d", n),
			UntakenValue: 0,
			DeltaScore: func(hits int, _ int, _ string) int {
				hits = clampHits(hits)
				if hits == 0 {
					return -2 * n
				}
				return 2 * n * hits
			},
			Stats: func(hits int, _ int, _ string) TurnStats27 {
				hits = clampHits(hits)
				return TurnStats27{
					Cliff:        hits == 3,
					DoubleDouble: hits >= 2,
					Hits:         hits,
				}
			},
		})
	}
	return &engine.Definition[int, TurnStats27]{
		Key:           GameType27,
		Name:          "Twenty Seven",
		StartScore:    func(string) int { return startScore27 },
		Rounds:        rounds,
		PositionOrder: engine.HighestFirst,
	}
}

// clampHits sanitizes a turn value: three darts per round, so anything
// outside 0..3 reads as no hit.
func clampHits(hits int) int {
	if hits < 0 || hits > 3 {
		return 0
	}
	return hits
}

// GameStats27 are the derived per-game stats for one player's completed
// twentyseven game. The far* fields count how many rounds the player got
// before losing the corresponding achievement; holders of the achievement
// get the full round count.
type GameStats27 struct {
	// FatNick: no hits in the whole game.
	FatNick bool `json:"fatNick"`
	FarFN   int  `json:"farFN"`
	// Dream: a hit in every round.
	Dream    bool `json:"dream"`
	FarDream int  `json:"farDream"`
	// AllPos: score never went negative.
	AllPos bool `json:"allPos"`
	FarPos int  `json:"farPos"`
	// Banana: lost AllPos on the final round, finishing on exactly -1.
	Banana        bool `json:"banana"`
	Cliffs        int  `json:"cliffs"`
	DoubleDoubles int  `json:"doubleDoubles"`
	TotalHits     int  `json:"hits"`
	// Hans: rounds that extended a run of 3+ consecutive double-doubles.
	Hans int `json:"hans"`
	// Goblin: every round scored exactly 2 hits or none.
	Goblin bool `json:"goblin"`
	// Piranha: a single hit on round 1 and nothing after.
	Piranha bool `json:"piranha"`
	// Jesus: manually awarded, carried from the stored game.
	Jesus bool `json:"jesus,omitempty"`
}

// DeriveGameStats27 folds a player's resolved turns into per-game stats.
// turns must cover the full round list in order; score is the final score.
// ddIncludeCliffs says whether a cliff also counts as a double-double; when
// false, a cliff round breaks a hans run.
func DeriveGameStats27(turns []engine.TurnData[int, TurnStats27], score int, jesus, ddIncludeCliffs bool) GameStats27 {
	s := GameStats27{
		FatNick:  true,
		Dream:    true,
		AllPos:   true,
		FarFN:    len(turns),
		FarDream: len(turns),
		FarPos:   len(turns),
		Jesus:    jesus,
	}
	ddRun := 0
	goblin := true
	piranha := len(turns) > 0
	for i, t := range turns {
		st := t.Stats
		if s.FatNick && st.Hits > 0 {
			s.FatNick = false
			s.FarFN = i
		}
		if s.Dream && st.Hits < 1 {
			s.Dream = false
			s.FarDream = i
		}
		if s.AllPos && t.EndScore < 0 {
			s.AllPos = false
			s.FarPos = i
		}
		if st.Cliff {
			s.Cliffs++
		}
		dd := st.DoubleDouble
		if !ddIncludeCliffs && st.Cliff {
			dd = false
		}
		if dd {
			s.DoubleDoubles++
			ddRun++
			if ddRun >= 3 {
				s.Hans++
			}
		} else {
			ddRun = 0
		}
		s.TotalHits += st.Hits
		if st.Hits != 2 && st.Hits != 0 {
			goblin = false
		}
		if i == 0 {
			piranha = piranha && st.Hits == 1
		} else {
			piranha = piranha && st.Hits == 0
		}
	}
	s.Goblin = goblin && len(turns) > 0
	s.Piranha = piranha
	s.Banana = !s.AllPos && s.FarPos == len(turns)-1 && score == -1
	return s
}
