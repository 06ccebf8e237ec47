package games

import (
	"math"

	"github.com/calmacil/dartscore/internal/summary"
)

// SummaryGame27 is one player's completed twentyseven game as the summary
// accumulator consumes it: derived game stats plus the game outcome.
type SummaryGame27 struct {
	Stats GameStats27
	Score int
	// Won: sole first place. Tied: shared first place.
	Won  bool
	Tied bool
}

const (
	dartsPerGame27  = rounds27 * 3
	roundsPerGame27 = rounds27
)

// Schema27 declares the twentyseven summary fields, in display order.
// rateDigits governs the rounding of the player-scoped rate fields; pair it
// with RowsWithRateDigits so the per-game rates match.
func Schema27(rateDigits int) *summary.Schema[SummaryGame27] {
	if rateDigits < 0 {
		rateDigits = summary.DefaultRateDigits
	}
	return summary.NewSchema(
		summary.FieldDef[SummaryGame27]{
			Key: "score.best", Label: "Personal best", Scope: summary.GameScoped,
			Empty: summary.SeedMax, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Max(prev, float64(g.Score))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "score.worst", Label: "Personal worst", Scope: summary.GameScoped,
			Empty: summary.SeedMin, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Min(prev, float64(g.Score))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "score.total", Label: "Total score", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return prev + float64(g.Score)
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "wins.count", Label: "Wins", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Won {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "ties.count", Label: "Ties", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Tied {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "fatNicks.count", Label: "Fat Nicks", Scope: summary.GameScoped,
			Highlight: summary.LowestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Stats.FatNick {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "fatNicks.furthest", Label: "Furthest without a hit", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Max(prev, float64(g.Stats.FarFN))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "dreams.count", Label: "Dreams", Scope: summary.GameScoped,
			Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Stats.Dream {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "dreams.furthest", Label: "Furthest all-hit streak", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Max(prev, float64(g.Stats.FarDream))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "allPos.count", Label: "All positive", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Stats.AllPos {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "allPos.furthest", Label: "Furthest positive", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Max(prev, float64(g.Stats.FarPos))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "bananas.count", Label: "Bananas", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Stats.Banana {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "cliffs.total", Label: "Cliffs", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return prev + float64(g.Stats.Cliffs)
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "cliffs.most", Label: "Most cliffs in a game", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Max(prev, float64(g.Stats.Cliffs))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "cliffs.rate", Label: "Cliff rate", Scope: summary.PlayerScoped,
			Highlight: summary.HighestIsBest,
			Final: func(values map[string]float64, numGames int) float64 {
				return summary.Round(values["cliffs.total"]/float64(numGames*roundsPerGame27), rateDigits)
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "doubleDoubles.total", Label: "Double doubles", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return prev + float64(g.Stats.DoubleDoubles)
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "doubleDoubles.most", Label: "Most double doubles in a game", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Max(prev, float64(g.Stats.DoubleDoubles))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "hits.total", Label: "Hits", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return prev + float64(g.Stats.TotalHits)
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "hits.most", Label: "Most hits in a game", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return math.Max(prev, float64(g.Stats.TotalHits))
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "hits.rate", Label: "Hit rate per dart", Scope: summary.PlayerScoped,
			Highlight: summary.HighestIsBest,
			Final: func(values map[string]float64, numGames int) float64 {
				return summary.Round(values["hits.total"]/float64(numGames*dartsPerGame27), rateDigits)
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "hans.total", Label: "Hans", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				return prev + float64(g.Stats.Hans)
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "goblins.count", Label: "Goblins", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Stats.Goblin {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "piranhas.count", Label: "Piranhas", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Stats.Piranha {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGame27]{
			Key: "jesus.count", Label: "Jesus", Scope: summary.GameScoped,
			Fold: func(prev float64, g SummaryGame27, _ int) float64 {
				if g.Stats.Jesus {
					return prev + 1
				}
				return prev
			},
		},
	)
}
