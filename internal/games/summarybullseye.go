package games

import (
	"math"

	"github.com/calmacil/dartscore/internal/summary"
)

// SummaryGameBullseye is one player's completed bullseye game for the
// summary accumulator.
type SummaryGameBullseye struct {
	Stats GameStatsBullseye
	Score int
	Won   bool
	Tied  bool
}

// SchemaBullseye declares the bullseye summary fields.
func SchemaBullseye() *summary.Schema[SummaryGameBullseye] {
	return summary.NewSchema(
		summary.FieldDef[SummaryGameBullseye]{
			Key: "score.best", Label: "Personal best", Scope: summary.GameScoped,
			Empty: summary.SeedMax, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGameBullseye, _ int) float64 {
				return math.Max(prev, float64(g.Score))
			},
		},
		summary.FieldDef[SummaryGameBullseye]{
			Key: "score.total", Label: "Total score", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGameBullseye, _ int) float64 {
				return prev + float64(g.Score)
			},
		},
		summary.FieldDef[SummaryGameBullseye]{
			Key: "wins.count", Label: "Wins", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGameBullseye, _ int) float64 {
				if g.Won {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[SummaryGameBullseye]{
			Key: "fullHouses.total", Label: "Full houses", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGameBullseye, _ int) float64 {
				return prev + float64(g.Stats.FullHouses)
			},
		},
		summary.FieldDef[SummaryGameBullseye]{
			Key: "hits.total", Label: "Hits", Scope: summary.GameScoped,
			RatePerGame: true, Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g SummaryGameBullseye, _ int) float64 {
				return prev + float64(g.Stats.TotalHits)
			},
		},
		summary.FieldDef[SummaryGameBullseye]{
			Key: "hits.rate", Label: "Hit rate per dart", Scope: summary.PlayerScoped,
			Highlight: summary.HighestIsBest,
			Final: func(values map[string]float64, numGames int) float64 {
				return summary.Round(values["hits.total"]/float64(numGames*roundsBullseye*3), summary.DefaultRateDigits)
			},
		},
	)
}
