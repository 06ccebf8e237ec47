package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmacil/dartscore/internal/summary"
)

func testSchema() *summary.Schema[fakeGame] {
	return summary.NewSchema(
		summary.FieldDef[fakeGame]{
			Key: "score.total", Label: "Total score", Scope: summary.GameScoped,
			Fold: func(prev float64, g fakeGame, _ int) float64 {
				return prev + float64(g.Score)
			},
		},
		summary.FieldDef[fakeGame]{
			Key: "score.best", Label: "Best score", Scope: summary.GameScoped,
			Empty:     summary.SeedMax,
			Highlight: summary.HighestIsBest,
			Fold: func(prev float64, g fakeGame, _ int) float64 {
				if float64(g.Score) > prev {
					return float64(g.Score)
				}
				return prev
			},
		},
		summary.FieldDef[fakeGame]{
			Key: "wins.count", Label: "Wins", Scope: summary.GameScoped,
			RatePerGame: true,
			Fold: func(prev float64, g fakeGame, _ int) float64 {
				if g.Won {
					return prev + 1
				}
				return prev
			},
		},
		summary.FieldDef[fakeGame]{
			Key: "score.avg", Label: "Average score", Scope: summary.PlayerScoped,
			Final: func(values map[string]float64, numGames int) float64 {
				if numGames == 0 {
					return 0
				}
				return values["score.total"] / float64(numGames)
			},
		},
	)
}

func TestAccumulator_EmptyPlayer(t *testing.T) {
	acc := summary.NewAccumulator(testSchema(), nil)

	ps, ok := acc.Player("nobody")
	assert.False(t, ok)
	assert.False(t, ps.NonEmpty)
	assert.Equal(t, 0, ps.NumGames)
	assert.Empty(t, acc.Players())
}

func TestAccumulator_FoldsAndFinalizes(t *testing.T) {
	acc := summary.NewAccumulator(testSchema(), nil)

	acc.Push("p1", fakeGame{Score: 40, Won: true})
	acc.Push("p1", fakeGame{Score: 20})
	acc.Push("p2", fakeGame{Score: -10})

	p1, ok := acc.Player("p1")
	require.True(t, ok)
	assert.True(t, p1.NonEmpty)
	assert.Equal(t, 2, p1.NumGames)
	assert.Equal(t, 60.0, p1.Values["score.total"])
	assert.Equal(t, 40.0, p1.Values["score.best"])
	assert.Equal(t, 1.0, p1.Values["wins.count"])
	assert.Equal(t, 30.0, p1.Values["score.avg"])

	p2, ok := acc.Player("p2")
	require.True(t, ok)
	assert.Equal(t, -10.0, p2.Values["score.best"])

	assert.Equal(t, []string{"p1", "p2"}, acc.Players())
}

func TestAccumulator_RowsWithRates(t *testing.T) {
	acc := summary.NewAccumulator(testSchema(), nil)

	// Three wins over four games rates 0.75.
	acc.Push("p1", fakeGame{Won: true})
	acc.Push("p1", fakeGame{Won: true})
	acc.Push("p1", fakeGame{Won: true})
	acc.Push("p1", fakeGame{})

	rows := acc.Rows()
	require.Len(t, rows, 4)

	var wins summary.Row
	for _, r := range rows {
		if r.Key == "wins.count" {
			wins = r
		}
	}
	cell := wins.Cells["p1"]
	assert.Equal(t, 3.0, cell.Raw)
	require.NotNil(t, cell.Rate)
	assert.Equal(t, 0.75, *cell.Rate)

	// Fields without RatePerGame carry no rate.
	for _, r := range rows {
		if r.Key == "score.total" {
			assert.Nil(t, r.Cells["p1"].Rate)
		}
	}
}

func TestAccumulator_RowsWithRateDigits(t *testing.T) {
	acc := summary.NewAccumulator(testSchema(), nil)

	acc.Push("p1", fakeGame{Won: true})
	acc.Push("p1", fakeGame{Won: true})
	acc.Push("p1", fakeGame{})

	findWins := func(rows []summary.Row) summary.Row {
		for _, r := range rows {
			if r.Key == "wins.count" {
				return r
			}
		}
		t.Fatal("wins.count row not found")
		return summary.Row{}
	}

	// Two wins over three games: 0.67 at two digits, 1 at zero.
	rows := acc.RowsWithRateDigits(2)
	require.NotNil(t, findWins(rows).Cells["p1"].Rate)
	assert.Equal(t, 0.67, *findWins(rows).Cells["p1"].Rate)

	rows = acc.RowsWithRateDigits(0)
	assert.Equal(t, 1.0, *findWins(rows).Cells["p1"].Rate)

	// Negative digit counts fall back to the default.
	rows = acc.RowsWithRateDigits(-1)
	assert.Equal(t, 0.67, *findWins(rows).Cells["p1"].Rate)
}

func TestAccumulator_RowsFollowSchemaOrder(t *testing.T) {
	acc := summary.NewAccumulator(testSchema(), nil)
	acc.Push("p1", fakeGame{Score: 1})

	rows := acc.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, "score.total", rows[0].Key)
	assert.Equal(t, "score.best", rows[1].Key)
	assert.Equal(t, "wins.count", rows[2].Key)
	assert.Equal(t, "score.avg", rows[3].Key)
}

func TestAccumulator_PanickingFieldKeepsPreviousValue(t *testing.T) {
	schema := summary.NewSchema(
		summary.FieldDef[fakeGame]{
			Key: "ok", Label: "OK", Scope: summary.GameScoped,
			Fold: func(prev float64, _ fakeGame, _ int) float64 { return prev + 1 },
		},
		summary.FieldDef[fakeGame]{
			Key: "boom", Label: "Boom", Scope: summary.GameScoped,
			Fold: func(prev float64, g fakeGame, _ int) float64 {
				if g.Score < 0 {
					panic("negative score")
				}
				return prev + float64(g.Score)
			},
		},
	)
	acc := summary.NewAccumulator(schema, nil)

	acc.Push("p1", fakeGame{Score: 5})
	acc.Push("p1", fakeGame{Score: -1})

	ps, ok := acc.Player("p1")
	require.True(t, ok)
	// The healthy field folded both games; the panicking one kept its value.
	assert.Equal(t, 2.0, ps.Values["ok"])
	assert.Equal(t, 5.0, ps.Values["boom"])
	assert.Equal(t, 2, ps.NumGames)
}

func TestAccumulator_FinalizeIdempotent(t *testing.T) {
	acc := summary.NewAccumulator(testSchema(), nil)
	acc.Push("p1", fakeGame{Score: 10})

	acc.Finalize()
	acc.Finalize()

	ps, _ := acc.Player("p1")
	assert.Equal(t, 10.0, ps.Values["score.avg"])
}
