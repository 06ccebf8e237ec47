package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmacil/dartscore/internal/engine"
)

func TestOrdinalSuffix(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "st"},
		{2, "nd"},
		{3, "rd"},
		{4, "th"},
		{10, "th"},
		{11, "th"},
		{12, "th"},
		{13, "th"},
		{21, "st"},
		{22, "nd"},
		{23, "rd"},
		{101, "st"},
		{111, "th"},
		{112, "th"},
		{113, "th"},
		{212, "th"},
		{1011, "th"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.OrdinalSuffix(tt.n), "n=%d", tt.n)
	}
}

func TestComputePositions_TiesShareRankAndSkip(t *testing.T) {
	players := []string{"a", "b", "c"}
	scores := map[string]int{"a": 10, "b": 10, "c": 7}

	pos := engine.ComputePositions(players, scores, engine.HighestFirst)

	require.Len(t, pos.Ordered, 2)
	assert.Equal(t, 1, pos.Ordered[0].Pos)
	assert.Equal(t, []string{"a", "b"}, pos.Ordered[0].Players)
	assert.Equal(t, 3, pos.Ordered[1].Pos)
	assert.Equal(t, []string{"c"}, pos.Ordered[1].Players)

	assert.Equal(t, 1, pos.ByPlayer["a"].Pos)
	assert.Equal(t, 1, pos.ByPlayer["b"].Pos)
	assert.Equal(t, 3, pos.ByPlayer["c"].Pos)
	assert.Equal(t, "rd", pos.ByPlayer["c"].Ordinal)
}

func TestComputePositions_LowestFirst(t *testing.T) {
	players := []string{"a", "b", "c"}
	scores := map[string]int{"a": 27, "b": 27, "c": 20}

	pos := engine.ComputePositions(players, scores, engine.LowestFirst)

	require.Len(t, pos.Ordered, 2)
	assert.Equal(t, []string{"c"}, pos.Ordered[0].Players)
	assert.Equal(t, 1, pos.Ordered[0].Pos)
	assert.Equal(t, "st", pos.Ordered[0].Ordinal)
	assert.Equal(t, []string{"a", "b"}, pos.Ordered[1].Players)
	assert.Equal(t, 2, pos.Ordered[1].Pos)
	assert.Equal(t, "nd", pos.Ordered[1].Ordinal)
}

func TestComputePositions_IgnoresPlayersWithoutScores(t *testing.T) {
	players := []string{"a", "b"}
	scores := map[string]int{"a": 5}

	pos := engine.ComputePositions(players, scores, engine.HighestFirst)

	require.Len(t, pos.Ordered, 1)
	assert.Equal(t, []string{"a"}, pos.Ordered[0].Players)
	_, ok := pos.ByPlayer["b"]
	assert.False(t, ok)
}

func TestComputePositions_Empty(t *testing.T) {
	pos := engine.ComputePositions(nil, map[string]int{}, engine.HighestFirst)
	assert.Empty(t, pos.Ordered)
	assert.Empty(t, pos.ByPlayer)
}
