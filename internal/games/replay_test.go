package games_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/models"
)

func TestRoundCount(t *testing.T) {
	assert.Equal(t, 20, games.RoundCount(games.GameType27))
	assert.Equal(t, 10, games.RoundCount(games.GameTypeBullseye))
	assert.Equal(t, 0, games.RoundCount("cricket"))
}

func TestStartScore(t *testing.T) {
	assert.Equal(t, 27, games.StartScore(games.GameType27))
	assert.Equal(t, 0, games.StartScore(games.GameTypeBullseye))
}

func TestReplay27_MatchesLiveGame(t *testing.T) {
	live, err := games.NewLive(games.GameType27, []string{"p1"})
	require.NoError(t, err)

	hits := []int{3, 2, 2, 2, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	for i, h := range hits {
		require.NoError(t, live.SetTurn("p1", games.Round27Key(i+1), h))
	}
	require.True(t, live.Complete())

	doc := live.Document(time.Now(), nil)
	result := models.ResultFromV2("g1", games.GameType27, doc,
		games.StartScore(games.GameType27), games.RoundCount(games.GameType27))

	replayed := games.Replay27(result, true)
	require.Contains(t, replayed, "p1")

	got := replayed["p1"]
	assert.Equal(t, doc.Game["p1"].Score, got.Score)
	assert.Equal(t, 1, got.Stats.Cliffs)
	assert.Equal(t, 4, got.Stats.DoubleDoubles)
	assert.Equal(t, 10, got.Stats.TotalHits)
	// Rounds 3 and 4 extend a double-double run of three or more.
	assert.Equal(t, 2, got.Stats.Hans)
	require.Len(t, got.Turns, 20)
}

func TestReplay27_UntakenRoundsResolveAsMisses(t *testing.T) {
	v := 1
	result := models.GameResult{
		ID:       "g1",
		GameType: games.GameType27,
		Players:  []string{"p1"},
		Results: map[string]models.PlayerGameResult{
			"p1": {StartScore: 27, Turns: []*int{&v, nil}},
		},
	}

	replayed := games.Replay27(result, true)
	got := replayed["p1"]

	// One hit on round one, every other round resolves as a miss:
	// 27 + 2 - 2*(2+3+...+20) = 29 - 418 = -389.
	assert.Equal(t, -389, got.Score)
	assert.False(t, got.Stats.FatNick)
	assert.True(t, got.Stats.Piranha)
}

func TestReplayBullseye(t *testing.T) {
	v3, v1 := 3, 1
	result := models.GameResult{
		ID:       "g1",
		GameType: games.GameTypeBullseye,
		Players:  []string{"p1"},
		Results: map[string]models.PlayerGameResult{
			"p1": {StartScore: 0, Turns: []*int{&v3, &v1}},
		},
	}

	replayed := games.ReplayBullseye(result)
	got := replayed["p1"]

	assert.Equal(t, 100, got.Score)
	assert.Equal(t, 1, got.Stats.FullHouses)
	assert.Equal(t, 4, got.Stats.TotalHits)
	assert.Equal(t, 3, got.Stats.BestRound)
}
