package games_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmacil/dartscore/internal/engine"
	apperrors "github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/models"
)

func TestNewLive_Validation(t *testing.T) {
	_, err := games.NewLive(games.GameType27, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = games.NewLive("cricket", []string{"p1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLive_PlayThrough(t *testing.T) {
	live, err := games.NewLive(games.GameType27, []string{"p1", "p2"})
	require.NoError(t, err)

	assert.Equal(t, games.GameType27, live.Type())
	assert.Equal(t, []string{"p1", "p2"}, live.Players())
	assert.False(t, live.Complete())

	require.NoError(t, live.SetTurn("p1", "r1", 2))
	require.NoError(t, live.SetTurn("p2", "r1", 0))

	snap := live.Snapshot()
	assert.Equal(t, 31, snap.Scores["p1"])
	assert.Equal(t, 25, snap.Scores["p2"])
	assert.Equal(t, engine.InProgress, snap.States["p1"])
	require.Len(t, snap.Rounds, 20)
	assert.Equal(t, "r1", snap.Rounds[0].Key)

	require.Len(t, snap.Positions, 2)
	assert.Equal(t, []string{"p1"}, snap.Positions[0].Players)
	assert.Equal(t, "st", snap.Positions[0].Ordinal)

	turns := snap.Turns["p1"]
	require.Len(t, turns, 20)
	assert.True(t, turns[0].Taken)
	assert.False(t, turns[1].Taken)
	assert.Equal(t, 31, turns[1].StartScore)
}

func TestLive_FinishAndJesus(t *testing.T) {
	live, err := games.NewLive(games.GameTypeBullseye, []string{"p1"})
	require.NoError(t, err)

	require.NoError(t, live.SetTurn("p1", "b1", 3))
	require.NoError(t, live.SetJesus("p1", true))
	require.Error(t, live.SetJesus("ghost", true))

	assert.False(t, live.Complete())
	require.NoError(t, live.Finish("p1"))
	assert.True(t, live.Complete())
}

func TestLive_Document(t *testing.T) {
	live, err := games.NewLive(games.GameType27, []string{"p1", "p2"})
	require.NoError(t, err)

	require.NoError(t, live.SetTurn("p1", "r1", 1))
	require.NoError(t, live.SetJesus("p1", true))

	ts := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	tiebreak := &models.Tiebreak{Players: []string{"p1", "p2"}, Type: "bullOff", Winner: "p1"}
	doc := live.Document(ts, tiebreak)

	assert.Equal(t, models.GameDocVersion2, doc.DataVersion)
	assert.Equal(t, ts.Unix(), doc.Timestamp)
	assert.Equal(t, []string{"p1", "p2"}, doc.Players)
	assert.Same(t, tiebreak, doc.Tiebreak)

	pg := doc.Game["p1"]
	require.Len(t, pg.Rounds, 20)
	require.NotNil(t, pg.Rounds[0])
	assert.Equal(t, 1, *pg.Rounds[0])
	assert.Nil(t, pg.Rounds[1])
	assert.Equal(t, 29, pg.Score)
	assert.True(t, pg.Jesus)
	require.NotNil(t, pg.StartScore)
	assert.Equal(t, 27, *pg.StartScore)

	assert.False(t, doc.Game["p2"].Jesus)
}
