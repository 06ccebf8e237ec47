package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmacil/dartscore/internal/models"
)

func TestWinner_UnmarshalPlayerID(t *testing.T) {
	var w models.Winner
	require.NoError(t, json.Unmarshal([]byte(`"alice"`), &w))
	assert.Equal(t, "alice", w.PlayerID)
	assert.Nil(t, w.Tie)
}

func TestWinner_UnmarshalTie(t *testing.T) {
	raw := `{"tie":["alice","bob"],"tiebreak":{"winner":"bob"}}`

	var w models.Winner
	require.NoError(t, json.Unmarshal([]byte(raw), &w))
	require.NotNil(t, w.Tie)
	assert.Empty(t, w.PlayerID)
	assert.Equal(t, []string{"alice", "bob"}, w.Tie.Players)
	assert.Equal(t, "bob", w.Tie.Tiebreak.Winner)
}

func TestWinner_UnmarshalInvalid(t *testing.T) {
	var w models.Winner
	err := json.Unmarshal([]byte(`42`), &w)
	assert.Error(t, err)
}

func TestWinner_MarshalRoundTrip(t *testing.T) {
	w := models.Winner{PlayerID: "alice"}
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `"alice"`, string(data))

	tie := models.Winner{Tie: &models.TieV1{Players: []string{"a", "b"}}}
	data, err = json.Marshal(tie)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tie":["a","b"]`)
}

func TestDocDataVersion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "absent reads as v1", raw: `{"date":"2020-01-01"}`, want: 1},
		{name: "explicit v1", raw: `{"dataVersion":1}`, want: 1},
		{name: "v2", raw: `{"dataVersion":2}`, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := models.DocDataVersion(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := models.DocDataVersion(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestParseGameDocV1(t *testing.T) {
	raw := `{
		"date": "2020-06-15",
		"winner": "alice",
		"game": {
			"alice": {"rounds": [1,0,2], "score": 31, "cliffs": 0, "allPositive": true}
		}
	}`

	doc, err := models.ParseGameDocV1(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, models.GameDocVersion1, doc.DataVersion)
	assert.Equal(t, "2020-06-15", doc.Date)
	assert.Equal(t, "alice", doc.Winner.PlayerID)
	assert.Equal(t, []int{1, 0, 2}, doc.Game["alice"].Rounds)
}

func TestParseGameDocV1_RejectsOtherVersions(t *testing.T) {
	_, err := models.ParseGameDocV1(json.RawMessage(`{"dataVersion":2}`))
	assert.Error(t, err)
}

func TestParseGameDocV2(t *testing.T) {
	raw := `{
		"dataVersion": 2,
		"timestamp": 1592179200,
		"players": ["alice","bob"],
		"tiebreak": {"type": "bullOff", "winner": "bob"},
		"game": {
			"alice": {"rounds": [1,null], "score": 27, "startScore": 27},
			"bob": {"rounds": [2,0], "score": 29}
		}
	}`

	doc, err := models.ParseGameDocV2(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, int64(1592179200), doc.Timestamp)
	assert.Equal(t, []string{"alice", "bob"}, doc.Players)
	require.NotNil(t, doc.Tiebreak)
	assert.Equal(t, "bullOff", doc.Tiebreak.Type)

	alice := doc.Game["alice"]
	require.Len(t, alice.Rounds, 2)
	require.NotNil(t, alice.Rounds[0])
	assert.Equal(t, 1, *alice.Rounds[0])
	assert.Nil(t, alice.Rounds[1])
	require.NotNil(t, alice.StartScore)
	assert.Equal(t, 27, *alice.StartScore)
	assert.Nil(t, doc.Game["bob"].StartScore)
}

func TestParseGameDocV2_RejectsOtherVersions(t *testing.T) {
	_, err := models.ParseGameDocV2(json.RawMessage(`{"dataVersion":1}`))
	assert.Error(t, err)
}
