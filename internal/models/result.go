package models

import (
	"fmt"
	"sort"
	"time"
)

// PlayerGameResult is one player's normalized slice of a stored game.
// Turns is indexed by round, nil for rounds never taken.
type PlayerGameResult struct {
	StartScore  int    `json:"start_score"`
	Score       int    `json:"score"`
	Completed   bool   `json:"completed"`
	Turns       []*int `json:"turns"`
	Jesus       bool   `json:"jesus,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// GameResult is a stored game normalized across document versions. Results
// of any dataVersion parse into this shape; only this shape reaches the
// summary accumulator and the API.
type GameResult struct {
	ID       string                      `json:"id"`
	GameType string                      `json:"game_type"`
	Date     time.Time                   `json:"date"`
	Players  []string                    `json:"players"`
	Results  map[string]PlayerGameResult `json:"results"`
	Tiebreak *Tiebreak                   `json:"tiebreak,omitempty"`
}

// ResultFromV1 normalizes a legacy document. Play order is not stored in v1,
// so it is resolved from the player directory's defaultOrder; unknown players
// sort last, ties by id for a deterministic order.
func ResultFromV1(id, gameType string, doc *GameDocV1, defaultOrder map[string]int, startScore int, roundCount int) (GameResult, error) {
	date, err := time.ParseInLocation("2006-01-02", doc.Date, time.Local)
	if err != nil {
		date, err = time.Parse(time.RFC3339, doc.Date)
		if err != nil {
			return GameResult{}, fmt.Errorf("unparsable v1 date %q: %w", doc.Date, err)
		}
	}

	players := make([]string, 0, len(doc.Game))
	for pid := range doc.Game {
		players = append(players, pid)
	}
	sort.Slice(players, func(i, j int) bool {
		oi, oj := v1Order(defaultOrder, players[i]), v1Order(defaultOrder, players[j])
		if oi != oj {
			return oi < oj
		}
		return players[i] < players[j]
	})

	results := make(map[string]PlayerGameResult, len(doc.Game))
	for pid, pg := range doc.Game {
		turns := make([]*int, 0, len(pg.Rounds))
		for _, v := range pg.Rounds {
			v := v
			turns = append(turns, &v)
		}
		results[pid] = PlayerGameResult{
			StartScore: startScore + pg.Handicap,
			Score:      pg.Score,
			Completed:  len(pg.Rounds) == roundCount,
			Turns:      turns,
			Jesus:      pg.Jesus,
		}
	}

	r := GameResult{ID: id, GameType: gameType, Date: date, Players: players, Results: results}
	if doc.Winner.Tie != nil && doc.Winner.Tie.Tiebreak.Winner != "" {
		r.Tiebreak = &Tiebreak{
			Players: doc.Winner.Tie.Players,
			Type:    "unknown",
			Winner:  doc.Winner.Tie.Tiebreak.Winner,
		}
	}
	return r, nil
}

func v1Order(defaultOrder map[string]int, pid string) int {
	if o, ok := defaultOrder[pid]; ok {
		return o
	}
	return 999
}

// ResultFromV2 normalizes a current-format document.
func ResultFromV2(id, gameType string, doc *GameDocV2, startScore int, roundCount int) GameResult {
	results := make(map[string]PlayerGameResult, len(doc.Game))
	for pid, pg := range doc.Game {
		start := startScore
		if pg.StartScore != nil {
			start = *pg.StartScore
		}
		completed := len(pg.Rounds) == roundCount
		for _, v := range pg.Rounds {
			if v == nil {
				completed = false
			}
		}
		results[pid] = PlayerGameResult{
			StartScore:  start,
			Score:       pg.Score,
			Completed:   completed,
			Turns:       append([]*int(nil), pg.Rounds...),
			Jesus:       pg.Jesus,
			DisplayName: pg.DisplayName,
		}
	}
	return GameResult{
		ID:       id,
		GameType: gameType,
		Date:     time.Unix(doc.Timestamp, 0),
		Players:  append([]string(nil), doc.Players...),
		Results:  results,
		Tiebreak: doc.Tiebreak,
	}
}

// Completed reports whether every participant finished the game.
func (r GameResult) Completed() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, pr := range r.Results {
		if !pr.Completed {
			return false
		}
	}
	return true
}
