package summary

import (
	"github.com/calmacil/dartscore/internal/logger"
)

// PlayerStats holds one player's accumulated values. NonEmpty separates a
// player who has never completed a game from one whose stats happen to be
// zero; display layers render absent data, not zeros, while it is false.
type PlayerStats struct {
	PlayerID string
	NumGames int
	NonEmpty bool
	Values   map[string]float64
}

// Accumulator folds completed games into per-player summary stats. One
// accumulator serves one pass over one game list: changing the player filter
// or date range means building a fresh accumulator and refolding, never
// mutating this one. Not safe for concurrent use.
type Accumulator[G any] struct {
	schema    *Schema[G]
	log       *logger.Logger
	players   map[string]*PlayerStats
	order     []string
	finalized bool
}

// NewAccumulator creates an empty accumulator over the schema.
func NewAccumulator[G any](schema *Schema[G], log *logger.Logger) *Accumulator[G] {
	if log == nil {
		log = logger.Default()
	}
	return &Accumulator[G]{
		schema:  schema,
		log:     log.WithPrefix("summary"),
		players: make(map[string]*PlayerStats),
	}
}

// Push folds one player's completed game. Games must be pushed in
// chronological order; numGames passed to folds counts the pushed game.
// A fold that panics keeps the field's previous value and is logged; other
// fields and players are unaffected.
func (a *Accumulator[G]) Push(playerID string, game G) {
	ps, ok := a.players[playerID]
	if !ok {
		ps = &PlayerStats{
			PlayerID: playerID,
			Values:   make(map[string]float64, len(a.schema.fields)),
		}
		for _, f := range a.schema.fields {
			ps.Values[f.Key] = f.Empty
		}
		a.players[playerID] = ps
		a.order = append(a.order, playerID)
	}
	ps.NumGames++
	ps.NonEmpty = true
	a.finalized = false

	for _, f := range a.schema.fields {
		if f.Scope != GameScoped {
			continue
		}
		a.foldField(ps, f, game)
	}
}

func (a *Accumulator[G]) foldField(ps *PlayerStats, f FieldDef[G], game G) {
	prev := ps.Values[f.Key]
	defer func() {
		if r := recover(); r != nil {
			ps.Values[f.Key] = prev
			a.log.Error("field %q failed for player %s, keeping previous value: %v", f.Key, ps.PlayerID, r)
		}
	}()
	ps.Values[f.Key] = f.Fold(prev, game, ps.NumGames)
}

// Finalize computes the player-scoped fields. Idempotent; Rows calls it if
// needed.
func (a *Accumulator[G]) Finalize() {
	if a.finalized {
		return
	}
	for _, pid := range a.order {
		ps := a.players[pid]
		for _, f := range a.schema.fields {
			if f.Scope != PlayerScoped {
				continue
			}
			a.finalField(ps, f)
		}
	}
	a.finalized = true
}

func (a *Accumulator[G]) finalField(ps *PlayerStats, f FieldDef[G]) {
	prev := ps.Values[f.Key]
	defer func() {
		if r := recover(); r != nil {
			ps.Values[f.Key] = prev
			a.log.Error("field %q failed for player %s, keeping previous value: %v", f.Key, ps.PlayerID, r)
		}
	}()
	ps.Values[f.Key] = f.Final(ps.Values, ps.NumGames)
}

// Player returns the accumulated stats for a player, finalizing first.
// ok is false for a player who never completed a game.
func (a *Accumulator[G]) Player(playerID string) (PlayerStats, bool) {
	a.Finalize()
	ps, ok := a.players[playerID]
	if !ok {
		return PlayerStats{PlayerID: playerID}, false
	}
	return *ps, true
}

// Players returns player ids in first-pushed order.
func (a *Accumulator[G]) Players() []string {
	return append([]string(nil), a.order...)
}

// Cell is one field value for one player, display-ready.
type Cell struct {
	Raw float64 `json:"raw"`
	// Rate is the rounded per-game rate, present when the field declares
	// RatePerGame.
	Rate *float64 `json:"rate,omitempty"`
}

// Row is one field across all players.
type Row struct {
	Key       string          `json:"key"`
	Label     string          `json:"label"`
	Highlight Highlight       `json:"highlight"`
	Cells     map[string]Cell `json:"cells"`
}

// Rows renders one row per declared field, in schema order, covering every
// pushed player. Rates round to DefaultRateDigits.
func (a *Accumulator[G]) Rows() []Row {
	return a.RowsWithRateDigits(DefaultRateDigits)
}

// RowsWithRateDigits renders rows with per-game rates rounded to rateDigits.
// A field declaring its own Digits keeps it; negative rateDigits falls back
// to the default.
func (a *Accumulator[G]) RowsWithRateDigits(rateDigits int) []Row {
	a.Finalize()
	if rateDigits < 0 {
		rateDigits = DefaultRateDigits
	}
	rows := make([]Row, 0, len(a.schema.fields))
	for _, f := range a.schema.fields {
		row := Row{
			Key:       f.Key,
			Label:     f.Label,
			Highlight: f.Highlight,
			Cells:     make(map[string]Cell, len(a.order)),
		}
		for _, pid := range a.order {
			ps := a.players[pid]
			cell := Cell{Raw: ps.Values[f.Key]}
			if f.RatePerGame && ps.NumGames > 0 {
				digits := f.Digits
				if digits == 0 {
					digits = rateDigits
				}
				rate := Round(cell.Raw/float64(ps.NumGames), digits)
				cell.Rate = &rate
			}
			row.Cells[pid] = cell
		}
		rows = append(rows, row)
	}
	return rows
}
