package engine

// Round declares one scoring opportunity within a game: how a raw input
// value maps to a score delta and a fixed-shape stats record. DeltaScore and
// Stats must be pure; the accumulator recomputes turns freely and relies on
// identical inputs producing identical outputs.
type Round[V, S any] struct {
	// Key uniquely identifies the round within a game. Round order is the
	// order of the definition's Rounds slice, not the key.
	Key   string
	Label string

	// UntakenValue is the value used to resolve a placeholder turn before
	// the player has entered anything, so running score projections are
	// well-defined from the first render.
	UntakenValue V

	// DeltaScore computes the score change for a turn. startScore is the
	// player's score before the turn, useful when the delta depends on the
	// running score or a handicap.
	DeltaScore func(value V, startScore int, playerID string) int

	// Stats computes per-turn statistics from the round's own value only.
	Stats func(value V, startScore int, playerID string) S
}

// TurnData is the resolved outcome of one player's attempt at one round.
// Immutable once created; a revised turn is superseded by a new TurnData,
// never mutated.
type TurnData[V, S any] struct {
	PlayerID   string
	RoundKey   string
	// Value is nil for an untaken round resolved with the round's
	// UntakenValue.
	Value      *V
	DeltaScore int
	Stats      S
	StartScore int
	EndScore   int
}

// Taken reports whether the turn was resolved from an entered value rather
// than the untaken placeholder.
func (t TurnData[V, S]) Taken() bool {
	return t.Value != nil
}

// ResolveTurn computes the TurnData for a round. A nil value resolves the
// round with its UntakenValue, producing a placeholder turn. It never fails:
// input sanitation (clamping out-of-range values to "no hit") is the round
// functions' policy, not an error condition.
func ResolveTurn[V, S any](r Round[V, S], value *V, startScore int, playerID string) TurnData[V, S] {
	v := r.UntakenValue
	if value != nil {
		v = *value
	}
	delta := r.DeltaScore(v, startScore, playerID)
	return TurnData[V, S]{
		PlayerID:   playerID,
		RoundKey:   r.Key,
		Value:      value,
		DeltaScore: delta,
		Stats:      r.Stats(v, startScore, playerID),
		StartScore: startScore,
		EndScore:   startScore + delta,
	}
}

// PositionOrder controls whether higher or lower scores rank first.
type PositionOrder string

const (
	HighestFirst PositionOrder = "highestFirst"
	LowestFirst  PositionOrder = "lowestFirst"
)

// Definition describes a complete round-based game type.
type Definition[V, S any] struct {
	// Key is the game type key used in storage paths (game/<Key>/games).
	// Must be non-empty; NewGame panics otherwise.
	Key  string
	Name string

	// StartScore returns the initial score for a player, allowing
	// per-player handicaps.
	StartScore func(playerID string) int

	Rounds        []Round[V, S]
	PositionOrder PositionOrder
}

// RoundIndex returns the position of the round with the given key, or -1.
func (d *Definition[V, S]) RoundIndex(key string) int {
	for i, r := range d.Rounds {
		if r.Key == key {
			return i
		}
	}
	return -1
}
