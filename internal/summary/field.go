package summary

import (
	"fmt"
	"math"
)

// Scope says when a field is computed.
type Scope int

const (
	// GameScoped fields fold once per completed game, in chronological
	// order, receiving the previously accumulated value.
	GameScoped Scope = iota
	// PlayerScoped fields are computed once after all games have been
	// folded, from the accumulated game-scoped values.
	PlayerScoped
)

// Highlight marks which direction of a field is "best" for display.
type Highlight int

const (
	NoHighlight Highlight = iota
	HighestIsBest
	LowestIsBest
)

// DefaultRateDigits is the fixed digit count for per-game rates unless a
// field overrides it.
const DefaultRateDigits = 2

// FieldDef declares one summary statistic over per-game stats of type G.
// Exactly one of Fold / Final is set, matching Scope.
type FieldDef[G any] struct {
	Key   string
	Label string
	Scope Scope

	// Empty seeds the accumulated value before any game is folded.
	// Extrema fields seed with math.MaxInt/MinInt sentinels so the first
	// real value always wins.
	Empty float64

	// Fold updates a game-scoped field. numGames counts this game.
	Fold func(prev float64, game G, numGames int) float64

	// Final computes a player-scoped field from the folded values.
	Final func(values map[string]float64, numGames int) float64

	// RatePerGame adds a secondary rounded per-game rate to the display row.
	RatePerGame bool
	// Digits is the fixed digit count for the rate; 0 means the default.
	Digits    int
	Highlight Highlight
}

// Sentinel seeds for extrema fields.
const (
	SeedMax = float64(math.MinInt)
	SeedMin = float64(math.MaxInt)
)

// Schema is a fixed, ordered field list built once at wiring time. Field
// set and order never change after construction; there are no dynamic keys.
type Schema[G any] struct {
	fields []FieldDef[G]
	index  map[string]int
}

// NewSchema builds a schema. A duplicate field key, a missing fold/final
// function, or a scope/function mismatch is a wiring bug and panics.
func NewSchema[G any](fields ...FieldDef[G]) *Schema[G] {
	s := &Schema[G]{
		fields: append([]FieldDef[G](nil), fields...),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range s.fields {
		if f.Key == "" {
			panic("summary: field with empty key")
		}
		if _, dup := s.index[f.Key]; dup {
			panic(fmt.Sprintf("summary: duplicate field key %q", f.Key))
		}
		switch f.Scope {
		case GameScoped:
			if f.Fold == nil || f.Final != nil {
				panic(fmt.Sprintf("summary: game-scoped field %q must set Fold only", f.Key))
			}
		case PlayerScoped:
			if f.Final == nil || f.Fold != nil {
				panic(fmt.Sprintf("summary: player-scoped field %q must set Final only", f.Key))
			}
		default:
			panic(fmt.Sprintf("summary: field %q has unknown scope", f.Key))
		}
		s.index[f.Key] = i
	}
	return s
}

// Fields returns the declared fields in order.
func (s *Schema[G]) Fields() []FieldDef[G] {
	return append([]FieldDef[G](nil), s.fields...)
}

// Lookup returns the field with the given key.
func (s *Schema[G]) Lookup(key string) (FieldDef[G], bool) {
	i, ok := s.index[key]
	if !ok {
		return FieldDef[G]{}, false
	}
	return s.fields[i], true
}

// Round rounds half away from zero to the given number of digits.
func Round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	if v < 0 {
		return math.Ceil(v*p-0.5) / p
	}
	return math.Floor(v*p+0.5) / p
}
