package engine

import "sort"

// Position is one rank group: all players sharing a score share the rank.
type Position struct {
	Pos     int
	Ordinal string
	Players []string
}

// Positions is the derived ranking for a score map. Never persisted.
type Positions struct {
	Ordered  []Position
	ByPlayer map[string]Position
}

// ComputePositions ranks players under standard competition ranking: tied
// players share a rank and the next distinct score's rank skips by the tie
// group size (1,1,3 rather than 1,1,2). players gives insertion order, used only
// to order tied players for display; it never affects the rank number. The
// result is independent of score map iteration order.
func ComputePositions(players []string, scores map[string]int, order PositionOrder) Positions {
	ranked := make([]string, 0, len(players))
	for _, pid := range players {
		if _, ok := scores[pid]; ok {
			ranked = append(ranked, pid)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := scores[ranked[i]], scores[ranked[j]]
		if order == LowestFirst {
			return a < b
		}
		return a > b
	})

	out := Positions{ByPlayer: make(map[string]Position, len(ranked))}
	for i := 0; i < len(ranked); {
		j := i
		for j < len(ranked) && scores[ranked[j]] == scores[ranked[i]] {
			j++
		}
		pos := Position{
			Pos:     i + 1,
			Ordinal: OrdinalSuffix(i + 1),
			Players: append([]string(nil), ranked[i:j]...),
		}
		out.Ordered = append(out.Ordered, pos)
		for _, pid := range pos.Players {
			out.ByPlayer[pid] = pos
		}
		i = j
	}
	return out
}

// OrdinalSuffix returns the English ordinal suffix for n. The teens
// exception (11th, 12th, 13th) applies in every century: 111th, 212th.
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
