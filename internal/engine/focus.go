package engine

// Cursor is a pure focus helper for round-entry UIs: it moves over round
// indices without touching game state. The zero value focuses round 0.
type Cursor struct {
	pos   int
	total int
}

// NewCursor creates a cursor over a game's declared rounds.
func NewCursor(totalRounds int) *Cursor {
	return &Cursor{total: totalRounds}
}

// Pos returns the focused round index.
func (c *Cursor) Pos() int { return c.pos }

// Next moves focus to the following round, clamped to the last round.
func (c *Cursor) Next() int {
	if c.pos < c.total-1 {
		c.pos++
	}
	return c.pos
}

// Prev moves focus to the preceding round, clamped to the first round.
func (c *Cursor) Prev() int {
	if c.pos > 0 {
		c.pos--
	}
	return c.pos
}

// Empty moves focus to the first untaken round given how many turns the
// player has taken, clamped to the last round when the game is complete.
func (c *Cursor) Empty(takenTurns int) int {
	c.pos = takenTurns
	if c.pos > c.total-1 {
		c.pos = c.total - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
	return c.pos
}
