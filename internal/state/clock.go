package state

// Clock is a revision counter. It advances on every structural change of a
// History so that anything derived from the stroke list can tell it is stale.
type Clock struct {
	counter uint64
}

// Tick advances the clock and returns the new revision.
func (c *Clock) Tick() uint64 {
	c.counter++
	return c.counter
}

// Now returns the current revision without advancing it.
func (c *Clock) Now() uint64 {
	return c.counter
}
