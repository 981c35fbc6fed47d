package engine

// Clock is a monotonic logical clock that stamps propagation steps.
//
// Steps are ordered by seq, never by wall-clock time, so two runs over the
// same graph and seed produce identical traces.
type Clock struct {
	seq int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq
}
