package core

import "time"

// TimerID names a logical clock. Movement and decay run on separate clocks
// so they can fire at different cadences.
type TimerID int

// Clock is a fixed-interval accumulator. The host advances it by elapsed
// wall or simulated time and runs the owner's handler once per fire.
type Clock struct {
	ID       TimerID
	interval time.Duration
	acc      time.Duration
	paused   bool
}

// NewClock creates a clock with the given interval. Non-positive intervals
// never fire.
func NewClock(id TimerID, interval time.Duration) *Clock {
	return &Clock{ID: id, interval: interval}
}

// Interval returns the firing interval.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// SetInterval changes the firing interval, keeping accumulated time.
func (c *Clock) SetInterval(d time.Duration) {
	c.interval = d
}

// Advance adds elapsed time and returns how many times the clock fired.
func (c *Clock) Advance(elapsed time.Duration) int {
	if c.paused || c.interval <= 0 || elapsed <= 0 {
		return 0
	}
	c.acc += elapsed
	fires := int(c.acc / c.interval)
	c.acc -= time.Duration(fires) * c.interval
	return fires
}

// Pause stops the clock from firing until Resume.
func (c *Clock) Pause() {
	c.paused = true
}

// Resume restarts a paused clock.
func (c *Clock) Resume() {
	c.paused = false
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Reset drops accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}
