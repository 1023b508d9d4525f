package core

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(1, 100*time.Millisecond)

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{"below interval", 60 * time.Millisecond, 0},
		{"carries remainder", 60 * time.Millisecond, 1},
		{"several fires", 320 * time.Millisecond, 3},
		{"zero elapsed", 0, 0},
	}

	for _, tc := range tests {
		if got := c.Advance(tc.elapsed); got != tc.expected {
			t.Errorf("%s: Advance(%v) = %d, expected %d", tc.name, tc.elapsed, got, tc.expected)
		}
	}
}

func TestClockPause(t *testing.T) {
	c := NewClock(2, 10*time.Millisecond)
	c.Pause()
	if !c.Paused() {
		t.Fatal("Paused() should be true after Pause")
	}
	if got := c.Advance(time.Second); got != 0 {
		t.Errorf("paused clock fired %d times", got)
	}

	c.Resume()
	if got := c.Advance(25 * time.Millisecond); got != 2 {
		t.Errorf("Advance after Resume = %d, expected 2", got)
	}
}

func TestClockNonPositiveInterval(t *testing.T) {
	c := NewClock(3, 0)
	if got := c.Advance(time.Hour); got != 0 {
		t.Errorf("zero-interval clock fired %d times", got)
	}
}
