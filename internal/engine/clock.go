package engine

import "time"

// Clock abstracts wall-clock reads so time-dependent rules
// (noon gates, proportional targets, cooldown windows) are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewClock returns a Clock backed by the system time
func NewClock() Clock {
	return systemClock{}
}
