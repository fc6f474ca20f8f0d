package core

import "time"

const usPerSecond = 1_000_000

// Clock provides monotonic time in microseconds from an arbitrary
// origin. Injected so tests can drive the monitor deterministically.
type Clock interface {
	NowMicros() int64
}

type systemClock struct {
	epoch time.Time
}

// NewSystemClock returns a Clock backed by the runtime's monotonic
// clock.
func NewSystemClock() Clock {
	return &systemClock{epoch: time.Now()}
}

func (c *systemClock) NowMicros() int64 {
	return time.Since(c.epoch).Microseconds()
}
