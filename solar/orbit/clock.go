package orbit

import "time"

// DefaultRate converts wall-clock milliseconds into simulated time units.
const DefaultRate float32 = 0.001

// Clock derives the two time bases used per frame: simulated orbital time,
// scaled by a global rate, and unscaled elapsed seconds for shader animation.
type Clock struct {
	start time.Time
	rate  float32
}

// NewClock starts a clock at start.
//
// Parameters:
//   - start: the wall-clock instant treated as t = 0
//   - rate: the global rate applied to elapsed milliseconds
//
// Returns:
//   - Clock: the clock
func NewClock(start time.Time, rate float32) Clock {
	return Clock{start: start, rate: rate}
}

// Start returns the instant treated as t = 0.
func (c Clock) Start() time.Time {
	return c.start
}

// Rate returns the global rate constant.
func (c Clock) Rate() float32 {
	return c.rate
}

// Sim returns simulated time at now. It never goes negative, even when now
// precedes the start instant.
func (c Clock) Sim(now time.Time) float32 {
	ms := now.Sub(c.start).Seconds() * 1000
	if ms < 0 {
		return 0
	}
	// Stay in float64 until the final conversion.
	return float32(ms * float64(c.rate))
}

// Elapsed returns wall-clock seconds since start, clamped at zero.
func (c Clock) Elapsed(now time.Time) float32 {
	s := float32(now.Sub(c.start).Seconds())
	if s < 0 {
		return 0
	}
	return s
}

// At returns the wall-clock instant at which the clock reads simulated time t.
// A zero rate maps every t onto the start instant. The frame loop never calls
// it; it exists to replay or test a driver at a chosen simulated time.
func (c Clock) At(t float32) time.Time {
	if c.rate == 0 {
		return c.start
	}
	ms := float64(t) / float64(c.rate)
	return c.start.Add(time.Duration(ms * float64(time.Millisecond)))
}
