package orbit

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ellipses of the default nine-body layout: dist = 30·(i+1), F over 120.
var layoutEllipses = []Ellipse{
	NewEllipse(30, 69.8*3, 46*3, 4.787/30, Normalization),
	NewEllipse(60, 109*1.2, 107*1.2, 3.502/30, Normalization),
	NewEllipse(90, 152/1.3, 147/1.3, 2.978/30, Normalization),
	NewEllipse(120, 249/1.9, 206/1.9, 2.4077/30, Normalization),
	NewEllipse(150, 817.0/6, 741.0/6, 1.307/30, Normalization),
	NewEllipse(180, 1510.0/10, 1350.0/10, 0.969/30, Normalization),
	NewEllipse(210, 3000.0/18, 2750.0/18, 0.681/30, Normalization),
	NewEllipse(240, 4550.0/25, 4450.0/25, 0.543/30, Normalization),
}

func TestPositionStaysOnEllipse(t *testing.T) {
	times := []float32{0, 0.37, 1, 12.5, 400, 9876.5}
	for i, e := range layoutEllipses {
		a, b := e.SemiAxes()
		for _, tm := range times {
			x, y := Position(tm, e)
			got := (x/a)*(x/a) + (y/b)*(y/b)
			assert.InDeltaf(t, 1, got, 1e-4, "body %d at t=%v", i, tm)
		}
	}
}

func TestStarIsFixedAtOrigin(t *testing.T) {
	for _, tm := range []float32{0, 1, 1e6} {
		x, y := Position(tm, Fixed)
		assert.Zero(t, x)
		assert.Zero(t, y)
	}
	// Speed alone does not move a body with no distance.
	x, y := Position(42, Ellipse{Speed: 3})
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestPositionAtZeroAndQuarterTurn(t *testing.T) {
	for i, e := range layoutEllipses {
		x, y := Position(0, e)
		assert.InDeltaf(t, e.F1*e.Dist, x, 1e-4, "body %d", i)
		assert.InDeltaf(t, 0, y, 1e-4, "body %d", i)

		quarter := (math32.Pi / 2) / e.Speed
		x, y = Position(quarter, e)
		assert.InDeltaf(t, 0, x, 1e-2, "body %d", i)
		assert.InDeltaf(t, e.F2*e.Dist, y, 1e-2, "body %d", i)
	}
}

func TestNewEllipseFactors(t *testing.T) {
	e := NewEllipse(30, 240, 120, 1, Normalization)
	assert.Equal(t, float32(2), e.F1)
	assert.Equal(t, float32(1), e.F2)
	a, b := e.SemiAxes()
	assert.Equal(t, float32(60), a)
	assert.Equal(t, float32(30), b)
}

func TestPointsClosed(t *testing.T) {
	e := layoutEllipses[2]
	pts := e.Points(100)
	require.Len(t, pts, 101)
	assert.Equal(t, pts[0], pts[100])
	a, _ := e.SemiAxes()
	assert.InDelta(t, a, pts[0][0], 1e-4)
	assert.Len(t, e.Points(1), 4)
}

func TestClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock(start, DefaultRate)

	assert.Equal(t, float32(0), c.Sim(start))
	assert.InDelta(t, 2.5, c.Sim(start.Add(2500*time.Millisecond)), 1e-6)
	assert.InDelta(t, 2.5, c.Elapsed(start.Add(2500*time.Millisecond)), 1e-6)
	assert.Equal(t, float32(0), c.Sim(start.Add(-time.Second)))
	assert.Equal(t, float32(0), c.Elapsed(start.Add(-time.Second)))

	at := c.At(4)
	assert.WithinDuration(t, start.Add(4*time.Second), at, time.Millisecond)
	assert.InDelta(t, 4, c.Sim(at), 1e-4)
	assert.Equal(t, start, NewClock(start, 0).At(4))
}

func TestClockLongRun(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock(start, 1)

	// Sub-millisecond offsets are not truncated away.
	assert.InDelta(t, 0.5, c.Sim(start.Add(500*time.Microsecond)), 1e-6)
	assert.InDelta(t, 1.5, c.Sim(start.Add(1500*time.Microsecond)), 1e-6)

	// Four hours in, a single millisecond still moves simulated time.
	base := start.Add(4 * time.Hour)
	a, b := c.Sim(base), c.Sim(base.Add(time.Millisecond))
	assert.Equal(t, float32(14_400_000), a)
	assert.Equal(t, float32(1), b-a)

	// After a month at the default rate the result is the float64 value rounded once.
	slow := NewClock(start, DefaultRate)
	now := start.Add(30*24*time.Hour + 7*time.Millisecond)
	want := now.Sub(start).Seconds() * 1000 * float64(DefaultRate)
	assert.Equal(t, float32(want), slow.Sim(now))
}

func TestClockMonotonic(t *testing.T) {
	start := time.Now()
	c := NewClock(start, DefaultRate)
	prev := float32(-1)
	for i := 0; i < 50; i++ {
		s := c.Sim(start.Add(time.Duration(i) * 16 * time.Millisecond))
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
}
