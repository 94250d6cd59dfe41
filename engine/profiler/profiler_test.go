package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewProfiler(WithLogger(logger), WithInterval(time.Second))

	start := p.lastTime
	for i := 1; i < 60; i++ {
		assert.False(t, p.TickAt(start.Add(time.Duration(i)*time.Second/60)))
	}
	assert.True(t, p.TickAt(start.Add(time.Second)))
	assert.InDelta(t, 60, p.Last().FPS, 1e-9)
	assert.Contains(t, buf.String(), "fps=60")

	// The window restarts at the report.
	assert.False(t, p.TickAt(start.Add(1500*time.Millisecond)))
}

func TestProfilerIgnoresBadInterval(t *testing.T) {
	p := NewProfiler(WithInterval(-1))
	assert.Equal(t, time.Second, p.updateInterval)
}
