package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	open     int
	polls    int
	onResize func(width, height int)
}

func (w *fakeWindow) PollEvents() bool {
	w.polls++
	return w.polls <= w.open
}

func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) {
	w.onResize = cb
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	w := &fakeWindow{open: 3}
	var seen []time.Time
	e := NewEngine(WithWindow(w), WithFrameCallback(func(_ context.Context, now time.Time) error {
		seen = append(seen, now)
		return errors.New("surface lost")
	}))

	require.NoError(t, e.Run(context.Background()))
	assert.Len(t, seen, 3)
	assert.EqualValues(t, 3, e.Frames())
}

func TestRunHonoursQuitAndContext(t *testing.T) {
	w := &fakeWindow{open: 1000}
	var e Engine
	e = NewEngine(WithWindow(w), WithFrameCallback(func(context.Context, time.Time) error {
		if e.Frames() == 4 {
			e.Quit()
		}
		return nil
	}))
	require.NoError(t, e.Run(context.Background()))
	assert.EqualValues(t, 5, e.Frames())
	e.Quit()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e2 := NewEngine(WithWindow(&fakeWindow{open: 10}))
	assert.ErrorIs(t, e2.Run(ctx), context.Canceled)

	assert.ErrorIs(t, NewEngine().Run(context.Background()), ErrNoWindow)
}

func TestFrameLimitSleepsRemainder(t *testing.T) {
	w := &fakeWindow{open: 2}
	e := NewEngine(WithWindow(w), WithRenderFrameLimit(50)).(*engine)
	clock := time.Unix(0, 0)
	e.now = func() time.Time {
		clock = clock.Add(5 * time.Millisecond)
		return clock
	}
	var slept []time.Duration
	e.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, []time.Duration{15 * time.Millisecond, 15 * time.Millisecond}, slept)
}

func TestResizeCallbacks(t *testing.T) {
	w := &fakeWindow{}
	e := NewEngine(WithWindow(w))
	var got [][2]int
	e.OnResize(func(width, height int) { got = append(got, [2]int{width, height}) })

	require.NotNil(t, w.onResize)
	w.onResize(800, 600)
	w.onResize(0, 600)
	assert.Equal(t, [][2]int{{800, 600}}, got)
}
