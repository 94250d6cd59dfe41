// Package engine runs the frame loop: poll window events, run the frame callback,
// then throttle to the optional frame limit. Everything happens on the calling
// goroutine, which must be the one that created the window.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-solar/engine/profiler"
)

// ErrNoWindow is returned by Run when the engine has no window to poll.
var ErrNoWindow = errors.New("engine has no window")

// FrameFunc advances and draws one frame at now.
type FrameFunc func(ctx context.Context, now time.Time) error

// Window is the part of window.Window the loop needs.
type Window interface {
	// PollEvents dispatches pending events and reports whether the window is still open.
	PollEvents() bool
	SetResizeCallback(callback func(width, height int))
}

// engine implements the Engine interface.
type engine struct {
	window Window

	quitChannel chan struct{}
	quitOnce    sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback    FrameFunc
	resizeCallbacks  []func(width, height int)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	logger *slog.Logger
	now    func() time.Time
	sleep  func(time.Duration)
	frames uint64
}

// Engine is the main entry point for the engine. It owns the frame loop.
type Engine interface {
	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called once per frame after events are polled.
	// An error is logged and the loop continues.
	//
	// Parameters:
	//   - callback: the per-frame function
	SetFrameCallback(callback FrameFunc)

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// OnResize registers a function called with the new framebuffer size.
	OnResize(callback func(width, height int))

	// Frames returns how many frames have run.
	Frames() uint64

	// Run polls and renders frames until the window closes, ctx is done or Quit is called.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ErrNoWindow, ctx's error when cancelled, or nil on a normal close
	Run(ctx context.Context) error

	// Quit stops the loop after the current frame. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		logger:      slog.Default(),
		now:         time.Now,
		sleep:       time.Sleep,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if width <= 0 || height <= 0 {
				return
			}
			for _, cb := range e.resizeCallbacks {
				cb(width, height)
			}
		})
	}
	return e
}

func (e *engine) Run(ctx context.Context) error {
	if e.window == nil {
		return ErrNoWindow
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		default:
		}

		if !e.window.PollEvents() {
			return nil
		}

		start := e.now()
		if e.frameCallback != nil {
			if err := e.frameCallback(ctx, start); err != nil {
				e.logger.Warn("frame failed", "frame", e.frames, "err", err)
			}
		}
		e.frames++

		if e.profilingEnabled {
			e.profiler.TickAt(e.now())
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
				e.sleep(remaining)
			}
		}
	}
}

// Quit closes the quit channel once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback FrameFunc) {
	e.frameCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) OnResize(callback func(width, height int)) {
	e.resizeCallbacks = append(e.resizeCallbacks, callback)
}

func (e *engine) Frames() uint64 {
	return e.frames
}
