// Package window owns the native window, its WebGPU surface descriptor and the
// input callbacks. It is polled from the frame loop on the main thread.
package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window defines the interface for a platform window. Callbacks fire from inside
// PollEvents on the calling goroutine.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: receives the new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the function called on mouse wheel movement.
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function called when a key is pressed or repeats.
	// Escape never reaches it: it closes the window.
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function called when a key is released.
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the function called when the primary mouse button is pressed.
	//
	// Parameters:
	//   - callback: receives the cursor position in pixels
	SetMouseDownCallback(callback func(x, y int32))

	// SetMouseUpCallback sets the function called when the primary mouse button is released.
	SetMouseUpCallback(callback func(x, y int32))

	// SetMouseMoveCallback sets the function called when the cursor moves.
	SetMouseMoveCallback(callback func(x, y int32))

	// SetTitle replaces the title bar text.
	SetTitle(title string)

	// SurfaceDescriptor returns the descriptor the renderer creates its surface from.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PollEvents dispatches pending window events to the callbacks.
	//
	// Returns:
	//   - bool: false once the window has been asked to close
	PollEvents() bool

	// IsRunning reports whether the window is open.
	IsRunning() bool

	// Close destroys the window.
	Close() error

	Width() int
	Height() int
}

// engineWindow holds the platform-independent window state.
type engineWindow struct {
	title string

	// Size limits; 0 leaves a bound unconstrained.
	maxWidth, maxHeight int
	minWidth, minHeight int

	width, height int

	// internalWindow is the platform implementation.
	internalWindow any

	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(x, y int32)
	onMouseUp   func(x, y int32)
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a platform window. It must be called from the main goroutine.
//
// Parameters:
//   - options: variadic list of WindowBuilderOption functions
//
// Returns:
//   - Window: the open window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy-solar",
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(x, y int32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(x, y int32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
