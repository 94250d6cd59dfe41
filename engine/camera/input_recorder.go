package camera

import "github.com/go-gl/mathgl/mgl32"

// InputRecorder accumulates window events between frames and hands them to
// controllers as an Input snapshot. Feed it from the window callbacks on the
// loop thread; it is not safe for concurrent use.
type InputRecorder struct {
	held          map[uint32]bool
	width, height int

	cursor     mgl32.Vec2
	haveCursor bool
	dragging   bool
	drag       mgl32.Vec2
	scroll     float32
}

// NewInputRecorder creates a recorder for a window of the given size.
func NewInputRecorder(width, height int) *InputRecorder {
	r := &InputRecorder{held: make(map[uint32]bool)}
	r.Resize(width, height)
	return r
}

// Resize sets the window size used to normalize the cursor.
func (r *InputRecorder) Resize(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
}

func (r *InputRecorder) KeyDown(key uint32) { r.held[key] = true }
func (r *InputRecorder) KeyUp(key uint32)   { delete(r.held, key) }

// Down reports whether key is currently held.
func (r *InputRecorder) Down(key uint32) bool {
	return r.held[key]
}

// ButtonDown starts a drag at the pixel position x, y.
func (r *InputRecorder) ButtonDown(x, y int32) {
	r.MouseMove(x, y)
	r.dragging = true
}

// ButtonUp ends the drag.
func (r *InputRecorder) ButtonUp(x, y int32) {
	r.MouseMove(x, y)
	r.dragging = false
}

// MouseMove records the pointer at pixel position x, y. Movement while dragging
// accumulates into the next snapshot's DragDelta.
func (r *InputRecorder) MouseMove(x, y int32) {
	p := mgl32.Vec2{float32(x), float32(y)}
	if r.haveCursor && r.dragging {
		r.drag = r.drag.Add(p.Sub(r.cursor))
	}
	r.cursor, r.haveCursor = p, true
}

// Scroll accumulates wheel movement.
func (r *InputRecorder) Scroll(delta float32) {
	r.scroll += delta
}

// Snapshot returns the input for this frame and clears the per-frame deltas.
//
// Returns:
//   - Input: held keys, the normalized cursor, drag state and the accumulated deltas
func (r *InputRecorder) Snapshot() Input {
	in := Input{
		Pressed:   r.Down,
		Dragging:  r.dragging,
		DragDelta: r.drag,
		Scroll:    r.scroll,
	}
	if r.haveCursor {
		in.Cursor = mgl32.Vec2{
			mgl32.Clamp(2*r.cursor.X()/float32(r.width)-1, -1, 1),
			mgl32.Clamp(2*r.cursor.Y()/float32(r.height)-1, -1, 1),
		}
	}
	r.drag, r.scroll = mgl32.Vec2{}, 0
	return in
}
