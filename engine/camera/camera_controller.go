package camera

import "github.com/go-gl/mathgl/mgl32"

// Input is one frame's snapshot of the user input a Controller reads.
// It decouples controllers from the window so they can be driven from tests.
type Input struct {
	// Pressed reports whether a key (common.Key*) is held. Nil means no keys.
	Pressed func(key uint32) bool
	// Cursor is the pointer position normalized to [-1, 1] from the window centre,
	// with +X right and +Y down.
	Cursor mgl32.Vec2
	// Dragging is true while the primary mouse button is held.
	Dragging bool
	// DragDelta is the pointer movement in pixels since the previous frame while dragging.
	DragDelta mgl32.Vec2
	// Scroll is the wheel movement since the previous frame, positive away from the user.
	Scroll float32
}

// Down reports whether key is held.
func (in Input) Down(key uint32) bool {
	return in.Pressed != nil && in.Pressed(key)
}

// axis returns +1, -1 or 0 for a pair of opposing keys.
func (in Input) axis(pos, neg uint32) float32 {
	var v float32
	if in.Down(pos) {
		v++
	}
	if in.Down(neg) {
		v--
	}
	return v
}

// Controller moves a Camera's node from per-frame input.
type Controller interface {
	// Attach initializes the controller's state from the camera's current pose.
	// Camera.SetController calls it.
	//
	// Parameters:
	//   - cam: the camera being controlled
	Attach(cam Camera)

	// Update applies one frame of input.
	//
	// Parameters:
	//   - cam: the camera being controlled
	//   - in: the input snapshot
	//   - dt: seconds since the previous frame
	Update(cam Camera, in Input, dt float32)
}

// lookRotation returns the orientation of an object at eye facing target with +Y up.
// The object's -Z axis points at the target.
func lookRotation(eye, target mgl32.Vec3) mgl32.Quat {
	f := target.Sub(eye)
	if f.Len() < 1e-8 {
		return mgl32.QuatIdent()
	}
	f = f.Normalize()
	r := f.Cross(mgl32.Vec3{0, 1, 0})
	if r.Len() < 1e-8 {
		r = mgl32.Vec3{1, 0, 0}
	}
	r = r.Normalize()
	u := r.Cross(f)
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(r, u, f.Mul(-1)).Mat4()).Normalize()
}
