package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/go-gl/mathgl/mgl32"
)

// FlyController steers the camera like a spacecraft in its own frame of reference.
//
// Keys: W/S forward and back, A/D strafe, R/F up and down, Q/E roll, arrow keys
// pitch and yaw. With drag-to-look, holding the mouse button yaws and pitches in
// proportion to the cursor's distance from the window centre.
type FlyController struct {
	movementSpeed float32
	rollSpeed     float32
	dragToLook    bool
}

var _ Controller = &FlyController{}

// NewFlyController creates a fly controller with movement speed 100 units/s,
// roll speed π/5 rad/s and drag-to-look enabled.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - *FlyController: the newly created controller
func NewFlyController(options ...FlyControllerOption) *FlyController {
	fc := &FlyController{
		movementSpeed: 100,
		rollSpeed:     math.Pi / 5,
		dragToLook:    true,
	}
	for _, option := range options {
		option(fc)
	}
	return fc
}

// Attach keeps the camera's current pose.
func (fc *FlyController) Attach(Camera) {}

func (fc *FlyController) Update(cam Camera, in Input, dt float32) {
	move, rot := fc.vectors(in)

	node := cam.Node()
	q := node.Orientation()
	if move.Len() > 0 {
		node.SetPosition(node.Position().Add(q.Rotate(move.Mul(dt * fc.movementSpeed))))
	}
	if rot.Len() > 0 {
		step := mgl32.Quat{W: 1, V: rot.Mul(dt * fc.rollSpeed)}.Normalize()
		node.SetOrientation(q.Mul(step).Normalize())
	}
}

// vectors maps the input to a local move direction and a local rotation axis.
func (fc *FlyController) vectors(in Input) (move, rot mgl32.Vec3) {
	move = mgl32.Vec3{
		in.axis(common.KeyD, common.KeyA),
		in.axis(common.KeyR, common.KeyF),
		in.axis(common.KeyS, common.KeyW),
	}

	pitchUp := in.axis(common.KeyUp, common.KeyDown)
	yawLeft := in.axis(common.KeyLeft, common.KeyRight)
	if in.Dragging && fc.dragToLook {
		yawLeft = -in.Cursor.X()
		pitchUp = -in.Cursor.Y()
	}
	rot = mgl32.Vec3{pitchUp, yawLeft, in.axis(common.KeyQ, common.KeyE)}
	return
}

func (fc *FlyController) MovementSpeed() float32 { return fc.movementSpeed }
func (fc *FlyController) RollSpeed() float32     { return fc.rollSpeed }
