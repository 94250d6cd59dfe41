package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	node scene.Node

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller Controller
}

// Camera defines the interface for the camera system.
// The camera's pose is a scene.Node, so objects can be parented to it and follow it.
// An attached Controller moves that node each frame in Update; the camera then
// recomputes its view and projection matrices from the node's world transform.
//
// A Camera is not safe for concurrent use. It belongs to the frame loop.
type Camera interface {
	// Node returns the scene node carrying the camera's pose.
	//
	// Returns:
	//   - scene.Node: the camera node
	Node() scene.Node

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the world position
	Position() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the view matrix computed by the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the attached Controller, or nil.
	Controller() Controller

	// SetController attaches a Controller and lets it initialize from the current pose.
	// Passing nil detaches the current controller.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl Controller)

	// Update advances the attached controller by dt seconds of input, then
	// recomputes the matrices. Without a controller only the matrices are refreshed.
	//
	// Parameters:
	//   - in: the input snapshot for this frame
	//   - dt: seconds since the previous frame
	Update(in Input, dt float32)

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height).
	// Non-positive values are ignored, which happens while a window is minimized.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	SetFar(far float32)

	// Uniform packs the per-frame uniform shared by every pipeline.
	//
	// Parameters:
	//   - light: the scene's point light
	//   - ambient: the scene's ambient light
	//
	// Returns:
	//   - GPUFrameUniform: the frame uniform
	Uniform(light scene.PointLight, ambient scene.AmbientLight) GPUFrameUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		node:   scene.NewNode("camera"),
		fov:    45.0 * (math.Pi / 180.0),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.controller.Attach(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Node() scene.Node {
	return c.node
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.node.WorldPosition()
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() Controller {
	return c.controller
}

func (c *cameraImpl) SetController(ctrl Controller) {
	c.controller = ctrl
	if ctrl != nil {
		ctrl.Attach(c)
	}
	c.updateMatrices()
}

func (c *cameraImpl) Update(in Input, dt float32) {
	if c.controller != nil {
		c.controller.Update(c, in, dt)
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Uniform(light scene.PointLight, ambient scene.AmbientLight) GPUFrameUniform {
	pos := c.Position()
	amb := ambient.Radiance()
	lc := light.Color.Mul(light.Intensity)
	return GPUFrameUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: [4]float32{pos[0], pos[1], pos[2], 1},
		LightPosition:  [4]float32{light.Position[0], light.Position[1], light.Position[2], 1},
		LightColor:     [4]float32{lc[0], lc[1], lc[2], 0},
		Ambient:        [4]float32{amb[0], amb[1], amb[2], 0},
	}
}

// updateMatrices recalculates the view, projection and view-projection matrices
// from the node's world transform.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = c.node.WorldMatrix().Inv()
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
