package camera

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitController circles the camera around a target using spherical coordinates
// (radius, azimuth, elevation). Mouse drags feed angular velocity which decays by
// the damping factor each frame; the wheel changes the radius.
type OrbitController struct {
	target mgl32.Vec3

	radius    float32
	azimuth   float32 // around +Y, 0 = +Z
	elevation float32 // from the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	damping          float32

	azimuthVelocity   float32
	elevationVelocity float32
}

var _ Controller = &OrbitController{}

// NewOrbitController creates an orbit controller around the origin.
// Its spherical coordinates are taken from the camera when attached.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - *OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) *OrbitController {
	oc := &OrbitController{
		radius:           100,
		minRadius:        1,
		maxRadius:        2000,
		minElevation:     -(math.Pi/2 - 0.01),
		maxElevation:     math.Pi/2 - 0.01,
		mouseSensitivity: 0.005,
		zoomSpeed:        15,
		damping:          0.05,
	}
	for _, option := range options {
		option(oc)
	}
	return oc
}

func (oc *OrbitController) Attach(cam Camera) {
	off := cam.Node().Position().Sub(oc.target)
	oc.radius = oc.clampRadius(off.Len())
	if off.Len() > 1e-8 {
		oc.azimuth = math32.Atan2(off.X(), off.Z())
		oc.elevation = oc.clampElevation(math32.Asin(mgl32.Clamp(off.Y()/off.Len(), -1, 1)))
	}
	oc.azimuthVelocity, oc.elevationVelocity = 0, 0
	oc.apply(cam)
}

func (oc *OrbitController) Update(cam Camera, in Input, dt float32) {
	if in.Dragging {
		oc.azimuthVelocity -= in.DragDelta.X() * oc.mouseSensitivity
		oc.elevationVelocity += in.DragDelta.Y() * oc.mouseSensitivity
	}
	if in.Scroll != 0 {
		oc.radius = oc.clampRadius(oc.radius - in.Scroll*oc.zoomSpeed)
	}

	oc.azimuth += oc.azimuthVelocity * oc.damping
	oc.elevation = oc.clampElevation(oc.elevation + oc.elevationVelocity*oc.damping)
	oc.azimuthVelocity *= 1 - oc.damping
	oc.elevationVelocity *= 1 - oc.damping

	oc.apply(cam)
}

// Position returns the eye position implied by the spherical coordinates.
func (oc *OrbitController) Position() mgl32.Vec3 {
	cosElev, sinElev := math32.Cos(oc.elevation), math32.Sin(oc.elevation)
	return oc.target.Add(mgl32.Vec3{
		oc.radius * cosElev * math32.Sin(oc.azimuth),
		oc.radius * sinElev,
		oc.radius * cosElev * math32.Cos(oc.azimuth),
	})
}

func (oc *OrbitController) Target() mgl32.Vec3 { return oc.target }
func (oc *OrbitController) Radius() float32     { return oc.radius }
func (oc *OrbitController) Azimuth() float32    { return oc.azimuth }
func (oc *OrbitController) Elevation() float32  { return oc.elevation }

// Velocity returns the remaining angular velocity (azimuth, elevation).
func (oc *OrbitController) Velocity() (float32, float32) {
	return oc.azimuthVelocity, oc.elevationVelocity
}

func (oc *OrbitController) apply(cam Camera) {
	eye := oc.Position()
	cam.Node().SetPosition(eye)
	cam.Node().SetOrientation(lookRotation(eye, oc.target))
}

func (oc *OrbitController) clampRadius(r float32) float32 {
	return mgl32.Clamp(r, oc.minRadius, oc.maxRadius)
}

func (oc *OrbitController) clampElevation(e float32) float32 {
	return mgl32.Clamp(e, oc.minElevation, oc.maxElevation)
}
