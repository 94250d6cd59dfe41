package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(held ...uint32) func(uint32) bool {
	return func(k uint32) bool {
		for _, h := range held {
			if h == k {
				return true
			}
		}
		return false
	}
}

func forward(c Camera) mgl32.Vec3 {
	return c.Node().WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

func TestCameraMatrices(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 100), WithFov(75*math.Pi/180), WithFar(1000), WithAspect(2))
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertNear(t, mgl32.Vec3{0, 0, -100}, p.Vec3(), 1e-4)

	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.Greater(t, ndc.Z(), float32(0))
	assert.Less(t, ndc.Z(), float32(1))

	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
	c.SetAspect(1.5)
	assert.Equal(t, float32(1.5), c.Aspect())
}

func TestFrameUniform(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))
	u := c.Uniform(
		scene.PointLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: 5},
		scene.AmbientLight{Color: mgl32.Vec3{0.5, 0.5, 0.5}, Intensity: 2},
	)
	assert.Equal(t, [4]float32{1, 2, 3, 1}, u.CameraPosition)
	assert.Equal(t, [4]float32{5, 5, 5, 0}, u.LightColor)
	assert.Equal(t, [4]float32{1, 1, 1, 0}, u.Ambient)
	assert.Equal(t, 128, u.Size())
	assert.Len(t, u.Marshal(), 128)
}

func TestOrbitControllerAttach(t *testing.T) {
	oc := NewOrbitController()
	c := NewCamera(WithPosition(0, 0, 100), WithController(oc))
	assert.InDelta(t, 100, oc.Radius(), 1e-4)
	assert.InDelta(t, 0, oc.Azimuth(), 1e-6)
	assert.InDelta(t, 0, oc.Elevation(), 1e-6)
	assertNear(t, mgl32.Vec3{0, 0, -1}, forward(c), 1e-5)

	// A camera placed anywhere keeps its distance and faces the target.
	c2 := NewCamera(WithPosition(30, 40, 0))
	oc2 := NewOrbitController()
	c2.SetController(oc2)
	assert.InDelta(t, 50, oc2.Radius(), 1e-4)
	assertNear(t, mgl32.Vec3{30, 40, 0}, c2.Position(), 1e-3)
	assertNear(t, mgl32.Vec3{-0.6, -0.8, 0}, forward(c2), 1e-4)
}

func TestOrbitControllerDamping(t *testing.T) {
	oc := NewOrbitController()
	c := NewCamera(WithPosition(0, 0, 100), WithController(oc))

	c.Update(Input{Dragging: true, DragDelta: mgl32.Vec2{10, 0}}, 1.0/60)
	v0, _ := oc.Velocity()
	assert.InDelta(t, -0.05*0.95, v0, 1e-6)
	first := oc.Azimuth()
	assert.Less(t, first, float32(0))

	// Released: the camera keeps turning with decaying speed.
	prev, prevStep := first, float32(math.Inf(1))
	for range 20 {
		c.Update(Input{}, 1.0/60)
		step := prev - oc.Azimuth()
		assert.Greater(t, step, float32(0))
		assert.Less(t, step, prevStep)
		prev, prevStep = oc.Azimuth(), step
	}
	assert.InDelta(t, 100, c.Position().Len(), 1e-3)
	assertNear(t, c.Position().Mul(-0.01), forward(c), 1e-4)
}

func TestOrbitControllerClamps(t *testing.T) {
	oc := NewOrbitController(WithRadiusBounds(10, 120))
	c := NewCamera(WithPosition(0, 0, 100), WithController(oc))

	for range 200 {
		c.Update(Input{Dragging: true, DragDelta: mgl32.Vec2{0, 500}}, 1.0/60)
	}
	assert.LessOrEqual(t, oc.Elevation(), float32(math.Pi/2-0.01)+1e-6)
	assert.False(t, math.IsNaN(float64(forward(c).X())))

	c.Update(Input{Scroll: 1}, 0)
	assert.InDelta(t, 85, oc.Radius(), 1e-3)
	c.Update(Input{Scroll: 100}, 0)
	assert.Equal(t, float32(10), oc.Radius())
	c.Update(Input{Scroll: -100}, 0)
	assert.Equal(t, float32(120), oc.Radius())
}

func TestFlyControllerMoves(t *testing.T) {
	fc := NewFlyController()
	c := NewCamera(WithPosition(0, 0, 100), WithController(fc))

	c.Update(Input{Pressed: keys(common.KeyW)}, 0.1)
	assertNear(t, mgl32.Vec3{0, 0, 90}, c.Position(), 1e-4)

	c.Update(Input{Pressed: keys(common.KeyD, common.KeyR)}, 0.1)
	assertNear(t, mgl32.Vec3{10, 10, 90}, c.Position(), 1e-4)

	// Opposing keys cancel.
	c.Update(Input{Pressed: keys(common.KeyA, common.KeyD)}, 0.1)
	assertNear(t, mgl32.Vec3{10, 10, 90}, c.Position(), 1e-4)
}

func TestFlyControllerRotates(t *testing.T) {
	fc := NewFlyController()
	c := NewCamera(WithController(fc))

	c.Update(Input{Pressed: keys(common.KeyQ)}, 0.5)
	f := forward(c)
	assertNear(t, mgl32.Vec3{0, 0, -1}, f, 1e-5, "roll keeps the heading")
	up := c.Node().WorldMatrix().Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	assert.Less(t, up.X(), float32(0), "Q rolls left")

	c2 := NewCamera(WithController(NewFlyController()))
	c2.Update(Input{Dragging: true, Cursor: mgl32.Vec2{1, 0}}, 0.5)
	assert.Greater(t, forward(c2).X(), float32(0), "cursor right of centre yaws right")

	c3 := NewCamera(WithController(NewFlyController()))
	c3.Update(Input{Pressed: keys(common.KeyUp)}, 0.5)
	assert.Greater(t, forward(c3).Y(), float32(0), "up arrow pitches up")

	c4 := NewCamera(WithController(NewFlyController(WithDragToLook(false))))
	c4.Update(Input{Dragging: true, Cursor: mgl32.Vec2{1, 0}}, 0.5)
	assertNear(t, mgl32.Vec3{0, 0, -1}, forward(c4), 1e-6)
}

func TestChildFollowsCamera(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 100), WithController(NewFlyController()))
	ship := scene.NewNode("ship", scene.WithPosition(0, -1, -10), scene.WithParent(c.Node()))
	requireNear(t, mgl32.Vec3{0, -1, 90}, ship.WorldPosition(), 1e-6)

	c.Update(Input{Pressed: keys(common.KeyW)}, 0.1)
	assertNear(t, mgl32.Vec3{0, -1, 80}, ship.WorldPosition(), 1e-4)
}

// assertNear compares vectors component-wise. mgl32's ApproxEqual is relative and
// fails on components that are exactly zero.
func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}

func requireNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	require.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
