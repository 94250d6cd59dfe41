package controls

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/camera"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOverlay struct {
	modes []Mode
}

func (r *recordingOverlay) Show(m Mode) {
	r.modes = append(r.modes, m)
}

func newCamera() camera.Camera {
	return camera.NewCamera(camera.WithPosition(0, 0, 100))
}

func TestDoubleToggleRestoresState(t *testing.T) {
	cam := newCamera()
	hud := &recordingOverlay{}
	c := New(cam, hud)
	ship := scene.NewNode("ship")
	c.SetShip(ship)

	require.Equal(t, ModeFly, c.Mode())
	require.True(t, c.ShipAttached())
	assert.IsType(t, &camera.FlyController{}, cam.Controller())
	assertNear(t, mgl32.Vec3{0, -1, 90}, ship.WorldPosition(), 1e-6)
	assert.Equal(t, ShipScale, ship.Scale())

	c.Toggle()
	assert.Equal(t, ModeOrbit, c.Mode())
	assert.False(t, c.ShipAttached())
	assert.Nil(t, ship.Parent())
	assert.IsType(t, &camera.OrbitController{}, cam.Controller())

	c.Toggle()
	assert.Equal(t, ModeFly, c.Mode())
	assert.True(t, c.ShipAttached())
	assert.Len(t, cam.Node().Children(), 1)
	assert.Equal(t, ShipOffset, ship.Position())

	assert.Equal(t, []Mode{ModeFly, ModeOrbit, ModeFly}, hud.modes)
}

func TestShipLoadedLater(t *testing.T) {
	cam := newCamera()
	c := New(cam, nil, WithMode(ModeOrbit))
	ship := scene.NewNode("ship")

	c.SetShip(ship)
	assert.False(t, c.ShipAttached())
	assert.Equal(t, ship, c.Ship())

	c.Toggle()
	assert.True(t, c.ShipAttached())

	// Replacing the ship detaches the old one.
	other := scene.NewNode("ship2")
	c.SetShip(other)
	assert.Nil(t, ship.Parent())
	assert.True(t, c.ShipAttached())
}

func TestHandleKey(t *testing.T) {
	c := New(newCamera(), nil)
	assert.False(t, c.HandleKey(common.KeyW))
	assert.Equal(t, ModeFly, c.Mode())
	assert.True(t, c.HandleKey(common.KeyEnter))
	assert.Equal(t, ModeOrbit, c.Mode())
	assert.True(t, c.HandleKey(common.KeyKPEnter))
	assert.Equal(t, ModeFly, c.Mode())
}

func TestOrbitStartsFromCurrentPose(t *testing.T) {
	cam := newCamera()
	c := New(cam, nil, WithSettings(Settings{FlySpeed: 10}))

	// Fly forward 10 units, then switch: the orbit keeps the distance.
	c.Update(camera.Input{Pressed: func(k uint32) bool { return k == common.KeyW }}, 1)
	requireNear(t, mgl32.Vec3{0, 0, 90}, cam.Position(), 1e-4)

	c.Toggle()
	oc, ok := cam.Controller().(*camera.OrbitController)
	require.True(t, ok)
	assert.InDelta(t, 90, oc.Radius(), 1e-3)
	assertNear(t, mgl32.Vec3{0, 0, 90}, cam.Position(), 1e-3)
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
