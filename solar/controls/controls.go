// Package controls switches the camera between fly and orbit control and carries
// the spacecraft along with the camera in fly mode.
package controls

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/camera"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/Carmen-Shannon/oxy-solar/solar/hud"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the active control mode.
type Mode = hud.Mode

const (
	ModeFly   = hud.ModeFly
	ModeOrbit = hud.ModeOrbit
)

// Ship placement relative to the camera in fly mode.
var (
	ShipOffset = mgl32.Vec3{0, -1, -10}
	ShipScale  = mgl32.Vec3{0.5, 0.5, 0.5}
)

// Settings are the tunables used whenever a fresh controller is built.
type Settings struct {
	FlySpeed         float32
	RollSpeed        float32
	Damping          float32
	ZoomSpeed        float32
	MouseSensitivity float32
}

// Controls owns the camera controller, the spacecraft attachment and the HUD.
// It is driven from the frame loop only.
type Controls struct {
	cam      camera.Camera
	overlay  hud.Overlay
	settings Settings
	mode     Mode
	ship     scene.Node
	logger   *slog.Logger
}

// New creates Controls in the initial mode, installs its controller and shows the HUD.
//
// Parameters:
//   - cam: the camera to drive
//   - overlay: the HUD, may be nil
//   - options: functional options
//
// Returns:
//   - *Controls: the controls
func New(cam camera.Camera, overlay hud.Overlay, options ...ControlsOption) *Controls {
	c := &Controls{
		cam:     cam,
		overlay: overlay,
		settings: Settings{
			FlySpeed:         100,
			RollSpeed:        common.TwoPi / 10,
			Damping:          0.05,
			ZoomSpeed:        15,
			MouseSensitivity: 0.005,
		},
		mode:   ModeFly,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.apply()
	return c
}

// Mode returns the active mode.
func (c *Controls) Mode() Mode {
	return c.mode
}

// Toggle flips between fly and orbit mode.
func (c *Controls) Toggle() {
	if c.mode == ModeFly {
		c.SetMode(ModeOrbit)
	} else {
		c.SetMode(ModeFly)
	}
}

// SetMode switches to mode. Every call builds a fresh controller from the
// camera's current pose and refreshes the HUD, even if the mode is unchanged.
func (c *Controls) SetMode(mode Mode) {
	c.mode = mode
	c.apply()
	c.logger.Debug("camera mode", "mode", mode)
}

// SetShip supplies the spacecraft node once it has loaded. It is attached to the
// camera immediately when fly mode is active.
//
// Parameters:
//   - ship: the spacecraft root node
func (c *Controls) SetShip(ship scene.Node) {
	if c.ship != nil && c.ship != ship {
		c.cam.Node().Remove(c.ship)
	}
	c.ship = ship
	if ship == nil {
		return
	}
	ship.SetPosition(ShipOffset)
	ship.SetScale(ShipScale)
	c.attachShip()
}

// Ship returns the spacecraft node, or nil before it loads.
func (c *Controls) Ship() scene.Node {
	return c.ship
}

// ShipAttached reports whether the spacecraft currently rides with the camera.
func (c *Controls) ShipAttached() bool {
	return c.ship != nil && c.ship.Parent() == c.cam.Node()
}

// HandleKey toggles the mode on Enter.
//
// Parameters:
//   - key: the pressed key code
//
// Returns:
//   - bool: true if the key was consumed
func (c *Controls) HandleKey(key uint32) bool {
	if key == common.KeyEnter || key == common.KeyKPEnter {
		c.Toggle()
		return true
	}
	return false
}

// Update moves the camera with this frame's input.
//
// Parameters:
//   - in: the input snapshot
//   - dt: seconds since the previous frame
func (c *Controls) Update(in camera.Input, dt float32) {
	c.cam.Update(in, dt)
}

func (c *Controls) apply() {
	switch c.mode {
	case ModeOrbit:
		c.cam.SetController(camera.NewOrbitController(
			camera.WithDamping(c.settings.Damping),
			camera.WithZoomSpeed(c.settings.ZoomSpeed),
			camera.WithMouseSensitivity(c.settings.MouseSensitivity),
		))
	default:
		c.cam.SetController(camera.NewFlyController(
			camera.WithMovementSpeed(c.settings.FlySpeed),
			camera.WithRollSpeed(c.settings.RollSpeed),
			camera.WithDragToLook(true),
		))
	}
	c.attachShip()
	if c.overlay != nil {
		c.overlay.Show(c.mode)
	}
}

func (c *Controls) attachShip() {
	if c.ship == nil {
		return
	}
	if c.mode == ModeFly {
		c.cam.Node().Add(c.ship)
	} else {
		c.cam.Node().Remove(c.ship)
	}
}
