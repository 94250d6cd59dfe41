// Package driver advances the solar system one frame at a time.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/Carmen-Shannon/oxy-solar/solar/orbit"
	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidDriver is returned when a Driver is built from inconsistent parts.
var ErrInvalidDriver = errors.New("invalid driver")

// Renderer draws the scene after the driver has updated it.
type Renderer interface {
	Render(ctx context.Context) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context) error

func (f RendererFunc) Render(ctx context.Context) error {
	return f(ctx)
}

// Planet pairs a scene node with the ellipse it travels.
type Planet struct {
	Name  string
	Node  scene.Node
	Orbit orbit.Ellipse
}

// Moon is a pivot parented to its host planet and the body offset from it.
// The pivot turns about its local Y axis by Speed radians every tick.
type Moon struct {
	Name  string
	Pivot scene.Node
	Body  scene.Node
	Speed float32
}

// Driver owns the per-tick update of every orbiting body and the shader uniforms
// that depend on them. It is single-threaded: Tick must not be called concurrently.
type Driver struct {
	clock   orbit.Clock
	planets []Planet
	moons   []Moon

	ringHost int
	ring     *shading.RingUniforms
	sun      *shading.SunUniforms

	renderer Renderer
	hook     func(dt float32)
	logger   *slog.Logger

	t       float32
	last    time.Time
	ticks   uint64
	started bool
}

// New creates a Driver.
//
// Parameters:
//   - clock: the clock supplying simulated and elapsed time
//   - planets: the orbiting bodies, in catalog order
//   - moons: the moon pivots
//   - options: functional options
//
// Returns:
//   - *Driver: the driver
//   - error: wraps ErrInvalidDriver when a node is missing or the ring host is out of range
func New(clock orbit.Clock, planets []Planet, moons []Moon, options ...DriverOption) (*Driver, error) {
	d := &Driver{
		clock:    clock,
		planets:  planets,
		moons:    moons,
		ringHost: -1,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(d)
	}

	for i, p := range d.planets {
		if p.Node == nil {
			return nil, fmt.Errorf("%w: planet %d (%s) has no node", ErrInvalidDriver, i, p.Name)
		}
	}
	for i, m := range d.moons {
		if m.Pivot == nil || m.Body == nil {
			return nil, fmt.Errorf("%w: moon %d (%s) is missing its pivot or body", ErrInvalidDriver, i, m.Name)
		}
	}
	if d.ring != nil && (d.ringHost < 0 || d.ringHost >= len(d.planets)) {
		return nil, fmt.Errorf("%w: ring host index %d out of range", ErrInvalidDriver, d.ringHost)
	}
	return d, nil
}

// Tick advances the system to now and renders it.
//
// Order: simulated time, planet positions, ring uniforms (reading the host's new
// position), moon pivots, sun time, the tick hook, then the renderer.
//
// Parameters:
//   - ctx: passed to the renderer
//   - now: the wall-clock instant of this frame
//
// Returns:
//   - error: the renderer's error, wrapped
func (d *Driver) Tick(ctx context.Context, now time.Time) error {
	d.t = d.clock.Sim(now)

	for _, p := range d.planets {
		x, y := orbit.Position(d.t, p.Orbit)
		p.Node.SetPosition(mgl32.Vec3{x, y, 0})
	}

	if d.ring != nil {
		d.ring.Update(d.planets[d.ringHost].Node.WorldPosition())
	}

	for _, m := range d.moons {
		r := m.Pivot.Rotation()
		r[1] = common.WrapAngle(r[1] + m.Speed)
		m.Pivot.SetRotation(r)
	}

	if d.sun != nil {
		d.sun.Time = d.clock.Elapsed(now)
	}

	var dt float32
	if d.started {
		dt = float32(now.Sub(d.last).Seconds())
		if dt < 0 {
			d.logger.Debug("frame instant went backwards", "tick", d.ticks, "by", d.last.Sub(now))
			dt = 0
		}
	}
	d.last, d.started = now, true
	d.ticks++

	if d.hook != nil {
		d.hook(dt)
	}

	if d.renderer == nil {
		return nil
	}
	if err := d.renderer.Render(ctx); err != nil {
		return fmt.Errorf("render tick %d: %w", d.ticks, err)
	}
	return nil
}

// Time returns the simulated time of the last tick.
func (d *Driver) Time() float32 {
	return d.t
}

// Ticks returns how many ticks have run.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Clock returns the driver's clock.
func (d *Driver) Clock() orbit.Clock {
	return d.clock
}

// Planets returns the number of planets.
func (d *Driver) Planets() int {
	return len(d.planets)
}

// Moons returns the number of moons.
func (d *Driver) Moons() int {
	return len(d.moons)
}

// PlanetPosition returns planet i's local position, or the zero vector when out of range.
func (d *Driver) PlanetPosition(i int) mgl32.Vec3 {
	if i < 0 || i >= len(d.planets) {
		return mgl32.Vec3{}
	}
	return d.planets[i].Node.Position()
}

// PivotAngle returns moon j's accumulated pivot angle in [0, 2π).
func (d *Driver) PivotAngle(j int) float32 {
	if j < 0 || j >= len(d.moons) {
		return 0
	}
	return d.moons[j].Pivot.Rotation().Y()
}

// MoonOffset returns moon j's world position relative to its pivot's world origin.
func (d *Driver) MoonOffset(j int) mgl32.Vec3 {
	if j < 0 || j >= len(d.moons) {
		return mgl32.Vec3{}
	}
	m := d.moons[j]
	return m.Body.WorldPosition().Sub(m.Pivot.WorldPosition())
}

// Ring returns a copy of the ring uniforms, and false when the driver has no ring.
func (d *Driver) Ring() (shading.RingUniforms, bool) {
	if d.ring == nil {
		return shading.RingUniforms{}, false
	}
	return *d.ring, true
}

// Sun returns a copy of the sun uniforms, and false when the driver has no sun.
func (d *Driver) Sun() (shading.SunUniforms, bool) {
	if d.sun == nil {
		return shading.SunUniforms{}, false
	}
	return *d.sun, true
}
