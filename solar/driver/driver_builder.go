package driver

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
)

// DriverOption is a functional option for configuring a Driver.
type DriverOption func(*Driver)

// WithRing makes the driver refresh ring uniforms from planet host every tick.
//
// Parameters:
//   - host: index of the ring's host planet
//   - u: the uniforms to update in place
//
// Returns:
//   - DriverOption: option function to apply
func WithRing(host int, u *shading.RingUniforms) DriverOption {
	return func(d *Driver) {
		d.ringHost = host
		d.ring = u
	}
}

// WithSun makes the driver advance the sun's time uniform every tick.
//
// Parameters:
//   - u: the uniforms to update in place
//
// Returns:
//   - DriverOption: option function to apply
func WithSun(u *shading.SunUniforms) DriverOption {
	return func(d *Driver) {
		d.sun = u
	}
}

// WithRenderer sets the renderer called at the end of every tick.
func WithRenderer(r Renderer) DriverOption {
	return func(d *Driver) {
		d.renderer = r
	}
}

// WithTickHook runs fn after the uniforms are updated and before rendering.
// fn receives the seconds since the previous tick, 0 on the first.
func WithTickHook(fn func(dt float32)) DriverOption {
	return func(d *Driver) {
		d.hook = fn
	}
}

// WithLogger sets the logger for tick diagnostics.
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}
