package system

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/Carmen-Shannon/oxy-solar/solar/catalog"
	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
)

// SystemOption is a functional option for configuring a System.
type SystemOption func(*System)

// WithScale sets the catalog-to-scene unit conversion.
func WithScale(sc catalog.Scale) SystemOption {
	return func(s *System) {
		s.scale = sc
	}
}

// WithRing places a ring system with uniforms u around the named planet.
// An empty host disables the ring.
//
// Parameters:
//   - host: the planet carrying the ring
//   - u: the initial ring uniforms
//
// Returns:
//   - SystemOption: option function to apply
func WithRing(host string, u shading.RingUniforms) SystemOption {
	return func(s *System) {
		s.ringHostName = host
		s.ringUniforms = u
	}
}

// WithTexturePattern sets the fmt pattern that maps a body's texture name to an
// asset path. An empty pattern requests no textures.
func WithTexturePattern(pattern string) SystemOption {
	return func(s *System) {
		s.texturePattern = pattern
	}
}

// WithSpacecraft sets the spacecraft model path. An empty path loads no spacecraft.
func WithSpacecraft(path string) SystemOption {
	return func(s *System) {
		s.spacecraft = path
	}
}

// WithShipHandler sets fn to receive the spacecraft node once it has loaded.
func WithShipHandler(fn func(scene.Node)) SystemOption {
	return func(s *System) {
		s.onShip = fn
	}
}

// WithLights replaces the ambient and point lights.
//
// Parameters:
//   - ambient: the ambient light
//   - light: the point light at the sun
//
// Returns:
//   - SystemOption: option function to apply
func WithLights(ambient scene.AmbientLight, light scene.PointLight) SystemOption {
	return func(s *System) {
		s.ambient = ambient
		s.light = light
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SystemOption {
	return func(s *System) {
		if l != nil {
			s.logger = l
		}
	}
}
