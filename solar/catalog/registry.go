package catalog

import (
	"github.com/Carmen-Shannon/oxy-solar/solar/orbit"
)

// Registry is the ordered, read-only view of a validated catalog.
type Registry struct {
	bodies  []Body
	byName  map[string]int
	planets []int
	moons   []Moon
}

func newRegistry(doc document) *Registry {
	r := &Registry{
		bodies: doc.Bodies,
		byName: make(map[string]int, len(doc.Bodies)),
		moons:  doc.Moons,
	}
	for i, b := range doc.Bodies {
		r.byName[b.Name] = i
		if b.Kind == KindPlanet {
			r.planets = append(r.planets, i)
		}
	}
	return r
}

// Bodies returns every body in catalog order, star included.
func (r *Registry) Bodies() []Body {
	out := make([]Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// Body looks a body up by name.
func (r *Registry) Body(name string) (Body, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Body{}, false
	}
	return r.bodies[i], true
}

// Star returns the central star.
func (r *Registry) Star() Body {
	for _, b := range r.bodies {
		if b.Kind == KindStar {
			return b
		}
	}
	return Body{}
}

// Planets returns the orbiting bodies in catalog order.
func (r *Registry) Planets() []Body {
	out := make([]Body, len(r.planets))
	for i, idx := range r.planets {
		out[i] = r.bodies[idx]
	}
	return out
}

// Planet returns the i-th planet, counting from zero and skipping the star.
func (r *Registry) Planet(i int) (Body, bool) {
	if i < 0 || i >= len(r.planets) {
		return Body{}, false
	}
	return r.bodies[r.planets[i]], true
}

// PlanetIndex returns the planet index of name.
func (r *Registry) PlanetIndex(name string) (int, bool) {
	for i, idx := range r.planets {
		if r.bodies[idx].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Moons returns every moon in catalog order.
func (r *Registry) Moons() []Moon {
	out := make([]Moon, len(r.moons))
	copy(out, r.moons)
	return out
}

// MoonsOf returns the moons orbiting host, in catalog order.
func (r *Registry) MoonsOf(host string) []Moon {
	var out []Moon
	for _, m := range r.moons {
		if m.Host == host {
			out = append(out, m)
		}
	}
	return out
}

// Scale converts catalog units to scene units.
type Scale struct {
	StarRadiusDiv   float32 `yaml:"star_radius_div"`
	PlanetRadiusDiv float32 `yaml:"planet_radius_div"`
	SpeedDiv        float32 `yaml:"speed_div"`
	// BaseDist is the orbital distance of the first planet; each next one adds DistStep.
	BaseDist      float32 `yaml:"base_dist"`
	DistStep      float32 `yaml:"dist_step"`
	Normalization float32 `yaml:"normalization"`
}

// DefaultScale returns the reference scene scale.
func DefaultScale() Scale {
	return Scale{
		StarRadiusDiv:   30,
		PlanetRadiusDiv: 5,
		SpeedDiv:        30,
		BaseDist:        30,
		DistStep:        30,
		Normalization:   orbit.Normalization,
	}
}

// PlanetLayout is the scene-scale state of one planet.
type PlanetLayout struct {
	Body   Body
	Index  int
	Radius float32
	Orbit  orbit.Ellipse
}

// StarRadius returns the scene radius of the central star.
func (r *Registry) StarRadius(s Scale) float32 {
	return r.Star().Radius / s.StarRadiusDiv
}

// Layout derives the planets' scene radii and orbital ellipses.
//
// Parameters:
//   - s: the unit conversion
//
// Returns:
//   - []PlanetLayout: one entry per planet, in catalog order
func (r *Registry) Layout(s Scale) []PlanetLayout {
	planets := r.Planets()
	out := make([]PlanetLayout, len(planets))
	for i, b := range planets {
		dist := s.BaseDist + s.DistStep*float32(i)
		out[i] = PlanetLayout{
			Body:   b,
			Index:  i,
			Radius: b.Radius / s.PlanetRadiusDiv,
			Orbit:  orbit.NewEllipse(dist, b.Aphelion, b.Perihelion, b.OrbitSpeed/s.SpeedDiv, s.Normalization),
		}
	}
	return out
}
