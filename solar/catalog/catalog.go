// Package catalog holds the immutable parameters of every celestial body in
// the scene and derives their scene-scale layout.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog wraps every validation failure reported by Load.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Kind distinguishes the central star from orbiting planets.
type Kind string

const (
	KindStar   Kind = "star"
	KindPlanet Kind = "planet"
)

// Body is one entry of the body table. Perihelion and Aphelion are zero for the star.
type Body struct {
	Name       string  `yaml:"name"`
	Kind       Kind    `yaml:"kind"`
	Radius     float32 `yaml:"radius"`
	OrbitSpeed float32 `yaml:"orbit_speed"`
	Perihelion float32 `yaml:"perihelion"`
	Aphelion   float32 `yaml:"aphelion"`
	// Texture overrides the texture name; the body name is used when empty.
	Texture string `yaml:"texture"`
}

// TextureName returns the name substituted into the texture path pattern.
func (b Body) TextureName() string {
	if b.Texture != "" {
		return b.Texture
	}
	return b.Name
}

// Moon is a satellite that circles its host on a rotating pivot.
type Moon struct {
	Name   string  `yaml:"name"`
	Host   string  `yaml:"host"`
	Radius float32 `yaml:"radius"`
	Dist   float32 `yaml:"dist"`
	// Speed is the pivot rotation added every tick, in radians.
	Speed float32 `yaml:"speed"`
	Color Color   `yaml:"color"`
	// Tilt is the pivot's fixed rotation about X, in radians.
	Tilt float32 `yaml:"tilt"`
}

// Color is a hex color string in YAML and a colorful.Color in Go.
type Color struct {
	colorful.Color
}

// UnmarshalYAML parses "#rrggbb" or "#rgb".
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	c.Color = parsed
	return nil
}

// MarshalYAML writes the color back as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// RGBA8 returns the color as 8-bit channels with full alpha.
func (c Color) RGBA8() (r, g, b, a uint8) {
	r, g, b = c.Clamped().RGB255()
	return r, g, b, 255
}

// Vec returns the color as float32 linear channels.
func (c Color) Vec() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

type document struct {
	Bodies []Body `yaml:"bodies"`
	Moons  []Moon `yaml:"moons"`
}

// Default returns the registry built from the embedded reference catalog.
func Default() *Registry {
	r, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return r
}

// LoadFile reads a catalog from path.
//
// Parameters:
//   - path: YAML file with bodies and moons sections
//
// Returns:
//   - *Registry: the validated registry
//   - error: a read, parse or validation error
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	r, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Load parses and validates a catalog document.
//
// Parameters:
//   - rd: YAML source
//
// Returns:
//   - *Registry: the validated registry
//   - error: a parse error or a validation error wrapping ErrInvalidCatalog
func Load(rd io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i := range doc.Bodies {
		if doc.Bodies[i].Kind == "" {
			doc.Bodies[i].Kind = KindPlanet
		}
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return newRegistry(doc), nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}

func validate(doc document) error {
	if len(doc.Bodies) == 0 {
		return invalid("no bodies")
	}
	stars := 0
	kinds := make(map[string]Kind, len(doc.Bodies))
	for _, b := range doc.Bodies {
		if b.Name == "" {
			return invalid("body with empty name")
		}
		if _, dup := kinds[b.Name]; dup {
			return invalid("duplicate body %q", b.Name)
		}
		kinds[b.Name] = b.Kind
		switch b.Kind {
		case KindStar:
			stars++
		case KindPlanet:
			if b.Perihelion < 0 || b.Aphelion < 0 {
				return invalid("body %q has a negative orbital distance", b.Name)
			}
		default:
			return invalid("body %q has unknown kind %q", b.Name, b.Kind)
		}
		if b.Radius <= 0 {
			return invalid("body %q must have a positive radius", b.Name)
		}
	}
	if stars != 1 {
		return invalid("expected exactly one star, found %d", stars)
	}

	moons := make(map[string]struct{}, len(doc.Moons))
	for _, m := range doc.Moons {
		if m.Name == "" {
			return invalid("moon with empty name")
		}
		if _, dup := moons[m.Name]; dup {
			return invalid("duplicate moon %q", m.Name)
		}
		if _, clash := kinds[m.Name]; clash {
			return invalid("moon %q shares its name with a body", m.Name)
		}
		moons[m.Name] = struct{}{}
		kind, ok := kinds[m.Host]
		if !ok || kind != KindPlanet {
			return invalid("moon %q references unknown planet %q", m.Name, m.Host)
		}
		if m.Radius <= 0 {
			return invalid("moon %q must have a positive radius", m.Name)
		}
		if m.Dist < 0 {
			return invalid("moon %q has a negative distance", m.Name)
		}
	}
	return nil
}
