// Package system turns a body catalog into the solar-system scene graph: the sun,
// planets with their orbit lines, the ring system, the moons on their pivots and
// the lights. It also splices asynchronously loaded textures and the spacecraft
// into the scene. Everything here is CPU-side; solar/render draws the result.
package system

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/loader"
	"github.com/Carmen-Shannon/oxy-solar/engine/model"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/Carmen-Shannon/oxy-solar/solar/catalog"
	"github.com/Carmen-Shannon/oxy-solar/solar/driver"
	"github.com/Carmen-Shannon/oxy-solar/solar/orbit"
	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Pipeline keys referenced by the drawables this package creates.
const (
	PipelineLit  = "lit"
	PipelineLine = "line"
	PipelineSun  = "sun"
	PipelineRing = "ring"
)

// Tag prefixes carried on loader requests so results can be routed back.
const (
	tagTexture = "texture:"
	tagModel   = "model:"
)

// ErrUnknownRingHost is returned when the ring host does not name a planet.
var ErrUnknownRingHost = errors.New("ring host is not a planet in the catalog")

// DefaultAmbient is the ambient light color.
const DefaultAmbient = "#222222"

// Segment counts of the generated meshes.
const (
	SunSegments   = 64
	PlanetSegment = 32
	MoonSegments  = 16
	OrbitSegments = 100
	RingSegments  = 256
)

// System is the constructed solar-system scene plus the state the driver animates.
// It is mutated from the frame loop only.
type System struct {
	registry *catalog.Registry
	scene    scene.Scene

	sun      *shading.SunUniforms
	ring     *shading.RingUniforms
	ringHost int

	planets []driver.Planet
	moons   []driver.Moon
	bodies  map[string]*scene.Drawable

	meshes   map[string]model.Mesh
	textures map[string]common.TextureStagingData

	requests []loader.Request
	ship     scene.Node
	onShip   func(scene.Node)

	// Options collected by the builder.
	scale          catalog.Scale
	ringHostName   string
	ringUniforms   shading.RingUniforms
	texturePattern string
	spacecraft     string
	ambient        scene.AmbientLight
	light          scene.PointLight
	logger         *slog.Logger
}

// New builds the scene for every body and moon in reg.
//
// Parameters:
//   - reg: the validated body catalog
//   - options: functional options
//
// Returns:
//   - *System: the constructed system
//   - error: ErrUnknownRingHost when the ring host is not a planet
func New(reg *catalog.Registry, options ...SystemOption) (*System, error) {
	s := &System{
		registry:       reg,
		bodies:         make(map[string]*scene.Drawable),
		meshes:         make(map[string]model.Mesh),
		textures:       make(map[string]common.TextureStagingData),
		ringHost:       -1,
		scale:          catalog.DefaultScale(),
		ringHostName:   "saturn",
		ringUniforms:   shading.DefaultRingUniforms(),
		texturePattern: "textures/%s.jpg",
		spacecraft:     "ships/spacecraft.glb",
		ambient:        scene.AmbientLight{Color: hexVec(DefaultAmbient), Intensity: 10},
		light:          scene.PointLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: 5},
		logger:         slog.Default(),
	}
	for _, opt := range options {
		opt(s)
	}

	s.scene = scene.NewScene("solar", scene.WithAmbient(s.ambient), scene.WithPointLight(s.light))
	s.sun = &shading.SunUniforms{}

	s.buildSun()
	planetNodes := s.buildPlanets()

	if s.ringHostName != "" {
		idx, ok := reg.PlanetIndex(s.ringHostName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRingHost, s.ringHostName)
		}
		s.ringHost = idx
		ring := s.ringUniforms
		s.ring = &ring
		s.buildRing(s.planets[idx].Node)
	}

	s.buildMoons(planetNodes)

	if s.spacecraft != "" {
		s.requests = append(s.requests, loader.Request{Kind: loader.KindModel, Path: s.spacecraft, Tag: tagModel + "spacecraft"})
	}
	s.logger.Debug("solar system built", "drawables", s.scene.Count(), "meshes", len(s.meshes), "requests", len(s.requests))
	return s, nil
}

func (s *System) buildSun() {
	star := s.registry.Star()
	mesh := s.addMesh(model.Sphere(s.registry.StarRadius(s.scale), SunSegments, SunSegments))
	node := scene.NewNode(star.Name, scene.WithRotation(math.Pi/2, 0, 0), scene.WithParent(s.scene.Root()))
	d := &scene.Drawable{Node: node, Mesh: mesh, Pipeline: PipelineSun, Color: [4]float32{1, 1, 1, 1}}
	s.scene.Add(d)
	s.bodies[star.Name] = d
}

func (s *System) buildPlanets() map[string]scene.Node {
	nodes := make(map[string]scene.Node)
	for _, pl := range s.registry.Layout(s.scale) {
		name := pl.Body.Name
		x, y := orbit.Position(0, pl.Orbit)
		node := scene.NewNode(name,
			scene.WithPosition(x, y, 0),
			scene.WithRotation(math.Pi/2, 0, 0),
			scene.WithParent(s.scene.Root()),
		)
		mesh := s.addMesh(model.Sphere(pl.Radius, PlanetSegment, PlanetSegment))
		d := &scene.Drawable{Node: node, Mesh: mesh, Pipeline: PipelineLit, Color: [4]float32{1, 1, 1, 1}}
		s.scene.Add(d)
		s.bodies[name] = d
		nodes[name] = node
		s.planets = append(s.planets, driver.Planet{Name: name, Node: node, Orbit: pl.Orbit})

		line := s.addMesh(model.LineStrip("orbit_"+name, pl.Orbit.Points(OrbitSegments)))
		s.scene.Add(&scene.Drawable{
			Node:     scene.NewNode("orbit_"+name, scene.WithParent(s.scene.Root())),
			Mesh:     line,
			Pipeline: PipelineLine,
			Color:    [4]float32{1, 1, 1, 1},
			Layer:    scene.LayerLines,
		})

		if s.texturePattern != "" {
			s.requests = append(s.requests, loader.Request{
				Kind: loader.KindTexture,
				Path: fmt.Sprintf(s.texturePattern, pl.Body.TextureName()),
				Tag:  tagTexture + name,
			})
		}
	}
	return nodes
}

func (s *System) buildRing(host scene.Node) {
	mesh := s.addMesh(model.Disc(s.ring.OuterRadius, RingSegments))
	node := scene.NewNode(host.Name()+"_ring", scene.WithRotation(math.Pi/2, 0, 0), scene.WithParent(host))
	s.scene.Add(&scene.Drawable{
		Node:     node,
		Mesh:     mesh,
		Pipeline: PipelineRing,
		Color:    [4]float32{1, 1, 1, 1},
		Layer:    scene.LayerTransparent,
	})
}

func (s *System) buildMoons(planets map[string]scene.Node) {
	for _, m := range s.registry.Moons() {
		host, ok := planets[m.Host]
		if !ok {
			continue
		}
		pivot := scene.NewNode(m.Name+"_pivot", scene.WithRotation(m.Tilt, 0, 0), scene.WithParent(host))
		body := scene.NewNode(m.Name, scene.WithPosition(m.Dist, 0, 0), scene.WithParent(pivot))
		c := m.Color.Vec()
		d := &scene.Drawable{
			Node:     body,
			Mesh:     s.addMesh(model.Sphere(m.Radius, MoonSegments, MoonSegments)),
			Pipeline: PipelineLit,
			Color:    [4]float32{c[0], c[1], c[2], 1},
		}
		s.scene.Add(d)
		s.bodies[m.Name] = d
		s.moons = append(s.moons, driver.Moon{Name: m.Name, Pivot: pivot, Body: body, Speed: m.Speed})
	}
}

func hexVec(hex string) mgl32.Vec3 {
	c := colorful.MustParseHex(hex)
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

// addMesh registers m under its name, keeping the first mesh of a given name.
func (s *System) addMesh(m model.Mesh) string {
	if _, ok := s.meshes[m.Name]; !ok {
		s.meshes[m.Name] = m
	}
	return m.Name
}

// Scene returns the scene graph.
func (s *System) Scene() scene.Scene {
	return s.scene
}

// Planets returns the planet nodes and orbits for the driver, in catalog order.
func (s *System) Planets() []driver.Planet {
	return s.planets
}

// Moons returns the moon pivots for the driver.
func (s *System) Moons() []driver.Moon {
	return s.moons
}

// SunUniforms returns the sun program's uniforms, updated in place by the driver.
func (s *System) SunUniforms() *shading.SunUniforms {
	return s.sun
}

// RingUniforms returns the ring program's uniforms and the host planet index,
// or nil and -1 when the system has no ring.
func (s *System) RingUniforms() (*shading.RingUniforms, int) {
	return s.ring, s.ringHost
}

// Body returns the drawable of a sun, planet or moon by name.
func (s *System) Body(name string) (*scene.Drawable, bool) {
	d, ok := s.bodies[name]
	return d, ok
}

// Mesh returns the CPU mesh registered under key.
func (s *System) Mesh(key string) (model.Mesh, bool) {
	m, ok := s.meshes[key]
	return m, ok
}

// Meshes returns the number of registered meshes.
func (s *System) Meshes() int {
	return len(s.meshes)
}

// Texture returns the decoded texture registered under key.
func (s *System) Texture(key string) (common.TextureStagingData, bool) {
	t, ok := s.textures[key]
	return t, ok
}

// Requests returns the asset loads the scene wants: one texture per planet and the spacecraft.
func (s *System) Requests() []loader.Request {
	return s.requests
}

// Submit hands every request to l.
func (s *System) Submit(l loader.Loader) {
	for _, req := range s.requests {
		l.Submit(req)
	}
}

// NewDriver builds the animation driver over this system's planets, moons and uniforms.
//
// Parameters:
//   - clock: the simulation clock
//   - options: extra driver options such as the renderer and tick hook
//
// Returns:
//   - *driver.Driver: the driver
//   - error: a driver construction error
func (s *System) NewDriver(clock orbit.Clock, options ...driver.DriverOption) (*driver.Driver, error) {
	opts := []driver.DriverOption{driver.WithSun(s.sun), driver.WithLogger(s.logger)}
	if s.ring != nil {
		opts = append(opts, driver.WithRing(s.ringHost, s.ring))
	}
	return driver.New(clock, s.planets, s.moons, append(opts, options...)...)
}

// AttachCamera parents the camera node to the scene root so that anything
// riding on the camera is drawn.
func (s *System) AttachCamera(n scene.Node) {
	s.scene.Root().Add(n)
}

// Ship returns the spacecraft node, or nil until it has loaded.
func (s *System) Ship() scene.Node {
	return s.ship
}

// Apply splices one completed load into the scene. Failed loads leave the scene
// as it is: planets stay untextured and the spacecraft stays absent.
//
// Parameters:
//   - res: the loader result
//
// Returns:
//   - bool: true if the scene changed
func (s *System) Apply(res loader.Result) bool {
	if res.Err != nil {
		return false
	}
	tag := res.Request.Tag
	switch {
	case strings.HasPrefix(tag, tagTexture):
		name := strings.TrimPrefix(tag, tagTexture)
		d, ok := s.bodies[name]
		if !ok {
			return false
		}
		key := tag
		s.textures[key] = res.Texture
		d.Texture = key
		return true
	case strings.HasPrefix(tag, tagModel):
		if res.Model == nil {
			return false
		}
		node := s.AddModel(strings.TrimPrefix(tag, tagModel), res.Model)
		s.ship = node
		if s.onShip != nil {
			s.onShip(node)
		}
		return true
	default:
		s.logger.Debug("unrouted load result", "tag", tag, "path", res.Request.Path)
		return false
	}
}

// AddModel registers every part of m as a drawable under a new detached node and
// returns that node. Parts with a base color image get a texture of their own.
//
// Parameters:
//   - name: the node name and mesh key prefix
//   - m: the loaded model
//
// Returns:
//   - scene.Node: the model's root node, not yet parented
func (s *System) AddModel(name string, m model.Model) scene.Node {
	root := scene.NewNode(name)
	for i, part := range m.Parts() {
		key := fmt.Sprintf("%s/%d", name, i)
		mesh := part.Mesh
		mesh.Name = key
		s.meshes[key] = mesh

		d := &scene.Drawable{
			Node:     root,
			Mesh:     key,
			Pipeline: PipelineLit,
			Color:    part.Material.Color,
		}
		if part.Material.BaseColor != nil {
			s.textures[key] = *part.Material.BaseColor
			d.Texture = key
		}
		if d.Color[3] < 1 {
			d.Layer = scene.LayerTransparent
		}
		s.scene.Add(d)
	}
	return root
}
