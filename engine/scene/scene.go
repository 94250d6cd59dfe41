// Package scene is a small retained scene graph: a tree of transform nodes plus
// the list of drawables that reference them and the scene's lights.
package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Layer orders drawables within a frame. Lower layers are drawn first.
type Layer int

const (
	// LayerOpaque holds depth-writing geometry.
	LayerOpaque Layer = iota
	// LayerLines holds unlit line strips.
	LayerLines
	// LayerTransparent holds blended geometry that must be drawn after everything it may cover.
	LayerTransparent
)

// Drawable binds a node to the mesh and pipeline that draw it.
type Drawable struct {
	// ID is assigned by the scene when the drawable is added.
	ID uint64
	// Node supplies the model matrix and visibility.
	Node Node
	// Mesh is the key of the mesh uploaded by the renderer.
	Mesh string
	// Pipeline is the key of the render pipeline used to draw the mesh.
	Pipeline string
	// Color multiplies the sampled texture, or is the flat color when Texture is empty.
	Color [4]float32
	// Texture is the key of a loaded texture, empty for flat color.
	Texture string
	Layer   Layer
}

// PointLight is an omnidirectional light without distance falloff.
type PointLight struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

// Radiance returns Color scaled by Intensity.
func (a AmbientLight) Radiance() mgl32.Vec3 {
	return a.Color.Mul(a.Intensity)
}

type scene struct {
	name string

	root      Node
	drawables map[uint64]*Drawable
	nextID    uint64

	ambient AmbientLight
	point   PointLight
}

// Scene defines the interface for a retained scene: a root node, the drawables
// attached to nodes beneath it, and the light state fed to lit pipelines.
type Scene interface {
	// Name returns the scene's debug name.
	Name() string

	// Root returns the root node. Every drawable node should live beneath it.
	//
	// Returns:
	//   - Node: the root node
	Root() Node

	// Add registers a drawable and assigns it an ID.
	//
	// Parameters:
	//   - d: the drawable to add
	//
	// Returns:
	//   - uint64: the assigned ID
	Add(d *Drawable) uint64

	// Get returns the drawable with id, or nil.
	Get(id uint64) *Drawable

	// Remove unregisters the drawable with id.
	Remove(id uint64)

	// Count returns the number of registered drawables.
	Count() int

	// DrawList returns the visible drawables ordered by layer, then by ID.
	//
	// Returns:
	//   - []*Drawable: drawables under the root whose node and ancestors are all visible
	DrawList() []*Drawable

	// Ambient returns the ambient light.
	Ambient() AmbientLight

	// SetAmbient sets the ambient light.
	SetAmbient(a AmbientLight)

	// PointLight returns the scene's point light.
	PointLight() PointLight

	// SetPointLight sets the scene's point light.
	SetPointLight(l PointLight)
}

var _ Scene = &scene{}

// NewScene creates an empty scene with a root node.
//
// Parameters:
//   - name: debug name
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:      name,
		root:      NewNode(name + "_root"),
		drawables: make(map[uint64]*Drawable),
		nextID:    1,
		ambient:   AmbientLight{Color: mgl32.Vec3{1, 1, 1}},
		point:     PointLight{Color: mgl32.Vec3{1, 1, 1}},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Root() Node {
	return s.root
}

func (s *scene) Add(d *Drawable) uint64 {
	if d == nil {
		return 0
	}
	if d.ID == 0 {
		d.ID = s.nextID
		s.nextID++
	}
	s.drawables[d.ID] = d
	return d.ID
}

func (s *scene) Get(id uint64) *Drawable {
	return s.drawables[id]
}

func (s *scene) Remove(id uint64) {
	delete(s.drawables, id)
}

func (s *scene) Count() int {
	return len(s.drawables)
}

func (s *scene) DrawList() []*Drawable {
	out := make([]*Drawable, 0, len(s.drawables))
	for _, d := range s.drawables {
		if d.Node != nil && d.Node.WorldVisible() && s.attached(d.Node) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Layer != out[j].Layer {
			return out[i].Layer < out[j].Layer
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *scene) Ambient() AmbientLight {
	return s.ambient
}

func (s *scene) SetAmbient(a AmbientLight) {
	s.ambient = a
}

func (s *scene) PointLight() PointLight {
	return s.point
}

func (s *scene) SetPointLight(l PointLight) {
	s.point = l
}

// attached reports whether n hangs beneath the scene root.
func (s *scene) attached(n Node) bool {
	for p := n; p != nil; p = p.Parent() {
		if p == s.root {
			return true
		}
	}
	return false
}
