package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/loader"
	"github.com/Carmen-Shannon/oxy-solar/engine/model"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/Carmen-Shannon/oxy-solar/solar/catalog"
	"github.com/Carmen-Shannon/oxy-solar/solar/orbit"
	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystem(t *testing.T, opts ...SystemOption) *System {
	t.Helper()
	s, err := New(catalog.Default(), opts...)
	require.NoError(t, err)
	return s
}

func TestNewBuildsEveryBody(t *testing.T) {
	reg := catalog.Default()
	s := newSystem(t)

	planets := len(reg.Planets())
	moons := len(reg.Moons())
	// sun, planets, orbit lines, ring, moons
	assert.Equal(t, 1+2*planets+1+moons, s.Scene().Count())
	assert.Len(t, s.Planets(), planets)
	assert.Len(t, s.Moons(), moons)
	assert.Len(t, layers(s), 3)

	for _, b := range reg.Bodies() {
		_, ok := s.Body(b.Name)
		assert.True(t, ok, b.Name)
	}
	for _, m := range reg.Moons() {
		d, ok := s.Body(m.Name)
		require.True(t, ok, m.Name)
		c := m.Color.Vec()
		assert.Equal(t, [4]float32{c[0], c[1], c[2], 1}, d.Color, m.Name)
	}

	sun, ok := s.Body("sun")
	require.True(t, ok)
	assert.Equal(t, PipelineSun, sun.Pipeline)
	_, ok = s.Mesh(sun.Mesh)
	assert.True(t, ok)
}

// layers counts the visible drawables per layer.
func layers(s *System) map[scene.Layer]int {
	out := make(map[scene.Layer]int)
	for _, d := range s.Scene().DrawList() {
		out[d.Layer]++
	}
	return out
}

func TestPlanetsStartAtPerihelion(t *testing.T) {
	s := newSystem(t)
	for _, p := range s.Planets() {
		want := mgl32.Vec3{p.Orbit.F1 * p.Orbit.Dist, 0, 0}
		assertNear(t, want, p.Node.Position(), 1e-4, p.Name)
		assert.Equal(t, s.Scene().Root(), p.Node.Parent(), p.Name)
	}
}

func TestWithScale(t *testing.T) {
	sc := catalog.DefaultScale()
	sc.BaseDist, sc.DistStep = 50, 10
	s := newSystem(t, WithScale(sc))

	want := catalog.Default().Layout(sc)
	require.Len(t, s.Planets(), len(want))
	for i, p := range s.Planets() {
		assert.Equal(t, want[i].Orbit, p.Orbit, p.Name)
	}
	assert.NotEqual(t, newSystem(t).Planets()[0].Orbit, s.Planets()[0].Orbit)
}

func TestRingAndMoonParents(t *testing.T) {
	s := newSystem(t)
	ring, host := s.RingUniforms()
	require.NotNil(t, ring)
	saturn := s.Planets()[host]
	require.Equal(t, "saturn", saturn.Name)

	var ringNode scene.Node
	for _, c := range saturn.Node.Children() {
		if c.Name() == "saturn_ring" {
			ringNode = c
		}
	}
	require.NotNil(t, ringNode)

	reg := catalog.Default()
	for _, m := range s.Moons() {
		cat, ok := func() (catalog.Moon, bool) {
			for _, cm := range reg.Moons() {
				if cm.Name == m.Name {
					return cm, true
				}
			}
			return catalog.Moon{}, false
		}()
		require.True(t, ok, m.Name)
		assert.Equal(t, cat.Host, m.Pivot.Parent().Name(), m.Name)
		assert.Equal(t, m.Pivot, m.Body.Parent(), m.Name)
		assert.InDelta(t, cat.Dist, m.Body.Position().Len(), 1e-5, m.Name)
	}
}

func TestNoRing(t *testing.T) {
	s := newSystem(t, WithRing("", shading.DefaultRingUniforms()))
	ring, host := s.RingUniforms()
	assert.Nil(t, ring)
	assert.Equal(t, -1, host)
	assert.Equal(t, 0, layers(s)[scene.LayerTransparent])
}

func TestUnknownRingHost(t *testing.T) {
	_, err := New(catalog.Default(), WithRing("pluto", shading.DefaultRingUniforms()))
	assert.ErrorIs(t, err, ErrUnknownRingHost)
}

func TestRequests(t *testing.T) {
	s := newSystem(t)
	reqs := s.Requests()
	require.Len(t, reqs, len(s.Planets())+1)
	assert.Equal(t, loader.Request{Kind: loader.KindTexture, Path: "textures/earth.jpg", Tag: "texture:earth"}, reqs[2])
	assert.Equal(t, loader.Request{Kind: loader.KindModel, Path: "ships/spacecraft.glb", Tag: "model:spacecraft"}, reqs[len(reqs)-1])

	bare := newSystem(t, WithTexturePattern(""), WithSpacecraft(""))
	assert.Empty(t, bare.Requests())
}

func TestApplyTexture(t *testing.T) {
	s := newSystem(t)
	tex := common.SolidTexture(10, 20, 30, 255)
	req := loader.Request{Kind: loader.KindTexture, Path: "textures/mars.jpg", Tag: "texture:mars"}

	assert.False(t, s.Apply(loader.Result{Request: req, Err: errors.New("missing")}))
	mars, ok := s.Body("mars")
	require.True(t, ok)
	assert.Empty(t, mars.Texture)

	assert.True(t, s.Apply(loader.Result{Request: req, Texture: tex}))
	assert.Equal(t, "texture:mars", mars.Texture)
	got, ok := s.Texture(mars.Texture)
	require.True(t, ok)
	assert.Equal(t, tex, got)

	assert.False(t, s.Apply(loader.Result{Request: loader.Request{Tag: "texture:vulcan"}, Texture: tex}))
	assert.False(t, s.Apply(loader.Result{Request: loader.Request{Tag: "other"}}))
}

func TestApplyModel(t *testing.T) {
	var got scene.Node
	s := newSystem(t, WithShipHandler(func(n scene.Node) { got = n }))
	assert.Nil(t, s.Ship())

	tex := common.SolidTexture(1, 2, 3, 255)
	m := model.NewModel(
		model.WithName("spacecraft"),
		model.WithParts(
			model.Part{Mesh: model.Sphere(1, 8, 8), Material: model.Material{Color: [4]float32{1, 1, 1, 1}, BaseColor: &tex}},
			model.Part{Mesh: model.Sphere(2, 8, 8), Material: model.Material{Color: [4]float32{1, 1, 1, 0.5}}},
		),
	)
	before := s.Scene().Count()
	res := loader.Result{Request: loader.Request{Kind: loader.KindModel, Tag: "model:spacecraft"}, Model: m}
	require.True(t, s.Apply(res))
	require.NotNil(t, got)
	assert.Equal(t, got, s.Ship())
	assert.Equal(t, before+2, s.Scene().Count())

	// Detached until something parents it.
	visible := len(s.Scene().DrawList())
	assert.Nil(t, got.Parent())

	cam := scene.NewNode("camera")
	s.AttachCamera(cam)
	cam.Add(got)
	assert.Equal(t, visible+2, len(s.Scene().DrawList()))

	_, ok := s.Mesh("spacecraft/0")
	assert.True(t, ok)
	_, ok = s.Texture("spacecraft/0")
	assert.True(t, ok)
	_, ok = s.Texture("spacecraft/1")
	assert.False(t, ok)
	assert.Equal(t, 2, layers(s)[scene.LayerTransparent])

	assert.False(t, s.Apply(loader.Result{Request: loader.Request{Tag: "model:spacecraft"}}))
}

func TestDriverMovesPlanets(t *testing.T) {
	s := newSystem(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := orbit.NewClock(start, orbit.DefaultRate)
	d, err := s.NewDriver(clock)
	require.NoError(t, err)

	require.NoError(t, d.Tick(context.Background(), start.Add(time.Second)))
	earth := s.Planets()[2]
	assert.NotEqual(t, float32(0), earth.Node.Position().Y())

	ring, host := s.RingUniforms()
	assert.Equal(t, s.Planets()[host].Node.Position(), ring.HostPosition)
	assert.NotZero(t, s.SunUniforms().Time)
}

// assertNear compares vectors component-wise. mgl32's ApproxEqual is relative and
// fails on components that are exactly zero.
func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
