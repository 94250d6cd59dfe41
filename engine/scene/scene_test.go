package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeWorldComposition(t *testing.T) {
	planet := NewNode("planet", WithPosition(10, 0, 0))
	pivot := NewNode("pivot", WithParent(planet))
	moon := NewNode("moon", WithPosition(5, 0, 0), WithParent(pivot))

	assertNear(t, mgl32.Vec3{15, 0, 0}, moon.WorldPosition(), 1e-6)

	// A quarter turn about Y carries +X to -Z.
	pivot.SetRotation(mgl32.Vec3{0, math.Pi / 2, 0})
	assertNear(t, mgl32.Vec3{10, 0, -5}, moon.WorldPosition(), 1e-5)

	planet.SetPosition(mgl32.Vec3{0, 20, 0})
	assertNear(t, mgl32.Vec3{0, 20, -5}, moon.WorldPosition(), 1e-5)
}

func TestNodeScaleAndTilt(t *testing.T) {
	parent := NewNode("cam", WithPosition(0, 0, 100))
	child := NewNode("ship", WithPosition(0, -1, -10), WithUniformScale(0.5), WithParent(parent))
	assertNear(t, mgl32.Vec3{0, -1, 90}, child.WorldPosition(), 1e-6)
	m := child.WorldMatrix()
	assert.InDelta(t, 0.5, m.At(0, 0), 1e-6)

	disc := NewNode("disc", WithRotation(math.Pi/2, 0, 0))
	p := disc.WorldMatrix().Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	assertNear(t, mgl32.Vec3{0, 0, 1}, p, 1e-6)
}

func TestNodeOrientation(t *testing.T) {
	n := NewNode("n", WithRotation(0.3, 0, 0))
	q := n.Orientation()
	assertNearMat(t, n.LocalMatrix(), q.Mat4(), 1e-5)

	turn := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	n.SetOrientation(turn)
	p := n.WorldMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertNear(t, mgl32.Vec3{0, 0, -1}, p, 1e-5)

	n.SetRotation(mgl32.Vec3{})
	assertNearMat(t, mgl32.Ident4(), n.LocalMatrix(), 1e-6)
}

func TestNodeReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.Add(c)
	require.Equal(t, a, c.Parent())
	b.Add(c)
	assert.Equal(t, b, c.Parent())
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)

	assert.True(t, b.Remove(c))
	assert.Nil(t, c.Parent())
	assert.False(t, b.Remove(c))

	// Cycles are refused.
	a.Add(b)
	b.Add(a)
	assert.Nil(t, a.Parent())
	a.Add(a)
	assert.Len(t, a.Children(), 1)
}

func TestNodeVisibilityAndWalk(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid", WithParent(root))
	leaf := NewNode("leaf", WithParent(mid))
	assert.True(t, leaf.WorldVisible())
	mid.SetVisible(false)
	assert.False(t, leaf.WorldVisible())
	assert.True(t, leaf.Visible())

	var names []string
	root.Walk(func(n Node) bool {
		names = append(names, n.Name())
		return n.Name() != "mid"
	})
	assert.Equal(t, []string{"root", "mid"}, names)
}

func TestSceneDrawList(t *testing.T) {
	s := NewScene("solar", WithAmbient(AmbientLight{Color: mgl32.Vec3{0.2, 0.2, 0.2}, Intensity: 10}))
	hidden := NewNode("hidden", WithVisible(false), WithParent(s.Root()))

	ring := &Drawable{Node: NewNode("ring", WithParent(s.Root())), Layer: LayerTransparent}
	planet := &Drawable{Node: NewNode("planet", WithParent(s.Root())), Layer: LayerOpaque}
	line := &Drawable{Node: NewNode("line", WithParent(s.Root())), Layer: LayerLines}
	ship := &Drawable{Node: NewNode("ship", WithParent(hidden))}

	for _, d := range []*Drawable{ring, planet, line, ship} {
		s.Add(d)
	}
	assert.Equal(t, 4, s.Count())

	list := s.DrawList()
	require.Len(t, list, 3)
	assert.Equal(t, []*Drawable{planet, line, ring}, list)

	hidden.SetVisible(true)
	assert.Len(t, s.DrawList(), 4)

	// Detached subtrees are not drawn.
	s.Root().Remove(hidden)
	assert.Len(t, s.DrawList(), 3)

	s.Remove(ring.ID)
	assert.Nil(t, s.Get(ring.ID))
	assertNear(t, mgl32.Vec3{2, 2, 2}, s.Ambient().Radiance(), 1e-6)
}

func TestDrawableUniform(t *testing.T) {
	d := &Drawable{Node: NewNode("n", WithPosition(1, 2, 3)), Color: [4]float32{0.5, 0.25, 1, 1}}
	u := d.Uniform()
	require.Equal(t, 80, u.Size())
	buf := u.Marshal()
	require.Len(t, buf, 80)

	// Column-major: translation lives in elements 12..14.
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[48:])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[56:])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
}

// assertNear compares vectors component-wise. mgl32's ApproxEqual is relative and
// fails on components that are exactly zero.
func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}

func assertNearMat(t *testing.T, want, got mgl32.Mat4, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
