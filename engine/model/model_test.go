package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-solar/common"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [2]float32{0.25, 0.75},
	}
	assert.Equal(t, GPUVertexSize, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, GPUVertexSize)
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(3), f(8))
	assert.Equal(t, float32(1), f(16))
	assert.Equal(t, float32(0.75), f(28))

	assert.Len(t, MarshalVertices([]GPUVertex{v, v}), 2*GPUVertexSize)
	assert.Equal(t, []byte{7, 0, 0, 0}, MarshalIndices([]uint32{7}))
}

func TestSphere(t *testing.T) {
	s := Sphere(2, 8, 6)
	assert.Len(t, s.Vertices, 9*7)
	// Pole rows contribute one triangle per segment, the rest two.
	assert.Len(t, s.Indices, 3*(8*2*6-2*8))
	assert.Equal(t, TopologyTriangles, s.Topology)

	for _, v := range s.Vertices {
		assert.InDelta(t, 2, mgl32.Vec3(v.Position).Len(), 1e-5)
		assert.InDelta(t, 1, mgl32.Vec3(v.Normal).Len(), 1e-5)
	}
	assert.InDelta(t, 2, s.BoundingRadius(), 1e-5)

	// Outward winding: the face normal agrees with the vertex normals.
	for i := 0; i < len(s.Indices); i += 3 {
		a := mgl32.Vec3(s.Vertices[s.Indices[i]].Position)
		b := mgl32.Vec3(s.Vertices[s.Indices[i+1]].Position)
		c := mgl32.Vec3(s.Vertices[s.Indices[i+2]].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c)
		assert.Greater(t, n.Dot(centroid), float32(0))
	}

	min := Sphere(1, 0, 0)
	assert.Len(t, min.Vertices, 4*3)
}

func TestDisc(t *testing.T) {
	d := Disc(3, 4)
	require.Len(t, d.Vertices, 6)
	assert.Len(t, d.Indices, 12)
	assert.Equal(t, [3]float32{}, d.Vertices[0].Position)
	for _, v := range d.Vertices {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
		assert.Zero(t, v.Position[2])
	}
	lo, hi := d.Bounds()
	assert.InDelta(t, -3, lo[0], 1e-5)
	assert.InDelta(t, 3, hi[1], 1e-5)

	// Counter-clockwise from +Z.
	a := mgl32.Vec3(d.Vertices[d.Indices[0]].Position)
	b := mgl32.Vec3(d.Vertices[d.Indices[1]].Position)
	c := mgl32.Vec3(d.Vertices[d.Indices[2]].Position)
	assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Z(), float32(0))
}

func TestLineStripAndTransform(t *testing.T) {
	l := LineStrip("orbit", [][2]float32{{1, 0}, {0, 1}, {-1, 0}})
	assert.Equal(t, TopologyLineStrip, l.Topology)
	assert.Equal(t, []uint32{0, 1, 2}, l.Indices)

	moved := l.Transform(mgl32.Translate3D(0, 0, 5))
	assert.Equal(t, float32(5), moved.Vertices[1].Position[2])
	assert.Zero(t, l.Vertices[1].Position[2])
}

func TestMerge(t *testing.T) {
	a := Disc(1, 3)
	b := Disc(4, 3)
	m := Merge("both", a, b)
	assert.Len(t, m.Vertices, len(a.Vertices)+len(b.Vertices))
	require.Len(t, m.Indices, len(a.Indices)+len(b.Indices))
	// Second mesh indices are rebased past the first mesh's vertices.
	assert.GreaterOrEqual(t, m.Indices[len(a.Indices)], uint32(len(a.Vertices)))
}

func TestNewModel(t *testing.T) {
	tex := common.SolidTexture(255, 0, 0, 255)
	m := NewModel(
		WithName("ship"),
		WithMesh(Disc(1, 3), [4]float32{1, 1, 1, 1}),
		WithParts(Part{Mesh: Sphere(4, 8, 4), Material: Material{Color: [4]float32{0.5, 0.5, 0.5, 1}, BaseColor: &tex}}),
	)

	assert.Equal(t, "ship", m.Name())
	require.Len(t, m.Parts(), 2)
	assert.Nil(t, m.Parts()[0].Material.BaseColor)
	assert.Equal(t, uint32(1), m.Parts()[1].Material.BaseColor.Width)
	assert.Equal(t, 5+9*5, m.VertexCount())
	assert.InDelta(t, 4, m.BoundingRadius(), 1e-5)
}
