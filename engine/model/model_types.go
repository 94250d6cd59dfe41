package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Topology is the primitive assembly of a mesh's index list.
type Topology int

const (
	// TopologyTriangles reads indices three at a time.
	TopologyTriangles Topology = iota
	// TopologyLineStrip joins consecutive indices with line segments.
	TopologyLineStrip
)

// Mesh is CPU-side geometry ready to be marshaled into vertex and index buffers.
type Mesh struct {
	Name     string
	Vertices []GPUVertex
	Indices  []uint32
	Topology Topology
}

// Bounds returns the axis-aligned bounding box of the mesh.
//
// Returns:
//   - min, max: the box corners, zero for an empty mesh
func (m Mesh) Bounds() (min, max [3]float32) {
	if len(m.Vertices) == 0 {
		return
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		for a := 0; a < 3; a++ {
			min[a] = math32.Min(min[a], v.Position[a])
			max[a] = math32.Max(max[a], v.Position[a])
		}
	}
	return
}

// BoundingRadius returns the largest vertex distance from the origin.
func (m Mesh) BoundingRadius() float32 {
	var r float32
	for _, v := range m.Vertices {
		r = math32.Max(r, mgl32.Vec3(v.Position).Len())
	}
	return r
}

// Transform returns a copy of the mesh with positions multiplied by mat and
// normals by its upper 3x3, renormalized.
//
// Parameters:
//   - mat: the affine transform to bake in
//
// Returns:
//   - Mesh: the transformed copy
func (m Mesh) Transform(mat mgl32.Mat4) Mesh {
	out := Mesh{
		Name:     m.Name,
		Vertices: make([]GPUVertex, len(m.Vertices)),
		Indices:  append([]uint32(nil), m.Indices...),
		Topology: m.Topology,
	}
	nm := mat.Mat3()
	for i, v := range m.Vertices {
		p := mat.Mul4x1(mgl32.Vec3(v.Position).Vec4(1)).Vec3()
		n := nm.Mul3x1(mgl32.Vec3(v.Normal))
		if l := n.Len(); l > 1e-8 {
			n = n.Mul(1 / l)
		}
		out.Vertices[i] = GPUVertex{Position: p, Normal: n, TexCoord: v.TexCoord}
	}
	return out
}

// Merge concatenates triangle meshes into one, rebasing indices.
//
// Parameters:
//   - name: the name of the merged mesh
//   - meshes: the meshes to merge
//
// Returns:
//   - Mesh: the merged mesh
func Merge(name string, meshes ...Mesh) Mesh {
	out := Mesh{Name: name}
	for _, m := range meshes {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}
