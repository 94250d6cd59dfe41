package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-solar/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

// gltfPrimitiveMesh is one extracted triangle primitive with its material slot.
// MaterialIndex is -1 when the primitive has no material.
type gltfPrimitiveMesh struct {
	Mesh          model.Mesh
	MaterialIndex int
}

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor flattens the node hierarchy of a parsed document into
// triangle meshes baked into scene space.
type gltfMeshExtractor interface {
	// ExtractScene walks the default scene (or every root node when no scene is
	// declared) and returns each triangle primitive transformed by its node's
	// world matrix.
	//
	// Returns:
	//   - []gltfPrimitiveMesh: the baked primitives in traversal order
	//   - error: error if an accessor cannot be read
	ExtractScene() ([]gltfPrimitiveMesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a mesh extractor over a parsed document.
func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) ExtractScene() ([]gltfPrimitiveMesh, error) {
	doc := e.parser.Document()
	var out []gltfPrimitiveMesh
	visited := make([]bool, len(doc.Nodes))

	var visit func(index int, parent mgl32.Mat4) error
	visit = func(index int, parent mgl32.Mat4) error {
		if index < 0 || index >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", index)
		}
		if visited[index] {
			return fmt.Errorf("node %d is reachable twice", index)
		}
		visited[index] = true

		node := &doc.Nodes[index]
		world := parent.Mul4(gltfNodeMatrix(node))
		if node.Mesh != nil {
			prims, err := e.extractMesh(*node.Mesh)
			if err != nil {
				return fmt.Errorf("node %d: %w", index, err)
			}
			for _, p := range prims {
				p.Mesh = p.Mesh.Transform(world)
				out = append(out, p)
			}
		}
		for _, child := range node.Children {
			if err := visit(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range gltfRootNodes(doc) {
		if err := visit(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// extractMesh reads the triangle primitives of one mesh in mesh space.
// Non-triangle primitives are skipped.
func (e *gltfMeshExtractorImpl) extractMesh(meshIndex int) ([]gltfPrimitiveMesh, error) {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	mesh := &doc.Meshes[meshIndex]

	var out []gltfPrimitiveMesh
	for i := range mesh.Primitives {
		prim := &mesh.Primitives[i]
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}
		m, err := e.extractPrimitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, i, err)
		}
		m.Name = mesh.Name
		if m.Name == "" {
			m.Name = fmt.Sprintf("mesh_%d", meshIndex)
		}
		if i > 0 {
			m.Name = fmt.Sprintf("%s_prim%d", m.Name, i)
		}
		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}
		out = append(out, gltfPrimitiveMesh{Mesh: m, MaterialIndex: material})
	}
	return out, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive) (model.Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return model.Mesh{}, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, width, err := e.parser.ReadFloats(posIdx)
	if err != nil {
		return model.Mesh{}, fmt.Errorf("POSITION: %w", err)
	}
	if width != 3 {
		return model.Mesh{}, fmt.Errorf("POSITION must be VEC3, got width %d", width)
	}
	count := len(positions) / 3
	vertices := make([]model.GPUVertex, count)
	for i := range vertices {
		copy(vertices[i].Position[:], positions[i*3:])
	}

	hasNormals := false
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, w, err := e.parser.ReadFloats(idx)
		if err != nil {
			return model.Mesh{}, fmt.Errorf("NORMAL: %w", err)
		}
		if w == 3 && len(normals) == count*3 {
			for i := range vertices {
				copy(vertices[i].Normal[:], normals[i*3:])
			}
			hasNormals = true
		}
	}

	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, w, err := e.parser.ReadFloats(idx)
		if err != nil {
			return model.Mesh{}, fmt.Errorf("TEXCOORD_0: %w", err)
		}
		if w == 2 && len(uvs) == count*2 {
			for i := range vertices {
				copy(vertices[i].TexCoord[:], uvs[i*2:])
			}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = e.parser.ReadIndices(*prim.Indices); err != nil {
			return model.Mesh{}, fmt.Errorf("indices: %w", err)
		}
		for _, ix := range indices {
			if int(ix) >= count {
				return model.Mesh{}, fmt.Errorf("index %d exceeds vertex count %d", ix, count)
			}
		}
	} else {
		indices = make([]uint32, count)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if !hasNormals {
		generateNormals(vertices, indices)
	}
	return model.Mesh{Vertices: vertices, Indices: indices}, nil
}

// gltfRootNodes returns the root nodes of the default scene, or every
// parentless node when the document declares no scenes.
func gltfRootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		scene := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			scene = *doc.Scene
		}
		return doc.Scenes[scene].Nodes
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfNodeMatrix returns a node's local transform from its matrix or its TRS triple.
func gltfNodeMatrix(n *gltfNode) mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}
	t := mgl32.Ident4()
	if n.Translation != nil {
		t = mgl32.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	}
	r := mgl32.Ident4()
	if n.Rotation != nil {
		q := mgl32.Quat{W: n.Rotation[3], V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}}
		r = q.Normalize().Mat4()
	}
	s := mgl32.Ident4()
	if n.Scale != nil {
		s = mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	}
	return t.Mul4(r).Mul4(s)
}

// generateNormals computes smooth per-vertex normals by accumulating
// area-weighted face normals over every triangle that shares the vertex.
func generateNormals(vertices []model.GPUVertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := mgl32.Vec3(vertices[i0].Position)
		face := mgl32.Vec3(vertices[i1].Position).Sub(p0).Cross(mgl32.Vec3(vertices[i2].Position).Sub(p0))
		accum[i0] = accum[i0].Add(face)
		accum[i1] = accum[i1].Add(face)
		accum[i2] = accum[i2].Add(face)
	}
	for i, n := range accum {
		if l := n.Len(); l > 1e-8 {
			vertices[i].Normal = n.Mul(1 / l)
		} else {
			vertices[i].Normal = [3]float32{0, 1, 0}
		}
	}
}
