package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertex is the vertex layout shared by every pipeline in the scene.
// Total size: 32 bytes, tightly packed.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// GPUVertexSize is the stride of GPUVertex in a vertex buffer.
const GPUVertexSize = 32

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the vertex into a 32-byte little-endian buffer for GPU upload.
//
// Returns:
//   - []byte: the serialized vertex
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	g.put(buf)
	return buf
}

func (g *GPUVertex) put(buf []byte) {
	vals := [8]float32{
		g.Position[0], g.Position[1], g.Position[2],
		g.Normal[0], g.Normal[1], g.Normal[2],
		g.TexCoord[0], g.TexCoord[1],
	}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

// MarshalVertices serializes a vertex slice into one contiguous buffer.
func MarshalVertices(vs []GPUVertex) []byte {
	buf := make([]byte, len(vs)*GPUVertexSize)
	for i := range vs {
		vs[i].put(buf[i*GPUVertexSize:])
	}
	return buf
}

// MarshalIndices serializes uint32 indices little-endian.
func MarshalIndices(idx []uint32) []byte {
	buf := make([]byte, len(idx)*4)
	for i, v := range idx {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}
