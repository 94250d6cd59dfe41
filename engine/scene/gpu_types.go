package scene

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUObjectUniform is the per-drawable uniform bound at group 1, binding 0.
// It matches the WGSL Object struct.
// Size: 80 bytes.
type GPUObjectUniform struct {
	Model mgl32.Mat4 // offset  0: world matrix (mat4x4<f32>)
	Color [4]float32 // offset 64: color multiplier (vec4<f32>)
}

// Size returns the size of the GPUObjectUniform struct in bytes.
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform little-endian for GPU upload.
//
// Returns:
//   - []byte: the 80-byte buffer
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.Model[:]...)
	common.PutFloat32s(buf, off, g.Color[:]...)
	return buf
}

// Uniform returns the drawable's object uniform from its node's current world matrix.
func (d *Drawable) Uniform() GPUObjectUniform {
	return GPUObjectUniform{Model: d.Node.WorldMatrix(), Color: d.Color}
}
