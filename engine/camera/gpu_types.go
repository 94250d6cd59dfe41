package camera

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUFrameUniform is the GPU-aligned per-frame uniform bound at group 0, binding 0
// of every pipeline. It matches the WGSL Frame struct.
// Size: 128 bytes.
type GPUFrameUniform struct {
	ViewProj       mgl32.Mat4 // offset   0: combined view-projection matrix (mat4x4<f32>)
	CameraPosition [4]float32 // offset  64: world-space camera position, w = 1
	LightPosition  [4]float32 // offset  80: point light position, w = 1
	LightColor     [4]float32 // offset  96: point light color times intensity
	Ambient        [4]float32 // offset 112: ambient color times intensity
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.ViewProj[:]...)
	off = common.PutFloat32s(buf, off, g.CameraPosition[:]...)
	off = common.PutFloat32s(buf, off, g.LightPosition[:]...)
	off = common.PutFloat32s(buf, off, g.LightColor[:]...)
	common.PutFloat32s(buf, off, g.Ambient[:]...)
	return buf
}
