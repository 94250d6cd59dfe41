package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// TwoPi is a full turn in radians.
const TwoPi = float32(2 * math.Pi)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// PutFloat32s writes values as little-endian float32s into buf starting at offset.
//
// Parameters:
//   - buf: destination buffer, must have room for 4*len(values) bytes past offset
//   - offset: byte offset of the first value
//   - values: the floats to write
//
// Returns:
//   - int: the byte offset just past the last written value
func PutFloat32s(buf []byte, offset int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
		offset += 4
	}
	return offset
}

// Perspective creates a right-handed perspective projection matrix that maps depth into
// the WebGPU clip range [0, 1]. mgl32.Perspective targets the OpenGL [-1, 1] range and
// cannot be used directly with a Depth24Plus attachment cleared to 1.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, (near * far) / (near - far), 0,
	}
}

// EulerXYZ builds a rotation matrix from Euler angles applied in X, Y, Z order,
// i.e. R = Rx * Ry * Rz. A node rotated about X and then spun about Y keeps its
// Y spin in the tilted frame, which is what moon pivots rely on.
//
// Parameters:
//   - rot: rotation angles in radians around each axis
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func EulerXYZ(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rot[0]).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DZ(rot[2]))
}

// ComposeTRS constructs a model matrix as translation * rotation * scale.
//
// Parameters:
//   - pos: translation
//   - rot: XYZ Euler rotation in radians
//   - scale: per-axis scale
//
// Returns:
//   - mgl32.Mat4: the composed local transform
func ComposeTRS(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(pos[0], pos[1], pos[2])
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(EulerXYZ(rot)).Mul4(s)
}

// WrapAngle folds an angle in radians into [0, 2π).
func WrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a), float64(TwoPi)))
	if w < 0 {
		w += TwoPi
	}
	if w >= TwoPi {
		w -= TwoPi
	}
	return w
}

// NormalizeOr returns v normalized, or fallback when v has (near) zero length.
func NormalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return fallback
	}
	return v.Mul(1 / l)
}
