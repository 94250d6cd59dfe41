package shading

import (
	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	sunCore = Color{1.0, 0.4, 0.0}
	sunEdge = Color{0.8, 0.1, 0.0}
)

// SunUniforms is the per-frame state of the sun program.
type SunUniforms struct {
	// Time is wall-clock seconds since start.
	Time float32
}

// Bytes packs the uniforms for a 16-byte aligned WGSL uniform struct.
func (u SunUniforms) Bytes() []byte {
	buf := make([]byte, 16)
	common.PutFloat32s(buf, 0, u.Time, 0, 0, 0)
	return buf
}

// SunPlasma returns the clamped four-octave fractal noise value in [0, 1] that
// drives the sun color at a surface point.
//
// Parameters:
//   - position: object-space point, normalized before sampling
//   - time: elapsed seconds
//
// Returns:
//   - float32: the plasma intensity
func SunPlasma(position mgl32.Vec3, time float32) float32 {
	p := common.NormalizeOr(position, mgl32.Vec3{})
	t := time * 0.5

	var n float32
	freq, amp, shift := float32(8), float32(1), t
	for octave := 0; octave < 4; octave++ {
		n += amp * Noise3(p.Mul(freq).Add(mgl32.Vec3{shift, shift, shift}))
		freq *= 2
		amp *= 0.5
		shift *= 2
	}
	return clamp(n*0.5+0.5, 0, 1)
}

// SunColor shades one point of the sun surface. The result is emissive and is
// not clamped to [0, 1]; brightness peaks at 2.5× the core color.
//
// Parameters:
//   - position: object-space point on the sphere
//   - time: elapsed seconds
//
// Returns:
//   - Color: the emitted color
func SunColor(position mgl32.Vec3, time float32) Color {
	n := SunPlasma(position, time)
	return mixColor(sunEdge, sunCore, n).Mul(n*2 + 0.5)
}
