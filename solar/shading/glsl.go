// Package shading holds the procedural surface programs of the sun and the
// ring system, as CPU reference functions and their embedded WGSL twins.
//
// The CPU functions follow the GPU arithmetic step for step so a frame can be
// reproduced and hashed without a device.
package shading

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Color is a linear RGB triple. Components are not clamped.
type Color = mgl32.Vec3

func clamp(x, lo, hi float32) float32 {
	return math32.Min(math32.Max(x, lo), hi)
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func mixColor(a, b Color, t float32) Color {
	return Color{mix(a[0], b[0], t), mix(a[1], b[1], t), mix(a[2], b[2], t)}
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}

func mod289(x float32) float32 {
	return x - math32.Floor(x*(1.0/289.0))*289.0
}

func permute(x float32) float32 {
	return mod289((x*34.0 + 1.0) * x)
}
