package shading

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidRing is returned for ring geometry that cannot be normalized.
var ErrInvalidRing = errors.New("invalid ring parameters")

// Ring palette.
var (
	sandDark    = Color{0.58, 0.50, 0.38}
	sandLight   = Color{0.88, 0.78, 0.60}
	sandBright  = Color{1.00, 0.92, 0.78}
	cassiniDark = Color{0.32, 0.30, 0.26}
)

// Band boundaries in normalized ring distance.
const (
	innerBandEnd = 0.33
	outerBandBeg = 0.65
	gapLo        = 0.52
	gapHi        = 0.57
	gapCenter    = 0.545
	gapHalfWidth = 0.025
	edgeFadeBeg  = 0.92
)

// RingUniforms is the parameter block of the ring program.
type RingUniforms struct {
	InnerRadius    float32
	OuterRadius    float32
	ShadowColor    Color
	LightDirection mgl32.Vec3
	OpacityFactor  float32
	// HostPosition is the world position of the planet that casts the ring shadow.
	HostPosition mgl32.Vec3
}

// DefaultRingUniforms returns the reference ring block: radii 20 to 45 with
// light coming from +Y until the first update.
func DefaultRingUniforms() RingUniforms {
	return RingUniforms{
		InnerRadius:    20,
		OuterRadius:    45,
		ShadowColor:    Color{0x7a / 255.0, 0x6a / 255.0, 0x5d / 255.0},
		LightDirection: mgl32.Vec3{0, 1, 0},
		OpacityFactor:  1,
	}
}

// NewRingUniforms builds a ring block from config values.
//
// Parameters:
//   - inner: inner radius in the ring's local units
//   - outer: outer radius, must exceed inner
//   - shadowHex: shadow tint as a #rrggbb string
//   - opacity: global opacity factor
//
// Returns:
//   - RingUniforms: the block, light along +Y and host at the origin
//   - error: ErrInvalidRing for degenerate radii or a bad color
func NewRingUniforms(inner, outer float32, shadowHex string, opacity float32) (RingUniforms, error) {
	if outer <= inner {
		return RingUniforms{}, fmt.Errorf("%w: outer radius %v must exceed inner radius %v", ErrInvalidRing, outer, inner)
	}
	if inner < 0 {
		return RingUniforms{}, fmt.Errorf("%w: negative inner radius %v", ErrInvalidRing, inner)
	}
	c, err := colorful.Hex(shadowHex)
	if err != nil {
		return RingUniforms{}, fmt.Errorf("%w: shadow color: %v", ErrInvalidRing, err)
	}
	u := DefaultRingUniforms()
	u.InnerRadius = inner
	u.OuterRadius = outer
	u.ShadowColor = Color{float32(c.R), float32(c.G), float32(c.B)}
	u.OpacityFactor = opacity
	return u, nil
}

// Update points the light from host back toward the star at the origin and
// records the host as the shadow caster. A host sitting on the origin keeps
// the previous light direction.
//
// Parameters:
//   - host: world position of the ring's host planet
func (u *RingUniforms) Update(host mgl32.Vec3) {
	u.LightDirection = common.NormalizeOr(host.Mul(-1), u.LightDirection)
	u.HostPosition = host
}

// Normalize maps a radial distance onto [0, 1] across the ring.
func (u RingUniforms) Normalize(dist float32) float32 {
	return (dist - u.InnerRadius) / (u.OuterRadius - u.InnerRadius)
}

// RingBand returns the banded base color and alpha at a normalized ring
// distance, together with the dark-gap blend factor (zero outside the gap).
// Specular, edge fade, lighting and opacity are applied later by Shade.
//
// Parameters:
//   - dn: normalized distance, 0 at the inner edge and 1 at the outer edge
//
// Returns:
//   - Color: band color
//   - float32: band alpha
//   - float32: gap factor in [0, 1]
func RingBand(dn float32) (Color, float32, float32) {
	switch {
	case dn < innerBandEnd:
		t := dn / innerBandEnd
		return mixColor(sandDark, sandLight, smoothstep(0, 1, t)), mix(0.6, 0.9, t), 0
	case dn < outerBandBeg:
		c := mixColor(sandLight, sandBright, 0.4)
		alpha := float32(1)
		var gap float32
		if dn > gapLo && dn < gapHi {
			d := math32.Abs(dn-gapCenter) / gapHalfWidth
			gap = clamp(1-d, 0, 1)
			c = mixColor(c, cassiniDark, gap)
			alpha = mix(alpha, 1, gap)
		}
		return c, alpha, gap
	default:
		t := (dn - outerBandBeg) / (1 - outerBandBeg)
		return mixColor(sandLight, sandBright, smoothstep(0, 1, t)), mix(0.6, 0.9, t), 0
	}
}

// Shade evaluates the ring program for one fragment.
//
// Parameters:
//   - local: fragment position in the disc's own frame (the disc lies in local XY)
//   - world: fragment position in world space
//
// Returns:
//   - Color: shaded color
//   - float32: final alpha including the opacity factor
//   - bool: false when the fragment is outside the annulus and is discarded
func (u RingUniforms) Shade(local, world mgl32.Vec3) (Color, float32, bool) {
	dist := math32.Hypot(local[0], local[1])
	if dist < u.InnerRadius || dist > u.OuterRadius {
		return Color{}, 0, false
	}
	dn := u.Normalize(dist)
	c, alpha, _ := RingBand(dn)

	light := common.NormalizeOr(u.LightDirection, mgl32.Vec3{})
	angle := math32.Abs(common.NormalizeOr(local, mgl32.Vec3{}).Dot(light))
	spec := math32.Pow(angle, 4) * 0.25
	c = c.Add(Color{spec, spec, spec})

	alpha *= 1 - smoothstep(edgeFadeBeg, 1, dn)

	normal := mgl32.Vec3{0, 0, 1}
	intensity := math32.Max(0.55, normal.Dot(u.LightDirection))
	hostDir := common.NormalizeOr(u.HostPosition.Sub(world), mgl32.Vec3{})
	mask := smoothstep(0.82, 1, u.LightDirection.Dot(hostDir))
	intensity = mix(intensity, intensity*0.25, mask)
	c = mixColor(u.ShadowColor, c, intensity)

	return c, alpha * u.OpacityFactor, true
}

// Bytes packs the uniforms for the WGSL RingParams struct:
// inner, outer, opacity, pad, then three vec3 fields each padded to 16 bytes.
func (u RingUniforms) Bytes() []byte {
	buf := make([]byte, 64)
	off := common.PutFloat32s(buf, 0, u.InnerRadius, u.OuterRadius, u.OpacityFactor, 0)
	off = common.PutFloat32s(buf, off, u.ShadowColor[0], u.ShadowColor[1], u.ShadowColor[2], 0)
	off = common.PutFloat32s(buf, off, u.LightDirection[0], u.LightDirection[1], u.LightDirection[2], 0)
	common.PutFloat32s(buf, off, u.HostPosition[0], u.HostPosition[1], u.HostPosition[2], 0)
	return buf
}
