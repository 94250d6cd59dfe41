package shading

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/shader/wgsl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoise3Deterministic(t *testing.T) {
	p := mgl32.Vec3{1.3, -2.7, 0.45}
	assert.Equal(t, Noise3(p), Noise3(p))
	assert.NotEqual(t, Noise3(p), Noise3(p.Add(mgl32.Vec3{0.31, 0, 0})))
}

func TestNoise3Range(t *testing.T) {
	var lo, hi float32 = 10, -10
	for x := float32(-4); x < 4; x += 0.37 {
		for y := float32(-4); y < 4; y += 0.41 {
			n := Noise3(mgl32.Vec3{x, y, x * 0.5})
			lo = min(lo, n)
			hi = max(hi, n)
		}
	}
	assert.Greater(t, hi, lo)
	assert.GreaterOrEqual(t, lo, float32(-1.5))
	assert.LessOrEqual(t, hi, float32(1.5))
}

func TestSunColorDeterministic(t *testing.T) {
	points := []mgl32.Vec3{{1, 0, 0}, {0, 0.5, 0.5}, {-0.3, 0.2, -0.9}}
	for _, p := range points {
		for _, tm := range []float32{0, 1.25, 60} {
			assert.Equal(t, SunColor(p, tm), SunColor(p, tm))
		}
	}
}

func TestSunColorScaleInvariant(t *testing.T) {
	p := mgl32.Vec3{0.2, 0.7, -0.4}
	a, b := SunColor(p, 3), SunColor(p.Mul(23.1), 3)
	assertNear(t, b, a, 1e-3)
}

func TestSunColorEnvelope(t *testing.T) {
	// n in [0,1] bounds every channel between edge*0.5 and core*2.5.
	for i := 0; i < 200; i++ {
		a := float32(i) * 0.1
		p := mgl32.Vec3{float32(math.Cos(float64(a))), float32(math.Sin(float64(a))), float32(i%7) * 0.1}
		c := SunColor(p, float32(i)*0.05)
		assert.GreaterOrEqual(t, c[0], float32(0.4)-1e-5)
		assert.LessOrEqual(t, c[0], float32(2.5)+1e-5)
		assert.GreaterOrEqual(t, c[1], float32(0.05)-1e-5)
		assert.LessOrEqual(t, c[1], float32(1.0)+1e-5)
		assert.InDelta(t, 0, c[2], 1e-6)
	}
}

func TestSunPlasmaRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		n := SunPlasma(mgl32.Vec3{float32(i), 1, -2}, float32(i))
		assert.GreaterOrEqual(t, n, float32(0))
		assert.LessOrEqual(t, n, float32(1))
	}
}

func ringAt(u RingUniforms, dn float32) mgl32.Vec3 {
	r := u.InnerRadius + dn*(u.OuterRadius-u.InnerRadius)
	return mgl32.Vec3{r, 0, 0}
}

func TestRingDiscardOutsideAnnulus(t *testing.T) {
	u := DefaultRingUniforms()
	for _, dn := range []float32{-0.1, 1.1} {
		p := ringAt(u, dn)
		_, _, ok := u.Shade(p, p)
		assert.Falsef(t, ok, "dn=%v", dn)
	}
	for _, dn := range []float32{0, 0.5, 1} {
		p := ringAt(u, dn)
		_, _, ok := u.Shade(p, p)
		assert.Truef(t, ok, "dn=%v", dn)
	}
}

func TestRingBandAlpha(t *testing.T) {
	_, a0, _ := RingBand(0)
	assert.InDelta(t, 0.6, a0, 1e-6)
	_, a1, _ := RingBand(1)
	assert.InDelta(t, 0.9, a1, 1e-6)
	_, mid, _ := RingBand(0.4)
	assert.Equal(t, float32(1), mid)
}

func TestRingBandColors(t *testing.T) {
	c, _, _ := RingBand(0)
	assert.Equal(t, sandDark, c)
	c, _, _ = RingBand(1)
	assertNear(t, sandBright, c, 1e-6)
	c, _, _ = RingBand(0.4)
	assertNear(t, mixColor(sandLight, sandBright, 0.4), c, 1e-6)
}

func TestRingGapFactor(t *testing.T) {
	cases := []struct {
		dn  float32
		gap float32
	}{
		{0.545, 1},
		{0.52, 0},
		{0.57, 0},
		{0.50, 0},
		{0.60, 0},
		{0.5325, 0.5},
	}
	for _, tc := range cases {
		_, _, gap := RingBand(tc.dn)
		assert.InDeltaf(t, tc.gap, gap, 1e-4, "dn=%v", tc.dn)
	}
	c, _, _ := RingBand(0.545)
	assertNear(t, cassiniDark, c, 1e-6)
}

func TestRingEdgeFade(t *testing.T) {
	u := DefaultRingUniforms()
	u.LightDirection = mgl32.Vec3{0, 0, 1}
	p := ringAt(u, 1)
	_, alpha, ok := u.Shade(p, p)
	require.True(t, ok)
	assert.InDelta(t, 0, alpha, 1e-6)

	p = ringAt(u, 0)
	_, alpha, ok = u.Shade(p, p)
	require.True(t, ok)
	assert.InDelta(t, 0.6, alpha, 1e-6)
}

func TestRingOpacityFactor(t *testing.T) {
	u := DefaultRingUniforms()
	u.OpacityFactor = 0.5
	p := ringAt(u, 0.4)
	_, alpha, ok := u.Shade(p, p)
	require.True(t, ok)
	assert.InDelta(t, 0.5, alpha, 1e-6)
}

func TestRingShadowFromHost(t *testing.T) {
	u := DefaultRingUniforms()
	host := mgl32.Vec3{100, 0, 0}
	u.Update(host)

	// A fragment on the far side of the host, along the light direction, is shadowed.
	local := mgl32.Vec3{0, 30, 0}
	shadowed, _, ok := u.Shade(local, host.Add(mgl32.Vec3{30, 0, 0}))
	require.True(t, ok)
	lit, _, ok := u.Shade(local, host.Add(mgl32.Vec3{-30, 0, 0}))
	require.True(t, ok)

	dShadow := shadowed.Sub(u.ShadowColor).Len()
	dLit := lit.Sub(u.ShadowColor).Len()
	assert.Less(t, dShadow, dLit)
}

func TestRingUpdate(t *testing.T) {
	u := DefaultRingUniforms()
	u.Update(mgl32.Vec3{0, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, u.LightDirection)

	u.Update(mgl32.Vec3{3, 4, 0})
	assertNear(t, mgl32.Vec3{-0.6, -0.8, 0}, u.LightDirection, 1e-6)
	assert.Equal(t, mgl32.Vec3{3, 4, 0}, u.HostPosition)
}

func TestNewRingUniforms(t *testing.T) {
	u, err := NewRingUniforms(10, 30, "#ff0000", 0.8)
	require.NoError(t, err)
	assert.Equal(t, float32(10), u.InnerRadius)
	assert.Equal(t, Color{1, 0, 0}, u.ShadowColor)
	assert.Equal(t, float32(0.8), u.OpacityFactor)

	_, err = NewRingUniforms(45, 45, "#7a6a5d", 1)
	assert.ErrorIs(t, err, ErrInvalidRing)
	_, err = NewRingUniforms(20, 45, "not a color", 1)
	assert.ErrorIs(t, err, ErrInvalidRing)
}

func TestUniformBytesLayout(t *testing.T) {
	u := DefaultRingUniforms()
	u.Update(mgl32.Vec3{0, 0, 5})
	b := u.Bytes()
	require.Len(t, b, 64)
	f := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])) }
	assert.Equal(t, float32(20), f(0))
	assert.Equal(t, float32(45), f(1))
	assert.Equal(t, float32(1), f(2))
	assert.Equal(t, float32(-1), f(10))
	assert.Equal(t, float32(5), f(14))

	s := SunUniforms{Time: 2.5}.Bytes()
	require.Len(t, s, 16)
	assert.Equal(t, float32(2.5), math.Float32frombits(binary.LittleEndian.Uint32(s)))
}

func TestProgramsEmbedded(t *testing.T) {
	assert.Contains(t, SunWGSL, "fn fs_main")
	assert.Contains(t, RingWGSL, "discard")
}

func TestProgramsReflect(t *testing.T) {
	sun, err := wgsl.Reflect(SunWGSL)
	require.NoError(t, err)
	params, ok := sun.Binding("sun")
	require.True(t, ok)
	assert.EqualValues(t, 16, params.MinSize)
	assert.Len(t, sun.VertexInputs, 1)

	ring, err := wgsl.Reflect(RingWGSL)
	require.NoError(t, err)
	params, ok = ring.Binding("ring")
	require.True(t, ok)
	assert.Equal(t, 1, params.Group)
	assert.EqualValues(t, 64, params.MinSize)
}

// assertNear compares vectors component-wise. mgl32's ApproxEqual is relative and
// fails on components that are exactly zero.
func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
