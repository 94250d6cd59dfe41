package preview

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunDeterministic(t *testing.T) {
	a := Sun(64, 48, 1.5)
	b := Sun(64, 48, 1.5)
	assert.Equal(t, Hash(a), Hash(b))
	assert.NotEqual(t, Hash(a), Hash(Sun(64, 48, 7)))

	assert.Zero(t, a.RGBAAt(0, 0).A)
	center := a.RGBAAt(32, 24)
	assert.Equal(t, uint8(255), center.A)
	// Emission is red-dominant.
	assert.GreaterOrEqual(t, center.R, center.B)
}

func TestRing(t *testing.T) {
	u := shading.DefaultRingUniforms()
	img := Ring(100, 100, u)

	// The centre and the corners fall inside the inner radius or past the outer edge.
	assert.Zero(t, img.NRGBAAt(50, 50).A)
	assert.Zero(t, img.NRGBAAt(0, 0).A)

	// Radius 30 lies in the middle band where alpha is 1 before the opacity factor.
	px := 50 + int(30/u.OuterRadius*50)
	assert.Equal(t, uint8(255), img.NRGBAAt(px, 50).A)

	u.OpacityFactor = 0.5
	half := Ring(100, 100, u)
	assert.InDelta(t, 128, int(half.NRGBAAt(px, 50).A), 1)
}

func TestGlow(t *testing.T) {
	sun := Sun(32, 32, 0)
	glow := Glow(sun, 3)
	require.Equal(t, sun.Bounds(), glow.Bounds())

	// Light spills past the disc edge.
	assert.Zero(t, sun.RGBAAt(3, 3).A)
	assert.NotZero(t, glow.RGBAAt(3, 3).R)

	assert.Equal(t, Hash(sun), Hash(Glow(sun, 0)))
}

func TestHash(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 2, 3))
	b := image.NewRGBA(image.Rect(0, 0, 3, 2))
	assert.Len(t, Hash(a), 64)
	assert.NotEqual(t, Hash(a), Hash(b))

	// Sub-images hash by content, not by the parent's stride.
	big := Sun(16, 16, 0)
	sub := big.SubImage(image.Rect(4, 4, 12, 12))
	assert.Equal(t, Hash(sub), Hash(clip(big, 4, 4, 8)))
}

func clip(src *image.RGBA, x, y, n int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, n, n))
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			out.SetRGBA(i, j, src.RGBAAt(x+i, y+j))
		}
	}
	return out
}
