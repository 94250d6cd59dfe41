package shading

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	skewF   = float32(1.0 / 3.0)
	unskewG = float32(1.0 / 6.0)
)

// Noise3 is 3D simplex noise over a mod-289 permutation polynomial.
//
// Corner gradients are taken in the XY plane only ((x_, y_, 0)) and the sum is
// scaled by 42, so the output roughly spans [-1, 1] but is not bounded by it.
//
// Parameters:
//   - v: sample point
//
// Returns:
//   - float32: the noise value
func Noise3(v mgl32.Vec3) float32 {
	s := (v[0] + v[1] + v[2]) * skewF
	i := mgl32.Vec3{math32.Floor(v[0] + s), math32.Floor(v[1] + s), math32.Floor(v[2] + s)}
	u := (i[0] + i[1] + i[2]) * unskewG
	x0 := v.Sub(i).Add(mgl32.Vec3{u, u, u})

	// Simplex corner ordering.
	g := mgl32.Vec3{step(x0[1], x0[0]), step(x0[2], x0[1]), step(x0[0], x0[2])}
	l := mgl32.Vec3{1 - g[0], 1 - g[1], 1 - g[2]}
	i1 := mgl32.Vec3{math32.Min(g[0], l[2]), math32.Min(g[1], l[0]), math32.Min(g[2], l[1])}
	i2 := mgl32.Vec3{math32.Max(g[0], l[2]), math32.Max(g[1], l[0]), math32.Max(g[2], l[1])}

	x1 := x0.Sub(i1).Add(mgl32.Vec3{unskewG, unskewG, unskewG})
	x2 := x0.Sub(i2).Add(mgl32.Vec3{skewF, skewF, skewF})
	x3 := x0.Sub(mgl32.Vec3{0.5, 0.5, 0.5})

	i = mgl32.Vec3{mod289(i[0]), mod289(i[1]), mod289(i[2])}

	oz := [4]float32{0, i1[2], i2[2], 1}
	oy := [4]float32{0, i1[1], i2[1], 1}
	ox := [4]float32{0, i1[0], i2[0], 1}
	corners := [4]mgl32.Vec3{x0, x1, x2, x3}

	var n float32
	for k := 0; k < 4; k++ {
		p := permute(permute(permute(i[2]+oz[k])+i[1]+oy[k]) + i[0] + ox[k])
		xg := fract(p*(1.0/7.0)) - 0.5
		yg := math32.Abs(xg) - 0.25

		c := corners[k]
		m := math32.Max(0.6-c.Dot(c), 0)
		m *= m
		m *= m
		n += m * (c[0]*xg + c[1]*yg)
	}
	return 42.0 * n
}
