// Package orbit maps simulated time onto fixed elliptical paths.
//
// The shape of each ellipse is set once at scene construction; only the phase
// θ = t·Speed changes from frame to frame.
package orbit

import (
	"github.com/chewxy/math32"
)

// Normalization divides aphelion and perihelion distances into the per-axis
// ellipse factors so the outer planets stay within the renderable scene.
const Normalization float32 = 120

// Ellipse is the immutable orbital shape of one body plus its angular rate.
type Ellipse struct {
	// Dist is the base orbital distance in scene units.
	Dist float32
	// F1 scales Dist along X (derived from aphelion).
	F1 float32
	// F2 scales Dist along Y (derived from perihelion).
	F2 float32
	// Speed is the angular rate applied to simulated time.
	Speed float32
}

// NewEllipse derives an Ellipse from catalog distances.
//
// Parameters:
//   - dist: base orbital distance in scene units
//   - aphelion: aphelion distance, divided by norm into F1
//   - perihelion: perihelion distance, divided by norm into F2
//   - speed: angular rate
//   - norm: shared normalization constant, usually Normalization
//
// Returns:
//   - Ellipse: the derived shape
func NewEllipse(dist, aphelion, perihelion, speed, norm float32) Ellipse {
	return Ellipse{
		Dist:  dist,
		F1:    aphelion / norm,
		F2:    perihelion / norm,
		Speed: speed,
	}
}

// Fixed is the degenerate ellipse of the central star: always at the origin.
var Fixed = Ellipse{}

// SemiAxes returns the X and Y semi-axis lengths.
func (e Ellipse) SemiAxes() (a, b float32) {
	return e.F1 * e.Dist, e.F2 * e.Dist
}

// Phase returns θ = t·Speed for simulated time t.
func (e Ellipse) Phase(t float32) float32 {
	return t * e.Speed
}

// Position returns the point on the ellipse for simulated time t.
// The function is total: a zero Dist pins the body at the origin.
//
// Parameters:
//   - t: simulated time
//   - e: the orbital shape
//
// Returns:
//   - x, y: position in the orbital plane
func Position(t float32, e Ellipse) (x, y float32) {
	return e.At(e.Phase(t))
}

// At returns the point on the ellipse at phase theta.
func (e Ellipse) At(theta float32) (x, y float32) {
	a, b := e.SemiAxes()
	return math32.Cos(theta) * a, math32.Sin(theta) * b
}

// Points samples the closed orbit path with the given number of segments.
// The result has segments+1 points; the last one repeats the first.
//
// Parameters:
//   - segments: number of line segments, clamped to at least 3
//
// Returns:
//   - [][2]float32: points in the orbital plane
func (e Ellipse) Points(segments int) [][2]float32 {
	if segments < 3 {
		segments = 3
	}
	pts := make([][2]float32, segments+1)
	step := 2 * math32.Pi / float32(segments)
	for i := 0; i <= segments; i++ {
		x, y := e.At(float32(i) * step)
		pts[i] = [2]float32{x, y}
	}
	pts[segments] = pts[0]
	return pts
}
