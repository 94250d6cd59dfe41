package model

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Sphere builds a UV sphere around the origin with its poles on ±Y.
// Faces wind counter-clockwise seen from outside.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the equator, at least 3
//   - heightSegments: segments from pole to pole, at least 2
//
// Returns:
//   - Mesh: the sphere
func Sphere(radius float32, widthSegments, heightSegments int) Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	m := Mesh{Name: fmt.Sprintf("sphere_%g_%dx%d", radius, widthSegments, heightSegments)}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			theta := v * math32.Pi
			n := [3]float32{
				-math32.Cos(phi) * math32.Sin(theta),
				math32.Cos(theta),
				math32.Sin(phi) * math32.Sin(theta),
			}
			row[ix] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{u, v},
			})
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m
}

// Disc builds a flat triangle fan in the XY plane facing +Z.
//
// Parameters:
//   - radius: disc radius
//   - segments: number of rim segments, at least 3
//
// Returns:
//   - Mesh: the disc
func Disc(radius float32, segments int) Mesh {
	segments = max(segments, 3)
	m := Mesh{Name: fmt.Sprintf("disc_%g_%d", radius, segments)}
	m.Vertices = append(m.Vertices, GPUVertex{
		Normal:   [3]float32{0, 0, 1},
		TexCoord: [2]float32{0.5, 0.5},
	})
	for s := 0; s <= segments; s++ {
		a := float32(s) / float32(segments) * 2 * math32.Pi
		x, y := radius*math32.Cos(a), radius*math32.Sin(a)
		m.Vertices = append(m.Vertices, GPUVertex{
			Position: [3]float32{x, y, 0},
			Normal:   [3]float32{0, 0, 1},
			TexCoord: [2]float32{(x/radius + 1) / 2, (y/radius + 1) / 2},
		})
	}
	for i := 1; i <= segments; i++ {
		m.Indices = append(m.Indices, uint32(i), uint32(i+1), 0)
	}
	return m
}

// LineStrip builds a line strip through points in the XY plane.
//
// Parameters:
//   - name: mesh name
//   - points: the strip's vertices in order
//
// Returns:
//   - Mesh: a TopologyLineStrip mesh
func LineStrip(name string, points [][2]float32) Mesh {
	m := Mesh{Name: name, Topology: TopologyLineStrip}
	for i, p := range points {
		m.Vertices = append(m.Vertices, GPUVertex{
			Position: [3]float32{p[0], p[1], 0},
			Normal:   [3]float32{0, 0, 1},
		})
		m.Indices = append(m.Indices, uint32(i))
	}
	return m
}
