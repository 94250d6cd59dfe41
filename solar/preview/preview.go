// Package preview renders the sun and ring programs on the CPU into images. It
// needs no GPU, so frames can be produced and hashed headlessly.
package preview

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sun ray-casts a unit sphere filling the smaller image dimension and shades
// every hit with the sun program at time. Misses are transparent.
//
// Parameters:
//   - w, h: image size in pixels
//   - time: elapsed seconds passed to the program
//
// Returns:
//   - *image.RGBA: the frame
func Sun(w, h int, time float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	half := float32(min(w, h)) / 2
	cx, cy := float32(w)/2, float32(h)/2
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			x := (float32(px) + 0.5 - cx) / half
			y := (cy - float32(py) - 0.5) / half
			r2 := x*x + y*y
			if r2 > 1 {
				continue
			}
			p := mgl32.Vec3{x, y, math32.Sqrt(1 - r2)}
			c := shading.SunColor(p, time)
			img.SetRGBA(px, py, color.RGBA{R: tone(c[0]), G: tone(c[1]), B: tone(c[2]), A: 255})
		}
	}
	return img
}

// tone maps an unbounded emissive channel onto 8 bits.
func tone(v float32) uint8 {
	v = max(v, 0)
	return uint8(math32.Round(v / (1 + v) * 255))
}

// Ring shades the ring plane seen from above, scaled so the outer edge touches
// the smaller image dimension. World positions are taken relative to the host.
//
// Parameters:
//   - w, h: image size in pixels
//   - u: the ring uniforms
//
// Returns:
//   - *image.NRGBA: the frame, transparent where the program discards
func Ring(w, h int, u shading.RingUniforms) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	scale := u.OuterRadius / (float32(min(w, h)) / 2)
	cx, cy := float32(w)/2, float32(h)/2
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			local := mgl32.Vec3{(float32(px) + 0.5 - cx) * scale, (cy - float32(py) - 0.5) * scale, 0}
			c, alpha, ok := u.Shade(local, u.HostPosition.Add(local))
			if !ok {
				continue
			}
			img.SetNRGBA(px, py, color.NRGBA{R: unit(c[0]), G: unit(c[1]), B: unit(c[2]), A: unit(alpha)})
		}
	}
	return img
}

func unit(v float32) uint8 {
	return uint8(math32.Round(mgl32.Clamp(v, 0, 1) * 255))
}

// Glow adds a blurred copy of img on top of itself.
func Glow(img image.Image, radius float64) *image.RGBA {
	if radius <= 0 {
		return clone.AsRGBA(img)
	}
	return blend.Add(img, blur.Gaussian(img, radius))
}

// Hash returns the hex SHA-256 of the image size and its RGBA pixels.
func Hash(img image.Image) string {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	h := sha256.New()
	var size [8]byte
	binary.LittleEndian.PutUint32(size[0:], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(size[4:], uint32(b.Dy()))
	h.Write(size[:])
	for y := 0; y < b.Dy(); y++ {
		off := y * rgba.Stride
		h.Write(rgba.Pix[off : off+b.Dx()*4])
	}
	return hex.EncodeToString(h.Sum(nil))
}
