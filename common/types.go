// Package common holds plain value types and helpers shared by the engine and the solar packages.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when an image source has neither bytes nor a path.
var ErrEmptyImage = errors.New("image source has neither data nor path")

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SolidTexture returns a 1x1 texture of the given RGBA color.
// Untextured bodies bind one of these so every lit draw shares a single pipeline layout.
//
// Parameters:
//   - r, g, b, a: the color channels
//
// Returns:
//   - TextureStagingData: a single-pixel texture
func SolidTexture(r, g, b, a uint8) TextureStagingData {
	return TextureStagingData{Pixels: []byte{r, g, b, a}, Width: 1, Height: 1}
}

// ImageSource identifies a texture image either by embedded bytes or by file path.
type ImageSource struct {
	// Name is an identifier used in log lines and errors.
	Name string
	// Path is the file path for external images (empty for embedded).
	Path string
	// Data contains raw encoded image bytes (PNG, JPEG, WebP or BMP).
	Data []byte
}

// Decode decodes the image to RGBA staging data.
// JPEG and PNG come from the standard library, WebP and BMP from golang.org/x/image.
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if reading or decoding fails
func (s ImageSource) Decode() (TextureStagingData, error) {
	switch {
	case len(s.Data) > 0:
		return DecodeImage(bytes.NewReader(s.Data))
	case s.Path != "":
		f, err := os.Open(s.Path)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open image %s: %w", s.Path, err)
		}
		defer f.Close()
		data, err := DecodeImage(f)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("image %s: %w", s.Path, err)
		}
		return data, nil
	default:
		return TextureStagingData{}, fmt.Errorf("%s: %w", s.Name, ErrEmptyImage)
	}
}

// DecodeImage decodes any registered image format from r into RGBA staging data.
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if decoding fails
func DecodeImage(r io.Reader) (TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
