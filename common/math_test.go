package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, 0},
		{"inside", 1, 1},
		{"full turn", TwoPi, 0},
		{"past full turn", TwoPi + 0.5, 0.5},
		{"negative", -0.5, TwoPi - 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-5)
		})
	}
}

func TestEulerXYZOrder(t *testing.T) {
	// Tilt about X by 90° then spin about Y by 90°: local +X ends on -Z after the spin,
	// and the X tilt maps -Z to +Y.
	m := EulerXYZ(mgl32.Vec3{math.Pi / 2, math.Pi / 2, 0})
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 0, got[0], 1e-5)
	assert.InDelta(t, 1, got[1], 1e-5)
	assert.InDelta(t, 0, got[2], 1e-5)
}

func TestComposeTRS(t *testing.T) {
	m := ComposeTRS(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	got := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1}).Vec3()
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, got)
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(math.Pi/2, 1, 0.1, 1000)
	near := p.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -1000, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-4)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestNormalizeOr(t *testing.T) {
	fallback := mgl32.Vec3{0, 1, 0}
	assert.Equal(t, fallback, NormalizeOr(mgl32.Vec3{}, fallback))
	assert.InDelta(t, 1, NormalizeOr(mgl32.Vec3{3, 4, 0}, fallback).Len(), 1e-6)
}

func TestPutFloat32s(t *testing.T) {
	buf := make([]byte, 12)
	end := PutFloat32s(buf, 4, 1.5, -2)
	assert.Equal(t, 12, end)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xc0, 0x3f, 0, 0, 0, 0xc0}, buf)
}

func TestDecodeImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	data, err := ImageSource{Name: "test", Data: buf.Bytes()}.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(1), data.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, data.Pixels)
}

func TestDecodeEmptySource(t *testing.T) {
	_, err := ImageSource{Name: "nothing"}.Decode()
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("bogus"))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}
