package hud

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"orbit", ModeOrbit},
		{" Orbit ", ModeOrbit},
		{"fly", ModeFly},
		{"", ModeFly},
		{"bogus", ModeFly},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMode(tt.in), tt.in)
	}
	assert.Equal(t, "fly", ModeFly.String())
	assert.Equal(t, "orbit", ModeOrbit.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestPanelShow(t *testing.T) {
	var buf bytes.Buffer
	var title string
	p := NewPanel(&buf, WithTitleSetter(func(s string) { title = s }))

	p.Show(ModeFly)
	out := buf.String()
	assert.Equal(t, "Ship mode | WASD: move; Q/E: roll; R/F: up/down; Arrows: direction | "+Footer, title)
	for _, want := range []string{"Ship mode", "WASD: move", "Q/E: roll", "R/F: up/down", "Arrows: direction", Footer} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Orbit mode")

	buf.Reset()
	p.Show(ModeOrbit)
	out = buf.String()
	assert.Equal(t, Title(ModeOrbit), title)
	assert.Contains(t, title, "Drag with the mouse to rotate; Mouse wheel to zoom")
	assert.Contains(t, out, "Mouse wheel to zoom")
	assert.Contains(t, out, Footer)

	mode, n := p.Shown()
	assert.Equal(t, ModeOrbit, mode)
	assert.Equal(t, 2, n)
}

func TestPanelNilWriter(t *testing.T) {
	p := NewPanel(nil)
	assert.NotPanics(t, func() { p.Show(ModeFly) })
	assert.Contains(t, p.Render(ModeOrbit), "Drag with the mouse to rotate")
}
