// Package hud renders the control-mode help panel.
package hud

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the active camera-control mode.
type Mode int

const (
	// ModeFly steers the camera as a spacecraft.
	ModeFly Mode = iota
	// ModeOrbit circles the camera around the sun.
	ModeOrbit
)

func (m Mode) String() string {
	switch m {
	case ModeFly:
		return "fly"
	case ModeOrbit:
		return "orbit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "fly" or "orbit" to a Mode. Anything else is ModeFly.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "orbit") {
		return ModeOrbit
	}
	return ModeFly
}

// Footer closes every panel.
const Footer = "Press Enter to switch view"

// Overlay presents the help for a control mode.
type Overlay interface {
	Show(mode Mode)
}

// Lines returns the headline and help lines for mode.
//
// Parameters:
//   - mode: the control mode
//
// Returns:
//   - string: the headline
//   - []string: one help line per control
func Lines(mode Mode) (string, []string) {
	if mode == ModeOrbit {
		return "Orbit mode", []string{
			"Drag with the mouse to rotate",
			"Mouse wheel to zoom",
		}
	}
	return "Ship mode", []string{
		"WASD: move",
		"Q/E: roll",
		"R/F: up/down",
		"Arrows: direction",
	}
}

// Title folds the whole help for mode onto one line, for surfaces such as the
// window title bar that cannot show a panel.
func Title(mode Mode) string {
	headline, lines := Lines(mode)
	return headline + " | " + strings.Join(lines, "; ") + " | " + Footer
}

// Panel is the default Overlay. It writes a bordered lipgloss panel to a writer
// and mirrors the help into a title setter, usually the window title.
type Panel struct {
	out      io.Writer
	title    func(string)
	renderer *lipgloss.Renderer

	header lipgloss.Style
	body   lipgloss.Style
	footer lipgloss.Style
	box    lipgloss.Style

	shown Mode
	count int
}

var _ Overlay = &Panel{}

// NewPanel creates a Panel writing to out. A nil out discards the text.
//
// Parameters:
//   - out: the destination of the rendered panel
//   - options: functional options applied to the panel
//
// Returns:
//   - *Panel: the new panel
func NewPanel(out io.Writer, options ...PanelOption) *Panel {
	if out == nil {
		out = io.Discard
	}
	r := lipgloss.NewRenderer(out)
	p := &Panel{
		out:      out,
		renderer: r,
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		body:     r.NewStyle().Foreground(lipgloss.Color("252")),
		footer:   r.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Render returns the panel text for mode without writing it.
func (p *Panel) Render(mode Mode) string {
	headline, lines := Lines(mode)
	rows := make([]string, 0, len(lines)+3)
	rows = append(rows, p.header.Render(headline))
	for _, l := range lines {
		rows = append(rows, p.body.Render(l))
	}
	rows = append(rows, "", p.footer.Render(Footer))
	return p.box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Show renders the panel for mode and updates the title.
func (p *Panel) Show(mode Mode) {
	p.shown = mode
	p.count++
	if p.title != nil {
		p.title(Title(mode))
	}
	if _, err := fmt.Fprintln(p.out, p.Render(mode)); err != nil {
		slog.Warn("hud write failed", "err", err)
	}
}

// Shown returns the last mode shown and how many times Show ran.
func (p *Panel) Shown() (Mode, int) {
	return p.shown, p.count
}
