package controls

import "log/slog"

// ControlsOption is a functional option for configuring Controls.
type ControlsOption func(*Controls)

// WithMode sets the initial mode.
func WithMode(mode Mode) ControlsOption {
	return func(c *Controls) {
		c.mode = mode
	}
}

// WithSettings replaces the controller tunables. Zero fields keep their defaults.
//
// Parameters:
//   - s: the settings
//
// Returns:
//   - ControlsOption: option function to apply
func WithSettings(s Settings) ControlsOption {
	return func(c *Controls) {
		if s.FlySpeed > 0 {
			c.settings.FlySpeed = s.FlySpeed
		}
		if s.RollSpeed > 0 {
			c.settings.RollSpeed = s.RollSpeed
		}
		if s.Damping > 0 {
			c.settings.Damping = s.Damping
		}
		if s.ZoomSpeed > 0 {
			c.settings.ZoomSpeed = s.ZoomSpeed
		}
		if s.MouseSensitivity > 0 {
			c.settings.MouseSensitivity = s.MouseSensitivity
		}
	}
}

// WithLogger sets the logger used for mode changes.
func WithLogger(l *slog.Logger) ControlsOption {
	return func(c *Controls) {
		if l != nil {
			c.logger = l
		}
	}
}
