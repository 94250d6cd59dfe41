package hud

// PanelOption is a functional option for configuring a Panel.
type PanelOption func(*Panel)

// WithTitleSetter mirrors each headline into set, typically Window.SetTitle.
//
// Parameters:
//   - set: receives the headline on every Show
//
// Returns:
//   - PanelOption: option function to apply
func WithTitleSetter(set func(string)) PanelOption {
	return func(p *Panel) {
		p.title = set
	}
}
