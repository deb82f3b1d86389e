package frontend

import "github.com/Carmen-Shannon/oxy-gl/engine/ui"

// FrontendBuilderOption is a functional option for configuring a Frontend.
type FrontendBuilderOption func(*frontend)

// WithTitle sets the title of the window widgets are drawn into. The default is "Sandbox".
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - FrontendBuilderOption: option function to apply
func WithTitle(title string) FrontendBuilderOption {
	return func(f *frontend) {
		f.title = title
	}
}

// WithLightStyle switches from the dark color scheme to the light one.
//
// Returns:
//   - FrontendBuilderOption: option function to apply
func WithLightStyle() FrontendBuilderOption {
	return func(f *frontend) {
		f.dark = false
	}
}

// WithRenderer draws frames with r instead of a renderer built on the embedded UI shader.
// The frontend takes ownership of r.
//
// Parameters:
//   - r: the UI renderer
//
// Returns:
//   - FrontendBuilderOption: option function to apply
func WithRenderer(r ui.Renderer) FrontendBuilderOption {
	return func(f *frontend) {
		f.renderer = r
	}
}
