package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithAlphaBlending enables blending with source alpha and one minus source alpha when the
// renderer is created, so translucent texels composite over what is already drawn.
//
// Returns:
//   - RendererBuilderOption: a function that applies the blending option to a renderer
func WithAlphaBlending() RendererBuilderOption {
	return func(r *renderer) {
		r.blending = true
	}
}

// WithClearColor sets the initial clear color.
//
// Parameters:
//   - rgba: the red, green, blue and alpha components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(rgba [4]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = &rgba
	}
}
