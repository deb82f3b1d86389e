package ui

// RendererBuilderOption is a functional option applied to a UI renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithShaderSource replaces the embedded UI shader. The program must accept the packed UI
// vertex at locations 0, 1 and 2 and declare u_Projection and u_Texture.
//
// Parameters:
//   - name: a label for the shader in errors and logs
//   - text: the stage-tagged shader source
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader option to a renderer
func WithShaderSource(name, text string) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderName = name
		r.shaderText = text
	}
}
