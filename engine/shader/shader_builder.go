package shader

// ShaderBuilderOption is a functional option for configuring a Shader.
type ShaderBuilderOption func(*shaderImpl)

// WithLabel overrides the label used in logs and errors. The default is the source name.
//
// Parameters:
//   - label: the shader label
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithLabel(label string) ShaderBuilderOption {
	return func(s *shaderImpl) {
		if label != "" {
			s.label = label
		}
	}
}

// WithValidation toggles the ValidateProgram call made after a successful link.
// Validation is on by default.
//
// Parameters:
//   - validate: false to skip validation
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithValidation(validate bool) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.validate = validate
	}
}
