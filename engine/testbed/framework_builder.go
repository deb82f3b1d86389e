package testbed

import "log/slog"

// FrameworkBuilderOption is a functional option for configuring a Framework.
type FrameworkBuilderOption func(*Framework)

// WithLogger sets the logger for selection and render failures.
//
// Parameters:
//   - logger: the logger, ignored when nil
//
// Returns:
//   - FrameworkBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) FrameworkBuilderOption {
	return func(f *Framework) {
		if logger != nil {
			f.logger = logger
		}
	}
}
