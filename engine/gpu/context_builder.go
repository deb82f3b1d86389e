package gpu

import "log/slog"

// ContextBuilderOption is a functional option for configuring a Context.
type ContextBuilderOption func(*Context)

// WithLogger sets the logger used for driver diagnostics. A nil logger is ignored.
//
// Parameters:
//   - logger: the diagnostic logger
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ContextBuilderOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStrict makes every driver error panic at the call site that raised it.
//
// Parameters:
//   - strict: true to halt on driver errors
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithStrict(strict bool) ContextBuilderOption {
	return func(c *Context) {
		c.strict = strict
	}
}
