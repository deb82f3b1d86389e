package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow uses an existing window instead of creating one from the configuration.
//
// Parameters:
//   - w: the window; its GL context, if any, must be current
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithDriver uses the given graphics driver. By default a headless window gets a gpufake driver
// and a glfw window gets the OpenGL driver.
//
// Parameters:
//   - d: the driver
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDriver(d gpu.Driver) EngineBuilderOption {
	return func(e *engine) {
		e.driver = d
	}
}

// WithUI replaces the imgui frontend. The engine does not destroy a UI it did not create.
//
// Parameters:
//   - u: the UI
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUI(u UI) EngineBuilderOption {
	return func(e *engine) {
		e.ui = u
	}
}

// WithLogger sets the logger shared by the engine, graphics context, profiler and framework.
// The default writes text to stderr at the configured level.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithLoader uses a loader that may already hold decoded images.
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithFrameLimit stops the loop after the given number of frames, overriding the configuration.
//
// Parameters:
//   - frames: frames to run, 0 runs until the window closes
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(frames int) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = max(frames, 0)
	}
}
