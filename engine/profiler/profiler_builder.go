package profiler

import (
	"log/slog"
	"time"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often the stats line is logged.
//
// Parameters:
//   - interval: the time between stats lines
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the logger stats lines are written to.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithLogging enables or disables the periodic stats line. Frame timing is tracked either way.
//
// Parameters:
//   - enabled: false to keep the profiler silent
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogging(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logStats = enabled
	}
}

// WithWindow sets how many recent frames the rolling averages cover.
//
// Parameters:
//   - frames: the window length, at least 1
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithWindow(frames int) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.samples = make([]time.Duration, 0, max(frames, 1))
	}
}

// WithClock replaces time.Now, for deterministic frame timing.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
