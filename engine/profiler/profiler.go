package profiler

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// defaultWindow is how many recent frames the rolling average covers.
const defaultWindow = 120

// Profiler tracks frame timing and memory statistics for performance monitoring.
// Frame times feed a rolling average shown in the UI; a stats line is logged at a configurable interval.
type Profiler struct {
	logger *slog.Logger
	now    func() time.Time

	updateInterval time.Duration
	logStats       bool

	lastFrame time.Time
	delta     time.Duration
	samples   []time.Duration
	next      int
	sum       time.Duration
	total     uint64

	frameCount     int
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and the rolling average to the last 120 frames.
//
// Parameters:
//   - options: functional options such as WithInterval
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
		logStats:       true,
		samples:        make([]time.Duration, 0, defaultWindow),
	}
	for _, opt := range options {
		opt(p)
	}
	start := p.now()
	p.lastFrame = start
	p.lastTime = start
	return p
}

// Tick should be called once per frame. It records the time since the previous tick and
// logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, frame time, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	currentTime := p.now()
	p.record(currentTime.Sub(p.lastFrame))
	p.lastFrame = currentTime
	p.frameCount++

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}
	if p.logStats {
		p.logInterval(elapsed)
	}
	p.frameCount = 0
	p.lastTime = currentTime
	return true
}

// SetLogging turns the periodic stats line on or off. Timing is recorded either way.
func (p *Profiler) SetLogging(enabled bool) {
	p.logStats = enabled
}

// Logging reports whether the periodic stats line is on.
func (p *Profiler) Logging() bool {
	return p.logStats
}

func (p *Profiler) record(d time.Duration) {
	p.delta = d
	p.total++
	if len(p.samples) < cap(p.samples) {
		p.samples = append(p.samples, d)
		p.sum += d
		return
	}
	p.sum += d - p.samples[p.next]
	p.samples[p.next] = d
	p.next = (p.next + 1) % len(p.samples)
}

func (p *Profiler) logInterval(elapsed time.Duration) {
	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: bytes of live heap objects. TotalAlloc: cumulative, tracks churn. Sys: process footprint.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("frame stats",
		"fps", fmt.Sprintf("%.2f", fps),
		"frame_ms", fmt.Sprintf("%.3f", p.FrameTime()),
		"heap_mb", fmt.Sprintf("%.2f", allocMB),
		"alloc_rate_mb_s", fmt.Sprintf("%.2f", allocRateMB),
		"gc", gcCount,
		"gc_last_us", lastPauseUs,
		"gc_max_us", maxPauseUs,
		"sys_mb", fmt.Sprintf("%.2f", sysMB),
	)
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}

// Delta returns the duration of the most recent frame.
//
// Returns:
//   - time.Duration: the time between the last two ticks
func (p *Profiler) Delta() time.Duration {
	return p.delta
}

// Frames returns the number of ticks recorded.
//
// Returns:
//   - uint64: the tick count
func (p *Profiler) Frames() uint64 {
	return p.total
}

// FrameTime returns the rolling average frame time in milliseconds.
//
// Returns:
//   - float64: average milliseconds per frame, 0 before the first tick
func (p *Profiler) FrameTime() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	return float64(p.sum) / float64(len(p.samples)) / float64(time.Millisecond)
}

// FPS returns the rolling average frame rate.
//
// Returns:
//   - float64: frames per second, 0 before the first tick or when frames take no time
func (p *Profiler) FPS() float64 {
	ms := p.FrameTime()
	if ms == 0 {
		return 0
	}
	return 1000 / ms
}

// Summary formats the rolling averages the way the sandbox UI shows them.
//
// Returns:
//   - string: "Application average <ms> ms/frame (<fps> FPS)"
func (p *Profiler) Summary() string {
	return fmt.Sprintf("Application average %.3f ms/frame (%.1f FPS)", p.FrameTime(), p.FPS())
}
