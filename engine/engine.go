// Package engine drives the sandbox: it opens the window, builds the graphics context, renderer
// and UI on top of it, and runs the testbed frame loop until the window closes.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gldriver"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gpufake"
	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/testbed"
	"github.com/Carmen-Shannon/oxy-gl/engine/ui"
	"github.com/Carmen-Shannon/oxy-gl/engine/ui/frontend"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// UI is the per-frame widget surface the engine drives. frontend.Frontend is the default.
type UI interface {
	gpu.Releaser

	// NewFrame starts a UI frame.
	NewFrame(width, height int, dt float32)

	// Panel returns the widget surface for the current frame.
	Panel() ui.Panel

	// Render ends the frame and draws it.
	Render() error
}

// inputSink receives window input. The imgui frontend implements it.
type inputSink interface {
	MouseMove(x, y float32)
	MouseButton(button int, down bool)
	Scroll(dx, dy float32)
	Key(key int, down bool)
	Char(r rune)
}

// inputCapture reports whether the UI is using the pointer or keyboard this frame.
type inputCapture interface {
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
}

// engine implements the Engine interface.
type engine struct {
	cfg    config.Config
	logger *slog.Logger

	window   window.Window
	driver   gpu.Driver
	ctx      *gpu.Context
	renderer renderer.Renderer
	camera   camera.Camera
	control  camera.CameraController
	ui       UI
	ownsUI   bool

	loader    loader.Loader
	registry  *testbed.Registry
	framework *testbed.Framework
	profiler  *profiler.Profiler

	frameLimit int
	frames     int
	frameErr   error

	quitOnce sync.Once
}

// Engine is the main entry point for the sandbox.
// It owns the window and graphics context and runs the testbed frame loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Context returns the graphics context every wrapper is created on.
	//
	// Returns:
	//   - *gpu.Context: the graphics context
	Context() *gpu.Context

	// Renderer returns the draw dispatcher.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Camera returns the camera shared by the built-in tests.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// CameraController returns the controller panning the camera from window input.
	//
	// Returns:
	//   - camera.CameraController: the camera controller
	CameraController() camera.CameraController

	// Registry returns the root test registry. Tests registered before Run appear in the menu.
	//
	// Returns:
	//   - *testbed.Registry: the root registry
	Registry() *testbed.Registry

	// Framework returns the test framework.
	//
	// Returns:
	//   - *testbed.Framework: the framework
	Framework() *testbed.Framework

	// Loader returns the image loader holding pre-decoded assets.
	//
	// Returns:
	//   - loader.Loader: the loader
	Loader() loader.Loader

	// Profiler returns the frame profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables the periodic frame stats log line.
	EnableProfiler()

	// DisableProfiler disables the periodic frame stats log line.
	DisableProfiler()

	// SetFrameLimit stops the loop after the given number of frames.
	//
	// Parameters:
	//   - frames: frames to run, 0 runs until the window closes
	SetFrameLimit(frames int)

	// Frames returns the number of frames run so far.
	//
	// Returns:
	//   - int: the frame count
	Frames() int

	// LastFrameError returns the most recent render or UI error reported by a frame.
	// Frames keep running after such errors; the driver log has the details.
	//
	// Returns:
	//   - error: the last frame error, or nil
	LastFrameError() error

	// Run selects the configured initial test and runs the frame loop on the calling goroutine,
	// which must be the one that created the window. It returns when the window closes or the
	// frame limit is reached, after destroying the active test and the UI.
	//
	// Returns:
	//   - error: the initial selection error, or a panic raised inside a frame
	Run() error

	// Quit closes the window, ending Run after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine builds the window, graphics context, renderer, UI and test framework described by cfg.
// The built-in tests are registered under testbed.ClearColorName and testbed.TexturedQuadName.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - cfg: the configuration, validated before use
//   - options: functional options replacing the window, driver, UI or logger
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if validation, the window, the driver, the UI or asset loading fails
func NewEngine(cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &engine{
		cfg:        cfg,
		frameLimit: cfg.FrameLimit,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.logger == nil {
		level, _ := cfg.Debug.Level()
		e.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	if err := e.init(); err != nil {
		e.release()
		return nil, err
	}
	return e, nil
}

func (e *engine) init() error {
	if e.window == nil {
		w, err := e.newWindow()
		if err != nil {
			return err
		}
		e.window = w
	}

	if e.driver == nil {
		d, err := e.newDriver()
		if err != nil {
			return err
		}
		e.driver = d
	}
	e.ctx = gpu.NewContext(e.driver, gpu.WithLogger(e.logger), gpu.WithStrict(e.cfg.Debug.Strict))
	e.ctx.LogInfo()

	e.renderer = renderer.NewRenderer(e.ctx, renderer.WithAlphaBlending())
	e.renderer.Resize(e.window.Width(), e.window.Height())
	e.camera = camera.NewCamera(
		camera.WithBounds(0, float32(e.window.Width()), 0, float32(e.window.Height())),
		camera.WithPosition(100, 0, 0),
	)
	e.control = camera.NewCameraController(e.camera)

	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithLogging(e.cfg.Profiling))
	if e.loader == nil {
		e.loader = loader.NewLoader()
	}
	quadOptions, err := e.loadAssets()
	if err != nil {
		return err
	}

	if e.ui == nil {
		f, err := frontend.NewFrontend(e.ctx, frontend.WithTitle(common.Coalesce(e.cfg.Window.Title, "Sandbox")))
		if err != nil {
			return fmt.Errorf("create ui: %w", err)
		}
		e.ui = f
		e.ownsUI = true
	}
	e.wireInput()

	e.registry = testbed.NewRegistry().
		MustRegister(testbed.ClearColorName, testbed.ClearColorFactory(e.renderer)).
		MustRegister(testbed.TexturedQuadName, testbed.TexturedQuadFactory(e.renderer, quadOptions...))
	e.framework = testbed.NewFramework(e.registry, testbed.WithLogger(e.logger))

	e.logger.Info("engine ready",
		"title", e.window.Title(),
		"width", e.window.Width(),
		"height", e.window.Height(),
		"headless", e.window.Headless(),
	)
	return nil
}

func (e *engine) newWindow() (window.Window, error) {
	wc := e.cfg.Window
	options := []window.WindowBuilderOption{
		window.WithTitle(common.Coalesce(wc.Title, "Hello World")),
		window.WithSize(wc.Width, wc.Height),
		window.WithVSync(wc.VSync),
		window.WithGLVersion(wc.GLMajor, wc.GLMinor),
	}
	if wc.Headless {
		return window.NewHeadlessWindow(options...), nil
	}
	return window.NewWindow(options...)
}

func (e *engine) newDriver() (gpu.Driver, error) {
	if e.window.Headless() {
		return gpufake.New(), nil
	}
	d, err := gldriver.New()
	if err != nil {
		return nil, fmt.Errorf("load OpenGL: %w", err)
	}
	return d, nil
}

// loadAssets decodes the configured texture on the loader's worker pool and reads the configured
// shader, returning the options that point the textured quad at them.
func (e *engine) loadAssets() ([]testbed.TexturedQuadBuilderOption, error) {
	var options []testbed.TexturedQuadBuilderOption
	options = append(options, testbed.WithCamera(e.camera))

	assets := e.cfg.Assets
	if assets.Texture != "" {
		if err := e.loader.Preload(assets.Texture); err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		if img, ok := e.loader.Take(assets.Texture); ok {
			options = append(options, testbed.WithImage(img))
		}
	}
	if assets.Shader != "" {
		text, err := os.ReadFile(assets.Shader)
		if err != nil {
			return nil, fmt.Errorf("load shader: %w", err)
		}
		options = append(options, testbed.WithShaderSource(assets.Shader, string(text)))
	}
	return options, nil
}

// wireInput forwards window input to the UI when it accepts input, pans the camera with the
// arrow keys and middle mouse drags the UI does not claim, and keeps the viewport and camera in
// step with the framebuffer.
func (e *engine) wireInput() {
	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
		e.camera.Resize(width, height)
	})

	sink, _ := e.ui.(inputSink)
	capture, _ := e.ui.(inputCapture)
	var cursorX, cursorY float32

	e.window.SetMouseMoveCallback(func(x, y float32) {
		cursorX, cursorY = x, y
		if sink != nil {
			sink.MouseMove(x, y)
		}
		e.control.Drag(x, y)
	})
	e.window.SetMouseButtonCallback(func(button int, down bool) {
		if sink != nil {
			sink.MouseButton(button, down)
		}
		if button != common.MouseMiddle {
			return
		}
		switch {
		case !down:
			e.control.EndDrag()
		case capture == nil || !capture.WantCaptureMouse():
			e.control.BeginDrag(cursorX, cursorY)
		}
	})
	e.window.SetKeyDownCallback(func(key uint32) {
		if sink != nil {
			sink.Key(int(key), true)
		}
		if capture == nil || !capture.WantCaptureKeyboard() {
			e.control.KeyDown(key)
		}
	})
	if sink == nil {
		return
	}
	e.window.SetKeyUpCallback(func(key uint32) { sink.Key(int(key), false) })
	e.window.SetScrollCallback(sink.Scroll)
	e.window.SetCharCallback(sink.Char)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Context() *gpu.Context {
	return e.ctx
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) CameraController() camera.CameraController {
	return e.control
}

func (e *engine) Registry() *testbed.Registry {
	return e.registry
}

func (e *engine) Framework() *testbed.Framework {
	return e.framework
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

// EnableProfiler enables the periodic frame stats log line.
func (e *engine) EnableProfiler() {
	e.profiler.SetLogging(true)
}

// DisableProfiler disables the periodic frame stats log line.
func (e *engine) DisableProfiler() {
	e.profiler.SetLogging(false)
}

func (e *engine) SetFrameLimit(frames int) {
	e.frameLimit = max(frames, 0)
}

func (e *engine) Frames() int {
	return e.frames
}

func (e *engine) Run() (err error) {
	defer e.release()
	// A strict context panics with the driver error; surface it instead of crashing.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame loop recovered from panic", "frame", e.frames, "panic", r)
			if perr, ok := r.(error); ok {
				err = fmt.Errorf("frame %d: %w", e.frames, perr)
			} else {
				err = fmt.Errorf("frame %d: %v", e.frames, r)
			}
		}
	}()

	if name := e.cfg.Testbed.Initial; name != "" {
		if err := e.framework.Select(name); err != nil {
			return err
		}
	}
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	e.logger.Info("engine stopped", "frames", e.frames)
	return nil
}

// frame runs one iteration: clear, the active test's update, render and UI, then the stats text.
func (e *engine) frame() {
	e.profiler.Tick()
	dt := float32(e.profiler.Delta().Seconds())

	e.renderer.SetClearColor([4]float32{0, 0, 0, 1})
	e.renderer.Clear()

	e.ui.NewFrame(e.window.Width(), e.window.Height(), dt)
	panel := e.ui.Panel()
	if err := e.framework.Frame(dt, panel); err != nil {
		e.frameErr = err
	}
	panel.Text(e.profiler.Summary())
	if err := e.ui.Render(); err != nil {
		e.logger.Error("ui render failed", "error", err)
		e.frameErr = err
	}

	e.frames++
	if e.frameLimit > 0 && e.frames >= e.frameLimit {
		e.Quit()
	}
}

func (e *engine) LastFrameError() error {
	return e.frameErr
}

// Quit closes the window. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if err := e.window.Close(); err != nil && !errors.Is(err, window.ErrClosed) {
			e.logger.Warn("close window", "error", err)
		}
	})
}

// release tears down in reverse order of construction.
func (e *engine) release() {
	if e.framework != nil {
		e.framework.Shutdown()
	}
	if e.ui != nil && e.ownsUI {
		e.ui.Destroy()
		e.ui = nil
	}
	if e.window != nil {
		e.Quit()
	}
}
