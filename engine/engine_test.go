package engine

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gpufake"
	"github.com/Carmen-Shannon/oxy-gl/engine/testbed"
	"github.com/Carmen-Shannon/oxy-gl/engine/ui"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderUI struct {
	rec       *ui.Recorder
	frames    int
	renders   int
	destroyed bool
}

func (r *recorderUI) NewFrame(int, int, float32) {
	r.rec.Reset()
	r.frames++
}

func (r *recorderUI) Panel() ui.Panel {
	return r.rec
}

func (r *recorderUI) Render() error {
	r.renders++
	return nil
}

func (r *recorderUI) Destroy() {
	r.destroyed = true
}

type funcTest struct {
	render func() error
}

func (f *funcTest) OnUpdate(float32) {}

func (f *funcTest) OnImGuiRender(ui.Panel) {}

func (f *funcTest) Destroy() {}

func (f *funcTest) OnRender() error {
	return f.render()
}

func headlessConfig(frames int) config.Config {
	cfg := config.Default()
	cfg.Window.Headless = true
	cfg.FrameLimit = frames
	cfg.Profiling = false
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHeadless(t *testing.T, cfg config.Config) (Engine, *gpufake.Driver, *recorderUI) {
	t.Helper()
	d := gpufake.New()
	u := &recorderUI{rec: ui.NewRecorder()}
	e, err := NewEngine(cfg, WithDriver(d), WithUI(u), WithLogger(quietLogger()))
	require.NoError(t, err)
	return e, d, u
}

func TestRunSelectsFromMenuAndDraws(t *testing.T) {
	e, d, u := newHeadless(t, headlessConfig(3))
	u.rec.Click(testbed.TexturedQuadName)

	require.NoError(t, e.Run())

	assert.Equal(t, 3, e.Frames())
	assert.Equal(t, 3, u.renders)
	assert.Len(t, d.Clears(), 3)
	// the menu frame selects, the next two draw both quads
	assert.Len(t, d.Draws(), 4)
	assert.Equal(t, testbed.StateUnselected, e.Framework().State())
	assert.Zero(t, d.LiveObjects())
	assert.False(t, u.destroyed)
	assert.False(t, e.Window().IsRunning())
	assert.Empty(t, e.Context().Errors())
	assert.NoError(t, e.LastFrameError())

	texts := u.rec.Labels(ui.KindText)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[len(texts)-1], "Application average")
	assert.Equal(t, []string{testbed.BackLabel}, u.rec.Labels(ui.KindButton))
}

func TestRunStartsOnConfiguredTest(t *testing.T) {
	cfg := headlessConfig(1)
	cfg.Testbed.Initial = testbed.ClearColorName
	e, d, _ := newHeadless(t, cfg)

	require.NoError(t, e.Run())

	assert.Equal(t, testbed.DefaultClearColor, d.ClearColorValue())
	assert.Len(t, d.Clears(), 2)
}

func TestRunUnknownInitialTest(t *testing.T) {
	cfg := headlessConfig(1)
	cfg.Testbed.Initial = "missing"
	e, _, _ := newHeadless(t, cfg)

	err := e.Run()

	assert.ErrorIs(t, err, testbed.ErrUnknownTest)
	assert.Zero(t, e.Frames())
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := headlessConfig(1)
	cfg.Window.Width = 0

	_, err := NewEngine(cfg, WithDriver(gpufake.New()), WithLogger(quietLogger()))

	assert.Error(t, err)
}

func TestConfiguredTexture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 4))))
	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	cfg := headlessConfig(1)
	cfg.Assets.Texture = path
	e, _, _ := newHeadless(t, cfg)
	defer e.Quit()

	require.NoError(t, e.Framework().Select(testbed.TexturedQuadName))
	q, ok := e.Framework().Current().(*testbed.TexturedQuad)
	require.True(t, ok)

	assert.Equal(t, path, q.Texture().Name())
	assert.Equal(t, 2, q.Texture().Width())
	assert.Equal(t, 4, q.Texture().Height())
	e.Framework().Shutdown()
}

func TestMissingConfiguredAssets(t *testing.T) {
	cfg := headlessConfig(1)
	cfg.Assets.Shader = filepath.Join(t.TempDir(), "missing.shader")

	_, err := NewEngine(cfg, WithDriver(gpufake.New()), WithUI(&recorderUI{rec: ui.NewRecorder()}), WithLogger(quietLogger()))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStrictDriverErrorEndsRun(t *testing.T) {
	cfg := headlessConfig(5)
	cfg.Debug.Strict = true
	cfg.Testbed.Initial = "faulty"
	e, d, u := newHeadless(t, cfg)
	e.Registry().MustRegister("faulty", func() (testbed.Test, error) {
		return &funcTest{render: func() error {
			e.Context().Call(func() { d.RaiseError(gpu.InvalidOperation) })
			return nil
		}}, nil
	})

	err := e.Run()

	var de *gpu.DriverError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, gpu.InvalidOperation, de.Code)
	assert.Zero(t, e.Frames())
	assert.Zero(t, u.renders)
}

func TestRenderErrorsDoNotStopTheLoop(t *testing.T) {
	cfg := headlessConfig(3)
	cfg.Testbed.Initial = "failing"
	e, _, _ := newHeadless(t, cfg)
	boom := errors.New("boom")
	e.Registry().MustRegister("failing", func() (testbed.Test, error) {
		return &funcTest{render: func() error { return boom }}, nil
	})

	require.NoError(t, e.Run())

	assert.Equal(t, 3, e.Frames())
	assert.ErrorIs(t, e.LastFrameError(), boom)
}

func TestHeadlessInputReachesDefaultFrontend(t *testing.T) {
	cfg := headlessConfig(2)
	e, err := NewEngine(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	hw, ok := e.Window().(window.HeadlessWindow)
	require.True(t, ok)

	hw.MoveMouse(10, 10)
	hw.MouseButton(0, true)
	hw.Resize(640, 480)

	require.NoError(t, e.Run())
	assert.Equal(t, 2, e.Frames())
	assert.Empty(t, e.Context().Errors())
}

func TestWindowInputPansCamera(t *testing.T) {
	e, _, _ := newHeadless(t, headlessConfig(1))
	defer e.Quit()
	hw := e.Window().(window.HeadlessWindow)

	hw.PressKey(common.KeyRight)
	assert.Equal(t, mgl32.Vec3{110, 0, 0}, e.Camera().Position())

	hw.MoveMouse(50, 50)
	hw.MouseButton(common.MouseMiddle, true)
	hw.MoveMouse(40, 60)
	hw.MouseButton(common.MouseMiddle, false)
	hw.MoveMouse(0, 0)
	assert.Equal(t, mgl32.Vec3{120, 10, 0}, e.Camera().Position())

	hw.Resize(640, 480)
	_, right, _, top := e.Camera().Bounds()
	assert.Equal(t, [2]float32{640, 480}, [2]float32{right, top})
}

func TestProfilerToggle(t *testing.T) {
	e, _, _ := newHeadless(t, headlessConfig(1))
	defer e.Quit()

	e.EnableProfiler()
	assert.True(t, e.Profiler().Logging())
	e.DisableProfiler()
	assert.False(t, e.Profiler().Logging())
}
