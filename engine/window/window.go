package window

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrClosed is returned when closing a window that is already closed.
var ErrClosed = errors.New("window is closed")

// Window provides a drawable surface with a current OpenGL context and input event handling.
// Wraps the glfw window and the headless window with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration, before the
	// back buffer is presented.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel and trackpad scrolling.
	//
	// Parameters:
	//   - callback: function receiving horizontal and vertical scroll deltas
	SetScrollCallback(callback func(dx, dy float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code, see common.Key*
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code, see common.Key*
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetCharCallback sets the callback for typed text.
	//
	// Parameters:
	//   - callback: function receiving one character
	SetCharCallback(callback func(r rune))

	// SetMouseButtonCallback sets the callback for mouse button presses and releases.
	//
	// Parameters:
	//   - callback: function receiving the button, see common.Mouse*, and whether it is down
	SetMouseButtonCallback(callback func(button int, down bool))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetMouseMoveCallback(callback func(x, y float32))

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: ErrClosed if the window was already closed
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Each iteration polls events, calls the update
	// callback and presents the back buffer.
	ProcessMessages()

	// Title returns the window title.
	Title() string

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Headless reports whether the window has no display surface.
	Headless() bool
}

// platformWindow is the backend an engineWindow drives.
type platformWindow interface {
	pollEvents()
	shouldClose() bool
	swapBuffers()
	destroy()
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, the platform backend, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// vsync waits for the display refresh on each buffer swap.
	vsync bool

	// glMajor and glMinor are the requested core profile version.
	glMajor int
	glMinor int

	// closeOnEscape closes the window when Escape is pressed.
	closeOnEscape bool

	headless bool
	running  bool
	platform platformWindow

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(dx, dy float32)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onChar        func(r rune)
	onMouseButton func(button int, down bool)
	onMouseMove   func(x, y float32)
}

var _ Window = &engineWindow{}

func newEngineWindow(options []WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:         "Hello World",
		maxWidth:      -1,
		maxHeight:     -1,
		minWidth:      -1,
		minHeight:     -1,
		width:         960,
		height:        540,
		vsync:         true,
		glMajor:       3,
		glMinor:       3,
		closeOnEscape: true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// NewWindow creates a glfw window with an OpenGL core profile context made current on the calling
// thread, which is locked to its OS thread for the rest of the program.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window, ready to draw into
//   - error: error if glfw or the context could not be initialized
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options)
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", w.width, w.height)
	}
	runtime.LockOSThread()
	p, err := newGLFWPlatform(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	w.platform = p
	w.running = true
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(dx, dy float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetCharCallback(callback func(r rune)) {
	w.onChar = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button int, down bool)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) IsRunning() bool {
	return w.running && !w.platform.shouldClose()
}

func (w *engineWindow) Close() error {
	if !w.running {
		return ErrClosed
	}
	w.running = false
	w.platform.destroy()
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.platform.pollEvents()
		if !w.IsRunning() {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}
		if !w.running {
			break
		}
		w.platform.swapBuffers()

		runtime.Gosched()
	}
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Headless() bool {
	return w.headless
}

// The dispatch helpers below are shared by every platform's event sources.

func (w *engineWindow) keyDown(key uint32) {
	if w.onKeyDown != nil {
		w.onKeyDown(key)
	}
}

func (w *engineWindow) keyUp(key uint32) {
	if w.onKeyUp != nil {
		w.onKeyUp(key)
	}
}

func (w *engineWindow) char(r rune) {
	if w.onChar != nil {
		w.onChar(r)
	}
}

func (w *engineWindow) mouseButton(button int, down bool) {
	if w.onMouseButton != nil {
		w.onMouseButton(button, down)
	}
}

func (w *engineWindow) mouseMove(x, y float32) {
	if w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
}

func (w *engineWindow) scroll(dx, dy float32) {
	if w.onScroll != nil {
		w.onScroll(dx, dy)
	}
}

func (w *engineWindow) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
