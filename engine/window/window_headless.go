package window

import "github.com/Carmen-Shannon/oxy-gl/common"

// HeadlessWindow is a Window without a display surface or graphics context. Pair it with
// gpufake.Driver to run the frame loop in tests and CI. Input is injected through its methods
// and dispatched to the same callbacks a glfw window would call.
type HeadlessWindow interface {
	Window

	// PressKey injects a key press.
	PressKey(keyCode uint32)

	// ReleaseKey injects a key release.
	ReleaseKey(keyCode uint32)

	// TypeChar injects typed text.
	TypeChar(r rune)

	// MoveMouse injects a cursor position.
	MoveMouse(x, y float32)

	// MouseButton injects a mouse button press or release.
	MouseButton(button int, down bool)

	// Scroll injects a scroll delta.
	Scroll(dx, dy float32)

	// Resize changes the framebuffer size and fires the resize callback.
	Resize(width, height int)

	// Frames returns the number of completed loop iterations.
	Frames() int
}

type headlessPlatform struct {
	swaps int
}

func (h *headlessPlatform) pollEvents() {}
func (h *headlessPlatform) shouldClose() bool { return false }
func (h *headlessPlatform) swapBuffers() { h.swaps++ }
func (h *headlessPlatform) destroy() {}

type headlessWindow struct {
	*engineWindow
	platform *headlessPlatform
}

var _ HeadlessWindow = &headlessWindow{}

// NewHeadlessWindow creates a window that runs its message loop without a display. The vsync
// and GL version options are ignored. The loop runs until Close is called, typically from the
// update callback.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - HeadlessWindow: the headless window
func NewHeadlessWindow(options ...WindowBuilderOption) HeadlessWindow {
	w := newEngineWindow(options)
	p := &headlessPlatform{}
	w.platform = p
	w.headless = true
	w.running = true
	return &headlessWindow{engineWindow: w, platform: p}
}

func (h *headlessWindow) PressKey(keyCode uint32) {
	if keyCode == common.KeyEsc && h.closeOnEscape {
		_ = h.Close()
		return
	}
	h.keyDown(keyCode)
}

func (h *headlessWindow) ReleaseKey(keyCode uint32) {
	h.keyUp(keyCode)
}

func (h *headlessWindow) TypeChar(r rune) {
	h.char(r)
}

func (h *headlessWindow) MoveMouse(x, y float32) {
	h.mouseMove(x, y)
}

func (h *headlessWindow) MouseButton(button int, down bool) {
	h.mouseButton(button, down)
}

func (h *headlessWindow) Scroll(dx, dy float32) {
	h.scroll(dx, dy)
}

func (h *headlessWindow) Resize(width, height int) {
	h.resize(width, height)
}

func (h *headlessWindow) Frames() int {
	return h.platform.swaps
}
