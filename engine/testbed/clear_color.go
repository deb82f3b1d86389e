package testbed

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/ui"
)

// ClearColorName is the registry name of the clear color test.
const ClearColorName = "Clear Color"

// DefaultClearColor is the color the clear color test starts with.
var DefaultClearColor = [4]float32{0.2, 0.3, 0.8, 1.0}

// ClearColor fills the framebuffer with an editable color.
type ClearColor struct {
	renderer renderer.Renderer
	color    [4]float32
}

var _ Test = &ClearColor{}

// NewClearColor creates the clear color test.
//
// Parameters:
//   - r: the renderer to clear with
//
// Returns:
//   - *ClearColor: the test
func NewClearColor(r renderer.Renderer) *ClearColor {
	return &ClearColor{renderer: r, color: DefaultClearColor}
}

// ClearColorFactory returns a Factory for the clear color test.
func ClearColorFactory(r renderer.Renderer) Factory {
	return func() (Test, error) {
		return NewClearColor(r), nil
	}
}

// Color returns the current clear color.
func (c *ClearColor) Color() [4]float32 {
	return c.color
}

func (c *ClearColor) OnUpdate(float32) {}

func (c *ClearColor) OnRender() error {
	c.renderer.SetClearColor(c.color)
	c.renderer.Clear()
	return nil
}

func (c *ClearColor) OnImGuiRender(panel ui.Panel) {
	panel.ColorEdit4("Clear Color", &c.color)
}

func (c *ClearColor) Destroy() {}
