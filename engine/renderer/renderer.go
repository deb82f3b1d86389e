package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
)

// Renderer is a stateless draw dispatcher on top of the resource wrappers.
// It holds no per-draw state; everything a draw needs is passed to Draw.
type Renderer interface {
	// Draw binds the vertex array, index buffer and shader, then issues a single indexed
	// triangle draw covering every index in ib.
	//
	// Parameters:
	//   - va: the vertex array describing the vertex attributes
	//   - ib: the index buffer; all of its indices are drawn
	//   - s: the shader program to draw with
	//
	// Returns:
	//   - error: the first *gpu.DriverError raised by the draw, or nil
	Draw(va buffer.VertexArray, ib buffer.IndexBuffer, s shader.Shader) error

	// Clear clears the color buffer to the current clear color. Depth and stencil are untouched.
	Clear()

	// SetClearColor sets the color Clear fills the color buffer with.
	//
	// Parameters:
	//   - rgba: the red, green, blue and alpha components in [0, 1]
	SetClearColor(rgba [4]float32)

	// Resize updates the viewport to cover a framebuffer of the given size.
	// This should be called when the window's framebuffer changes size.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// Context returns the graphics context the renderer draws through.
	//
	// Returns:
	//   - *gpu.Context: the graphics context
	Context() *gpu.Context
}

type renderer struct {
	ctx *gpu.Context

	blending   bool
	clearColor *[4]float32
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing through ctx.
//
// Parameters:
//   - ctx: the graphics context
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(ctx *gpu.Context, options ...RendererBuilderOption) Renderer {
	if ctx == nil {
		panic("renderer: NewRenderer requires a context")
	}
	r := &renderer{ctx: ctx}
	for _, opt := range options {
		opt(r)
	}

	d := ctx.Driver()
	if r.blending {
		ctx.Call(func() {
			d.Enable(gpu.Blend)
			d.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
		})
	}
	if r.clearColor != nil {
		r.SetClearColor(*r.clearColor)
	}
	return r
}

func (r *renderer) Context() *gpu.Context {
	return r.ctx
}

func (r *renderer) Draw(va buffer.VertexArray, ib buffer.IndexBuffer, s shader.Shader) error {
	s.Bind()
	va.Bind()
	ib.Bind()

	d := r.ctx.Driver()
	if err := r.ctx.Check(func() { d.DrawElements(gpu.Triangles, ib.Count(), ib.IndexType(), 0) }); err != nil {
		return fmt.Errorf("draw %d indices: %w", ib.Count(), err)
	}
	return nil
}

func (r *renderer) Clear() {
	d := r.ctx.Driver()
	r.ctx.Call(func() { d.Clear(gpu.ColorBufferBit) })
}

func (r *renderer) SetClearColor(rgba [4]float32) {
	d := r.ctx.Driver()
	r.ctx.Call(func() { d.ClearColor(rgba[0], rgba[1], rgba[2], rgba[3]) })
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d := r.ctx.Driver()
	r.ctx.Call(func() { d.Viewport(0, 0, int32(width), int32(height)) })
}
