package ui

import "github.com/Carmen-Shannon/oxy-gl/engine/buffer"

// VertexSize is the size in bytes of one UI vertex: a 2D position, a UV and a packed RGBA8 color.
const VertexSize = 20

// TextureID identifies a texture registered with a Renderer. UI libraries carry it through
// their draw commands as an opaque integer.
type TextureID uintptr

// DrawCommand draws ElementCount indices of its list, continuing where the previous command of
// the same list stopped.
type DrawCommand struct {
	ElementCount int
	// ClipRect is the scissor rectangle in display pixels with a top-left origin: min x, min y,
	// max x, max y.
	ClipRect  [4]float32
	TextureID TextureID
}

// DrawList is one batch of UI geometry.
type DrawList struct {
	// Vertices holds packed vertices of VertexSize bytes each.
	Vertices []byte
	Indices  []uint32
	Commands []DrawCommand
}

// VertexLayout returns the attribute layout of the packed UI vertex: position (2 floats),
// UV (2 floats) and color (4 normalized bytes).
//
// Returns:
//   - *buffer.VertexLayout: a new, unfrozen layout
func VertexLayout() *buffer.VertexLayout {
	return buffer.NewVertexLayout().PushFloat(2).PushFloat(2).PushBool(4)
}

// scissorRect converts a top-left origin clip rectangle into a bottom-left origin scissor box,
// clamped to the display. ok is false when nothing of the rectangle is visible.
func scissorRect(clip [4]float32, width, height int) (x, y, w, h int32, ok bool) {
	x = int32(clip[0])
	y = int32(float32(height) - clip[3])
	w = int32(clip[2] - clip[0])
	h = int32(clip[3] - clip[1])
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	w = min(w, int32(width)-x)
	h = min(h, int32(height)-y)
	return x, y, w, h, w > 0 && h > 0
}
