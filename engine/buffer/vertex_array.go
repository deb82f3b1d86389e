package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Binding is the metadata recorded for one enabled attribute slot.
type Binding struct {
	Slot       uint32
	Count      int32
	Type       gpu.Enum
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     gpu.Handle
}

// VertexArray owns one native vertex array object and the attribute bindings made on it.
// It never owns or destroys the buffers it references.
type VertexArray interface {
	gpu.Releaser

	// Handle returns the native vertex array name.
	//
	// Returns:
	//   - gpu.Handle: the vertex array handle
	Handle() gpu.Handle

	// Bind makes the vertex array active. Panics if it has been destroyed.
	Bind()

	// Unbind clears the vertex array binding if this array holds it.
	Unbind()

	// IsBound reports whether this vertex array is active.
	//
	// Returns:
	//   - bool: true while bound
	IsBound() bool

	// AddBuffer binds the array and the buffer, then enables one attribute slot per layout
	// attribute. Slots continue from the last slot used by a previous AddBuffer call.
	// The layout is frozen afterwards.
	//
	// Parameters:
	//   - b: a live vertex buffer holding data laid out per layout
	//   - layout: the vertex record description
	//
	// Returns:
	//   - error: gpu.ErrEmptyLayout for an empty layout, or the first driver error
	AddBuffer(b Buffer, layout *VertexLayout) error

	// Bindings returns a copy of every attribute binding made so far, in slot order.
	//
	// Returns:
	//   - []Binding: the recorded bindings
	Bindings() []Binding

	// Destroyed reports whether Destroy has been called.
	//
	// Returns:
	//   - bool: true once destroyed
	Destroyed() bool
}

type vertexArrayImpl struct {
	ctx       *gpu.Context
	handle    gpu.Handle
	nextSlot  uint32
	bindings  []Binding
	destroyed bool
}

var _ VertexArray = &vertexArrayImpl{}

// NewVertexArray allocates a vertex array object. The array is left bound on return.
//
// Parameters:
//   - ctx: the graphics context
//
// Returns:
//   - VertexArray: the vertex array
//   - error: a *gpu.ResourceCreationError if allocation failed
func NewVertexArray(ctx *gpu.Context) (VertexArray, error) {
	va := &vertexArrayImpl{ctx: ctx}
	d := ctx.Driver()
	err := ctx.Check(func() { va.handle = d.GenVertexArray() })
	if va.handle == 0 {
		return nil, &gpu.ResourceCreationError{Kind: "vertex array", Cause: err}
	}
	if err := ctx.Check(func() { d.BindVertexArray(va.handle) }); err != nil {
		ctx.Call(func() { d.DeleteVertexArray(va.handle) })
		return nil, &gpu.ResourceCreationError{Kind: "vertex array", Cause: err}
	}
	ctx.MarkBound(gpu.VertexArrayBinding, va.handle)
	return va, nil
}

func (va *vertexArrayImpl) Handle() gpu.Handle {
	return va.handle
}

func (va *vertexArrayImpl) Destroyed() bool {
	return va.destroyed
}

func (va *vertexArrayImpl) Bind() {
	if va.destroyed {
		panic(fmt.Errorf("bind vertex array %d: %w", va.handle, gpu.ErrResourceDestroyed))
	}
	d := va.ctx.Driver()
	va.ctx.Call(func() { d.BindVertexArray(va.handle) })
	va.ctx.MarkBound(gpu.VertexArrayBinding, va.handle)
}

func (va *vertexArrayImpl) Unbind() {
	if !va.IsBound() {
		return
	}
	d := va.ctx.Driver()
	va.ctx.Call(func() { d.BindVertexArray(0) })
	va.ctx.MarkBound(gpu.VertexArrayBinding, 0)
}

func (va *vertexArrayImpl) IsBound() bool {
	return !va.destroyed && va.ctx.Bound(gpu.VertexArrayBinding) == va.handle
}

func (va *vertexArrayImpl) AddBuffer(b Buffer, layout *VertexLayout) error {
	if layout == nil || layout.Len() == 0 {
		return fmt.Errorf("add buffer to vertex array %d: %w", va.handle, gpu.ErrEmptyLayout)
	}
	va.Bind()
	b.Bind()

	d := va.ctx.Driver()
	stride := int32(layout.Stride())
	added := make([]Binding, 0, layout.Len())
	for _, attr := range layout.attributes {
		added = append(added, Binding{
			Slot:       va.nextSlot + uint32(len(added)),
			Count:      attr.Count,
			Type:       attr.Type,
			Normalized: attr.Normalized,
			Stride:     stride,
			Offset:     attr.Offset,
			Buffer:     b.Handle(),
		})
	}
	if err := va.ctx.Check(func() {
		for _, bind := range added {
			d.EnableVertexAttribArray(bind.Slot)
			d.VertexAttribPointer(bind.Slot, bind.Count, bind.Type, bind.Normalized, bind.Stride, bind.Offset)
		}
	}); err != nil {
		return err
	}

	layout.frozen = true
	va.bindings = append(va.bindings, added...)
	va.nextSlot += uint32(len(added))
	return nil
}

func (va *vertexArrayImpl) Bindings() []Binding {
	out := make([]Binding, len(va.bindings))
	copy(out, va.bindings)
	return out
}

// Destroy deletes the native vertex array. Referenced buffers are left alive.
func (va *vertexArrayImpl) Destroy() {
	if va.destroyed {
		return
	}
	d := va.ctx.Driver()
	va.ctx.Call(func() { d.DeleteVertexArray(va.handle) })
	va.ctx.Unmark(gpu.VertexArrayBinding, va.handle)
	va.destroyed = true
}
