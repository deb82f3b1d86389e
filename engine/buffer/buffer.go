package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Buffer owns one native buffer object holding a fixed-size byte payload.
// A Buffer is created bound; every other wrapper operation that touches the data store
// requires the buffer to still be the active binding of its target.
type Buffer interface {
	gpu.Releaser

	// Handle returns the native buffer name.
	//
	// Returns:
	//   - gpu.Handle: the buffer handle
	Handle() gpu.Handle

	// Target returns the binding point the buffer is used with, ArrayBuffer or ElementArrayBuffer.
	//
	// Returns:
	//   - gpu.Enum: the buffer target
	Target() gpu.Enum

	// Size returns the size of the data store in bytes.
	//
	// Returns:
	//   - int: the size in bytes
	Size() int

	// Bind makes the buffer the active binding of its target.
	// Panics if the buffer has been destroyed.
	Bind()

	// Unbind clears the binding of the buffer's target if this buffer holds it.
	Unbind()

	// IsBound reports whether the buffer is the active binding of its target.
	//
	// Returns:
	//   - bool: true while bound
	IsBound() bool

	// Update overwrites part of the data store in place.
	//
	// Parameters:
	//   - offset: byte offset to start writing at
	//   - data: the bytes to write
	//
	// Returns:
	//   - error: gpu.ErrNotBound when the buffer is not bound, gpu.ErrOutOfRange when the write does not fit
	Update(offset int, data []byte) error

	// Upload replaces the whole data store, resizing it to len(data).
	//
	// Parameters:
	//   - data: the new contents
	//
	// Returns:
	//   - error: gpu.ErrNotBound when the buffer is not bound, or the driver error
	Upload(data []byte) error

	// Read copies the data store back from the driver.
	//
	// Returns:
	//   - []byte: the buffer contents
	//   - error: gpu.ErrNotBound when the buffer is not bound
	Read() ([]byte, error)

	// Destroyed reports whether Destroy has been called.
	//
	// Returns:
	//   - bool: true once destroyed
	Destroyed() bool
}

type bufferImpl struct {
	ctx       *gpu.Context
	kind      string
	handle    gpu.Handle
	target    gpu.Enum
	usage     gpu.Enum
	size      int
	destroyed bool
}

var _ Buffer = &bufferImpl{}

// NewVertexBuffer allocates an array buffer and uploads data into it.
// The buffer is left bound on return.
//
// Parameters:
//   - ctx: the graphics context
//   - data: the initial vertex bytes
//   - options: functional options such as WithUsage
//
// Returns:
//   - Buffer: the vertex buffer
//   - error: a *gpu.ResourceCreationError if allocation or upload failed
func NewVertexBuffer(ctx *gpu.Context, data []byte, options ...BufferBuilderOption) (Buffer, error) {
	return newBuffer(ctx, "vertex buffer", gpu.ArrayBuffer, data, options)
}

func newBuffer(ctx *gpu.Context, kind string, target gpu.Enum, data []byte, options []BufferBuilderOption) (*bufferImpl, error) {
	b := &bufferImpl{
		ctx:    ctx,
		kind:   kind,
		target: target,
		usage:  gpu.StaticDraw,
		size:   len(data),
	}
	for _, opt := range options {
		opt(b)
	}

	d := ctx.Driver()
	err := ctx.Check(func() { b.handle = d.GenBuffer() })
	if b.handle == 0 {
		return nil, &gpu.ResourceCreationError{Kind: kind, Size: b.size, Cause: err}
	}
	if err := ctx.Check(func() {
		d.BindBuffer(target, b.handle)
		d.BufferData(target, data, b.usage)
	}); err != nil {
		ctx.Call(func() { d.DeleteBuffer(b.handle) })
		return nil, &gpu.ResourceCreationError{Kind: kind, Size: b.size, Cause: err}
	}
	ctx.MarkBound(target, b.handle)
	return b, nil
}

func (b *bufferImpl) Handle() gpu.Handle {
	return b.handle
}

func (b *bufferImpl) Target() gpu.Enum {
	return b.target
}

func (b *bufferImpl) Size() int {
	return b.size
}

func (b *bufferImpl) Destroyed() bool {
	return b.destroyed
}

func (b *bufferImpl) Bind() {
	if b.destroyed {
		panic(fmt.Errorf("bind %s %d: %w", b.kind, b.handle, gpu.ErrResourceDestroyed))
	}
	d := b.ctx.Driver()
	b.ctx.Call(func() { d.BindBuffer(b.target, b.handle) })
	b.ctx.MarkBound(b.target, b.handle)
}

func (b *bufferImpl) Unbind() {
	if !b.IsBound() {
		return
	}
	d := b.ctx.Driver()
	b.ctx.Call(func() { d.BindBuffer(b.target, 0) })
	b.ctx.MarkBound(b.target, 0)
}

func (b *bufferImpl) IsBound() bool {
	return !b.destroyed && b.ctx.Bound(b.target) == b.handle
}

func (b *bufferImpl) Update(offset int, data []byte) error {
	if !b.IsBound() {
		return fmt.Errorf("update %s %d: %w", b.kind, b.handle, gpu.ErrNotBound)
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("update %s %d at [%d, %d) of %d bytes: %w", b.kind, b.handle, offset, offset+len(data), b.size, gpu.ErrOutOfRange)
	}
	d := b.ctx.Driver()
	return b.ctx.Check(func() { d.BufferSubData(b.target, offset, data) })
}

func (b *bufferImpl) Upload(data []byte) error {
	if !b.IsBound() {
		return fmt.Errorf("upload %s %d: %w", b.kind, b.handle, gpu.ErrNotBound)
	}
	d := b.ctx.Driver()
	if err := b.ctx.Check(func() { d.BufferData(b.target, data, b.usage) }); err != nil {
		return err
	}
	b.size = len(data)
	return nil
}

func (b *bufferImpl) Read() ([]byte, error) {
	if !b.IsBound() {
		return nil, fmt.Errorf("read %s %d: %w", b.kind, b.handle, gpu.ErrNotBound)
	}
	out := make([]byte, b.size)
	d := b.ctx.Driver()
	if err := b.ctx.Check(func() { d.GetBufferSubData(b.target, 0, out) }); err != nil {
		return nil, err
	}
	return out, nil
}

// Destroy deletes the native buffer. Further calls are no-ops.
func (b *bufferImpl) Destroy() {
	if b.destroyed {
		return
	}
	d := b.ctx.Driver()
	b.ctx.Call(func() { d.DeleteBuffer(b.handle) })
	b.ctx.Unmark(b.target, b.handle)
	b.destroyed = true
}
