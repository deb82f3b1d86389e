package buffer

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// IndexBuffer is an element array buffer of 32-bit unsigned indices.
type IndexBuffer interface {
	Buffer

	// Count returns the number of indices in the buffer.
	//
	// Returns:
	//   - int32: the index count
	Count() int32

	// IndexType returns the component type of one index, always gpu.UnsignedInt.
	//
	// Returns:
	//   - gpu.Enum: the index type
	IndexType() gpu.Enum
}

type indexBufferImpl struct {
	*bufferImpl
	count int32
}

var _ IndexBuffer = &indexBufferImpl{}

// NewIndexBuffer allocates an element array buffer holding indices.
// The buffer is left bound on return, which attaches it to the vertex array bound at the time.
//
// Parameters:
//   - ctx: the graphics context
//   - indices: the index data
//   - options: functional options such as WithUsage
//
// Returns:
//   - IndexBuffer: the index buffer
//   - error: a *gpu.ResourceCreationError if allocation or upload failed
func NewIndexBuffer(ctx *gpu.Context, indices []uint32, options ...BufferBuilderOption) (IndexBuffer, error) {
	b, err := newBuffer(ctx, "index buffer", gpu.ElementArrayBuffer, common.SliceToBytes(indices), options)
	if err != nil {
		return nil, err
	}
	return &indexBufferImpl{bufferImpl: b, count: int32(len(indices))}, nil
}

func (ib *indexBufferImpl) Count() int32 {
	return ib.count
}

func (ib *indexBufferImpl) IndexType() gpu.Enum {
	return gpu.UnsignedInt
}

// Upload replaces the indices. data must hold whole 32-bit indices.
func (ib *indexBufferImpl) Upload(data []byte) error {
	if err := ib.bufferImpl.Upload(data); err != nil {
		return err
	}
	ib.count = int32(len(data) / 4)
	return nil
}
