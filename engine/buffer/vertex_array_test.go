package buffer_test

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutOffsetsAndStride(t *testing.T) {
	tests := []struct {
		name   string
		kinds  []buffer.ElementKind
		counts []int32
	}{
		{"position uv", []buffer.ElementKind{buffer.Float, buffer.Float}, []int32{2, 2}},
		{"mixed", []buffer.ElementKind{buffer.Float, buffer.Bool, buffer.Uint, buffer.Bool}, []int32{3, 4, 1, 1}},
		{"single", []buffer.ElementKind{buffer.Uint}, []int32{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := buffer.NewVertexLayout()
			for i, k := range tt.kinds {
				layout.Push(k, tt.counts[i])
			}

			sum := 0
			for _, attr := range layout.Attributes() {
				assert.Equal(t, sum, attr.Offset)
				sum += attr.Size
			}
			assert.Equal(t, sum, layout.Stride())
		})
	}
}

func TestLayoutKinds(t *testing.T) {
	layout := buffer.NewVertexLayout().PushFloat(2).PushUint(1).PushBool(4)
	attrs := layout.Attributes()
	require.Len(t, attrs, 3)

	assert.Equal(t, buffer.Attribute{Count: 2, Type: gpu.Float, Offset: 0, Size: 8}, attrs[0])
	assert.Equal(t, buffer.Attribute{Count: 1, Type: gpu.UnsignedInt, Offset: 8, Size: 4}, attrs[1])
	assert.Equal(t, buffer.Attribute{Count: 4, Type: gpu.UnsignedByte, Normalized: true, Offset: 12, Size: 4}, attrs[2])
	assert.Equal(t, 16, layout.Stride())
}

func TestLayoutRejectsBadCounts(t *testing.T) {
	assert.Panics(t, func() { buffer.NewVertexLayout().PushFloat(0) })
	assert.Panics(t, func() { buffer.NewVertexLayout().PushFloat(5) })
}

func TestAddBufferBindsSequentialSlots(t *testing.T) {
	ctx, d := newContext()
	va, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	defer va.Destroy()
	vb, err := buffer.NewVertexBuffer(ctx, common.SliceToBytes(quad))
	require.NoError(t, err)
	defer vb.Destroy()
	colors, err := buffer.NewVertexBuffer(ctx, make([]byte, 16))
	require.NoError(t, err)
	defer colors.Destroy()

	layout := buffer.NewVertexLayout().PushFloat(2).PushFloat(2)
	require.NoError(t, va.AddBuffer(vb, layout))
	require.NoError(t, va.AddBuffer(colors, buffer.NewVertexLayout().PushBool(4)))

	bindings := va.Bindings()
	require.Len(t, bindings, 3)
	assert.Equal(t, buffer.Binding{Slot: 0, Count: 2, Type: gpu.Float, Stride: 16, Offset: 0, Buffer: vb.Handle()}, bindings[0])
	assert.Equal(t, buffer.Binding{Slot: 1, Count: 2, Type: gpu.Float, Stride: 16, Offset: 8, Buffer: vb.Handle()}, bindings[1])
	assert.Equal(t, buffer.Binding{Slot: 2, Count: 4, Type: gpu.UnsignedByte, Normalized: true, Stride: 4, Offset: 0, Buffer: colors.Handle()}, bindings[2])

	attribs := d.Attribs(va.Handle())
	require.Len(t, attribs, 3)
	assert.True(t, attribs[1].Enabled)
	assert.Equal(t, 8, attribs[1].Offset)
	assert.Equal(t, colors.Handle(), attribs[2].Buffer)

	assert.True(t, layout.Frozen())
	assert.Panics(t, func() { layout.PushFloat(1) })
	assert.Empty(t, ctx.Errors())
}

func TestAddBufferRejectsEmptyLayout(t *testing.T) {
	ctx, _ := newContext()
	va, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	defer va.Destroy()
	vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 4))
	require.NoError(t, err)
	defer vb.Destroy()

	assert.ErrorIs(t, va.AddBuffer(vb, buffer.NewVertexLayout()), gpu.ErrEmptyLayout)
	assert.Empty(t, va.Bindings())
}

func TestAddBufferWithDestroyedBufferPanics(t *testing.T) {
	ctx, _ := newContext()
	va, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	defer va.Destroy()
	vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 8))
	require.NoError(t, err)
	vb.Destroy()

	requirePanicsWith(t, gpu.ErrResourceDestroyed, func() {
		_ = va.AddBuffer(vb, buffer.NewVertexLayout().PushFloat(2))
	})
}

func TestVertexArrayDestroyLeavesBuffers(t *testing.T) {
	ctx, d := newContext()
	va, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 8))
	require.NoError(t, err)
	require.NoError(t, va.AddBuffer(vb, buffer.NewVertexLayout().PushFloat(2)))

	va.Destroy()

	assert.False(t, d.IsLive(va.Handle()))
	assert.True(t, d.IsLive(vb.Handle()))
	assert.False(t, va.IsBound())
	requirePanicsWith(t, gpu.ErrResourceDestroyed, va.Bind)
	vb.Destroy()
	assert.Zero(t, d.LiveObjects())
}

func TestIndexBufferBindingIsPerVertexArray(t *testing.T) {
	ctx, d := newContext()
	first, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	defer first.Destroy()
	firstIndices, err := buffer.NewIndexBuffer(ctx, []uint32{0, 1, 2})
	require.NoError(t, err)
	defer firstIndices.Destroy()

	second, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	defer second.Destroy()
	secondIndices, err := buffer.NewIndexBuffer(ctx, []uint32{3, 4, 5})
	require.NoError(t, err)
	defer secondIndices.Destroy()

	first.Bind()
	assert.Equal(t, firstIndices.Handle(), d.CurrentBuffer(gpu.ElementArrayBuffer))
	assert.True(t, firstIndices.IsBound())
	assert.False(t, secondIndices.IsBound())

	assert.ErrorIs(t, secondIndices.Update(0, common.SliceToBytes([]uint32{9, 9, 9})), gpu.ErrNotBound)
	got, ok := d.BufferContents(firstIndices.Handle())
	require.True(t, ok)
	assert.Equal(t, common.SliceToBytes([]uint32{0, 1, 2}), got)

	require.NoError(t, firstIndices.Update(4, common.SliceToBytes([]uint32{7})))
	got, err = firstIndices.Read()
	require.NoError(t, err)
	assert.Equal(t, common.SliceToBytes([]uint32{0, 7, 2}), got)

	second.Bind()
	assert.True(t, secondIndices.IsBound())
	assert.False(t, firstIndices.IsBound())
	got, err = secondIndices.Read()
	require.NoError(t, err)
	assert.Equal(t, common.SliceToBytes([]uint32{3, 4, 5}), got)

	secondIndices.Unbind()
	assert.Zero(t, d.CurrentBuffer(gpu.ElementArrayBuffer))
	first.Bind()
	assert.True(t, firstIndices.IsBound())
	assert.Empty(t, ctx.Errors())
}

func TestUintAttributesUseTheFloatPath(t *testing.T) {
	ctx, d := newContext()
	va, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	defer va.Destroy()
	vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 8))
	require.NoError(t, err)
	defer vb.Destroy()

	require.NoError(t, va.AddBuffer(vb, buffer.NewVertexLayout().PushUint(2)))

	attr := d.Attribs(va.Handle())[0]
	assert.Equal(t, gpu.UnsignedInt, attr.Type)
	assert.False(t, attr.Normalized)
	assert.Equal(t, 1, d.CallCount("VertexAttribPointer"))
}
