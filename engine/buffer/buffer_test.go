package buffer_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gpufake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quad = []float32{
	100, 100, 0, 0,
	200, 100, 1, 0,
	200, 200, 1, 1,
	100, 200, 0, 1,
}

func newContext() (*gpu.Context, *gpufake.Driver) {
	d := gpufake.New()
	return gpu.NewContext(d), d
}

// requirePanicsWith asserts that fn panics with an error wrapping target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}

func TestVertexBufferReadsBackData(t *testing.T) {
	ctx, _ := newContext()
	data := common.SliceToBytes(quad)

	vb, err := buffer.NewVertexBuffer(ctx, data)
	require.NoError(t, err)
	defer vb.Destroy()

	assert.True(t, vb.IsBound())
	assert.Equal(t, len(data), vb.Size())
	got, err := vb.Read()
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Empty(t, ctx.Errors())
}

func TestUpdateRequiresBind(t *testing.T) {
	ctx, _ := newContext()
	vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 8))
	require.NoError(t, err)
	defer vb.Destroy()

	vb.Unbind()
	assert.False(t, vb.IsBound())
	assert.ErrorIs(t, vb.Update(0, []byte{1}), gpu.ErrNotBound)
	_, err = vb.Read()
	assert.ErrorIs(t, err, gpu.ErrNotBound)

	vb.Bind()
	require.NoError(t, vb.Update(4, []byte{1, 2, 3, 4}))
	assert.ErrorIs(t, vb.Update(6, []byte{1, 2, 3}), gpu.ErrOutOfRange)
	assert.ErrorIs(t, vb.Update(-1, []byte{1}), gpu.ErrOutOfRange)

	got, err := vb.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 3, 4}, got)
}

func TestUploadResizes(t *testing.T) {
	ctx, _ := newContext()
	vb, err := buffer.NewVertexBuffer(ctx, nil, buffer.WithUsage(gpu.StreamDraw))
	require.NoError(t, err)
	defer vb.Destroy()

	require.NoError(t, vb.Upload([]byte{9, 8, 7}))
	assert.Equal(t, 3, vb.Size())
	got, err := vb.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, got)
}

func TestBindAfterDestroyPanics(t *testing.T) {
	ctx, d := newContext()
	vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 16))
	require.NoError(t, err)
	h := vb.Handle()

	vb.Destroy()
	vb.Destroy()

	assert.True(t, vb.Destroyed())
	assert.False(t, d.IsLive(h))
	assert.Equal(t, 1, d.CallCount("DeleteBuffer"))
	requirePanicsWith(t, gpu.ErrResourceDestroyed, vb.Bind)
}

func TestRawBindOfDestroyedHandleIsReported(t *testing.T) {
	ctx, d := newContext()
	vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 16))
	require.NoError(t, err)
	h := vb.Handle()
	vb.Destroy()

	ctx.Call(func() { d.BindBuffer(gpu.ArrayBuffer, h) })

	errs := ctx.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, gpu.InvalidOperation, errs[0].Code)
}

func TestCreationFailureLeavesNothingAllocated(t *testing.T) {
	tests := []struct {
		name string
		fail func(*gpufake.Driver)
	}{
		{"allocation", func(d *gpufake.Driver) { d.FailNextAllocations(1) }},
		{"upload", func(d *gpufake.Driver) { d.FailNextBufferData() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, d := newContext()
			tt.fail(d)

			vb, err := buffer.NewVertexBuffer(ctx, make([]byte, 64))

			assert.Nil(t, vb)
			var rce *gpu.ResourceCreationError
			require.True(t, errors.As(err, &rce))
			assert.Equal(t, "vertex buffer", rce.Kind)
			assert.Equal(t, 64, rce.Size)
			assert.Zero(t, d.LiveObjects())
		})
	}
}

func TestIndexBuffer(t *testing.T) {
	ctx, _ := newContext()
	indices := []uint32{0, 1, 2, 2, 3, 0}

	ib, err := buffer.NewIndexBuffer(ctx, indices)
	require.NoError(t, err)
	defer ib.Destroy()

	assert.Equal(t, int32(6), ib.Count())
	assert.Equal(t, gpu.UnsignedInt, ib.IndexType())
	assert.Equal(t, gpu.ElementArrayBuffer, ib.Target())
	assert.Equal(t, 24, ib.Size())

	require.NoError(t, ib.Upload(common.SliceToBytes([]uint32{0, 1, 2})))
	assert.Equal(t, int32(3), ib.Count())
}
