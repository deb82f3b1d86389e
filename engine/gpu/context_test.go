package gpu_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gpufake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, options ...gpu.ContextBuilderOption) (*gpu.Context, *gpufake.Driver, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	d := gpufake.New()
	opts := append([]gpu.ContextBuilderOption{gpu.WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))}, options...)
	return gpu.NewContext(d, opts...), d, &logs
}

func TestNewContextPanicsWithoutDriver(t *testing.T) {
	assert.Panics(t, func() { gpu.NewContext(nil) })
}

func TestCallClearsStaleErrors(t *testing.T) {
	ctx, d, _ := newContext(t)
	d.RaiseError(gpu.InvalidEnum)

	ctx.Call(func() { d.BindVertexArray(0) })

	assert.Empty(t, ctx.Errors())
}

func TestCallReportsCallSite(t *testing.T) {
	ctx, d, logs := newContext(t)

	ctx.Call(func() { d.BindBuffer(gpu.ArrayBuffer, 99) })

	errs := ctx.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, gpu.InvalidOperation, errs[0].Code)
	assert.Equal(t, "context_test.go", errs[0].File)
	assert.Contains(t, errs[0].Func, "TestCallReportsCallSite")
	assert.Positive(t, errs[0].Line)
	assert.Contains(t, errs[0].Error(), "GL_INVALID_OPERATION")
	assert.Contains(t, logs.String(), "driver error")
}

func TestCallDrainsEveryFlag(t *testing.T) {
	ctx, d, _ := newContext(t)

	ctx.Call(func() {
		d.RaiseError(gpu.InvalidValue)
		d.RaiseError(gpu.OutOfMemory)
	})

	errs := ctx.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, gpu.InvalidValue, errs[0].Code)
	assert.Equal(t, gpu.OutOfMemory, errs[1].Code)
	assert.Equal(t, gpu.NoError, d.GetError())

	ctx.ResetErrors()
	assert.Empty(t, ctx.Errors())
}

func TestCheckReturnsFirstError(t *testing.T) {
	ctx, d, _ := newContext(t)

	err := ctx.Check(func() {
		d.RaiseError(gpu.InvalidEnum)
		d.RaiseError(gpu.InvalidValue)
	})

	var de *gpu.DriverError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, gpu.InvalidEnum, de.Code)
	assert.NoError(t, ctx.Check(func() {}))
}

func TestStrictPanicsWithDriverError(t *testing.T) {
	ctx, d, _ := newContext(t, gpu.WithStrict(true))
	require.True(t, ctx.Strict())

	defer func() {
		r := recover()
		de, ok := r.(*gpu.DriverError)
		require.True(t, ok, "expected *gpu.DriverError, got %T", r)
		assert.Equal(t, gpu.InvalidOperation, de.Code)
	}()
	ctx.Call(func() { d.UseProgram(42) })
	t.Fatal("strict context did not panic")
}

func TestQueryReturnsValue(t *testing.T) {
	ctx, d, _ := newContext(t)

	v := gpu.Query(ctx, func() int32 { return d.GetInteger(gpu.MaxCombinedTextureImageUnits) })

	assert.Equal(t, int32(16), v)
	assert.Empty(t, ctx.Errors())
}

func TestMaxTextureUnitsIsCached(t *testing.T) {
	d := gpufake.New(gpufake.WithMaxTextureUnits(4))
	ctx := gpu.NewContext(d)

	assert.Equal(t, 4, ctx.MaxTextureUnits())
	assert.Equal(t, 4, ctx.MaxTextureUnits())
	assert.Equal(t, 1, d.CallCount("GetInteger"))
}

func TestBindingRecords(t *testing.T) {
	ctx, _, _ := newContext(t)

	ctx.MarkBound(gpu.ArrayBuffer, 3)
	ctx.MarkBound(gpu.CurrentProgram, 3)
	ctx.MarkTextureUnit(2, 3)
	ctx.MarkTextureUnit(0, 5)
	assert.Equal(t, gpu.Handle(3), ctx.Bound(gpu.ArrayBuffer))

	ctx.Unmark(gpu.ArrayBuffer, 4)
	assert.Equal(t, gpu.Handle(3), ctx.Bound(gpu.ArrayBuffer))
	ctx.Unmark(gpu.ArrayBuffer, 3)
	assert.Zero(t, ctx.Bound(gpu.ArrayBuffer))
	assert.Equal(t, gpu.Handle(3), ctx.Bound(gpu.CurrentProgram))

	ctx.ForgetTexture(3)
	assert.Zero(t, ctx.TextureUnit(2))
	assert.Equal(t, gpu.Handle(5), ctx.TextureUnit(0))

	ctx.MarkTextureUnit(0, 0)
	assert.Zero(t, ctx.TextureUnit(0))
}

func TestElementBindingFollowsVertexArray(t *testing.T) {
	ctx, _, _ := newContext(t)

	ctx.MarkBound(gpu.VertexArrayBinding, 1)
	ctx.MarkBound(gpu.ElementArrayBuffer, 10)
	ctx.MarkBound(gpu.VertexArrayBinding, 2)
	assert.Zero(t, ctx.Bound(gpu.ElementArrayBuffer))
	ctx.MarkBound(gpu.ElementArrayBuffer, 20)

	ctx.MarkBound(gpu.VertexArrayBinding, 1)
	assert.Equal(t, gpu.Handle(10), ctx.Bound(gpu.ElementArrayBuffer))
	ctx.MarkBound(gpu.VertexArrayBinding, 0)
	assert.Zero(t, ctx.Bound(gpu.ElementArrayBuffer))

	// deleting the buffer detaches it from every vertex array
	ctx.Unmark(gpu.ElementArrayBuffer, 10)
	ctx.MarkBound(gpu.VertexArrayBinding, 1)
	assert.Zero(t, ctx.Bound(gpu.ElementArrayBuffer))

	// deleting the vertex array drops its element binding
	ctx.MarkBound(gpu.VertexArrayBinding, 2)
	ctx.Unmark(gpu.VertexArrayBinding, 2)
	assert.Zero(t, ctx.Bound(gpu.VertexArrayBinding))
	ctx.MarkBound(gpu.VertexArrayBinding, 2)
	assert.Zero(t, ctx.Bound(gpu.ElementArrayBuffer))
}

func TestLogInfo(t *testing.T) {
	ctx, _, logs := newContext(t)

	ctx.LogInfo()

	assert.Contains(t, logs.String(), "gpufake")
	assert.Contains(t, logs.String(), "3.3.0")
}

func TestErrorName(t *testing.T) {
	tests := []struct {
		code gpu.Enum
		want string
	}{
		{gpu.NoError, "GL_NO_ERROR"},
		{gpu.InvalidEnum, "GL_INVALID_ENUM"},
		{gpu.OutOfMemory, "GL_OUT_OF_MEMORY"},
		{gpu.Enum(0x1234), "0x1234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gpu.ErrorName(tt.code))
	}
}

func TestResourceCreationErrorUnwraps(t *testing.T) {
	cause := &gpu.DriverError{Code: gpu.OutOfMemory}
	err := error(&gpu.ResourceCreationError{Kind: "vertex buffer", Size: 64, Cause: cause})

	var de *gpu.DriverError
	assert.True(t, errors.As(err, &de))
	assert.Contains(t, err.Error(), "vertex buffer (64 bytes)")
}
