package renderer_test

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/assets"
	"github.com/Carmen-Shannon/oxy-gl/engine/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gpufake"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	positions = []float32{
		100, 100, 0, 0,
		200, 100, 1, 0,
		200, 200, 1, 1,
		100, 200, 0, 1,
	}
	indices = []uint32{0, 1, 2, 2, 3, 0}
)

type quad struct {
	va buffer.VertexArray
	vb buffer.Buffer
	ib buffer.IndexBuffer
	sh shader.Shader
}

func newQuad(t *testing.T, ctx *gpu.Context) *quad {
	t.Helper()
	va, err := buffer.NewVertexArray(ctx)
	require.NoError(t, err)
	vb, err := buffer.NewVertexBuffer(ctx, common.SliceToBytes(positions))
	require.NoError(t, err)
	require.NoError(t, va.AddBuffer(vb, buffer.NewVertexLayout().PushFloat(2).PushFloat(2)))
	ib, err := buffer.NewIndexBuffer(ctx, indices)
	require.NoError(t, err)
	sh, err := shader.NewShaderFromString(ctx, assets.BasicShaderName, assets.BasicShader)
	require.NoError(t, err)
	return &quad{va: va, vb: vb, ib: ib, sh: sh}
}

func (q *quad) destroy() {
	q.sh.Destroy()
	q.ib.Destroy()
	q.vb.Destroy()
	q.va.Destroy()
}

func TestDrawIssuesOneDrawOverAllIndices(t *testing.T) {
	d := gpufake.New()
	ctx := gpu.NewContext(d)
	q := newQuad(t, ctx)
	defer q.destroy()
	r := renderer.NewRenderer(ctx)

	require.NoError(t, r.Draw(q.va, q.ib, q.sh))

	draws := d.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, gpu.Triangles, draws[0].Mode)
	assert.Equal(t, int32(6), draws[0].Count)
	assert.Equal(t, gpu.UnsignedInt, draws[0].Type)
	assert.Equal(t, 0, draws[0].Offset)
	assert.Equal(t, q.va.Handle(), draws[0].VertexArray)
	assert.Equal(t, q.ib.Handle(), draws[0].ElementBuffer)
	assert.Equal(t, q.sh.Handle(), draws[0].Program)
}

func TestDrawRebindsAfterUnbind(t *testing.T) {
	d := gpufake.New()
	ctx := gpu.NewContext(d)
	q := newQuad(t, ctx)
	defer q.destroy()
	q.va.Unbind()
	q.sh.Unbind()
	q.vb.Unbind()

	require.NoError(t, renderer.NewRenderer(ctx).Draw(q.va, q.ib, q.sh))

	assert.Len(t, d.Draws(), 1)
	assert.Empty(t, ctx.Errors())
}

func TestDrawReportsDriverError(t *testing.T) {
	d := gpufake.New()
	ctx := gpu.NewContext(d)
	q := newQuad(t, ctx)
	defer q.destroy()
	// shrink the element buffer behind the wrapper's back so the draw overruns it
	d.BufferData(gpu.ElementArrayBuffer, make([]byte, 4), gpu.StaticDraw)

	err := renderer.NewRenderer(ctx).Draw(q.va, q.ib, q.sh)

	var de *gpu.DriverError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, gpu.InvalidOperation, de.Code)
	assert.Empty(t, d.Draws())
}

func TestDrawAfterDestroyPanics(t *testing.T) {
	ctx := gpu.NewContext(gpufake.New())
	q := newQuad(t, ctx)
	defer q.destroy()
	q.sh.Destroy()

	assert.Panics(t, func() { _ = renderer.NewRenderer(ctx).Draw(q.va, q.ib, q.sh) })
}

func TestClearUsesColorBitOnly(t *testing.T) {
	d := gpufake.New()
	r := renderer.NewRenderer(gpu.NewContext(d))

	r.SetClearColor([4]float32{0.2, 0.3, 0.8, 1})
	r.Clear()

	assert.Equal(t, []gpu.Enum{gpu.ColorBufferBit}, d.Clears())
	assert.Equal(t, [4]float32{0.2, 0.3, 0.8, 1}, d.ClearColorValue())
}

func TestBuilderOptions(t *testing.T) {
	d := gpufake.New()

	renderer.NewRenderer(gpu.NewContext(d),
		renderer.WithAlphaBlending(),
		renderer.WithClearColor([4]float32{1, 0, 0, 1}),
	)

	assert.True(t, d.IsEnabled(gpu.Blend))
	src, dst := d.BlendFactors()
	assert.Equal(t, gpu.SrcAlpha, src)
	assert.Equal(t, gpu.OneMinusSrcAlpha, dst)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, d.ClearColorValue())

	d2 := gpufake.New()
	renderer.NewRenderer(gpu.NewContext(d2))
	assert.False(t, d2.IsEnabled(gpu.Blend))
}

func TestResize(t *testing.T) {
	d := gpufake.New()
	r := renderer.NewRenderer(gpu.NewContext(d))

	r.Resize(960, 540)
	assert.Equal(t, [4]int32{0, 0, 960, 540}, d.ViewportBox())

	r.Resize(0, 540)
	assert.Equal(t, [4]int32{0, 0, 960, 540}, d.ViewportBox())
}

func TestTexturedQuadEndToEnd(t *testing.T) {
	d := gpufake.New()
	ctx := gpu.NewContext(d)
	scope := gpu.NewScope()
	defer scope.Release()

	r := renderer.NewRenderer(ctx, renderer.WithAlphaBlending())
	q := newQuad(t, ctx)
	scope.Track(q.va)
	scope.Track(q.vb)
	scope.Track(q.ib)
	scope.Track(q.sh)
	tex, err := texture.NewTextureFromBytes(ctx, assets.LogoTextureName, assets.LogoPNG)
	require.NoError(t, err)
	scope.Track(tex)

	require.NoError(t, tex.Bind(0))
	q.sh.Bind()
	require.NoError(t, q.sh.SetUniform1i("u_Texture", 0))
	require.NoError(t, q.sh.SetUniform4f("u_Color", 0.8, 0.3, 0.8, 1))
	proj := mgl32.Ortho(0, 960, 0, 540, -1, 1)
	view := mgl32.Translate3D(-100, 0, 0)
	model := mgl32.Translate3D(200, 200, 0)
	require.NoError(t, q.sh.SetUniformMat4f("u_MVP", proj.Mul4(view).Mul4(model)))

	r.Clear()
	require.NoError(t, r.Draw(q.va, q.ib, q.sh))

	assert.Empty(t, ctx.Errors())
	assert.Len(t, d.Draws(), 1)
	v, ok := d.UniformValue(q.sh.Handle(), "u_Texture")
	require.True(t, ok)
	assert.Equal(t, int32(0), v)
}
