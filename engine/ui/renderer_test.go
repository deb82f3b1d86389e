package ui

import (
	"bytes"
	"image"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gpufake"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fontID TextureID = 7

func newRenderer(t *testing.T) (*gpu.Context, *gpufake.Driver, Renderer, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	d := gpufake.New()
	ctx := gpu.NewContext(d, gpu.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	r, err := NewRenderer(ctx)
	require.NoError(t, err)
	t.Cleanup(r.Destroy)
	return ctx, d, r, &logs
}

func newFont(t *testing.T, ctx *gpu.Context) texture.Texture {
	t.Helper()
	tex, err := texture.NewTextureFromImage(ctx, "font", image.NewRGBA(image.Rect(0, 0, 2, 2)), texture.WithFlipVertical(false))
	require.NoError(t, err)
	t.Cleanup(tex.Destroy)
	return tex
}

// quadList is a two-triangle rectangle split across two commands.
func quadList(clip [4]float32, id TextureID) DrawList {
	return DrawList{
		Vertices: make([]byte, 4*VertexSize),
		Indices:  []uint32{0, 1, 2, 2, 3, 0},
		Commands: []DrawCommand{
			{ElementCount: 3, ClipRect: clip, TextureID: id},
			{ElementCount: 3, ClipRect: clip, TextureID: id},
		},
	}
}

func TestNewRendererLayout(t *testing.T) {
	ctx, d, r, _ := newRenderer(t)
	impl := r.(*renderer)

	attribs := d.Attribs(impl.vao.Handle())
	require.Len(t, attribs, 3)
	assert.Equal(t, gpufake.Attrib{Enabled: true, Count: 2, Type: gpu.Float, Stride: VertexSize, Offset: 0, Buffer: impl.vertices.Handle()}, attribs[0])
	assert.Equal(t, 8, attribs[1].Offset)
	assert.Equal(t, gpu.UnsignedByte, attribs[2].Type)
	assert.True(t, attribs[2].Normalized)
	assert.Equal(t, 16, attribs[2].Offset)
	assert.Zero(t, d.CurrentVertexArray())
	assert.Empty(t, ctx.Errors())
	assert.Equal(t, VertexSize, VertexLayout().Stride())
}

func TestRenderDrawsEachCommand(t *testing.T) {
	ctx, d, r, _ := newRenderer(t)
	font := newFont(t, ctx)
	r.RegisterTexture(fontID, font)

	require.NoError(t, r.Render(960, 540, []DrawList{quadList([4]float32{0, 0, 100, 40}, fontID)}))

	draws := d.Draws()
	require.Len(t, draws, 2)
	assert.Equal(t, int32(3), draws[0].Count)
	assert.Equal(t, gpu.UnsignedInt, draws[0].Type)
	assert.Equal(t, 0, draws[0].Offset)
	assert.Equal(t, 12, draws[1].Offset)
	assert.Equal(t, [4]int32{0, 500, 100, 40}, d.ScissorBox())
	assert.Equal(t, font.Handle(), d.TextureOnUnit(0))
	assert.True(t, d.IsEnabled(gpu.Blend))
	assert.False(t, d.IsEnabled(gpu.ScissorTest))
	assert.False(t, d.IsEnabled(gpu.DepthTest))
	assert.Zero(t, d.CurrentVertexArray())
	assert.Empty(t, ctx.Errors())

	proj, ok := d.UniformValue(r.(*renderer).shader.Handle(), "u_Projection")
	require.True(t, ok)
	assert.NotNil(t, proj)
}

func TestRenderStreamsGeometry(t *testing.T) {
	ctx, d, r, _ := newRenderer(t)
	r.RegisterTexture(fontID, newFont(t, ctx))
	impl := r.(*renderer)

	list := quadList([4]float32{0, 0, 960, 540}, fontID)
	list.Vertices[0] = 42
	require.NoError(t, r.Render(960, 540, []DrawList{list}))

	got, ok := d.BufferContents(impl.vertices.Handle())
	require.True(t, ok)
	assert.Equal(t, list.Vertices, got)
	assert.Equal(t, int32(6), impl.indices.Count())

	// a smaller list re-specifies the stores
	small := DrawList{
		Vertices: make([]byte, 3*VertexSize),
		Indices:  []uint32{0, 1, 2},
		Commands: []DrawCommand{{ElementCount: 3, ClipRect: [4]float32{0, 0, 960, 540}, TextureID: fontID}},
	}
	require.NoError(t, r.Render(960, 540, []DrawList{small}))
	assert.Equal(t, 3*VertexSize, impl.vertices.Size())
	assert.Len(t, d.Draws(), 3)
}

func TestRenderSkipsUnregisteredTextureAndWarnsOnce(t *testing.T) {
	_, d, r, logs := newRenderer(t)

	require.NoError(t, r.Render(960, 540, []DrawList{quadList([4]float32{0, 0, 10, 10}, 99)}))

	assert.Empty(t, d.Draws())
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("ui texture not registered")))
}

func TestRenderSkipsInvisibleCommands(t *testing.T) {
	ctx, d, r, _ := newRenderer(t)
	r.RegisterTexture(fontID, newFont(t, ctx))

	require.NoError(t, r.Render(960, 540, []DrawList{quadList([4]float32{5, 5, 5, 50}, fontID)}))

	assert.Empty(t, d.Draws())
}

func TestRenderRejectsMalformedLists(t *testing.T) {
	ctx, d, r, _ := newRenderer(t)
	r.RegisterTexture(fontID, newFont(t, ctx))

	partial := quadList([4]float32{0, 0, 10, 10}, fontID)
	partial.Vertices = partial.Vertices[:VertexSize+1]
	assert.Error(t, r.Render(960, 540, []DrawList{partial}))

	overrun := quadList([4]float32{0, 0, 10, 10}, fontID)
	overrun.Commands = append(overrun.Commands, DrawCommand{ElementCount: 3, TextureID: fontID})
	assert.ErrorIs(t, r.Render(960, 540, []DrawList{overrun}), gpu.ErrOutOfRange)
	assert.Len(t, d.Draws(), 2)
}

func TestRenderIgnoresEmptyDisplay(t *testing.T) {
	_, d, r, _ := newRenderer(t)
	calls := len(d.Calls())

	require.NoError(t, r.Render(0, 540, []DrawList{quadList([4]float32{0, 0, 10, 10}, fontID)}))
	require.NoError(t, r.Render(960, 540, nil))

	assert.Len(t, d.Calls(), calls)
}

func TestRendererDestroy(t *testing.T) {
	d := gpufake.New()
	ctx := gpu.NewContext(d)
	r, err := NewRenderer(ctx)
	require.NoError(t, err)

	r.Destroy()
	r.Destroy()

	assert.Zero(t, d.LiveObjects())
}

func TestNewRendererBadShader(t *testing.T) {
	d := gpufake.New()
	ctx := gpu.NewContext(d)

	_, err := NewRenderer(ctx, WithShaderSource("broken", "#shader vertex\n#error nope\n#shader fragment\nvoid main() {}\n"))

	var ce *gpu.ShaderCompileError
	require.ErrorAs(t, err, &ce)
	assert.Zero(t, d.LiveObjects())
}

func TestNewRendererFailureReleasesEverything(t *testing.T) {
	d := gpufake.New()
	ctx := gpu.NewContext(d)
	d.FailNextBufferData()

	_, err := NewRenderer(ctx)

	var rce *gpu.ResourceCreationError
	require.ErrorAs(t, err, &rce)
	assert.Equal(t, "vertex buffer", rce.Kind)
	assert.Zero(t, d.LiveObjects())
}
