package ui

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/assets"
	"github.com/Carmen-Shannon/oxy-gl/engine/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws UI draw lists on top of the current frame using the resource wrappers.
// Geometry is streamed into one vertex and one index buffer that are re-specified every list.
type Renderer interface {
	gpu.Releaser

	// Render draws lists over a display of the given size. Blending and scissoring are enabled
	// while drawing; scissoring is disabled again before Render returns.
	//
	// Parameters:
	//   - width: the display width in pixels
	//   - height: the display height in pixels
	//   - lists: the draw lists in back to front order
	//
	// Returns:
	//   - error: an upload error or the first *gpu.DriverError raised by a draw
	Render(width, height int, lists []DrawList) error

	// RegisterTexture makes a texture available to draw commands under an id.
	// The renderer does not take ownership of the texture.
	//
	// Parameters:
	//   - id: the id draw commands refer to the texture by
	//   - tex: the texture
	RegisterTexture(id TextureID, tex texture.Texture)

	// UnregisterTexture removes a texture id. Commands still referring to it are skipped.
	//
	// Parameters:
	//   - id: the id to remove
	UnregisterTexture(id TextureID)
}

type renderer struct {
	ctx *gpu.Context

	shaderName string
	shaderText string

	shader   shader.Shader
	vao      buffer.VertexArray
	vertices buffer.Buffer
	indices  buffer.IndexBuffer

	textures map[TextureID]texture.Texture
	missing  map[TextureID]bool
}

var _ Renderer = &renderer{}

// NewRenderer compiles the UI shader and allocates the streaming geometry buffers.
//
// Parameters:
//   - ctx: the graphics context
//   - options: functional options such as WithShaderSource
//
// Returns:
//   - Renderer: the UI renderer
//   - error: a shader or *gpu.ResourceCreationError; nothing stays allocated on error
func NewRenderer(ctx *gpu.Context, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		ctx:        ctx,
		shaderName: assets.ImGuiShaderName,
		shaderText: assets.ImGuiShader,
		textures:   make(map[TextureID]texture.Texture),
		missing:    make(map[TextureID]bool),
	}
	for _, opt := range options {
		opt(r)
	}

	scope := gpu.NewScope()
	var err error
	r.shader, err = shader.NewShaderFromString(ctx, r.shaderName, r.shaderText)
	if err != nil {
		return nil, fmt.Errorf("ui shader: %w", err)
	}
	scope.Track(r.shader)

	if r.vao, err = buffer.NewVertexArray(ctx); err != nil {
		scope.Release()
		return nil, err
	}
	scope.Track(r.vao)
	if r.vertices, err = buffer.NewVertexBuffer(ctx, nil, buffer.WithUsage(gpu.StreamDraw)); err != nil {
		scope.Release()
		return nil, err
	}
	scope.Track(r.vertices)
	if err = r.vao.AddBuffer(r.vertices, VertexLayout()); err != nil {
		scope.Release()
		return nil, err
	}
	if r.indices, err = buffer.NewIndexBuffer(ctx, nil, buffer.WithUsage(gpu.StreamDraw)); err != nil {
		scope.Release()
		return nil, err
	}
	r.vao.Unbind()
	return r, nil
}

func (r *renderer) RegisterTexture(id TextureID, tex texture.Texture) {
	r.textures[id] = tex
	delete(r.missing, id)
}

func (r *renderer) UnregisterTexture(id TextureID) {
	delete(r.textures, id)
}

func (r *renderer) Render(width, height int, lists []DrawList) error {
	if width <= 0 || height <= 0 || len(lists) == 0 {
		return nil
	}

	d := r.ctx.Driver()
	r.ctx.Call(func() {
		d.Enable(gpu.Blend)
		d.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
		d.Disable(gpu.CullFace)
		d.Disable(gpu.DepthTest)
		d.Enable(gpu.ScissorTest)
		d.Viewport(0, 0, int32(width), int32(height))
	})
	defer r.ctx.Call(func() { d.Disable(gpu.ScissorTest) })

	r.shader.Bind()
	if err := r.shader.SetUniformMat4f("u_Projection", mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)); err != nil {
		return err
	}
	if err := r.shader.SetUniform1i("u_Texture", 0); err != nil {
		return err
	}

	r.vao.Bind()
	defer r.vao.Unbind()
	for i, list := range lists {
		if err := r.renderList(list, width, height); err != nil {
			return fmt.Errorf("ui draw list %d: %w", i, err)
		}
	}
	return nil
}

func (r *renderer) renderList(list DrawList, width, height int) error {
	if len(list.Vertices)%VertexSize != 0 {
		return fmt.Errorf("vertex data of %d bytes is not a whole number of vertices", len(list.Vertices))
	}
	r.vertices.Bind()
	if err := r.vertices.Upload(list.Vertices); err != nil {
		return err
	}
	r.indices.Bind()
	if err := r.indices.Upload(common.SliceToBytes(list.Indices)); err != nil {
		return err
	}

	d := r.ctx.Driver()
	offset := 0
	for _, cmd := range list.Commands {
		first := offset
		offset += cmd.ElementCount
		if cmd.ElementCount <= 0 {
			continue
		}
		if offset > len(list.Indices) {
			return fmt.Errorf("command reads indices [%d, %d) of %d: %w", first, offset, len(list.Indices), gpu.ErrOutOfRange)
		}
		x, y, w, h, visible := scissorRect(cmd.ClipRect, width, height)
		if !visible {
			continue
		}
		tex, ok := r.textures[cmd.TextureID]
		if !ok {
			if !r.missing[cmd.TextureID] {
				r.missing[cmd.TextureID] = true
				r.ctx.Logger().Warn("ui texture not registered", "texture_id", uintptr(cmd.TextureID))
			}
			continue
		}
		if err := tex.Bind(0); err != nil {
			return err
		}
		r.ctx.Call(func() { d.Scissor(x, y, w, h) })
		if err := r.ctx.Check(func() {
			d.DrawElements(gpu.Triangles, int32(cmd.ElementCount), r.indices.IndexType(), first*4)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Destroy releases the shader and geometry buffers. Registered textures are left alone.
func (r *renderer) Destroy() {
	if r.shader == nil || r.shader.Destroyed() {
		return
	}
	r.indices.Destroy()
	r.vertices.Destroy()
	r.vao.Destroy()
	r.shader.Destroy()
	clear(r.textures)
}
