package testbed

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/assets"
	"github.com/Carmen-Shannon/oxy-gl/engine/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/ui"
	"github.com/go-gl/mathgl/mgl32"
)

// TexturedQuadName is the registry name of the textured quad test.
const TexturedQuadName = "Texture 2D"

const (
	colorStep      = 0.05
	translationMax = 960
	textureSlot    = 0
)

var (
	quadVertices = []float32{
		// x, y, u, v
		100, 100, 0, 0,
		200, 100, 1, 0,
		200, 200, 1, 1,
		100, 200, 0, 1,
	}
	quadIndices = []uint32{0, 1, 2, 2, 3, 0}
)

// TexturedQuad draws one textured quad twice, at two independently adjustable translations,
// tinted by a red channel that bounces between 0 and 1.
type TexturedQuad struct {
	renderer renderer.Renderer
	camera   camera.Camera
	scope    *gpu.Scope

	va      buffer.VertexArray
	ib      buffer.IndexBuffer
	shader  shader.Shader
	texture texture.Texture

	shaderName string
	shaderText string
	image      *common.DecodedImage
	texOptions []texture.TextureBuilderOption

	translationA [3]float32
	translationB [3]float32
	red          float32
	increment    float32
	destroyed    bool
}

var _ Test = &TexturedQuad{}

// NewTexturedQuad builds the quad's buffers, shader and texture. The embedded basic shader and
// logo are used unless overridden by options. On error everything created so far is released.
//
// Parameters:
//   - r: the renderer to draw with
//   - options: functional options to configure the test
//
// Returns:
//   - *TexturedQuad: the test
//   - error: error if any resource could not be created
func NewTexturedQuad(r renderer.Renderer, options ...TexturedQuadBuilderOption) (*TexturedQuad, error) {
	q := &TexturedQuad{
		renderer:     r,
		scope:        gpu.NewScope(),
		shaderName:   assets.BasicShaderName,
		shaderText:   assets.BasicShader,
		translationA: [3]float32{200, 200, 0},
		translationB: [3]float32{400, 200, 0},
		increment:    colorStep,
	}
	for _, option := range options {
		option(q)
	}
	if q.camera == nil {
		q.camera = camera.NewCamera(camera.WithPosition(100, 0, 0))
	}
	if err := q.build(r.Context()); err != nil {
		q.scope.Release()
		return nil, fmt.Errorf("textured quad: %w", err)
	}
	return q, nil
}

// TexturedQuadFactory returns a Factory for the textured quad test.
func TexturedQuadFactory(r renderer.Renderer, options ...TexturedQuadBuilderOption) Factory {
	return func() (Test, error) {
		return NewTexturedQuad(r, options...)
	}
}

func (q *TexturedQuad) build(ctx *gpu.Context) error {
	va, err := buffer.NewVertexArray(ctx)
	if err != nil {
		return err
	}
	q.scope.Track(va)
	q.va = va

	vb, err := buffer.NewVertexBuffer(ctx, common.SliceToBytes(quadVertices))
	if err != nil {
		return err
	}
	q.scope.Track(vb)
	if err := va.AddBuffer(vb, buffer.NewVertexLayout().PushFloat(2).PushFloat(2)); err != nil {
		return err
	}

	ib, err := buffer.NewIndexBuffer(ctx, quadIndices)
	if err != nil {
		return err
	}
	q.scope.Track(ib)
	q.ib = ib

	sh, err := shader.NewShaderFromString(ctx, q.shaderName, q.shaderText)
	if err != nil {
		return err
	}
	q.scope.Track(sh)
	q.shader = sh

	var tex texture.Texture
	if q.image != nil {
		tex, err = texture.NewTexture(ctx, q.image, q.texOptions...)
	} else {
		tex, err = texture.NewTextureFromBytes(ctx, assets.LogoTextureName, assets.LogoPNG, q.texOptions...)
	}
	if err != nil {
		return err
	}
	q.scope.Track(tex)
	q.texture = tex

	va.Unbind()
	return nil
}

// Red returns the current red channel of the tint.
func (q *TexturedQuad) Red() float32 {
	return q.red
}

// Translations returns the translations of quads A and B.
func (q *TexturedQuad) Translations() (a, b [3]float32) {
	return q.translationA, q.translationB
}

// Texture returns the quad's texture.
func (q *TexturedQuad) Texture() texture.Texture {
	return q.texture
}

// Shader returns the quad's shader.
func (q *TexturedQuad) Shader() shader.Shader {
	return q.shader
}

// OnUpdate steps the red channel by 0.05, reversing at 0 and 1.
func (q *TexturedQuad) OnUpdate(float32) {
	q.red += q.increment
	if q.red >= 1 {
		q.red = 1
		q.increment = -colorStep
	} else if q.red <= 0 {
		q.red = 0
		q.increment = colorStep
	}
}

// OnRender draws quad A then quad B. The texture is rebound every frame since the UI shares unit 0.
func (q *TexturedQuad) OnRender() error {
	if q.destroyed {
		return fmt.Errorf("textured quad: %w", gpu.ErrResourceDestroyed)
	}
	if err := q.texture.Bind(textureSlot); err != nil {
		return err
	}
	q.shader.Bind()
	if err := q.shader.SetUniform1i("u_Texture", textureSlot); err != nil {
		return err
	}
	if err := q.shader.SetUniform4f("u_Color", q.red, 0.3, 0.8, 1.0); err != nil {
		return err
	}
	for _, t := range [][3]float32{q.translationA, q.translationB} {
		mvp := q.camera.MVP(mgl32.Translate3D(t[0], t[1], t[2]))
		if err := q.shader.SetUniformMat4f("u_MVP", mvp); err != nil {
			return err
		}
		if err := q.renderer.Draw(q.va, q.ib, q.shader); err != nil {
			return err
		}
	}
	return nil
}

func (q *TexturedQuad) OnImGuiRender(panel ui.Panel) {
	panel.SliderFloat3("Translation A", &q.translationA, 0, translationMax)
	panel.SliderFloat3("Translation B", &q.translationB, 0, translationMax)
}

// Destroy releases the quad's resources. Further calls are no-ops.
func (q *TexturedQuad) Destroy() {
	if q.destroyed {
		return
	}
	q.destroyed = true
	q.scope.Release()
}
