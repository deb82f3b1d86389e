package testbed

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
)

// TexturedQuadBuilderOption is a functional option for configuring a TexturedQuad.
type TexturedQuadBuilderOption func(*TexturedQuad)

// WithCamera sets the camera supplying the projection and view matrices. The default views a
// 960x540 area from x = 100.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - TexturedQuadBuilderOption: option function to apply
func WithCamera(c camera.Camera) TexturedQuadBuilderOption {
	return func(q *TexturedQuad) {
		q.camera = c
	}
}

// WithShaderSource replaces the embedded basic shader. The source must declare u_MVP, u_Color
// and u_Texture to be useful, though missing uniforms are not an error.
//
// Parameters:
//   - name: a label for logs and errors
//   - text: the stage-tagged shader source
//
// Returns:
//   - TexturedQuadBuilderOption: option function to apply
func WithShaderSource(name, text string) TexturedQuadBuilderOption {
	return func(q *TexturedQuad) {
		q.shaderName = name
		q.shaderText = text
	}
}

// WithImage replaces the embedded logo with a decoded image. A fresh copy is uploaded each time
// the test is constructed, so the caller's pixels are left intact.
//
// Parameters:
//   - img: the decoded image
//
// Returns:
//   - TexturedQuadBuilderOption: option function to apply
func WithImage(img *common.DecodedImage) TexturedQuadBuilderOption {
	return func(q *TexturedQuad) {
		if img == nil {
			return
		}
		cp := *img
		cp.Pixels = append([]byte(nil), img.Pixels...)
		q.image = &cp
	}
}

// WithTextureOptions forwards options to texture creation.
func WithTextureOptions(options ...texture.TextureBuilderOption) TexturedQuadBuilderOption {
	return func(q *TexturedQuad) {
		q.texOptions = append(q.texOptions, options...)
	}
}
