package texture

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// TextureBuilderOption is a functional option for configuring a Texture.
type TextureBuilderOption func(*textureImpl)

// WithFlipVertical controls whether rows are flipped to the bottom-left origin the graphics API
// samples from. Flipping is on by default; images that are already flipped are left alone.
//
// Parameters:
//   - flip: false to upload rows top to bottom
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithFlipVertical(flip bool) TextureBuilderOption {
	return func(t *textureImpl) {
		t.flip = flip
	}
}

// WithFilter sets the minification and magnification filters. The default is gpu.Linear for both.
//
// Parameters:
//   - minFilter: the minification filter, gpu.Linear or gpu.Nearest
//   - magFilter: the magnification filter, gpu.Linear or gpu.Nearest
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithFilter(minFilter, magFilter gpu.Enum) TextureBuilderOption {
	return func(t *textureImpl) {
		t.minFilter = minFilter
		t.magFilter = magFilter
	}
}

// WithWrap sets the wrap mode for both texture axes. The default is gpu.ClampToEdge.
//
// Parameters:
//   - s: the horizontal wrap mode
//   - t: the vertical wrap mode
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithWrap(s, t gpu.Enum) TextureBuilderOption {
	return func(tex *textureImpl) {
		tex.wrapS = s
		tex.wrapT = t
	}
}
