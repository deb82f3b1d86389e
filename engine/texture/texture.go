package texture

import (
	"fmt"
	"image"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Texture is an immutable 2D RGBA8 texture uploaded once at construction.
// The CPU copy of the pixels is released as soon as the upload completes.
type Texture interface {
	gpu.Releaser

	// Name returns the texture's source name, usually the image path.
	//
	// Returns:
	//   - string: the texture name
	Name() string

	// Handle returns the native texture name.
	//
	// Returns:
	//   - gpu.Handle: the texture handle
	Handle() gpu.Handle

	// Width returns the texture width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the texture height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int

	// Channels returns the channel count of the source image before expansion to RGBA.
	//
	// Returns:
	//   - int: the source channel count
	Channels() int

	// Bind attaches the texture to a texture unit. Panics if the texture has been destroyed.
	//
	// Parameters:
	//   - slot: zero based texture unit
	//
	// Returns:
	//   - error: *gpu.InvalidTextureSlotError when slot is outside [0, MaxTextureUnits)
	Bind(slot int) error

	// Unbind detaches the texture from the unit it was last bound to, if it is still there.
	Unbind()

	// Slot returns the unit the texture is bound to, or -1.
	//
	// Returns:
	//   - int: the bound texture unit or -1
	Slot() int

	// Destroyed reports whether Destroy has been called.
	//
	// Returns:
	//   - bool: true once destroyed
	Destroyed() bool
}

type textureImpl struct {
	ctx      *gpu.Context
	name     string
	handle   gpu.Handle
	width    int
	height   int
	channels int

	flip      bool
	minFilter gpu.Enum
	magFilter gpu.Enum
	wrapS     gpu.Enum
	wrapT     gpu.Enum

	slot      int
	destroyed bool
}

var _ Texture = &textureImpl{}

// NewTextureFromFile decodes an image file and uploads it.
//
// Parameters:
//   - ctx: the graphics context
//   - path: the image file path
//   - options: functional options such as WithFlipVertical
//
// Returns:
//   - Texture: the uploaded texture
//   - error: a decode error or *gpu.ResourceCreationError
func NewTextureFromFile(ctx *gpu.Context, path string, options ...TextureBuilderOption) (Texture, error) {
	img, err := common.DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(ctx, img, options...)
}

// NewTextureFromBytes decodes an in-memory encoded image and uploads it.
//
// Parameters:
//   - ctx: the graphics context
//   - name: a label for the image
//   - data: the encoded image bytes
//   - options: functional options such as WithFlipVertical
//
// Returns:
//   - Texture: the uploaded texture
//   - error: a decode error or *gpu.ResourceCreationError
func NewTextureFromBytes(ctx *gpu.Context, name string, data []byte, options ...TextureBuilderOption) (Texture, error) {
	img, err := common.DecodeImage(name, data)
	if err != nil {
		return nil, err
	}
	return NewTexture(ctx, img, options...)
}

// NewTextureFromImage converts an in-memory image to RGBA8 and uploads it.
//
// Parameters:
//   - ctx: the graphics context
//   - name: a label for the image
//   - img: the source image
//   - options: functional options such as WithFlipVertical
//
// Returns:
//   - Texture: the uploaded texture
//   - error: a *gpu.ResourceCreationError
func NewTextureFromImage(ctx *gpu.Context, name string, img image.Image, options ...TextureBuilderOption) (Texture, error) {
	d := common.ImageToRGBA(img)
	d.Name = name
	return NewTexture(ctx, d, options...)
}

// NewTexture uploads pre-decoded pixels. The image's pixels are released once uploaded,
// whether or not the upload succeeded.
//
// Parameters:
//   - ctx: the graphics context
//   - img: the decoded RGBA8 image
//   - options: functional options such as WithFlipVertical
//
// Returns:
//   - Texture: the uploaded texture
//   - error: an invalid image error or *gpu.ResourceCreationError
func NewTexture(ctx *gpu.Context, img *common.DecodedImage, options ...TextureBuilderOption) (Texture, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer img.Release()

	t := &textureImpl{
		ctx:       ctx,
		name:      img.Name,
		width:     img.Width,
		height:    img.Height,
		channels:  img.Channels,
		flip:      true,
		minFilter: gpu.Linear,
		magFilter: gpu.Linear,
		wrapS:     gpu.ClampToEdge,
		wrapT:     gpu.ClampToEdge,
		slot:      -1,
	}
	for _, opt := range options {
		opt(t)
	}
	if t.flip && !img.Flipped {
		img.FlipVertical()
	}

	size := len(img.Pixels)
	d := ctx.Driver()
	err := ctx.Check(func() { t.handle = d.GenTexture() })
	if t.handle == 0 {
		return nil, &gpu.ResourceCreationError{Kind: "texture", Size: size, Cause: err}
	}
	if err := ctx.Check(func() {
		d.ActiveTexture(gpu.Texture0)
		d.BindTexture(gpu.Texture2D, t.handle)
		d.TexParameteri(gpu.Texture2D, gpu.TextureMinFilter, int32(t.minFilter))
		d.TexParameteri(gpu.Texture2D, gpu.TextureMagFilter, int32(t.magFilter))
		d.TexParameteri(gpu.Texture2D, gpu.TextureWrapS, int32(t.wrapS))
		d.TexParameteri(gpu.Texture2D, gpu.TextureWrapT, int32(t.wrapT))
		d.TexImage2D(gpu.Texture2D, int32(t.width), int32(t.height), img.Pixels)
		d.BindTexture(gpu.Texture2D, 0)
	}); err != nil {
		ctx.Call(func() { d.DeleteTexture(t.handle) })
		return nil, &gpu.ResourceCreationError{Kind: "texture", Size: size, Cause: err}
	}
	ctx.MarkTextureUnit(0, 0)
	ctx.Logger().Debug("texture uploaded", "texture", t.name, "width", t.width, "height", t.height, "channels", t.channels)
	return t, nil
}

func (t *textureImpl) Name() string {
	return t.name
}

func (t *textureImpl) Handle() gpu.Handle {
	return t.handle
}

func (t *textureImpl) Width() int {
	return t.width
}

func (t *textureImpl) Height() int {
	return t.height
}

func (t *textureImpl) Channels() int {
	return t.channels
}

func (t *textureImpl) Slot() int {
	return t.slot
}

func (t *textureImpl) Destroyed() bool {
	return t.destroyed
}

func (t *textureImpl) Bind(slot int) error {
	if t.destroyed {
		panic(fmt.Errorf("bind texture %q: %w", t.name, gpu.ErrResourceDestroyed))
	}
	if limit := t.ctx.MaxTextureUnits(); slot < 0 || slot >= limit {
		return &gpu.InvalidTextureSlotError{Slot: slot, Max: limit}
	}
	d := t.ctx.Driver()
	t.ctx.Call(func() {
		d.ActiveTexture(gpu.Texture0 + gpu.Enum(slot))
		d.BindTexture(gpu.Texture2D, t.handle)
	})
	t.ctx.MarkTextureUnit(slot, t.handle)
	t.slot = slot
	return nil
}

func (t *textureImpl) Unbind() {
	if t.slot < 0 || t.destroyed {
		return
	}
	slot := t.slot
	t.slot = -1
	if t.ctx.TextureUnit(slot) != t.handle {
		return
	}
	d := t.ctx.Driver()
	t.ctx.Call(func() {
		d.ActiveTexture(gpu.Texture0 + gpu.Enum(slot))
		d.BindTexture(gpu.Texture2D, 0)
	})
	t.ctx.MarkTextureUnit(slot, 0)
}

// Destroy deletes the native texture. Further calls are no-ops.
func (t *textureImpl) Destroy() {
	if t.destroyed {
		return
	}
	d := t.ctx.Driver()
	t.ctx.Call(func() { d.DeleteTexture(t.handle) })
	t.ctx.ForgetTexture(t.handle)
	t.slot = -1
	t.destroyed = true
}
