// package common contains common types and helpers that are used throughout this engine. They are not interface-wrapped
// structs, just plain structs and functions that express commonly used data-types.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodedImage holds tightly packed RGBA8 pixel data decoded from an image file.
// Rows are stored top to bottom unless FlipVertical has been applied.
type DecodedImage struct {
	// Name identifies where the image came from, usually the file path.
	Name string

	// Pixels is the RGBA8 pixel data, 4 bytes per pixel, row-major.
	Pixels []byte

	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Channels is the number of channels the source image carried before expansion to RGBA.
	Channels int

	// Format is the name of the decoder that read the image, e.g. "png". Empty for in-memory images.
	Format string

	// Flipped reports whether the rows have been flipped to bottom-up order.
	Flipped bool
}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP bytes to RGBA8.
//
// Parameters:
//   - name: a label for the image, used in errors
//   - data: the encoded image bytes
//
// Returns:
//   - *DecodedImage: the decoded pixels
//   - error: error if decoding fails
func DecodeImage(name string, data []byte) (*DecodedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to decode image %s: no data", name)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
	}
	d := ImageToRGBA(img)
	d.Name = name
	d.Format = format
	return d, nil
}

// DecodeImageFile reads and decodes an image file to RGBA8.
//
// Parameters:
//   - path: the image file path
//
// Returns:
//   - *DecodedImage: the decoded pixels
//   - error: error if the file could not be opened or decoded
func DecodeImageFile(path string) (*DecodedImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image file %s: %w", path, err)
	}
	d := ImageToRGBA(img)
	d.Name = path
	d.Format = format
	return d, nil
}

// ImageToRGBA converts any image to tightly packed RGBA8 with its origin at (0, 0).
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - *DecodedImage: the converted pixels
func ImageToRGBA(img image.Image) *DecodedImage {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return &DecodedImage{
		Pixels:   rgba.Pix,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channelCount(img.ColorModel()),
	}
}

func channelCount(m color.Model) int {
	switch m {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}
	return 4
}

// FlipVertical reverses the row order in place, converting between top-down image rows and the
// bottom-up origin the graphics API samples from. Calling it twice restores the original order.
func (d *DecodedImage) FlipVertical() {
	stride := d.Width * 4
	row := make([]byte, stride)
	for top, bottom := 0, d.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := d.Pixels[top*stride : (top+1)*stride]
		b := d.Pixels[bottom*stride : (bottom+1)*stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
	d.Flipped = !d.Flipped
}

// Validate checks that the pixel slice matches the dimensions.
//
// Returns:
//   - error: error if the image is empty or the pixel count does not match
func (d *DecodedImage) Validate() error {
	if d == nil {
		return errors.New("image is nil")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("image %s has invalid size %dx%d", d.Name, d.Width, d.Height)
	}
	if len(d.Pixels) != d.Width*d.Height*4 {
		return fmt.Errorf("image %s has %d bytes of pixels, want %d", d.Name, len(d.Pixels), d.Width*d.Height*4)
	}
	return nil
}

// Release drops the CPU copy of the pixels.
func (d *DecodedImage) Release() {
	d.Pixels = nil
}
