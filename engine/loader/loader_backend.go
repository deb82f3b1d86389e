package loader

import (
	"fmt"
	"io/fs"
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

// loaderBackend resolves an image name to decoded pixels.
// Implementations must be safe for concurrent use; Preload calls Load from several workers.
type loaderBackend interface {
	// Load reads and decodes the named image.
	//
	// Parameters:
	//   - name: the image name
	//
	// Returns:
	//   - *common.DecodedImage: the decoded image
	//   - error: error if reading or decoding fails
	Load(name string) (*common.DecodedImage, error)
}

// fileBackend reads images from the local filesystem.
type fileBackend struct{}

func (fileBackend) Load(name string) (*common.DecodedImage, error) {
	return common.DecodeImageFile(name)
}

// fsBackend reads images from an fs.FS, such as an embedded asset tree.
type fsBackend struct {
	fsys fs.FS
}

func (b fsBackend) Load(name string) (*common.DecodedImage, error) {
	data, err := fs.ReadFile(b.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", name, err)
	}
	return common.DecodeImage(name, data)
}

func defaultWorkers() int {
	return min(max(runtime.NumCPU(), 1), 8)
}
