package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets how many images are decoded at once.
//
// Parameters:
//   - n: the worker count, at least 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithQueueSize sets how many decode tasks may wait for a free worker before Preload blocks.
//
// Parameters:
//   - n: the queue capacity
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue option to a loader
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.queueSize = max(n, 1)
	}
}

// WithFS reads images from fsys instead of the local filesystem.
//
// Parameters:
//   - fsys: the filesystem to resolve names in
//
// Returns:
//   - LoaderBuilderOption: a function that applies the filesystem option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.backend = fsBackend{fsys: fsys}
	}
}

// WithImage is an option builder that pre-populates the image cache.
//
// Parameters:
//   - key: the cache key for the image
//   - img: the decoded image to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the image option to a loader
func WithImage(key string, img *common.DecodedImage) LoaderBuilderOption {
	return func(l *loader) {
		l.imageCache[key] = img
	}
}
