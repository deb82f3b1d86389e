package loader

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	workers   int
	queueSize int
	pool      worker.DynamicWorkerPool

	imageCache map[string]*common.DecodedImage

	backend loaderBackend
}

// Loader decodes images ahead of GPU upload and caches the decoded pixels.
// Decoding runs on a worker pool so a batch of images costs roughly as long as the largest one;
// uploading the results stays with the caller on the graphics thread.
type Loader interface {
	// Load decodes a single image and caches the result.
	// If the image is already cached, the cached version is returned.
	//
	// Parameters:
	//   - name: the image path, resolved by the loader's backend
	//
	// Returns:
	//   - *common.DecodedImage: the decoded RGBA8 image
	//   - error: error if reading or decoding fails
	Load(name string) (*common.DecodedImage, error)

	// Preload decodes images concurrently and caches every one that succeeds.
	// It blocks until all decodes finish.
	//
	// Parameters:
	//   - names: the image paths
	//
	// Returns:
	//   - error: the failures of every image that could not be decoded, joined
	Preload(names ...string) error

	// LoadReader decodes an image from a stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the image
	//   - r: the reader providing encoded image data
	//
	// Returns:
	//   - *common.DecodedImage: the decoded image
	//   - error: error if reading or decoding fails
	LoadReader(name string, r io.Reader) (*common.DecodedImage, error)

	// Get retrieves a cached image by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *common.DecodedImage: the cached image or nil
	Get(name string) *common.DecodedImage

	// Take removes a cached image and returns it. Ownership passes to the caller, typically
	// a texture upload that releases the pixels afterwards.
	//
	// Parameters:
	//   - name: the cache key to take
	//
	// Returns:
	//   - *common.DecodedImage: the image or nil
	//   - bool: true if the image was cached
	Take(name string) (*common.DecodedImage, bool)

	// Images returns a copy of the image cache.
	//
	// Returns:
	//   - map[string]*common.DecodedImage: all cached images keyed by name
	Images() map[string]*common.DecodedImage
}

var _ Loader = &loader{}

// NewLoader creates a new Loader reading from the local filesystem with one worker per
// available CPU, up to 8.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:    defaultWorkers(),
		queueSize:  64,
		imageCache: make(map[string]*common.DecodedImage),
		backend:    fileBackend{},
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, 1*time.Second)
	return l
}

func (l *loader) Load(name string) (*common.DecodedImage, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}
	img, err := l.backend.Load(name)
	if err != nil {
		return nil, err
	}
	l.store(name, img)
	return img, nil
}

func (l *loader) Preload(names ...string) error {
	errs := make([]error, len(names))

	// A WaitGroup is the per-batch barrier; the pool's workers outlive the batch.
	var wg sync.WaitGroup
	for i, name := range names {
		if l.Get(name) != nil {
			continue
		}
		wg.Add(1)
		idx, n := i, name
		l.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				img, err := l.backend.Load(n)
				if err != nil {
					errs[idx] = err
					return nil, nil
				}
				l.store(n, img)
				return nil, nil
			},
		})
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (l *loader) LoadReader(name string, r io.Reader) (*common.DecodedImage, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %q: %w", name, err)
	}
	img, err := common.DecodeImage(name, data)
	if err != nil {
		return nil, err
	}
	l.store(name, img)
	return img, nil
}

func (l *loader) store(name string, img *common.DecodedImage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.imageCache[name] = img
}

func (l *loader) Get(name string) *common.DecodedImage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.imageCache[name]
}

func (l *loader) Take(name string) (*common.DecodedImage, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.imageCache[name]
	delete(l.imageCache, name)
	return img, ok
}

func (l *loader) Images() map[string]*common.DecodedImage {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*common.DecodedImage, len(l.imageCache))
	for k, v := range l.imageCache {
		result[k] = v
	}
	return result
}
