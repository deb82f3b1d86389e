package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreloadDecodesConcurrently(t *testing.T) {
	fsys := fstest.MapFS{}
	var names []string
	for i := 1; i <= 12; i++ {
		name := "textures/" + strconv.Itoa(i) + ".png"
		fsys[name] = &fstest.MapFile{Data: encodePNG(t, i, 2)}
		names = append(names, name)
	}
	l := NewLoader(WithFS(fsys), WithWorkers(4), WithQueueSize(2))

	require.NoError(t, l.Preload(names...))

	images := l.Images()
	require.Len(t, images, 12)
	for i, name := range names {
		assert.Equal(t, i+1, images[name].Width, name)
		assert.Equal(t, name, images[name].Name)
	}
}

func TestPreloadJoinsFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"good.png": &fstest.MapFile{Data: encodePNG(t, 1, 1)},
		"bad.png":  &fstest.MapFile{Data: []byte("not a png")},
	}
	l := NewLoader(WithFS(fsys), WithWorkers(2))

	err := l.Preload("good.png", "bad.png", "missing.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.png")
	assert.Contains(t, err.Error(), "missing.png")
	assert.NotNil(t, l.Get("good.png"))
	assert.Nil(t, l.Get("bad.png"))
}

func TestLoadCachesAndTake(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 3, 3), 0o644))
	l := NewLoader()

	a, err := l.Load(path)
	require.NoError(t, err)
	b, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, a, b)

	taken, ok := l.Take(path)
	assert.True(t, ok)
	assert.Same(t, a, taken)
	assert.Nil(t, l.Get(path))
	_, ok = l.Take(path)
	assert.False(t, ok)
}

func TestLoadReader(t *testing.T) {
	l := NewLoader()

	img, err := l.LoadReader("stream", bytes.NewReader(encodePNG(t, 2, 1)))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Same(t, img, l.Get("stream"))

	_, err = l.LoadReader("junk", bytes.NewReader([]byte("junk")))
	assert.Error(t, err)
}

func TestWithImageSkipsDecoding(t *testing.T) {
	pre := &common.DecodedImage{Name: "pre", Width: 1, Height: 1, Pixels: make([]byte, 4)}
	l := NewLoader(WithImage("pre", pre), WithFS(fstest.MapFS{}))

	require.NoError(t, l.Preload("pre"))
	got, err := l.Load("pre")
	require.NoError(t, err)
	assert.Same(t, pre, got)
}
