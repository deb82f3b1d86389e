package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, 960, c.Window.Width)
	assert.Equal(t, 540, c.Window.Height)
	assert.True(t, c.Window.VSync)
	assert.Equal(t, [2]int{3, 3}, [2]int{c.Window.GLMajor, c.Window.GLMinor})
	assert.NoError(t, c.Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
window:
  title: Sandbox
  width: 1280
debug:
  strict: true
  log_level: debug
testbed:
  initial: Texture 2D
frame_limit: 10
`))
	require.NoError(t, err)

	assert.Equal(t, "Sandbox", c.Window.Title)
	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, 540, c.Window.Height)
	assert.True(t, c.Window.VSync)
	assert.True(t, c.Debug.Strict)
	assert.Equal(t, "Texture 2D", c.Testbed.Initial)
	assert.Equal(t, 10, c.FrameLimit)
	level, err := c.Debug.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseEmptyDocument(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "window:\n  colour: red\n"},
		{"malformed", "window: [\n"},
		{"zero width", "window:\n  width: 0\n"},
		{"old GL", "window:\n  gl_major: 3\n  gl_minor: 2\n"},
		{"GL 2", "window:\n  gl_major: 2\n  gl_minor: 1\n"},
		{"bad log level", "debug:\n  log_level: loud\n"},
		{"negative frame limit", "frame_limit: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	c := Default()
	c.Window.Width = -1
	c.Debug.LogLevel = "loud"

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "loud")
}

func TestLoadRoundTrip(t *testing.T) {
	want := Default()
	want.Assets.Texture = "logo.png"
	want.Window.Headless = true
	data, err := want.Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
