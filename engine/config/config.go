// Package config loads the sandbox configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the sandbox configuration. Zero-valued sections of a loaded file keep their defaults.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Debug   DebugConfig   `yaml:"debug"`
	Assets  AssetConfig   `yaml:"assets"`
	Testbed TestbedConfig `yaml:"testbed"`

	// Profiling enables the periodic frame stats log line.
	Profiling bool `yaml:"profiling"`
	// FrameLimit stops the frame loop after that many frames. 0 runs until the window closes.
	FrameLimit int `yaml:"frame_limit"`
}

// WindowConfig describes the window and its GL context.
type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	VSync   bool   `yaml:"vsync"`
	GLMajor int    `yaml:"gl_major"`
	GLMinor int    `yaml:"gl_minor"`
	// Headless runs without a display on the in-memory driver.
	Headless bool `yaml:"headless"`
}

// DebugConfig controls driver error handling and log verbosity.
type DebugConfig struct {
	// Strict panics on the first driver error instead of logging and continuing.
	Strict   bool   `yaml:"strict"`
	LogLevel string `yaml:"log_level"`
}

// AssetConfig points at shader and texture files. Empty paths use the embedded assets.
type AssetConfig struct {
	Shader  string `yaml:"shader"`
	Texture string `yaml:"texture"`
}

// TestbedConfig selects the test shown at startup.
type TestbedConfig struct {
	// Initial is a registered test name. Empty starts on the menu.
	Initial string `yaml:"initial"`
}

// Default returns the configuration the sandbox runs with when no file is given:
// a 960x540 vsynced window with a GL 3.3 core context.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:   "Hello World",
			Width:   960,
			Height:  540,
			VSync:   true,
			GLMajor: 3,
			GLMinor: 3,
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
		Profiling: true,
	}
}

// Load reads a YAML file over the defaults and validates the result.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document, possibly empty
//
// Returns:
//   - Config: the parsed configuration
//   - error: a parse or validation error
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Marshal encodes the configuration as YAML.
//
// Returns:
//   - []byte: the YAML document
//   - error: an encoding error
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate rejects configurations the sandbox cannot run with.
//
// Returns:
//   - error: every problem found, joined, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.GLMajor < 3 || (c.Window.GLMajor == 3 && c.Window.GLMinor < 3) {
		errs = append(errs, fmt.Errorf("GL %d.%d is below the required 3.3 core profile", c.Window.GLMajor, c.Window.GLMinor))
	}
	if _, err := c.Debug.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("frame_limit %d must not be negative", c.FrameLimit))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel. An empty level is info.
//
// Returns:
//   - slog.Level: the parsed level
//   - error: an error naming the unknown level
func (d DebugConfig) Level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(d.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(d.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", d.LogLevel)
	}
	return level, nil
}
