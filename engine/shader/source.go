// source.go splits a single stage-tagged shader text into per-stage GLSL sources.
// A line containing the "#shader" directive opens a new section; the word that follows
// names the stage. Every following line, up to the next directive or the end of the text,
// belongs to that stage. Text before the first directive is ignored.
//
//	#shader vertex
//	#version 330 core
//	...
//	#shader fragment
//	#version 330 core
//	...
package shader

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

const directive = "#shader"

// Stage identifies one programmable pipeline stage.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageGeometry Stage = "geometry"
)

// Enum returns the driver enumerant of the stage.
//
// Returns:
//   - gpu.Enum: the shader type passed to CreateShader
func (s Stage) Enum() gpu.Enum {
	switch s {
	case StageVertex:
		return gpu.VertexShader
	case StageFragment:
		return gpu.FragmentShader
	case StageGeometry:
		return gpu.GeometryShader
	}
	return 0
}

// StageSource is the GLSL text of one stage.
type StageSource struct {
	Stage Stage
	Code  string
}

// Source is a parsed stage-tagged shader text, stages in the order they appeared.
type Source struct {
	// Name identifies where the text came from, used in errors and logs.
	Name   string
	Stages []StageSource
}

// Stage returns the code of the named stage.
//
// Parameters:
//   - stage: the stage to look up
//
// Returns:
//   - string: the stage code
//   - bool: false when the source has no such stage
func (s *Source) Stage(stage Stage) (string, bool) {
	for _, st := range s.Stages {
		if st.Stage == stage {
			return st.Code, true
		}
	}
	return "", false
}

// ParseError reports malformed stage-tagged shader text.
type ParseError struct {
	Name string
	// Line is 1-based, 0 when the error is not tied to a line.
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("shader: %s: %s", e.Name, e.Msg)
	}
	return fmt.Sprintf("shader: %s:%d: %s", e.Name, e.Line, e.Msg)
}

// ParseSource splits text into stages.
//
// Parameters:
//   - name: a label for the text, used in errors
//   - text: the stage-tagged shader text
//
// Returns:
//   - *Source: the parsed stages
//   - error: a *ParseError for unknown or duplicate stages, or text with no stage at all
func ParseSource(name, text string) (*Source, error) {
	src := &Source{Name: name}
	seen := make(map[Stage]bool)
	var current *strings.Builder
	var currentStage Stage

	flush := func() {
		if current != nil {
			src.Stages = append(src.Stages, StageSource{Stage: currentStage, Code: current.String()})
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		_, after, ok := strings.Cut(line, directive)
		if !ok {
			if current != nil {
				current.WriteString(line)
				current.WriteByte('\n')
			}
			continue
		}

		args := strings.Fields(after)
		if len(args) == 0 {
			return nil, &ParseError{Name: name, Line: lineNum, Msg: "#shader directive without a stage name"}
		}
		stage := Stage(strings.ToLower(args[0]))
		if stage.Enum() == 0 {
			return nil, &ParseError{Name: name, Line: lineNum, Msg: fmt.Sprintf("unknown shader stage %q", args[0])}
		}
		if seen[stage] {
			return nil, &ParseError{Name: name, Line: lineNum, Msg: fmt.Sprintf("duplicate %s stage", stage)}
		}
		seen[stage] = true
		flush()
		current = &strings.Builder{}
		currentStage = stage
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Name: name, Line: lineNum, Msg: err.Error()}
	}
	flush()

	if len(src.Stages) == 0 {
		return nil, &ParseError{Name: name, Msg: "no #shader sections found"}
	}
	return src, nil
}

// LoadFile reads and parses a stage-tagged shader file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - *Source: the parsed stages
//   - error: an error if the file could not be read or parsed
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to read source file %q: %w", path, err)
	}
	return ParseSource(path, string(data))
}

// LoadFS reads and parses a stage-tagged shader file from a file system such as an embed.FS.
//
// Parameters:
//   - fsys: the file system
//   - name: the file name inside fsys
//
// Returns:
//   - *Source: the parsed stages
//   - error: an error if the file could not be read or parsed
func LoadFS(fsys fs.FS, name string) (*Source, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to read source file %q: %w", name, err)
	}
	return ParseSource(name, string(data))
}
