package shader

import (
	"fmt"
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a linked program built from a stage-tagged source.
// Uniform setters require the program to be bound and resolve names through a per-program
// location cache. Setting a uniform the program does not use is a no-op.
type Shader interface {
	gpu.Releaser

	// Label returns the name the shader was created with, usually its source path.
	//
	// Returns:
	//   - string: the shader label
	Label() string

	// Handle returns the native program name.
	//
	// Returns:
	//   - gpu.Handle: the program handle
	Handle() gpu.Handle

	// Stages returns the stages linked into the program, in source order.
	//
	// Returns:
	//   - []Stage: the linked stages
	Stages() []Stage

	// Bind installs the program. Panics if the shader has been destroyed.
	Bind()

	// Unbind uninstalls the program if it is the current one.
	Unbind()

	// IsBound reports whether the program is installed.
	//
	// Returns:
	//   - bool: true while bound
	IsBound() bool

	// UniformLocation returns the cached location of a uniform, -1 when the program has no
	// active uniform of that name. The driver is queried at most once per name.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - int32: the uniform location or -1
	UniformLocation(name string) int32

	// SetUniform1i sets an int or sampler uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	//
	// Returns:
	//   - error: gpu.ErrNotBound when the program is not bound
	SetUniform1i(name string, v int32) error

	// SetUniform1f sets a float uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	//
	// Returns:
	//   - error: gpu.ErrNotBound when the program is not bound
	SetUniform1f(name string, v float32) error

	// SetUniform4f sets a vec4 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v0, v1, v2, v3: the components
	//
	// Returns:
	//   - error: gpu.ErrNotBound when the program is not bound
	SetUniform4f(name string, v0, v1, v2, v3 float32) error

	// SetUniformMat4f sets a mat4 uniform from a column major matrix.
	//
	// Parameters:
	//   - name: the uniform name
	//   - m: the matrix
	//
	// Returns:
	//   - error: gpu.ErrNotBound when the program is not bound
	SetUniformMat4f(name string, m mgl32.Mat4) error

	// Destroyed reports whether Destroy has been called.
	//
	// Returns:
	//   - bool: true once destroyed
	Destroyed() bool
}

type shaderImpl struct {
	ctx       *gpu.Context
	label     string
	validate  bool
	handle    gpu.Handle
	stages    []Stage
	uniforms  *uniformCache
	destroyed bool
}

var _ Shader = &shaderImpl{}

// NewShader compiles every stage of src and links them into a program.
// On failure every object created along the way is deleted before the error returns.
//
// Parameters:
//   - ctx: the graphics context
//   - src: the parsed stages
//   - options: functional options such as WithLabel
//
// Returns:
//   - Shader: the linked shader
//   - error: *gpu.ShaderCompileError, *gpu.ShaderLinkError or *gpu.ResourceCreationError
func NewShader(ctx *gpu.Context, src *Source, options ...ShaderBuilderOption) (Shader, error) {
	s := &shaderImpl{
		ctx:      ctx,
		label:    src.Name,
		validate: true,
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.build(src); err != nil {
		return nil, err
	}
	s.uniforms = newUniformCache(ctx, s.handle, s.label)
	ctx.Logger().Debug("shader linked", "shader", s.label, "program", s.handle, "stages", len(s.stages))
	return s, nil
}

// NewShaderFromFile loads, parses and links a stage-tagged shader file.
//
// Parameters:
//   - ctx: the graphics context
//   - path: the shader file path
//   - options: functional options such as WithLabel
//
// Returns:
//   - Shader: the linked shader
//   - error: a read, parse, compile or link error
func NewShaderFromFile(ctx *gpu.Context, path string, options ...ShaderBuilderOption) (Shader, error) {
	src, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewShader(ctx, src, options...)
}

// NewShaderFromFS loads, parses and links a stage-tagged shader file from fsys.
//
// Parameters:
//   - ctx: the graphics context
//   - fsys: the file system, typically an embed.FS
//   - name: the file name inside fsys
//   - options: functional options such as WithLabel
//
// Returns:
//   - Shader: the linked shader
//   - error: a read, parse, compile or link error
func NewShaderFromFS(ctx *gpu.Context, fsys fs.FS, name string, options ...ShaderBuilderOption) (Shader, error) {
	src, err := LoadFS(fsys, name)
	if err != nil {
		return nil, err
	}
	return NewShader(ctx, src, options...)
}

// NewShaderFromString parses and links stage-tagged shader text.
//
// Parameters:
//   - ctx: the graphics context
//   - name: a label for the text
//   - text: the stage-tagged shader text
//   - options: functional options such as WithLabel
//
// Returns:
//   - Shader: the linked shader
//   - error: a parse, compile or link error
func NewShaderFromString(ctx *gpu.Context, name, text string, options ...ShaderBuilderOption) (Shader, error) {
	src, err := ParseSource(name, text)
	if err != nil {
		return nil, err
	}
	return NewShader(ctx, src, options...)
}

// build compiles and links src into s.handle. Stage objects are always deleted once the
// program is linked or abandoned.
func (s *shaderImpl) build(src *Source) error {
	d := s.ctx.Driver()
	var stageHandles []gpu.Handle
	defer func() {
		for _, h := range stageHandles {
			s.ctx.Call(func() { d.DeleteShader(h) })
		}
	}()

	for _, st := range src.Stages {
		h, err := s.compile(st)
		if err != nil {
			return err
		}
		stageHandles = append(stageHandles, h)
		s.stages = append(s.stages, st.Stage)
	}

	var program gpu.Handle
	err := s.ctx.Check(func() { program = d.CreateProgram() })
	if program == 0 {
		return &gpu.ResourceCreationError{Kind: "shader program", Cause: err}
	}

	var linked bool
	var log string
	s.ctx.Call(func() {
		for _, h := range stageHandles {
			d.AttachShader(program, h)
		}
		d.LinkProgram(program)
		linked, log = d.ProgramLinkStatus(program)
	})
	if !linked {
		s.ctx.Call(func() { d.DeleteProgram(program) })
		return &gpu.ShaderLinkError{Log: log}
	}
	if s.validate {
		s.ctx.Call(func() { d.ValidateProgram(program) })
	}
	s.handle = program
	return nil
}

func (s *shaderImpl) compile(st StageSource) (gpu.Handle, error) {
	d := s.ctx.Driver()
	var h gpu.Handle
	err := s.ctx.Check(func() { h = d.CreateShader(st.Stage.Enum()) })
	if h == 0 {
		return 0, &gpu.ResourceCreationError{Kind: string(st.Stage) + " shader", Size: len(st.Code), Cause: err}
	}

	var compiled bool
	var log string
	s.ctx.Call(func() {
		d.ShaderSource(h, st.Code)
		d.CompileShader(h)
		compiled, log = d.ShaderCompileStatus(h)
	})
	if !compiled {
		s.ctx.Call(func() { d.DeleteShader(h) })
		return 0, &gpu.ShaderCompileError{Stage: string(st.Stage), Log: log}
	}
	return h, nil
}

func (s *shaderImpl) Label() string {
	return s.label
}

func (s *shaderImpl) Handle() gpu.Handle {
	return s.handle
}

func (s *shaderImpl) Stages() []Stage {
	out := make([]Stage, len(s.stages))
	copy(out, s.stages)
	return out
}

func (s *shaderImpl) Destroyed() bool {
	return s.destroyed
}

func (s *shaderImpl) Bind() {
	if s.destroyed {
		panic(fmt.Errorf("bind shader %q: %w", s.label, gpu.ErrResourceDestroyed))
	}
	d := s.ctx.Driver()
	s.ctx.Call(func() { d.UseProgram(s.handle) })
	s.ctx.MarkBound(gpu.CurrentProgram, s.handle)
}

func (s *shaderImpl) Unbind() {
	if !s.IsBound() {
		return
	}
	d := s.ctx.Driver()
	s.ctx.Call(func() { d.UseProgram(0) })
	s.ctx.MarkBound(gpu.CurrentProgram, 0)
}

func (s *shaderImpl) IsBound() bool {
	return !s.destroyed && s.ctx.Bound(gpu.CurrentProgram) == s.handle
}

func (s *shaderImpl) UniformLocation(name string) int32 {
	if s.destroyed {
		panic(fmt.Errorf("uniform %q of shader %q: %w", name, s.label, gpu.ErrResourceDestroyed))
	}
	return s.uniforms.location(name)
}

// uniform resolves name for a setter. It returns notFound with a nil error for names the
// program does not use.
func (s *shaderImpl) uniform(name string) (int32, error) {
	if !s.IsBound() {
		return notFound, fmt.Errorf("set uniform %q of shader %q: %w", name, s.label, gpu.ErrNotBound)
	}
	return s.uniforms.location(name), nil
}

func (s *shaderImpl) SetUniform1i(name string, v int32) error {
	loc, err := s.uniform(name)
	if err != nil || loc == notFound {
		return err
	}
	d := s.ctx.Driver()
	s.ctx.Call(func() { d.Uniform1i(loc, v) })
	return nil
}

func (s *shaderImpl) SetUniform1f(name string, v float32) error {
	loc, err := s.uniform(name)
	if err != nil || loc == notFound {
		return err
	}
	d := s.ctx.Driver()
	s.ctx.Call(func() { d.Uniform1f(loc, v) })
	return nil
}

func (s *shaderImpl) SetUniform4f(name string, v0, v1, v2, v3 float32) error {
	loc, err := s.uniform(name)
	if err != nil || loc == notFound {
		return err
	}
	d := s.ctx.Driver()
	s.ctx.Call(func() { d.Uniform4f(loc, v0, v1, v2, v3) })
	return nil
}

func (s *shaderImpl) SetUniformMat4f(name string, m mgl32.Mat4) error {
	loc, err := s.uniform(name)
	if err != nil || loc == notFound {
		return err
	}
	d := s.ctx.Driver()
	s.ctx.Call(func() { d.UniformMatrix4fv(loc, m) })
	return nil
}

// Destroy deletes the program and drops the uniform cache. Further calls are no-ops.
func (s *shaderImpl) Destroy() {
	if s.destroyed {
		return
	}
	d := s.ctx.Driver()
	s.ctx.Call(func() { d.DeleteProgram(s.handle) })
	s.ctx.Unmark(gpu.CurrentProgram, s.handle)
	s.uniforms = nil
	s.destroyed = true
}
