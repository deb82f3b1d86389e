// Package gldriver implements gpu.Driver on top of the OpenGL 3.3 core profile bindings.
package gldriver

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Driver forwards every call to the OpenGL context current on the calling thread.
type Driver struct{}

var _ gpu.Driver = Driver{}

// New loads the OpenGL function pointers for the current context and returns a driver.
// It must be called after the window has made its context current.
//
// Returns:
//   - Driver: the OpenGL driver
//   - error: an error if the function pointers could not be loaded
func New() (Driver, error) {
	if err := gl.Init(); err != nil {
		return Driver{}, err
	}
	return Driver{}, nil
}

func (Driver) GetError() gpu.Enum {
	return gpu.Enum(gl.GetError())
}

func (Driver) GetString(name gpu.Enum) string {
	s := gl.GetString(uint32(name))
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (Driver) GetInteger(name gpu.Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(name), &v)
	return v
}

func (Driver) GenBuffer() gpu.Handle {
	var h uint32
	gl.GenBuffers(1, &h)
	return gpu.Handle(h)
}

func (Driver) DeleteBuffer(h gpu.Handle) {
	v := uint32(h)
	gl.DeleteBuffers(1, &v)
}

func (Driver) BindBuffer(target gpu.Enum, h gpu.Handle) {
	gl.BindBuffer(uint32(target), uint32(h))
}

func (Driver) BufferData(target gpu.Enum, data []byte, usage gpu.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

func (Driver) BufferSubData(target gpu.Enum, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(data), gl.Ptr(data))
}

func (Driver) GetBufferSubData(target gpu.Enum, offset int, out []byte) {
	if len(out) == 0 {
		return
	}
	gl.GetBufferSubData(uint32(target), offset, len(out), gl.Ptr(out))
}

func (Driver) GenVertexArray() gpu.Handle {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return gpu.Handle(h)
}

func (Driver) DeleteVertexArray(h gpu.Handle) {
	v := uint32(h)
	gl.DeleteVertexArrays(1, &v)
}

func (Driver) BindVertexArray(h gpu.Handle) {
	gl.BindVertexArray(uint32(h))
}

func (Driver) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (Driver) VertexAttribPointer(slot uint32, count int32, typ gpu.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(slot, count, uint32(typ), normalized, stride, uintptr(offset))
}

func (Driver) GenTexture() gpu.Handle {
	var h uint32
	gl.GenTextures(1, &h)
	return gpu.Handle(h)
}

func (Driver) DeleteTexture(h gpu.Handle) {
	v := uint32(h)
	gl.DeleteTextures(1, &v)
}

func (Driver) ActiveTexture(unit gpu.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (Driver) BindTexture(target gpu.Enum, h gpu.Handle) {
	gl.BindTexture(uint32(target), uint32(h))
}

func (Driver) TexParameteri(target, name gpu.Enum, value int32) {
	gl.TexParameteri(uint32(target), uint32(name), value)
}

// TexImage2D uploads tightly packed RGBA8 pixels. A nil slice allocates storage only.
func (Driver) TexImage2D(target gpu.Enum, width, height int32, pixels []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if len(pixels) == 0 {
		gl.TexImage2D(uint32(target), 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		return
	}
	gl.TexImage2D(uint32(target), 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (Driver) CreateShader(stage gpu.Enum) gpu.Handle {
	return gpu.Handle(gl.CreateShader(uint32(stage)))
}

func (Driver) ShaderSource(h gpu.Handle, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(h), 1, csources, nil)
	free()
}

func (Driver) CompileShader(h gpu.Handle) {
	gl.CompileShader(uint32(h))
}

func (Driver) ShaderCompileStatus(h gpu.Handle) (bool, string) {
	var status int32
	gl.GetShaderiv(uint32(h), gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(uint32(h), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(h), logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00\n")
}

func (Driver) DeleteShader(h gpu.Handle) {
	gl.DeleteShader(uint32(h))
}

func (Driver) CreateProgram() gpu.Handle {
	return gpu.Handle(gl.CreateProgram())
}

func (Driver) AttachShader(program, shader gpu.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (Driver) LinkProgram(program gpu.Handle) {
	gl.LinkProgram(uint32(program))
}

func (Driver) ValidateProgram(program gpu.Handle) {
	gl.ValidateProgram(uint32(program))
}

func (Driver) ProgramLinkStatus(program gpu.Handle) (bool, string) {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00\n")
}

func (Driver) DeleteProgram(program gpu.Handle) {
	gl.DeleteProgram(uint32(program))
}

func (Driver) UseProgram(program gpu.Handle) {
	gl.UseProgram(uint32(program))
}

func (Driver) GetUniformLocation(program gpu.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (Driver) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (Driver) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

// UniformMatrix4fv uploads m untransposed; mgl32 matrices are already column major.
func (Driver) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (Driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (Driver) Clear(mask gpu.Enum) {
	gl.Clear(uint32(mask))
}

func (Driver) Enable(capability gpu.Enum) {
	gl.Enable(uint32(capability))
}

func (Driver) Disable(capability gpu.Enum) {
	gl.Disable(uint32(capability))
}

func (Driver) BlendFunc(src, dst gpu.Enum) {
	gl.BlendFunc(uint32(src), uint32(dst))
}

func (Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (Driver) Scissor(x, y, width, height int32) {
	gl.Scissor(x, y, width, height)
}

func (Driver) DrawElements(mode gpu.Enum, count int32, typ gpu.Enum, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), uintptr(offset))
}
