package gpu

import "github.com/go-gl/mathgl/mgl32"

// Driver is the narrow slice of the graphics API the sandbox relies on.
// Every method maps to one native call. Implementations are not safe for concurrent
// use and must only be called from the goroutine that owns the graphics context.
//
// Drivers never report failures through return values; failures raise an error flag
// that is read back with GetError, exactly like the native API. Allocation methods
// return a zero Handle when the driver could not create the object.
type Driver interface {
	// GetError returns and clears one pending error flag, or NoError when none is set.
	GetError() Enum
	// GetString returns a driver description string such as Version or RendererName.
	GetString(name Enum) string
	// GetInteger returns a single integer driver limit such as MaxCombinedTextureImageUnits.
	GetInteger(name Enum) int32

	GenBuffer() Handle
	DeleteBuffer(h Handle)
	BindBuffer(target Enum, h Handle)
	BufferData(target Enum, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	GetBufferSubData(target Enum, offset int, out []byte)

	GenVertexArray() Handle
	DeleteVertexArray(h Handle)
	BindVertexArray(h Handle)
	EnableVertexAttribArray(slot uint32)
	VertexAttribPointer(slot uint32, count int32, typ Enum, normalized bool, stride int32, offset int)

	GenTexture() Handle
	DeleteTexture(h Handle)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, h Handle)
	TexParameteri(target, name Enum, value int32)
	TexImage2D(target Enum, width, height int32, pixels []byte)

	CreateShader(stage Enum) Handle
	ShaderSource(h Handle, source string)
	CompileShader(h Handle)
	// ShaderCompileStatus reports whether the last compile succeeded along with the info log.
	ShaderCompileStatus(h Handle) (bool, string)
	DeleteShader(h Handle)

	CreateProgram() Handle
	AttachShader(program, shader Handle)
	LinkProgram(program Handle)
	ValidateProgram(program Handle)
	// ProgramLinkStatus reports whether the last link succeeded along with the info log.
	ProgramLinkStatus(program Handle) (bool, string)
	DeleteProgram(program Handle)
	UseProgram(program Handle)

	// GetUniformLocation returns -1 when the program has no active uniform with that name.
	GetUniformLocation(program Handle, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, m mgl32.Mat4)

	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	Disable(capability Enum)
	BlendFunc(src, dst Enum)
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)

	// DrawElements draws count indices of type typ starting at byte offset in the bound element buffer.
	DrawElements(mode Enum, count int32, typ Enum, offset int)
}
