package gpu

import "fmt"

// Handle is the opaque integer name a driver assigns to an allocated GPU object.
// Zero is never a valid handle.
type Handle uint32

// Enum is a graphics API enumerant. The values below match the OpenGL 3.3 core
// constants so a real driver can pass them straight through.
type Enum uint32

// Buffer targets and usage hints.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893

	StaticDraw  Enum = 0x88E4
	DynamicDraw Enum = 0x88E8
	StreamDraw  Enum = 0x88E0
)

// Component types.
const (
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
)

// Primitive modes.
const (
	Points    Enum = 0x0000
	Lines     Enum = 0x0001
	Triangles Enum = 0x0004
)

// Shader stages.
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	GeometryShader Enum = 0x8DD9
)

// Texture targets, parameters and formats.
const (
	Texture2D Enum = 0x0DE1
	Texture0  Enum = 0x84C0

	TextureMagFilter Enum = 0x2800
	TextureMinFilter Enum = 0x2801
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803

	Nearest     Enum = 0x2600
	Linear      Enum = 0x2601
	Repeat      Enum = 0x2901
	ClampToEdge Enum = 0x812F

	RGBA  Enum = 0x1908
	RGBA8 Enum = 0x8058
)

// Clear masks.
const (
	DepthBufferBit   Enum = 0x00000100
	StencilBufferBit Enum = 0x00000400
	ColorBufferBit   Enum = 0x00004000
)

// Capabilities and blend factors.
const (
	CullFace    Enum = 0x0B44
	DepthTest   Enum = 0x0B71
	Blend       Enum = 0x0BE2
	ScissorTest Enum = 0x0C11

	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
)

// Queryable strings and integers.
const (
	Vendor                 Enum = 0x1F00
	RendererName           Enum = 0x1F01
	Version                Enum = 0x1F02
	ShadingLanguageVersion Enum = 0x8B8C

	MaxCombinedTextureImageUnits Enum = 0x8B4D
)

// Error flags returned by Driver.GetError.
const (
	NoError                     Enum = 0
	InvalidEnum                 Enum = 0x0500
	InvalidValue                Enum = 0x0501
	InvalidOperation            Enum = 0x0502
	StackOverflow               Enum = 0x0503
	StackUnderflow              Enum = 0x0504
	OutOfMemory                 Enum = 0x0505
	InvalidFramebufferOperation Enum = 0x0506
)

var errorNames = map[Enum]string{
	NoError:                     "GL_NO_ERROR",
	InvalidEnum:                 "GL_INVALID_ENUM",
	InvalidValue:                "GL_INVALID_VALUE",
	InvalidOperation:            "GL_INVALID_OPERATION",
	StackOverflow:               "GL_STACK_OVERFLOW",
	StackUnderflow:              "GL_STACK_UNDERFLOW",
	OutOfMemory:                 "GL_OUT_OF_MEMORY",
	InvalidFramebufferOperation: "GL_INVALID_FRAMEBUFFER_OPERATION",
}

// ErrorName returns the symbolic name of a driver error flag, or its hex value when unknown.
//
// Parameters:
//   - code: the error flag
//
// Returns:
//   - string: the symbolic name
func ErrorName(code Enum) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint32(code))
}

// TypeSize returns the size in bytes of a single component of the given type.
// Unknown types report 0.
//
// Parameters:
//   - typ: a component type such as Float or UnsignedInt
//
// Returns:
//   - int: the component size in bytes
func TypeSize(typ Enum) int {
	switch typ {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	}
	return 0
}

// Binding points tracked by Context that are not buffer targets.
const (
	VertexArrayBinding Enum = 0x85B5
	CurrentProgram     Enum = 0x8B8D
)
