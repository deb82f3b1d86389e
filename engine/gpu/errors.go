package gpu

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceDestroyed is the panic value wrapped when a destroyed resource is used.
	ErrResourceDestroyed = errors.New("gpu: resource already destroyed")

	// ErrNotBound is returned by operations that require their resource to be the active binding.
	ErrNotBound = errors.New("gpu: resource is not bound")

	// ErrOutOfRange is returned when a write or read falls outside a buffer's data store.
	ErrOutOfRange = errors.New("gpu: range outside of buffer")

	// ErrEmptyLayout is returned when an empty vertex layout is attached to a vertex array.
	ErrEmptyLayout = errors.New("gpu: vertex layout has no attributes")
)

// ResourceCreationError reports a failed native allocation.
type ResourceCreationError struct {
	// Kind names the resource, e.g. "vertex buffer" or "texture".
	Kind string
	// Size is the requested payload size in bytes, 0 when not applicable.
	Size int
	// Cause is the underlying driver error, if one was reported.
	Cause error
}

func (e *ResourceCreationError) Error() string {
	msg := fmt.Sprintf("gpu: failed to create %s (%d bytes)", e.Kind, e.Size)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ResourceCreationError) Unwrap() error {
	return e.Cause
}

// ShaderCompileError carries the compiler diagnostic of a failed stage.
type ShaderCompileError struct {
	Stage string
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("gpu: failed to compile %s shader: %s", e.Stage, e.Log)
}

// ShaderLinkError carries the linker diagnostic of a failed program link.
type ShaderLinkError struct {
	Log string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("gpu: failed to link shader program: %s", e.Log)
}

// InvalidTextureSlotError reports a texture unit outside [0, Max).
type InvalidTextureSlotError struct {
	Slot int
	Max  int
}

func (e *InvalidTextureSlotError) Error() string {
	return fmt.Sprintf("gpu: texture slot %d outside of [0, %d)", e.Slot, e.Max)
}

// DriverError is one error flag raised by the driver, tagged with the call site
// that triggered it.
type DriverError struct {
	Code Enum
	// Func is the abbreviated name of the calling function.
	Func string
	// File is the base name of the calling source file.
	File string
	Line int
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("[OpenGL Error] (0x%04X %s) %s %s:%d", uint32(e.Code), ErrorName(e.Code), e.Func, e.File, e.Line)
}
