package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// ElementKind is the semantic type of the components of one vertex attribute.
type ElementKind int

const (
	// Float components are 32-bit floats passed through unnormalized.
	Float ElementKind = iota
	// Uint components are 32-bit unsigned integers passed through unnormalized. They go through
	// the float attribute path, so the shader reads them as float values, not as uint inputs.
	Uint
	// Bool components are single bytes normalized to [0, 1].
	Bool
)

func (k ElementKind) String() string {
	switch k {
	case Float:
		return "float"
	case Uint:
		return "uint"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("ElementKind(%d)", int(k))
}

func (k ElementKind) glType() (gpu.Enum, bool) {
	switch k {
	case Float:
		return gpu.Float, false
	case Uint:
		return gpu.UnsignedInt, false
	case Bool:
		return gpu.UnsignedByte, true
	}
	panic(fmt.Sprintf("buffer: unknown element kind %d", int(k)))
}

// Attribute describes one vertex attribute inside an interleaved vertex record.
type Attribute struct {
	// Count is the number of components, 1 to 4.
	Count int32
	// Type is the component type passed to the driver.
	Type       gpu.Enum
	Normalized bool
	// Offset is the byte offset of the attribute inside the vertex record.
	Offset int
	// Size is Count times the size of one component.
	Size int
}

// VertexLayout is an append-only description of an interleaved vertex record.
// Offsets accumulate as attributes are pushed; the stride is the sum of all attribute sizes.
// Once the layout has been attached to a VertexArray it is frozen and further pushes panic.
//
//	layout := buffer.NewVertexLayout().PushFloat(2).PushFloat(2)
type VertexLayout struct {
	attributes []Attribute
	stride     int
	frozen     bool
}

// NewVertexLayout returns an empty layout.
func NewVertexLayout() *VertexLayout {
	return &VertexLayout{}
}

// Push appends an attribute of count components of the given kind.
//
// Parameters:
//   - kind: the component kind
//   - count: the number of components, 1 to 4
//
// Returns:
//   - *VertexLayout: the layout, for chaining
func (l *VertexLayout) Push(kind ElementKind, count int32) *VertexLayout {
	if l.frozen {
		panic("buffer: push on a vertex layout that is already attached to a vertex array")
	}
	if count < 1 || count > 4 {
		panic(fmt.Sprintf("buffer: vertex attribute component count %d outside of [1, 4]", count))
	}
	typ, normalized := kind.glType()
	size := int(count) * gpu.TypeSize(typ)
	l.attributes = append(l.attributes, Attribute{
		Count:      count,
		Type:       typ,
		Normalized: normalized,
		Offset:     l.stride,
		Size:       size,
	})
	l.stride += size
	return l
}

// PushFloat appends count float components.
func (l *VertexLayout) PushFloat(count int32) *VertexLayout {
	return l.Push(Float, count)
}

// PushUint appends count unsigned integer components.
func (l *VertexLayout) PushUint(count int32) *VertexLayout {
	return l.Push(Uint, count)
}

// PushBool appends count normalized byte components.
func (l *VertexLayout) PushBool(count int32) *VertexLayout {
	return l.Push(Bool, count)
}

// Attributes returns a copy of the attribute sequence.
func (l *VertexLayout) Attributes() []Attribute {
	out := make([]Attribute, len(l.attributes))
	copy(out, l.attributes)
	return out
}

// Len returns the number of attributes.
func (l *VertexLayout) Len() int {
	return len(l.attributes)
}

// Stride returns the byte size of one vertex record.
func (l *VertexLayout) Stride() int {
	return l.stride
}

// Frozen reports whether the layout has been attached to a vertex array.
func (l *VertexLayout) Frozen() bool {
	return l.frozen
}
