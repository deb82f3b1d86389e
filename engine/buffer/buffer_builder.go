package buffer

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// BufferBuilderOption is a functional option for configuring a Buffer or IndexBuffer.
type BufferBuilderOption func(*bufferImpl)

// WithUsage sets the usage hint passed with every upload. The default is gpu.StaticDraw.
//
// Parameters:
//   - usage: gpu.StaticDraw, gpu.DynamicDraw or gpu.StreamDraw
//
// Returns:
//   - BufferBuilderOption: option function to apply
func WithUsage(usage gpu.Enum) BufferBuilderOption {
	return func(b *bufferImpl) {
		b.usage = usage
	}
}
