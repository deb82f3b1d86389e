package gpufake

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource = `#version 330 core
layout(location = 0) in vec4 position;
uniform mat4 u_MVP;
uniform vec4 u_Color;
void main() { gl_Position = u_MVP * position; }
`

func drainErrors(d *Driver) []gpu.Enum {
	var out []gpu.Enum
	for code := d.GetError(); code != gpu.NoError; code = d.GetError() {
		out = append(out, code)
	}
	return out
}

func TestHandlesAreNeverReused(t *testing.T) {
	d := New()
	a := d.GenBuffer()
	d.DeleteBuffer(a)
	b := d.GenBuffer()

	assert.NotEqual(t, a, b)
	assert.False(t, d.IsLive(a))
	assert.True(t, d.IsLive(b))
	assert.Equal(t, 1, d.LiveObjects())
}

func TestBindDeletedBufferIsInvalidOperation(t *testing.T) {
	d := New()
	h := d.GenBuffer()
	d.DeleteBuffer(h)

	d.BindBuffer(gpu.ArrayBuffer, h)

	assert.Equal(t, []gpu.Enum{gpu.InvalidOperation}, drainErrors(d))
}

func TestBufferRoundTrip(t *testing.T) {
	d := New()
	h := d.GenBuffer()
	d.BindBuffer(gpu.ArrayBuffer, h)
	d.BufferData(gpu.ArrayBuffer, []byte{1, 2, 3, 4}, gpu.StaticDraw)
	d.BufferSubData(gpu.ArrayBuffer, 2, []byte{9, 9})

	out := make([]byte, 4)
	d.GetBufferSubData(gpu.ArrayBuffer, 0, out)

	assert.Equal(t, []byte{1, 2, 9, 9}, out)
	assert.Empty(t, drainErrors(d))

	d.BufferSubData(gpu.ArrayBuffer, 3, []byte{1, 1})
	assert.Equal(t, []gpu.Enum{gpu.InvalidValue}, drainErrors(d))
}

func TestAllocationFailure(t *testing.T) {
	d := New()
	d.FailNextAllocations(1)

	assert.Zero(t, d.GenTexture())
	assert.Equal(t, []gpu.Enum{gpu.OutOfMemory}, drainErrors(d))
	assert.NotZero(t, d.GenTexture())
}

func TestLinkAssignsUniformLocations(t *testing.T) {
	d := New()
	vs := d.CreateShader(gpu.VertexShader)
	d.ShaderSource(vs, testSource)
	d.CompileShader(vs)
	fs := d.CreateShader(gpu.FragmentShader)
	d.ShaderSource(fs, "uniform sampler2D u_Texture;\nvoid main() {}\n")
	d.CompileShader(fs)
	p := d.CreateProgram()
	d.AttachShader(p, vs)
	d.AttachShader(p, fs)
	d.LinkProgram(p)

	ok, log := d.ProgramLinkStatus(p)
	require.True(t, ok, log)
	assert.Equal(t, int32(0), d.GetUniformLocation(p, "u_MVP"))
	assert.Equal(t, int32(2), d.GetUniformLocation(p, "u_Texture"))
	assert.Equal(t, int32(-1), d.GetUniformLocation(p, "u_Missing"))
	assert.Equal(t, 1, d.UniformQueries("u_MVP"))

	d.UseProgram(p)
	d.Uniform4f(1, 1, 0, 0, 1)
	d.Uniform1i(-1, 3)
	v, ok := d.UniformValue(p, "u_Color")
	require.True(t, ok)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, v)
	assert.Empty(t, drainErrors(d))
}

func TestCompileFailureCarriesLog(t *testing.T) {
	d := New()
	s := d.CreateShader(gpu.FragmentShader)
	d.ShaderSource(s, "void main() {}\n#error broken stage\n")
	d.CompileShader(s)

	ok, log := d.ShaderCompileStatus(s)
	assert.False(t, ok)
	assert.Equal(t, "0:2(1): error: broken stage", log)
}

func TestDrawElementsRequiresState(t *testing.T) {
	d := New()
	d.DrawElements(gpu.Triangles, 6, gpu.UnsignedInt, 0)
	assert.Equal(t, []gpu.Enum{gpu.InvalidOperation}, drainErrors(d))
	assert.Empty(t, d.Draws())
}

func TestElementBufferIsVertexArrayState(t *testing.T) {
	d := New()
	vao := d.GenVertexArray()
	ib := d.GenBuffer()
	d.BindVertexArray(vao)
	d.BindBuffer(gpu.ElementArrayBuffer, ib)
	d.BindVertexArray(0)

	assert.Zero(t, d.CurrentBuffer(gpu.ElementArrayBuffer))
	d.BindVertexArray(vao)
	assert.Equal(t, ib, d.CurrentBuffer(gpu.ElementArrayBuffer))
}

func TestActiveTextureBounds(t *testing.T) {
	d := New(WithMaxTextureUnits(2))
	d.ActiveTexture(gpu.Texture0 + 2)
	assert.Equal(t, []gpu.Enum{gpu.InvalidEnum}, drainErrors(d))
}
