// Package gpufake provides an in-memory gpu.Driver that mimics the OpenGL 3.3 core object
// model closely enough to exercise the wrappers without a display: handles are allocated
// from a counter and never reused, binds are validated, error flags queue up like the real
// driver's, and draw submissions are recorded for inspection.
package gpufake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

const maxVertexAttribs = 16

// uniformDecl matches "uniform <type> <name>;" and array declarations.
var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

type objectKind int

const (
	kindBuffer objectKind = iota + 1
	kindVertexArray
	kindTexture
	kindShader
	kindProgram
)

// Attrib is the recorded state of one vertex attribute slot.
type Attrib struct {
	Enabled    bool
	Count      int32
	Type       gpu.Enum
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     gpu.Handle
}

// DrawCall is one recorded DrawElements submission.
type DrawCall struct {
	Mode          gpu.Enum
	Count         int32
	Type          gpu.Enum
	Offset        int
	VertexArray   gpu.Handle
	ElementBuffer gpu.Handle
	Program       gpu.Handle
}

type bufferObject struct {
	data  []byte
	usage gpu.Enum
}

type vertexArrayObject struct {
	attribs       map[uint32]*Attrib
	elementBuffer gpu.Handle
}

type textureObject struct {
	width, height int32
	pixels        []byte
	params        map[gpu.Enum]int32
}

type shaderObject struct {
	stage    gpu.Enum
	source   string
	compiled bool
	log      string
}

type programObject struct {
	shaders  []gpu.Handle
	linked   bool
	log      string
	uniforms map[string]int32
	values   map[int32]any
}

// Driver is the in-memory driver. The zero value is not usable; call New.
type Driver struct {
	next    gpu.Handle
	kinds   map[gpu.Handle]objectKind
	deleted map[gpu.Handle]bool

	buffers   map[gpu.Handle]*bufferObject
	vaos      map[gpu.Handle]*vertexArrayObject
	textures  map[gpu.Handle]*textureObject
	shaders   map[gpu.Handle]*shaderObject
	programs  map[gpu.Handle]*programObject
	errorFlag []gpu.Enum

	arrayBuffer   gpu.Handle
	elementBuffer gpu.Handle
	vao           gpu.Handle
	program       gpu.Handle
	activeUnit    int
	units         map[int]gpu.Handle

	clearColor [4]float32
	clears     []gpu.Enum
	enabled    map[gpu.Enum]bool
	blend      [2]gpu.Enum
	viewport   [4]int32
	scissor    [4]int32
	draws      []DrawCall

	uniformQueries map[string]int
	calls          []string

	maxUnits        int32
	failAllocations int
	failBufferData  bool
}

var _ gpu.Driver = &Driver{}

// New creates an empty fake driver.
//
// Parameters:
//   - options: functional options for driver limits
//
// Returns:
//   - *Driver: the fake driver
func New(options ...DriverOption) *Driver {
	d := &Driver{
		kinds:          make(map[gpu.Handle]objectKind),
		deleted:        make(map[gpu.Handle]bool),
		buffers:        make(map[gpu.Handle]*bufferObject),
		vaos:           make(map[gpu.Handle]*vertexArrayObject),
		textures:       make(map[gpu.Handle]*textureObject),
		shaders:        make(map[gpu.Handle]*shaderObject),
		programs:       make(map[gpu.Handle]*programObject),
		units:          make(map[int]gpu.Handle),
		enabled:        make(map[gpu.Enum]bool),
		uniformQueries: make(map[string]int),
		maxUnits:       16,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// DriverOption configures a fake Driver.
type DriverOption func(*Driver)

// WithMaxTextureUnits sets the reported MaxCombinedTextureImageUnits limit.
func WithMaxTextureUnits(n int32) DriverOption {
	return func(d *Driver) {
		d.maxUnits = n
	}
}

// FailNextAllocations makes the next n Gen*/Create* calls return a zero handle and raise
// GL_OUT_OF_MEMORY.
func (d *Driver) FailNextAllocations(n int) {
	d.failAllocations = n
}

// FailNextBufferData makes the next BufferData raise GL_OUT_OF_MEMORY without storing data.
func (d *Driver) FailNextBufferData() {
	d.failBufferData = true
}

// RaiseError queues an error flag as if the last call had failed.
func (d *Driver) RaiseError(code gpu.Enum) {
	d.errorFlag = append(d.errorFlag, code)
}

// Calls returns the names of every driver method invoked so far, in order.
func (d *Driver) Calls() []string {
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

// CallCount returns how many times the named driver method was invoked.
func (d *Driver) CallCount(name string) int {
	n := 0
	for _, c := range d.calls {
		if c == name {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log and recorded draws and clears.
func (d *Driver) ResetCalls() {
	d.calls = d.calls[:0]
	d.draws = d.draws[:0]
	d.clears = d.clears[:0]
}

// Draws returns every recorded DrawElements submission.
func (d *Driver) Draws() []DrawCall {
	out := make([]DrawCall, len(d.draws))
	copy(out, d.draws)
	return out
}

// Clears returns the mask of every Clear call.
func (d *Driver) Clears() []gpu.Enum {
	out := make([]gpu.Enum, len(d.clears))
	copy(out, d.clears)
	return out
}

// ClearColorValue returns the last color passed to ClearColor.
func (d *Driver) ClearColorValue() [4]float32 {
	return d.clearColor
}

// IsEnabled reports whether a capability was left enabled.
func (d *Driver) IsEnabled(capability gpu.Enum) bool {
	return d.enabled[capability]
}

// BlendFactors returns the last factors passed to BlendFunc.
func (d *Driver) BlendFactors() (src, dst gpu.Enum) {
	return d.blend[0], d.blend[1]
}

// ViewportBox returns the last rectangle passed to Viewport.
func (d *Driver) ViewportBox() [4]int32 {
	return d.viewport
}

// ScissorBox returns the last rectangle passed to Scissor.
func (d *Driver) ScissorBox() [4]int32 {
	return d.scissor
}

// UniformQueries returns how many times GetUniformLocation was called for name.
func (d *Driver) UniformQueries(name string) int {
	return d.uniformQueries[name]
}

// UniformValue returns the last value stored to a uniform of a program.
func (d *Driver) UniformValue(program gpu.Handle, name string) (any, bool) {
	p, ok := d.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// BufferContents returns a copy of a buffer's data store.
func (d *Driver) BufferContents(h gpu.Handle) ([]byte, bool) {
	b, ok := d.buffers[h]
	if !ok || d.deleted[h] {
		return nil, false
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, true
}

// Attribs returns the attribute slots recorded on a vertex array.
func (d *Driver) Attribs(vao gpu.Handle) map[uint32]Attrib {
	v, ok := d.vaos[vao]
	if !ok {
		return nil
	}
	out := make(map[uint32]Attrib, len(v.attribs))
	for slot, a := range v.attribs {
		out[slot] = *a
	}
	return out
}

// TextureSize returns the dimensions uploaded to a texture.
func (d *Driver) TextureSize(h gpu.Handle) (width, height int32, ok bool) {
	t, ok := d.textures[h]
	if !ok {
		return 0, 0, false
	}
	return t.width, t.height, true
}

// TexturePixels returns a copy of the pixels uploaded to a texture.
func (d *Driver) TexturePixels(h gpu.Handle) []byte {
	t, ok := d.textures[h]
	if !ok {
		return nil
	}
	return append([]byte(nil), t.pixels...)
}

// TextureParam returns a texture parameter previously set with TexParameteri.
func (d *Driver) TextureParam(h gpu.Handle, name gpu.Enum) (int32, bool) {
	t, ok := d.textures[h]
	if !ok {
		return 0, false
	}
	v, ok := t.params[name]
	return v, ok
}

// TextureOnUnit returns the texture bound on a texture unit.
func (d *Driver) TextureOnUnit(unit int) gpu.Handle {
	return d.units[unit]
}

// CurrentProgram returns the program installed by UseProgram.
func (d *Driver) CurrentProgram() gpu.Handle {
	return d.program
}

// CurrentVertexArray returns the bound vertex array.
func (d *Driver) CurrentVertexArray() gpu.Handle {
	return d.vao
}

// CurrentBuffer returns the buffer bound to a target.
func (d *Driver) CurrentBuffer(target gpu.Enum) gpu.Handle {
	switch target {
	case gpu.ArrayBuffer:
		return d.arrayBuffer
	case gpu.ElementArrayBuffer:
		return d.currentElementBuffer()
	}
	return 0
}

// IsLive reports whether h names an object that was created and not yet deleted.
func (d *Driver) IsLive(h gpu.Handle) bool {
	_, ok := d.kinds[h]
	return ok && !d.deleted[h]
}

// LiveObjects returns the number of objects created and not yet deleted.
func (d *Driver) LiveObjects() int {
	n := 0
	for h := range d.kinds {
		if !d.deleted[h] {
			n++
		}
	}
	return n
}

func (d *Driver) record(name string) {
	d.calls = append(d.calls, name)
}

func (d *Driver) raise(code gpu.Enum) {
	d.errorFlag = append(d.errorFlag, code)
}

func (d *Driver) alloc(kind objectKind) gpu.Handle {
	if d.failAllocations > 0 {
		d.failAllocations--
		d.raise(gpu.OutOfMemory)
		return 0
	}
	d.next++
	d.kinds[d.next] = kind
	return d.next
}

func (d *Driver) live(h gpu.Handle, kind objectKind) bool {
	k, ok := d.kinds[h]
	return ok && k == kind && !d.deleted[h]
}

func (d *Driver) currentElementBuffer() gpu.Handle {
	if d.vao != 0 {
		if v, ok := d.vaos[d.vao]; ok {
			return v.elementBuffer
		}
	}
	return d.elementBuffer
}

func (d *Driver) boundBuffer(target gpu.Enum) (*bufferObject, bool) {
	h := d.CurrentBuffer(target)
	if h == 0 {
		return nil, false
	}
	b, ok := d.buffers[h]
	return b, ok
}

func (d *Driver) GetError() gpu.Enum {
	if len(d.errorFlag) == 0 {
		return gpu.NoError
	}
	code := d.errorFlag[0]
	d.errorFlag = d.errorFlag[1:]
	return code
}

func (d *Driver) GetString(name gpu.Enum) string {
	d.record("GetString")
	switch name {
	case gpu.Vendor:
		return "oxy-gl"
	case gpu.RendererName:
		return "gpufake"
	case gpu.Version:
		return "3.3.0 gpufake"
	case gpu.ShadingLanguageVersion:
		return "3.30"
	}
	d.raise(gpu.InvalidEnum)
	return ""
}

func (d *Driver) GetInteger(name gpu.Enum) int32 {
	d.record("GetInteger")
	if name == gpu.MaxCombinedTextureImageUnits {
		return d.maxUnits
	}
	d.raise(gpu.InvalidEnum)
	return 0
}

func (d *Driver) GenBuffer() gpu.Handle {
	d.record("GenBuffer")
	h := d.alloc(kindBuffer)
	if h != 0 {
		d.buffers[h] = &bufferObject{}
	}
	return h
}

func (d *Driver) DeleteBuffer(h gpu.Handle) {
	d.record("DeleteBuffer")
	if !d.live(h, kindBuffer) {
		return
	}
	d.deleted[h] = true
	if d.arrayBuffer == h {
		d.arrayBuffer = 0
	}
	if d.elementBuffer == h {
		d.elementBuffer = 0
	}
	if v, ok := d.vaos[d.vao]; ok && v.elementBuffer == h {
		v.elementBuffer = 0
	}
}

func (d *Driver) BindBuffer(target gpu.Enum, h gpu.Handle) {
	d.record("BindBuffer")
	if target != gpu.ArrayBuffer && target != gpu.ElementArrayBuffer {
		d.raise(gpu.InvalidEnum)
		return
	}
	if h != 0 && !d.live(h, kindBuffer) {
		d.raise(gpu.InvalidOperation)
		return
	}
	if target == gpu.ArrayBuffer {
		d.arrayBuffer = h
		return
	}
	if v, ok := d.vaos[d.vao]; ok && d.vao != 0 {
		v.elementBuffer = h
		return
	}
	d.elementBuffer = h
}

func (d *Driver) BufferData(target gpu.Enum, data []byte, usage gpu.Enum) {
	d.record("BufferData")
	b, ok := d.boundBuffer(target)
	if !ok {
		d.raise(gpu.InvalidOperation)
		return
	}
	if d.failBufferData {
		d.failBufferData = false
		d.raise(gpu.OutOfMemory)
		return
	}
	b.data = append([]byte(nil), data...)
	b.usage = usage
}

func (d *Driver) BufferSubData(target gpu.Enum, offset int, data []byte) {
	d.record("BufferSubData")
	b, ok := d.boundBuffer(target)
	if !ok {
		d.raise(gpu.InvalidOperation)
		return
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		d.raise(gpu.InvalidValue)
		return
	}
	copy(b.data[offset:], data)
}

func (d *Driver) GetBufferSubData(target gpu.Enum, offset int, out []byte) {
	d.record("GetBufferSubData")
	b, ok := d.boundBuffer(target)
	if !ok {
		d.raise(gpu.InvalidOperation)
		return
	}
	if offset < 0 || offset+len(out) > len(b.data) {
		d.raise(gpu.InvalidValue)
		return
	}
	copy(out, b.data[offset:])
}

func (d *Driver) GenVertexArray() gpu.Handle {
	d.record("GenVertexArray")
	h := d.alloc(kindVertexArray)
	if h != 0 {
		d.vaos[h] = &vertexArrayObject{attribs: make(map[uint32]*Attrib)}
	}
	return h
}

func (d *Driver) DeleteVertexArray(h gpu.Handle) {
	d.record("DeleteVertexArray")
	if !d.live(h, kindVertexArray) {
		return
	}
	d.deleted[h] = true
	if d.vao == h {
		d.vao = 0
	}
}

func (d *Driver) BindVertexArray(h gpu.Handle) {
	d.record("BindVertexArray")
	if h != 0 && !d.live(h, kindVertexArray) {
		d.raise(gpu.InvalidOperation)
		return
	}
	d.vao = h
}

func (d *Driver) EnableVertexAttribArray(slot uint32) {
	d.record("EnableVertexAttribArray")
	v, ok := d.vaos[d.vao]
	if d.vao == 0 || !ok {
		d.raise(gpu.InvalidOperation)
		return
	}
	if slot >= maxVertexAttribs {
		d.raise(gpu.InvalidValue)
		return
	}
	a, ok := v.attribs[slot]
	if !ok {
		a = &Attrib{}
		v.attribs[slot] = a
	}
	a.Enabled = true
}

func (d *Driver) VertexAttribPointer(slot uint32, count int32, typ gpu.Enum, normalized bool, stride int32, offset int) {
	d.record("VertexAttribPointer")
	v, ok := d.vaos[d.vao]
	if d.vao == 0 || !ok || d.arrayBuffer == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	if slot >= maxVertexAttribs || count < 1 || count > 4 || stride < 0 {
		d.raise(gpu.InvalidValue)
		return
	}
	if gpu.TypeSize(typ) == 0 {
		d.raise(gpu.InvalidEnum)
		return
	}
	a, ok := v.attribs[slot]
	if !ok {
		a = &Attrib{}
		v.attribs[slot] = a
	}
	a.Count = count
	a.Type = typ
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = d.arrayBuffer
}

func (d *Driver) GenTexture() gpu.Handle {
	d.record("GenTexture")
	h := d.alloc(kindTexture)
	if h != 0 {
		d.textures[h] = &textureObject{params: make(map[gpu.Enum]int32)}
	}
	return h
}

func (d *Driver) DeleteTexture(h gpu.Handle) {
	d.record("DeleteTexture")
	if !d.live(h, kindTexture) {
		return
	}
	d.deleted[h] = true
	for unit, bound := range d.units {
		if bound == h {
			delete(d.units, unit)
		}
	}
}

func (d *Driver) ActiveTexture(unit gpu.Enum) {
	d.record("ActiveTexture")
	idx := int(unit) - int(gpu.Texture0)
	if idx < 0 || idx >= int(d.maxUnits) {
		d.raise(gpu.InvalidEnum)
		return
	}
	d.activeUnit = idx
}

func (d *Driver) BindTexture(target gpu.Enum, h gpu.Handle) {
	d.record("BindTexture")
	if target != gpu.Texture2D {
		d.raise(gpu.InvalidEnum)
		return
	}
	if h != 0 && !d.live(h, kindTexture) {
		d.raise(gpu.InvalidOperation)
		return
	}
	if h == 0 {
		delete(d.units, d.activeUnit)
		return
	}
	d.units[d.activeUnit] = h
}

func (d *Driver) boundTexture() (*textureObject, bool) {
	h, ok := d.units[d.activeUnit]
	if !ok {
		return nil, false
	}
	t, ok := d.textures[h]
	return t, ok
}

func (d *Driver) TexParameteri(target, name gpu.Enum, value int32) {
	d.record("TexParameteri")
	t, ok := d.boundTexture()
	if target != gpu.Texture2D {
		d.raise(gpu.InvalidEnum)
		return
	}
	if !ok {
		d.raise(gpu.InvalidOperation)
		return
	}
	t.params[name] = value
}

func (d *Driver) TexImage2D(target gpu.Enum, width, height int32, pixels []byte) {
	d.record("TexImage2D")
	if target != gpu.Texture2D {
		d.raise(gpu.InvalidEnum)
		return
	}
	t, ok := d.boundTexture()
	if !ok {
		d.raise(gpu.InvalidOperation)
		return
	}
	if width <= 0 || height <= 0 || (pixels != nil && len(pixels) != int(width*height*4)) {
		d.raise(gpu.InvalidValue)
		return
	}
	t.width = width
	t.height = height
	t.pixels = append([]byte(nil), pixels...)
}

func (d *Driver) CreateShader(stage gpu.Enum) gpu.Handle {
	d.record("CreateShader")
	switch stage {
	case gpu.VertexShader, gpu.FragmentShader, gpu.GeometryShader:
	default:
		d.raise(gpu.InvalidEnum)
		return 0
	}
	h := d.alloc(kindShader)
	if h != 0 {
		d.shaders[h] = &shaderObject{stage: stage}
	}
	return h
}

func (d *Driver) ShaderSource(h gpu.Handle, source string) {
	d.record("ShaderSource")
	s, ok := d.shaders[h]
	if !ok || d.deleted[h] {
		d.raise(gpu.InvalidValue)
		return
	}
	s.source = source
}

// CompileShader fails stages that contain an #error directive or have no main function.
func (d *Driver) CompileShader(h gpu.Handle) {
	d.record("CompileShader")
	s, ok := d.shaders[h]
	if !ok || d.deleted[h] {
		d.raise(gpu.InvalidValue)
		return
	}
	s.compiled = false
	s.log = ""
	for i, line := range strings.Split(s.source, "\n") {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "#error") {
			s.log = fmt.Sprintf("0:%d(1): error: %s", i+1, strings.TrimSpace(strings.TrimPrefix(trimmed, "#error")))
			return
		}
	}
	if !strings.Contains(s.source, "main(") {
		s.log = "0:1(1): error: no function with name 'main'"
		return
	}
	s.compiled = true
}

func (d *Driver) ShaderCompileStatus(h gpu.Handle) (bool, string) {
	d.record("ShaderCompileStatus")
	s, ok := d.shaders[h]
	if !ok {
		d.raise(gpu.InvalidValue)
		return false, ""
	}
	return s.compiled, s.log
}

func (d *Driver) DeleteShader(h gpu.Handle) {
	d.record("DeleteShader")
	if !d.live(h, kindShader) {
		return
	}
	d.deleted[h] = true
}

func (d *Driver) CreateProgram() gpu.Handle {
	d.record("CreateProgram")
	h := d.alloc(kindProgram)
	if h != 0 {
		d.programs[h] = &programObject{
			uniforms: make(map[string]int32),
			values:   make(map[int32]any),
		}
	}
	return h
}

func (d *Driver) AttachShader(program, shader gpu.Handle) {
	d.record("AttachShader")
	p, ok := d.programs[program]
	if !ok || d.deleted[program] || !d.live(shader, kindShader) {
		d.raise(gpu.InvalidValue)
		return
	}
	p.shaders = append(p.shaders, shader)
}

// LinkProgram requires one compiled vertex and one compiled fragment stage. Uniform
// locations are assigned in declaration order across the attached stages.
func (d *Driver) LinkProgram(program gpu.Handle) {
	d.record("LinkProgram")
	p, ok := d.programs[program]
	if !ok || d.deleted[program] {
		d.raise(gpu.InvalidValue)
		return
	}
	p.linked = false
	p.uniforms = make(map[string]int32)
	p.values = make(map[int32]any)
	var hasVertex, hasFragment bool
	for _, sh := range p.shaders {
		s := d.shaders[sh]
		if !s.compiled {
			p.log = "error: linking with uncompiled shader"
			return
		}
		switch s.stage {
		case gpu.VertexShader:
			hasVertex = true
		case gpu.FragmentShader:
			hasFragment = true
		}
	}
	if !hasVertex || !hasFragment {
		p.log = "error: program requires a vertex and a fragment shader"
		return
	}
	var next int32
	for _, sh := range p.shaders {
		for _, m := range uniformDecl.FindAllStringSubmatch(d.shaders[sh].source, -1) {
			if _, seen := p.uniforms[m[1]]; seen {
				continue
			}
			p.uniforms[m[1]] = next
			next++
		}
	}
	p.linked = true
	p.log = ""
}

func (d *Driver) ValidateProgram(program gpu.Handle) {
	d.record("ValidateProgram")
	if _, ok := d.programs[program]; !ok || d.deleted[program] {
		d.raise(gpu.InvalidValue)
	}
}

func (d *Driver) ProgramLinkStatus(program gpu.Handle) (bool, string) {
	d.record("ProgramLinkStatus")
	p, ok := d.programs[program]
	if !ok {
		d.raise(gpu.InvalidValue)
		return false, ""
	}
	return p.linked, p.log
}

func (d *Driver) DeleteProgram(program gpu.Handle) {
	d.record("DeleteProgram")
	if !d.live(program, kindProgram) {
		return
	}
	d.deleted[program] = true
	if d.program == program {
		d.program = 0
	}
}

func (d *Driver) UseProgram(program gpu.Handle) {
	d.record("UseProgram")
	if program == 0 {
		d.program = 0
		return
	}
	p, ok := d.programs[program]
	if !ok || d.deleted[program] || !p.linked {
		d.raise(gpu.InvalidOperation)
		return
	}
	d.program = program
}

func (d *Driver) GetUniformLocation(program gpu.Handle, name string) int32 {
	d.record("GetUniformLocation")
	d.uniformQueries[name]++
	p, ok := d.programs[program]
	if !ok || d.deleted[program] || !p.linked {
		d.raise(gpu.InvalidOperation)
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) setUniform(location int32, v any) {
	if location == -1 {
		return
	}
	p, ok := d.programs[d.program]
	if d.program == 0 || !ok {
		d.raise(gpu.InvalidOperation)
		return
	}
	for _, loc := range p.uniforms {
		if loc == location {
			p.values[location] = v
			return
		}
	}
	d.raise(gpu.InvalidOperation)
}

func (d *Driver) Uniform1i(location int32, v int32) {
	d.record("Uniform1i")
	d.setUniform(location, v)
}

func (d *Driver) Uniform1f(location int32, v float32) {
	d.record("Uniform1f")
	d.setUniform(location, v)
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.record("Uniform4f")
	d.setUniform(location, [4]float32{v0, v1, v2, v3})
}

func (d *Driver) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	d.record("UniformMatrix4fv")
	d.setUniform(location, m)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Driver) Clear(mask gpu.Enum) {
	d.record("Clear")
	if mask&^(gpu.ColorBufferBit|gpu.DepthBufferBit|gpu.StencilBufferBit) != 0 {
		d.raise(gpu.InvalidValue)
		return
	}
	d.clears = append(d.clears, mask)
}

func (d *Driver) Enable(capability gpu.Enum) {
	d.record("Enable")
	d.enabled[capability] = true
}

func (d *Driver) Disable(capability gpu.Enum) {
	d.record("Disable")
	d.enabled[capability] = false
}

func (d *Driver) BlendFunc(src, dst gpu.Enum) {
	d.record("BlendFunc")
	d.blend = [2]gpu.Enum{src, dst}
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("Viewport")
	if width < 0 || height < 0 {
		d.raise(gpu.InvalidValue)
		return
	}
	d.viewport = [4]int32{x, y, width, height}
}

func (d *Driver) Scissor(x, y, width, height int32) {
	d.record("Scissor")
	if width < 0 || height < 0 {
		d.raise(gpu.InvalidValue)
		return
	}
	d.scissor = [4]int32{x, y, width, height}
}

// DrawElements validates the bound vertex array, program and element buffer and records the
// submission. Index ranges outside the element buffer raise GL_INVALID_OPERATION.
func (d *Driver) DrawElements(mode gpu.Enum, count int32, typ gpu.Enum, offset int) {
	d.record("DrawElements")
	if count < 0 {
		d.raise(gpu.InvalidValue)
		return
	}
	if typ != gpu.UnsignedByte && typ != gpu.UnsignedShort && typ != gpu.UnsignedInt {
		d.raise(gpu.InvalidEnum)
		return
	}
	if d.vao == 0 || d.program == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	eb := d.currentElementBuffer()
	b, ok := d.buffers[eb]
	if eb == 0 || !ok || offset+int(count)*gpu.TypeSize(typ) > len(b.data) {
		d.raise(gpu.InvalidOperation)
		return
	}
	d.draws = append(d.draws, DrawCall{
		Mode:          mode,
		Count:         count,
		Type:          typ,
		Offset:        offset,
		VertexArray:   d.vao,
		ElementBuffer: eb,
		Program:       d.program,
	})
}
