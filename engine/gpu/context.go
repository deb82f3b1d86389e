package gpu

import (
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
)

// maxDrainedErrors bounds how many flags a single check will read, a lost context can
// keep reporting errors forever.
const maxDrainedErrors = 32

// defaultTextureUnits is used when the driver does not report a texture unit limit.
const defaultTextureUnits = 16

// Context is the single ambient graphics context shared by every wrapper.
// It owns the Driver, the error-check boundary, and a record of which handle is
// currently bound to each target. The ElementArrayBuffer binding is vertex array state,
// so it is recorded per vertex array and follows VertexArrayBinding.
//
// A Context is not safe for concurrent use. Bind and Unbind calls are not reentrant;
// callers must not hold two conflicting binds of the same target at once.
type Context struct {
	driver Driver
	logger *slog.Logger
	strict bool

	bindings     map[Enum]Handle
	elements     map[Handle]Handle
	textureUnits map[int]Handle
	maxUnits     int

	errorLog []DriverError
}

// NewContext wraps a Driver whose native context is already current on the calling thread.
//
// Parameters:
//   - driver: the driver to issue calls through
//   - options: functional options for logging and strictness
//
// Returns:
//   - *Context: the ambient context
func NewContext(driver Driver, options ...ContextBuilderOption) *Context {
	if driver == nil {
		panic("gpu: NewContext requires a driver")
	}
	c := &Context{
		driver:       driver,
		logger:       slog.Default(),
		bindings:     make(map[Enum]Handle),
		elements:     make(map[Handle]Handle),
		textureUnits: make(map[int]Handle),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Driver returns the underlying driver.
func (c *Context) Driver() Driver {
	return c.driver
}

// Logger returns the diagnostic logger shared by all wrappers on this context.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// Strict reports whether driver errors halt execution.
func (c *Context) Strict() bool {
	return c.strict
}

// SetStrict switches between continuing after driver errors (false) and panicking on them (true).
//
// Parameters:
//   - strict: true to panic on the first driver error
func (c *Context) SetStrict(strict bool) {
	c.strict = strict
}

// Call runs fn, which must issue driver calls, inside the error-check boundary.
// Stale error flags are cleared before fn runs; every flag raised by fn is logged with the
// calling function, file and line and appended to the error log. In strict mode the first
// flag panics with a *DriverError.
//
// Parameters:
//   - fn: the driver invocation to guard
func (c *Context) Call(fn func()) {
	c.clearErrors()
	fn()
	if codes := c.drainErrors(); len(codes) > 0 {
		c.report(codes, callSite(2))
	}
}

// Check is Call for call sites that need to react to failure, typically constructors.
//
// Parameters:
//   - fn: the driver invocation to guard
//
// Returns:
//   - error: the first *DriverError raised by fn, or nil
func (c *Context) Check(fn func()) error {
	c.clearErrors()
	fn()
	codes := c.drainErrors()
	if len(codes) == 0 {
		return nil
	}
	return c.report(codes, callSite(2))
}

// Query runs fn inside the error-check boundary of c and returns its result.
//
// Parameters:
//   - c: the context to check errors on
//   - fn: the driver query to guard
//
// Returns:
//   - T: the value produced by fn
func Query[T any](c *Context, fn func() T) T {
	c.clearErrors()
	v := fn()
	if codes := c.drainErrors(); len(codes) > 0 {
		c.report(codes, callSite(2))
	}
	return v
}

// Errors returns a copy of every driver error reported since the last ResetErrors.
func (c *Context) Errors() []DriverError {
	out := make([]DriverError, len(c.errorLog))
	copy(out, c.errorLog)
	return out
}

// ResetErrors empties the error log.
func (c *Context) ResetErrors() {
	c.errorLog = c.errorLog[:0]
}

// MarkBound records h as the active handle for a binding point. Wrappers call this right
// after the native bind so the context mirrors driver state.
// An ElementArrayBuffer bind is recorded on the vertex array bound at the time, 0 standing
// for no vertex array.
//
// Parameters:
//   - target: the binding point, e.g. ArrayBuffer or CurrentProgram
//   - h: the bound handle, 0 to record an unbind
func (c *Context) MarkBound(target Enum, h Handle) {
	if target == ElementArrayBuffer {
		vao := c.bindings[VertexArrayBinding]
		if h == 0 {
			delete(c.elements, vao)
			return
		}
		c.elements[vao] = h
		return
	}
	if h == 0 {
		delete(c.bindings, target)
		return
	}
	c.bindings[target] = h
}

// Bound returns the handle recorded for a binding point, or 0.
// For ElementArrayBuffer it is the index buffer attached to the bound vertex array.
func (c *Context) Bound(target Enum) Handle {
	if target == ElementArrayBuffer {
		return c.elements[c.bindings[VertexArrayBinding]]
	}
	return c.bindings[target]
}

// MarkTextureUnit records the texture bound on a texture unit.
//
// Parameters:
//   - unit: zero based texture unit
//   - h: the bound texture, 0 to record an unbind
func (c *Context) MarkTextureUnit(unit int, h Handle) {
	if h == 0 {
		delete(c.textureUnits, unit)
		return
	}
	c.textureUnits[unit] = h
}

// TextureUnit returns the texture recorded on a texture unit, or 0.
func (c *Context) TextureUnit(unit int) Handle {
	return c.textureUnits[unit]
}

// Unmark drops the binding record of target if it still refers to h. Wrappers call this
// when they destroy their resource. Handles are only unique per object kind, so the record
// is dropped by target rather than by value.
//
// Parameters:
//   - target: the binding point the resource was bound to
//   - h: the destroyed handle
func (c *Context) Unmark(target Enum, h Handle) {
	switch target {
	case ElementArrayBuffer:
		for vao, bound := range c.elements {
			if bound == h {
				delete(c.elements, vao)
			}
		}
		return
	case VertexArrayBinding:
		delete(c.elements, h)
	}
	if c.bindings[target] == h {
		delete(c.bindings, target)
	}
}

// ForgetTexture drops every texture unit record that refers to h.
//
// Parameters:
//   - h: the destroyed texture
func (c *Context) ForgetTexture(h Handle) {
	for unit, bound := range c.textureUnits {
		if bound == h {
			delete(c.textureUnits, unit)
		}
	}
}

// MaxTextureUnits returns the number of texture units usable by a program. The value is
// queried from the driver once and cached.
func (c *Context) MaxTextureUnits() int {
	if c.maxUnits == 0 {
		n := int(Query(c, func() int32 { return c.driver.GetInteger(MaxCombinedTextureImageUnits) }))
		if n <= 0 {
			n = defaultTextureUnits
		}
		c.maxUnits = n
	}
	return c.maxUnits
}

// LogInfo writes the driver's vendor, renderer and version strings to the logger.
func (c *Context) LogInfo() {
	c.logger.Info("graphics context",
		"vendor", c.driver.GetString(Vendor),
		"renderer", c.driver.GetString(RendererName),
		"version", c.driver.GetString(Version),
		"glsl", c.driver.GetString(ShadingLanguageVersion),
	)
}

func (c *Context) clearErrors() {
	for i := 0; i < maxDrainedErrors; i++ {
		if c.driver.GetError() == NoError {
			return
		}
	}
}

func (c *Context) drainErrors() []Enum {
	var codes []Enum
	for i := 0; i < maxDrainedErrors; i++ {
		code := c.driver.GetError()
		if code == NoError {
			break
		}
		codes = append(codes, code)
	}
	return codes
}

func (c *Context) report(codes []Enum, site DriverError) error {
	var first error
	for _, code := range codes {
		e := site
		e.Code = code
		c.errorLog = append(c.errorLog, e)
		c.logger.Error("driver error",
			"code", ErrorName(code),
			"func", e.Func,
			"file", e.File,
			"line", e.Line,
		)
		if c.strict {
			panic(&e)
		}
		if first == nil {
			first = &e
		}
	}
	return first
}

// callSite resolves the caller skip frames above callSite into an error template.
func callSite(skip int) DriverError {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return DriverError{Func: "unknown", File: "unknown"}
	}
	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = path.Base(fn.Name())
	}
	return DriverError{Func: name, File: filepath.Base(file), Line: line}
}
