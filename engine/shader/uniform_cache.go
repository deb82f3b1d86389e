package shader

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// notFound is the location the driver reports for a name that is not an active uniform.
const notFound int32 = -1

// uniformCache maps uniform names to raw driver locations for one program.
// Misses are stored too, so a name is looked up at most once per program lifetime.
// The cache holds locations only; matching the value type to the uniform is up to the caller.
type uniformCache struct {
	ctx       *gpu.Context
	program   gpu.Handle
	label     string
	locations map[string]int32
}

func newUniformCache(ctx *gpu.Context, program gpu.Handle, label string) *uniformCache {
	return &uniformCache{
		ctx:       ctx,
		program:   program,
		label:     label,
		locations: make(map[string]int32),
	}
}

// location returns the cached location of name, querying the driver on the first lookup.
// A name the program does not use is logged once at warn level and cached as notFound.
func (uc *uniformCache) location(name string) int32 {
	if loc, ok := uc.locations[name]; ok {
		return loc
	}
	d := uc.ctx.Driver()
	loc := gpu.Query(uc.ctx, func() int32 { return d.GetUniformLocation(uc.program, name) })
	uc.locations[name] = loc
	if loc == notFound {
		uc.ctx.Logger().Warn("uniform not found", "shader", uc.label, "uniform", name)
	}
	return loc
}

// len returns the number of cached names, misses included.
func (uc *uniformCache) len() int {
	return len(uc.locations)
}
