package gpu

import "reflect"

// Releaser is implemented by every wrapper that owns a native resource.
type Releaser interface {
	Destroy()
}

// Scope releases tracked resources in reverse order of tracking.
//
//	scope := gpu.NewScope()
//	defer scope.Release()
//	vb, err := buffer.NewVertexBuffer(ctx, data)
//	if err != nil {
//		return err
//	}
//	scope.Track(vb)
type Scope struct {
	items []Releaser
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{}
}

// Track adds r to the scope. Nil releasers are ignored, including a nil pointer held in the
// interface, such as the value a failed constructor returns.
//
// Parameters:
//   - r: the resource to release later
func (s *Scope) Track(r Releaser) {
	if isNil(r) {
		return
	}
	s.items = append(s.items, r)
}

func isNil(r Releaser) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Len returns the number of resources still tracked.
func (s *Scope) Len() int {
	return len(s.items)
}

// Release destroys every tracked resource, last tracked first, and empties the scope.
// A panic from one Destroy does not stop the remaining releases; the first panic is
// re-raised once all resources have been released.
func (s *Scope) Release() {
	var recovered any
	for i := len(s.items) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil && recovered == nil {
					recovered = r
				}
			}()
			s.items[i].Destroy()
		}()
	}
	s.items = nil
	if recovered != nil {
		panic(recovered)
	}
}
