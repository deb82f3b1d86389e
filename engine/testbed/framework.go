package testbed

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/engine/ui"
)

// BackLabel is the button that returns from an active test to the root menu.
const BackLabel = "<-"

// State is the framework's selection state.
type State int

const (
	// StateUnselected shows the root menu.
	StateUnselected State = iota
	// StateActive runs a selected test.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateUnselected:
		return "unselected"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// request is a selection made during a frame, applied after OnImGuiRender returns.
type request struct {
	back    bool
	name    string
	factory Factory
}

// Framework runs at most one test at a time on top of a root menu. The root menu is owned by
// the framework and is never destroyed; every other test is destroyed before its successor is
// constructed.
type Framework struct {
	registry *Registry
	root     *Menu
	logger   *slog.Logger

	state   State
	current Test
	name    string
	pending *request
}

// NewFramework creates a Framework whose root menu lists registry.
//
// Parameters:
//   - registry: the root registry
//   - options: functional options to configure the framework
//
// Returns:
//   - *Framework: the framework, in StateUnselected
func NewFramework(registry *Registry, options ...FrameworkBuilderOption) *Framework {
	if registry == nil {
		panic("testbed: registry must not be nil")
	}
	f := &Framework{
		registry: registry,
		root:     NewMenu(registry),
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(f)
	}
	f.current = f.root
	return f
}

// State returns the selection state.
func (f *Framework) State() State {
	return f.state
}

// Current returns the test receiving callbacks, the root menu when nothing is selected.
func (f *Framework) Current() Test {
	return f.current
}

// CurrentName returns the active test's name, or "" on the root menu.
func (f *Framework) CurrentName() string {
	return f.name
}

// Registry returns the root registry.
func (f *Framework) Registry() *Registry {
	return f.registry
}

// Select switches to the root registry's test called name. The current test is destroyed
// before the new one is constructed. If construction fails the framework is left on the root menu.
//
// Parameters:
//   - name: a name registered in the root registry
//
// Returns:
//   - error: ErrUnknownTest, or the factory's error
func (f *Framework) Select(name string) error {
	factory, ok := f.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("select %q: %w", name, ErrUnknownTest)
	}
	return f.activate(name, factory)
}

func (f *Framework) activate(name string, factory Factory) error {
	f.destroyCurrent()
	t, err := factory()
	if err != nil {
		f.logger.Error("test construction failed", "test", name, "error", err)
		return fmt.Errorf("construct test %q: %w", name, err)
	}
	if t == nil {
		return fmt.Errorf("construct test %q: factory returned nil", name)
	}
	f.current = t
	f.name = name
	f.state = StateActive
	f.logger.Info("test selected", "test", name)
	return nil
}

// Back destroys the active test and returns to the root menu. It is a no-op on the root menu.
func (f *Framework) Back() {
	if f.state == StateUnselected {
		return
	}
	f.logger.Info("test closed", "test", f.name)
	f.destroyCurrent()
}

func (f *Framework) destroyCurrent() {
	if f.current != nil && f.current != Test(f.root) {
		f.current.Destroy()
	}
	f.current = f.root
	f.name = ""
	f.state = StateUnselected
}

// Frame runs one frame of the current test: OnUpdate, OnRender, the back button while a test
// is active, then OnImGuiRender. A selection made during the frame is applied afterwards.
//
// Parameters:
//   - dt: seconds since the previous frame
//   - panel: the widget surface for this frame
//
// Returns:
//   - error: the OnRender error, or the error from constructing a selected test
func (f *Framework) Frame(dt float32, panel ui.Panel) error {
	t := f.current
	t.OnUpdate(dt)
	renderErr := t.OnRender()
	if renderErr != nil {
		f.logger.Error("test render failed", "test", f.name, "error", renderErr)
		renderErr = fmt.Errorf("render test %q: %w", f.name, renderErr)
	}
	if f.state == StateActive && panel.Button(BackLabel) {
		f.pending = &request{back: true}
	}
	t.OnImGuiRender(panel)
	if s, ok := t.(Selector); ok {
		if name, factory, ok := s.TakeSelection(); ok && f.pending == nil {
			f.pending = &request{name: name, factory: factory}
		}
	}
	return errors.Join(renderErr, f.applyPending())
}

func (f *Framework) applyPending() error {
	p := f.pending
	f.pending = nil
	switch {
	case p == nil:
		return nil
	case p.back:
		f.Back()
		return nil
	default:
		return f.activate(p.name, p.factory)
	}
}

// Shutdown destroys the active test and returns to the root menu.
func (f *Framework) Shutdown() {
	f.pending = nil
	f.destroyCurrent()
}
