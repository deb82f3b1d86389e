// Package testbed is the interactive test framework: a registry of named test factories, a menu
// that lists them, and a Framework that runs exactly one test at a time.
package testbed

import "github.com/Carmen-Shannon/oxy-gl/engine/ui"

// Test is one interactive scene. Within a frame the framework calls OnUpdate, OnRender and
// OnImGuiRender in that order. Destroy is called exactly once, before the next test is built.
type Test interface {
	// OnUpdate advances the test's state.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	OnUpdate(dt float32)

	// OnRender issues the test's draw calls.
	//
	// Returns:
	//   - error: a draw error; the framework reports it and carries on with the frame
	OnRender() error

	// OnImGuiRender draws the test's controls.
	//
	// Parameters:
	//   - panel: the widget surface for this frame
	OnImGuiRender(panel ui.Panel)

	// Destroy releases everything the test allocated.
	Destroy()
}

// Factory constructs a Test. It is called each time the test is selected.
type Factory func() (Test, error)

// Selector is implemented by tests that pick another test from the UI, such as Menu.
// The framework polls it after OnImGuiRender returns and applies the selection then.
type Selector interface {
	// TakeSelection returns and clears the pending selection.
	//
	// Returns:
	//   - string: the selected test's name
	//   - Factory: the selected test's factory
	//   - bool: false when nothing was selected
	TakeSelection() (string, Factory, bool)
}
