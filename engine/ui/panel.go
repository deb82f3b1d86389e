// Package ui holds the narrow widget contract tests draw their controls through, and the
// GL renderer for the triangle lists a UI library produces.
package ui

// Panel is the immediate-mode widget surface handed to a test once per frame.
// Every widget returns true on the frame its value changed or, for buttons, was clicked.
// Widget labels double as identifiers and must be unique within a frame.
type Panel interface {
	// Text draws formatted, non-interactive text.
	//
	// Parameters:
	//   - format: a fmt format string
	//   - args: the format arguments
	Text(format string, args ...any)

	// Button draws a push button.
	//
	// Parameters:
	//   - label: the button text
	//
	// Returns:
	//   - bool: true on the frame the button was clicked
	Button(label string) bool

	// Checkbox draws a toggle bound to value.
	//
	// Parameters:
	//   - label: the checkbox text
	//   - value: the state to read and write
	//
	// Returns:
	//   - bool: true when value changed
	Checkbox(label string, value *bool) bool

	// SliderFloat draws a slider bound to value, clamped to [minValue, maxValue].
	//
	// Parameters:
	//   - label: the slider text
	//   - value: the value to read and write
	//   - minValue: the lower bound
	//   - maxValue: the upper bound
	//
	// Returns:
	//   - bool: true when value changed
	SliderFloat(label string, value *float32, minValue, maxValue float32) bool

	// SliderFloat3 draws three sliders sharing one range, bound to value.
	//
	// Parameters:
	//   - label: the slider text
	//   - value: the vector to read and write
	//   - minValue: the lower bound of every component
	//   - maxValue: the upper bound of every component
	//
	// Returns:
	//   - bool: true when any component changed
	SliderFloat3(label string, value *[3]float32, minValue, maxValue float32) bool

	// ColorEdit4 draws an RGBA color editor bound to value.
	//
	// Parameters:
	//   - label: the editor text
	//   - value: the color to read and write, components in [0, 1]
	//
	// Returns:
	//   - bool: true when value changed
	ColorEdit4(label string, value *[4]float32) bool
}
