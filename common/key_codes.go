package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA         = 65  // A key (ASCII)
	KeyC         = 67  // C key (ASCII)
	KeyV         = 86  // V key (ASCII)
	KeyX         = 88  // X key (ASCII)
	KeyY         = 89  // Y key (ASCII)
	KeyZ         = 90  // Z key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyEnter      = 257 // Enter (GLFW)
	KeyTab        = 258 // Tab (GLFW)
	KeyInsert     = 260 // Insert (GLFW)
	KeyDelete     = 261 // Delete (GLFW)
	KeyRight      = 262 // Right arrow (GLFW)
	KeyLeft       = 263 // Left arrow (GLFW)
	KeyDown       = 264 // Down arrow (GLFW)
	KeyUp         = 265 // Up arrow (GLFW)
	KeyPageUp     = 266 // Page Up (GLFW)
	KeyPageDown   = 267 // Page Down (GLFW)
	KeyHome       = 268 // Home (GLFW)
	KeyEnd        = 269 // End (GLFW)
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyLeftCtrl   = 341 // Left Control (GLFW)
	KeyLeftAlt    = 342 // Left Alt (GLFW)
	KeyLeftSuper  = 343 // Left Super (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
	KeyRightCtrl  = 345 // Right Control (GLFW)
	KeyRightAlt   = 346 // Right Alt (GLFW)
	KeyRightSuper = 347 // Right Super (GLFW)
)

// Mouse buttons, matching GLFW's button numbering.
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)
