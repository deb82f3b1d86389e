package camera

// CameraController pans a Camera across the plane in response to input.
// Keyboard panning moves in fixed steps; dragging moves the view with the cursor.
type CameraController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera

	// PanRight translates the camera along x.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates the camera along y.
	// Positive delta moves up, negative moves down.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32

	// KeyDown pans one step for an arrow key.
	//
	// Parameters:
	//   - keyCode: the key code, see common.Key*
	//
	// Returns:
	//   - bool: true if the key was an arrow key
	KeyDown(keyCode uint32) bool

	// BeginDrag starts a drag at a window position.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates, y down
	BeginDrag(x, y float32)

	// Drag moves the camera so the scene follows the cursor. No-op unless a drag is active.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates, y down
	Drag(x, y float32)

	// EndDrag ends the active drag.
	EndDrag()

	// Dragging reports whether a drag is active.
	//
	// Returns:
	//   - bool: true between BeginDrag and EndDrag
	Dragging() bool

	// Reset moves the camera back to where it was when the controller was created.
	Reset()
}
