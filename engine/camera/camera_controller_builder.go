package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPanSpeed sets the pan speed multiplier applied to PanRight and PanUp.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - CameraControllerOption: functional option to set the pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithKeyStep sets how far one arrow key press pans, before the pan speed is applied.
//
// Parameters:
//   - step: world units per key press
//
// Returns:
//   - CameraControllerOption: functional option to set the key step
func WithKeyStep(step float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.keyStep = step
	}
}

// WithMouseSensitivity sets the drag multiplier. 1 keeps the scene under the cursor when the
// camera bounds match the window size.
//
// Parameters:
//   - sensitivity: world units per pixel of drag
//
// Returns:
//   - CameraControllerOption: functional option to set the mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}
