package camera

type CameraBuilderOption func(*cameraImpl)

// WithBounds sets the camera's projection bounds.
//
// Parameters:
//   - left, right, bottom, top: the visible world rectangle
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's bounds
func WithBounds(left, right, bottom, top float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.left, c.right, c.bottom, c.top = left, right, bottom, top
	}
}

// WithDepth sets the near and far clipping planes.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clipping planes
func WithDepth(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithPosition sets the camera's starting position.
//
// Parameters:
//   - x, y, z: the position in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position[0], c.position[1], c.position[2] = x, y, z
	}
}
