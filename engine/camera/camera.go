package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	left   float32
	right  float32
	bottom float32
	top    float32
	near   float32
	far    float32

	position mgl32.Vec3

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for the 2D camera.
// The camera maps world units onto the display with an orthographic projection and
// pans by translating the world opposite to its position.
type Camera interface {
	// Bounds returns the visible world rectangle at the camera's origin.
	//
	// Returns:
	//   - left, right, bottom, top: the projection bounds
	Bounds() (left, right, bottom, top float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Position returns the camera position in world units.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// ViewMatrix returns the current view matrix, a translation by the negated position.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current orthographic projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// MVP combines a model matrix with the camera as projection * view * model.
	//
	// Parameters:
	//   - model: the model matrix
	//
	// Returns:
	//   - mgl32.Mat4: the model-view-projection matrix
	MVP(model mgl32.Mat4) mgl32.Mat4

	// SetBounds sets the projection bounds and recomputes matrices.
	//
	// Parameters:
	//   - left, right, bottom, top: the projection bounds
	SetBounds(left, right, bottom, top float32)

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the position in world units
	SetPosition(x, y, z float32)

	// Resize sets the bounds to [0, width] x [0, height] so one world unit is one pixel.
	//
	// Parameters:
	//   - width: the display width in pixels
	//   - height: the display height in pixels
	Resize(width, height int)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. The default bounds cover a 960x540 display with a
// [-1, 1] depth range and the camera at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:    &sync.Mutex{},
		right: 960,
		top:   540,
		near:  -1,
		far:   1,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Bounds() (left, right, bottom, top float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.bottom, c.top
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) MVP(model mgl32.Mat4) mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix.Mul4(model)
}

func (c *cameraImpl) SetBounds(left, right, bottom, top float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.bottom, c.top = left, right, bottom, top
	c.updateMatrices()
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = mgl32.Vec3{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetBounds(0, float32(width), 0, float32(height))
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
	c.projectionMatrix = mgl32.Ortho(c.left, c.right, c.bottom, c.top, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
