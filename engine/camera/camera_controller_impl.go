package camera

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the implementation of the CameraController interface.
type cameraControllerImpl struct {
	camera Camera
	home   mgl32.Vec3

	panSpeed         float32
	keyStep          float32
	mouseSensitivity float32

	dragging     bool
	lastX, lastY float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller for cam. Pan speed and mouse sensitivity default to 1,
// and an arrow key pans 10 units.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		camera:           cam,
		home:             cam.Position(),
		panSpeed:         1,
		keyStep:          10,
		mouseSensitivity: 1,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) translate(dx, dy float32) {
	p := cc.camera.Position()
	cc.camera.SetPosition(p.X()+dx, p.Y()+dy, p.Z())
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.translate(delta*cc.panSpeed, 0)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.translate(0, delta*cc.panSpeed)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	return cc.panSpeed
}

func (cc *cameraControllerImpl) KeyDown(keyCode uint32) bool {
	switch keyCode {
	case common.KeyLeft:
		cc.PanRight(-cc.keyStep)
	case common.KeyRight:
		cc.PanRight(cc.keyStep)
	case common.KeyUp:
		cc.PanUp(cc.keyStep)
	case common.KeyDown:
		cc.PanUp(-cc.keyStep)
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) BeginDrag(x, y float32) {
	cc.dragging = true
	cc.lastX, cc.lastY = x, y
}

// Drag converts the cursor delta to a camera move. Window y grows downward, so a downward drag
// raises the camera and the scene follows the cursor.
func (cc *cameraControllerImpl) Drag(x, y float32) {
	if !cc.dragging {
		return
	}
	dx, dy := x-cc.lastX, y-cc.lastY
	cc.lastX, cc.lastY = x, y
	cc.translate(-dx*cc.mouseSensitivity, dy*cc.mouseSensitivity)
}

func (cc *cameraControllerImpl) EndDrag() {
	cc.dragging = false
}

func (cc *cameraControllerImpl) Dragging() bool {
	return cc.dragging
}

func (cc *cameraControllerImpl) Reset() {
	cc.dragging = false
	cc.camera.SetPosition(cc.home.X(), cc.home.Y(), cc.home.Z())
}
