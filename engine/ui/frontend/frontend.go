// Package frontend runs Dear ImGui behind the ui.Panel contract and hands its draw data to a
// ui.Renderer.
package frontend

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/ui"
	"github.com/inkyblackness/imgui-go/v4"
)

// Frontend owns an imgui context, its font texture and the renderer its frames are drawn with.
// Input is pushed in by the window's callbacks; a frame is bracketed by NewFrame and Render,
// with widgets issued through Panel in between.
type Frontend interface {
	gpu.Releaser

	// NewFrame starts a UI frame and opens the frontend's window.
	//
	// Parameters:
	//   - width: the display width in pixels
	//   - height: the display height in pixels
	//   - dt: seconds since the previous frame
	NewFrame(width, height int, dt float32)

	// Panel returns the widget surface for the current frame.
	//
	// Returns:
	//   - ui.Panel: the imgui-backed panel
	Panel() ui.Panel

	// Render closes the frame and draws it.
	//
	// Returns:
	//   - error: the first error raised while drawing
	Render() error

	// Framerate returns imgui's rolling average of frames per second.
	//
	// Returns:
	//   - float32: frames per second
	Framerate() float32

	// WantCaptureMouse reports whether the UI is using the mouse this frame.
	//
	// Returns:
	//   - bool: true while the pointer is over a UI window or dragging a widget
	WantCaptureMouse() bool

	// WantCaptureKeyboard reports whether a UI widget has keyboard focus.
	//
	// Returns:
	//   - bool: true while a text field or similar widget is active
	WantCaptureKeyboard() bool

	// MouseMove records the pointer position in display pixels.
	MouseMove(x, y float32)

	// MouseButton records a mouse button press or release.
	// Buttons follow common.MouseLeft, common.MouseRight and common.MouseMiddle.
	MouseButton(button int, down bool)

	// Scroll records a wheel movement.
	Scroll(dx, dy float32)

	// Key records a key press or release using common key codes.
	Key(key int, down bool)

	// Char records typed text.
	Char(r rune)
}

type frontend struct {
	ctx      *gpu.Context
	context  *imgui.Context
	io       imgui.IO
	renderer ui.Renderer
	font     texture.Texture

	title   string
	dark    bool
	width   int
	height  int
	inFrame bool

	mouseJustPressed [3]bool
	mouseDown        [3]bool

	indices []uint32
}

var _ Frontend = &frontend{}

// NewFrontend creates an imgui context, uploads its font atlas and builds the UI renderer.
//
// Parameters:
//   - ctx: the graphics context
//   - options: functional options such as WithTitle
//
// Returns:
//   - Frontend: the UI frontend
//   - error: a renderer or font texture creation error
func NewFrontend(ctx *gpu.Context, options ...FrontendBuilderOption) (Frontend, error) {
	f := &frontend{
		ctx:   ctx,
		title: "Sandbox",
		dark:  true,
	}
	for _, opt := range options {
		opt(f)
	}

	f.context = imgui.CreateContext(nil)
	f.io = imgui.CurrentIO()
	f.io.SetIniFilename("")
	if f.dark {
		imgui.StyleColorsDark()
	} else {
		imgui.StyleColorsLight()
	}
	if size, pos, uv, col := imgui.VertexBufferLayout(); size != ui.VertexSize || pos != 0 || uv != 8 || col != 16 {
		f.context.Destroy()
		return nil, fmt.Errorf("imgui vertex layout %d/%d/%d/%d does not match the ui vertex", size, pos, uv, col)
	}

	var err error
	if f.renderer == nil {
		if f.renderer, err = ui.NewRenderer(ctx); err != nil {
			f.context.Destroy()
			return nil, err
		}
	}

	fonts := f.io.Fonts()
	atlas := fonts.TextureDataRGBA32()
	pixels := unsafe.Slice((*byte)(atlas.Pixels), atlas.Width*atlas.Height*4)
	f.font, err = texture.NewTexture(ctx, &common.DecodedImage{
		Name:     "imgui font atlas",
		Pixels:   append([]byte(nil), pixels...),
		Width:    atlas.Width,
		Height:   atlas.Height,
		Channels: 4,
	}, texture.WithFlipVertical(false))
	if err != nil {
		f.renderer.Destroy()
		f.context.Destroy()
		return nil, err
	}
	id := ui.TextureID(f.font.Handle())
	fonts.SetTextureID(imgui.TextureID(id))
	f.renderer.RegisterTexture(id, f.font)

	f.mapKeys()
	ctx.Logger().Info("ui frontend ready", "imgui", imgui.Version(), "font_width", atlas.Width, "font_height", atlas.Height)
	return f, nil
}

func (f *frontend) mapKeys() {
	keys := map[int]int{
		imgui.KeyTab:        common.KeyTab,
		imgui.KeyLeftArrow:  common.KeyLeft,
		imgui.KeyRightArrow: common.KeyRight,
		imgui.KeyUpArrow:    common.KeyUp,
		imgui.KeyDownArrow:  common.KeyDown,
		imgui.KeyPageUp:     common.KeyPageUp,
		imgui.KeyPageDown:   common.KeyPageDown,
		imgui.KeyHome:       common.KeyHome,
		imgui.KeyEnd:        common.KeyEnd,
		imgui.KeyInsert:     common.KeyInsert,
		imgui.KeyDelete:     common.KeyDelete,
		imgui.KeyBackspace:  common.KeyBackspace,
		imgui.KeySpace:      common.KeySpace,
		imgui.KeyEnter:      common.KeyEnter,
		imgui.KeyEscape:     common.KeyEsc,
		imgui.KeyA:          common.KeyA,
		imgui.KeyC:          common.KeyC,
		imgui.KeyV:          common.KeyV,
		imgui.KeyX:          common.KeyX,
		imgui.KeyY:          common.KeyY,
		imgui.KeyZ:          common.KeyZ,
	}
	for imguiKey, key := range keys {
		f.io.KeyMap(imguiKey, key)
	}
}

func (f *frontend) NewFrame(width, height int, dt float32) {
	if f.inFrame {
		f.endFrame()
	}
	f.width, f.height = width, height
	f.io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	f.io.SetDeltaTime(dt)
	for i := range f.mouseDown {
		f.io.SetMouseButtonDown(i, f.mouseJustPressed[i] || f.mouseDown[i])
		f.mouseJustPressed[i] = false
	}

	imgui.NewFrame()
	imgui.Begin(f.title)
	f.inFrame = true
}

func (f *frontend) endFrame() {
	imgui.End()
	imgui.Render()
	f.inFrame = false
}

func (f *frontend) Panel() ui.Panel {
	return imguiPanel{}
}

func (f *frontend) Render() error {
	if !f.inFrame {
		return nil
	}
	f.endFrame()
	return f.renderer.Render(f.width, f.height, f.drawLists(imgui.RenderedDrawData()))
}

// drawLists copies imgui's draw data into renderer draw lists. Vertex bytes are aliased, not
// copied, and stay valid until the next NewFrame.
func (f *frontend) drawLists(data imgui.DrawData) []ui.DrawList {
	if !data.Valid() {
		return nil
	}
	indexSize := imgui.IndexBufferLayout()
	f.indices = f.indices[:0]

	var lists []ui.DrawList
	for _, list := range data.CommandLists() {
		vertexPtr, vertexBytes := list.VertexBuffer()
		indexPtr, indexBytes := list.IndexBuffer()

		start := len(f.indices)
		switch indexSize {
		case 2:
			for _, idx := range unsafe.Slice((*uint16)(indexPtr), indexBytes/2) {
				f.indices = append(f.indices, uint32(idx))
			}
		default:
			f.indices = append(f.indices, unsafe.Slice((*uint32)(indexPtr), indexBytes/4)...)
		}

		dl := ui.DrawList{
			Vertices: unsafe.Slice((*byte)(vertexPtr), vertexBytes),
			Indices:  f.indices[start:len(f.indices):len(f.indices)],
		}
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				dl.Commands = append(dl.Commands, ui.DrawCommand{ElementCount: cmd.ElementCount()})
				continue
			}
			clip := cmd.ClipRect()
			dl.Commands = append(dl.Commands, ui.DrawCommand{
				ElementCount: cmd.ElementCount(),
				ClipRect:     [4]float32{clip.X, clip.Y, clip.Z, clip.W},
				TextureID:    ui.TextureID(cmd.TextureID()),
			})
		}
		lists = append(lists, dl)
	}
	return lists
}

func (f *frontend) Framerate() float32 {
	return f.io.Framerate()
}

func (f *frontend) WantCaptureMouse() bool {
	return f.io.WantCaptureMouse()
}

func (f *frontend) WantCaptureKeyboard() bool {
	return f.io.WantCaptureKeyboard()
}

func (f *frontend) MouseMove(x, y float32) {
	if x < 0 || y < 0 {
		f.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
		return
	}
	f.io.SetMousePosition(imgui.Vec2{X: x, Y: y})
}

func (f *frontend) MouseButton(button int, down bool) {
	if button < 0 || button >= len(f.mouseDown) {
		return
	}
	// a click shorter than a frame still registers
	if down {
		f.mouseJustPressed[button] = true
	}
	f.mouseDown[button] = down
}

func (f *frontend) Scroll(dx, dy float32) {
	f.io.AddMouseWheelDelta(dx, dy)
}

func (f *frontend) Key(key int, down bool) {
	if down {
		f.io.KeyPress(key)
	} else {
		f.io.KeyRelease(key)
	}
	f.io.KeyCtrl(common.KeyLeftCtrl, common.KeyRightCtrl)
	f.io.KeyShift(common.KeyLeftShift, common.KeyRightShift)
	f.io.KeyAlt(common.KeyLeftAlt, common.KeyRightAlt)
	f.io.KeySuper(common.KeyLeftSuper, common.KeyRightSuper)
}

func (f *frontend) Char(r rune) {
	f.io.AddInputCharacters(string(r))
}

// Destroy releases the renderer, the font texture and the imgui context. Further calls are no-ops.
func (f *frontend) Destroy() {
	if f.context == nil {
		return
	}
	if f.inFrame {
		f.endFrame()
	}
	f.renderer.Destroy()
	f.font.Destroy()
	f.context.Destroy()
	f.context = nil
}
