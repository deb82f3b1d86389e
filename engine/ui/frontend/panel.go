package frontend

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/ui"
	"github.com/inkyblackness/imgui-go/v4"
)

// imguiPanel forwards Panel widgets to the current imgui window.
type imguiPanel struct{}

var _ ui.Panel = imguiPanel{}

func (imguiPanel) Text(format string, args ...any) {
	if len(args) == 0 {
		imgui.Text(format)
		return
	}
	imgui.Text(fmt.Sprintf(format, args...))
}

func (imguiPanel) Button(label string) bool {
	return imgui.Button(label)
}

func (imguiPanel) Checkbox(label string, value *bool) bool {
	return imgui.Checkbox(label, value)
}

func (imguiPanel) SliderFloat(label string, value *float32, minValue, maxValue float32) bool {
	return imgui.SliderFloat(label, value, minValue, maxValue)
}

func (imguiPanel) SliderFloat3(label string, value *[3]float32, minValue, maxValue float32) bool {
	return imgui.SliderFloat3(label, value, minValue, maxValue)
}

func (imguiPanel) ColorEdit4(label string, value *[4]float32) bool {
	return imgui.ColorEdit4(label, value)
}
