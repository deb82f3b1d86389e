package ui

import (
	"fmt"
	"slices"
)

// WidgetKind names the Panel method that produced a Widget.
type WidgetKind string

const (
	KindText         WidgetKind = "text"
	KindButton       WidgetKind = "button"
	KindCheckbox     WidgetKind = "checkbox"
	KindSliderFloat  WidgetKind = "slider_float"
	KindSliderFloat3 WidgetKind = "slider_float3"
	KindColorEdit4   WidgetKind = "color_edit4"
)

// Widget is one recorded Panel call.
type Widget struct {
	Kind  WidgetKind
	Label string
	// Value is the widget's value after the call: the text for KindText, a bool, float32,
	// [3]float32 or [4]float32 otherwise, and nil for buttons.
	Value any
	// Range is the slider bounds, zero for other kinds.
	Range [2]float32
}

// Recorder is a Panel without a UI library behind it. It records every widget drawn during a
// frame and plays back scripted input: clicks and value edits queued with Click and Set apply
// to the next frame that draws a widget with the matching label.
//
// A Recorder is how tests and headless runs drive the test framework.
type Recorder struct {
	frame   []Widget
	clicks  map[string]int
	pending map[string]any
}

var _ Panel = &Recorder{}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		clicks:  make(map[string]int),
		pending: make(map[string]any),
	}
}

// Reset discards the widgets recorded so far. Queued input is kept.
func (r *Recorder) Reset() {
	r.frame = r.frame[:0]
}

// Widgets returns the widgets recorded since the last Reset, in call order.
func (r *Recorder) Widgets() []Widget {
	return slices.Clone(r.frame)
}

// Labels returns the labels of the recorded widgets of one kind, in call order.
func (r *Recorder) Labels(kind WidgetKind) []string {
	var out []string
	for _, w := range r.frame {
		if w.Kind == kind {
			out = append(out, w.Label)
		}
	}
	return out
}

// Find returns the last recorded widget with the given label.
func (r *Recorder) Find(label string) (Widget, bool) {
	for i := len(r.frame) - 1; i >= 0; i-- {
		if r.frame[i].Label == label {
			return r.frame[i], true
		}
	}
	return Widget{}, false
}

// Click queues a click on the button with the given label.
func (r *Recorder) Click(label string) {
	r.clicks[label]++
}

// Set queues a value edit for the widget with the given label. The value's type must match the
// widget: bool, float32, [3]float32 or [4]float32.
func (r *Recorder) Set(label string, value any) {
	r.pending[label] = value
}

func (r *Recorder) Text(format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	r.frame = append(r.frame, Widget{Kind: KindText, Label: text, Value: text})
}

func (r *Recorder) Button(label string) bool {
	r.frame = append(r.frame, Widget{Kind: KindButton, Label: label})
	if r.clicks[label] == 0 {
		return false
	}
	r.clicks[label]--
	if r.clicks[label] == 0 {
		delete(r.clicks, label)
	}
	return true
}

func (r *Recorder) Checkbox(label string, value *bool) bool {
	changed := apply(r, label, value)
	r.frame = append(r.frame, Widget{Kind: KindCheckbox, Label: label, Value: *value})
	return changed
}

func (r *Recorder) SliderFloat(label string, value *float32, minValue, maxValue float32) bool {
	changed := apply(r, label, value)
	if changed {
		*value = clamp(*value, minValue, maxValue)
	}
	r.frame = append(r.frame, Widget{Kind: KindSliderFloat, Label: label, Value: *value, Range: [2]float32{minValue, maxValue}})
	return changed
}

func (r *Recorder) SliderFloat3(label string, value *[3]float32, minValue, maxValue float32) bool {
	changed := apply(r, label, value)
	if changed {
		for i := range value {
			value[i] = clamp(value[i], minValue, maxValue)
		}
	}
	r.frame = append(r.frame, Widget{Kind: KindSliderFloat3, Label: label, Value: *value, Range: [2]float32{minValue, maxValue}})
	return changed
}

func (r *Recorder) ColorEdit4(label string, value *[4]float32) bool {
	changed := apply(r, label, value)
	r.frame = append(r.frame, Widget{Kind: KindColorEdit4, Label: label, Value: *value})
	return changed
}

// apply writes a queued edit for label into value. Edits of the wrong type are dropped.
func apply[T comparable](r *Recorder, label string, value *T) bool {
	queued, ok := r.pending[label]
	if !ok {
		return false
	}
	delete(r.pending, label)
	v, ok := queued.(T)
	if !ok || v == *value {
		return false
	}
	*value = v
	return true
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
