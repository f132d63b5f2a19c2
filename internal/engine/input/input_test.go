package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func feed(in *Input, events ...sdl.Event) {
	in.events = in.events[:0]
	for _, ev := range events {
		if e, ok := translate(ev); ok {
			in.push(e)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{
			"key down",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_O}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_O},
			true,
		},
		{
			"key repeat ignored",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_O}},
			Event{},
			false,
		},
		{
			"resize",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600},
			true,
		},
		{
			"other window event",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED},
			Event{},
			false,
		},
		{
			"flipped wheel",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED},
			Event{Type: EventMouseWheel, DeltaY: -2},
			true,
		},
		{
			"file drop",
			&sdl.DropEvent{Type: sdl.DROPFILE, File: "/models/cube.obj"},
			Event{Type: EventFileDrop, Path: "/models/cube.obj"},
			true,
		},
		{
			"drop begin ignored",
			&sdl.DropEvent{Type: sdl.DROPBEGIN},
			Event{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.ok || got != tt.want {
				t.Errorf("translate() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInput_Drag(t *testing.T) {
	in := New()
	feed(in,
		&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 5, YRel: 1},
		&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT},
		&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: -2},
	)
	if !in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Fatal("left button not held")
	}
	// Motion is summed over the whole frame once the button is held.
	if dx, dy := in.Drag(sdl.BUTTON_LEFT); dx != 8 || dy != -1 {
		t.Errorf("Drag() = %d, %d; want 8, -1", dx, dy)
	}
	if dx, dy := in.Drag(sdl.BUTTON_RIGHT); dx != 0 || dy != 0 {
		t.Errorf("Drag(right) = %d, %d; want 0, 0", dx, dy)
	}

	feed(in, &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT})
	if in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Error("left button still held after release")
	}
}

func TestInput_FrameQueries(t *testing.T) {
	in := New()
	feed(in,
		&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}},
		&sdl.DropEvent{Type: sdl.DROPFILE, File: "a.obj"},
		&sdl.DropEvent{Type: sdl.DROPFILE, File: "b.obj"},
		&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1},
		&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2},
	)

	if !in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		t.Error("escape not reported")
	}
	if in.IsKeyPressed(sdl.SCANCODE_O) {
		t.Error("O reported without an event")
	}
	if got := in.DroppedFiles(); len(got) != 2 || got[1] != "b.obj" {
		t.Errorf("DroppedFiles() = %v", got)
	}
	if got := in.Wheel(); got != 3 {
		t.Errorf("Wheel() = %d, want 3", got)
	}
	if len(in.Events()) != 5 {
		t.Errorf("Events() has %d entries, want 5", len(in.Events()))
	}
}
