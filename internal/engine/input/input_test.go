package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestActionFor(t *testing.T) {
	tests := []struct {
		key  sdl.Scancode
		want Action
	}{
		{sdl.SCANCODE_LEFT, ActionRotateLeft},
		{sdl.SCANCODE_RIGHT, ActionRotateRight},
		{sdl.SCANCODE_LEFTBRACKET, ActionPrevMap},
		{sdl.SCANCODE_PAGEUP, ActionPrevMap},
		{sdl.SCANCODE_RIGHTBRACKET, ActionNextMap},
		{sdl.SCANCODE_PAGEDOWN, ActionNextMap},
		{sdl.SCANCODE_F12, ActionScreenshot},
		{sdl.SCANCODE_ESCAPE, ActionQuit},
		{sdl.SCANCODE_A, ActionNone},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.key); got != tt.want {
			t.Errorf("ActionFor(%d) = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   Event
		wantOK bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{"resize", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480},
			Event{Type: EventWindowResize, Width: 640, Height: 480}, true},
		{"leave", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_LEAVE}, Event{Type: EventMouseLeave}, true},
		{"focus ignored", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED}, Event{}, false},
		{"key down", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_LEFT}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_LEFT}, true},
		{"key repeat", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_LEFT}}, Event{}, false},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_LEFT}}, Event{}, false},
		{"motion", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 12, Y: 34},
			Event{Type: EventMouseMove, MouseX: 12, MouseY: 34}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("translate = %+v (%v), want %+v (%v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestActionsSkipsUnboundKeys(t *testing.T) {
	in := New()
	in.events = append(in.events,
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_A},
		Event{Type: EventMouseMove},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_RIGHTBRACKET},
	)
	got := in.Actions()
	if len(got) != 1 || got[0] != ActionNextMap {
		t.Errorf("Actions = %v", got)
	}
}
