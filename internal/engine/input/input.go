// Package input turns SDL2 events into viewer events and actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseLeave
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
}

// Action is what a key press asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionRotateLeft
	ActionRotateRight
	ActionPrevMap
	ActionNextMap
	ActionScreenshot
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:        "none",
	ActionRotateLeft:  "rotate-left",
	ActionRotateRight: "rotate-right",
	ActionPrevMap:     "prev-map",
	ActionNextMap:     "next-map",
	ActionScreenshot:  "screenshot",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ActionFor maps a key to its action.
func ActionFor(key sdl.Scancode) Action {
	switch key {
	case sdl.SCANCODE_LEFT:
		return ActionRotateLeft
	case sdl.SCANCODE_RIGHT:
		return ActionRotateRight
	case sdl.SCANCODE_LEFTBRACKET, sdl.SCANCODE_PAGEUP:
		return ActionPrevMap
	case sdl.SCANCODE_RIGHTBRACKET, sdl.SCANCODE_PAGEDOWN:
		return ActionNextMap
	case sdl.SCANCODE_F12:
		return ActionScreenshot
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	default:
		return ActionNone
	}
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. It returns true when the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_LEAVE:
			return Event{Type: EventMouseLeave}, true
		}

	case *sdl.KeyboardEvent:
		// Held keys repeat; only the first press counts
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the actions of the key presses from the last Update.
func (i *Input) Actions() []Action {
	var out []Action
	for _, e := range i.events {
		if e.Type != EventKeyDown {
			continue
		}
		if a := ActionFor(e.Key); a != ActionNone {
			out = append(out, a)
		}
	}
	return out
}
