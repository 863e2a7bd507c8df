// Package input handles SDL2 input events and exposes the polled state the
// camera reads each frame.
package input

import (
	"unicode"

	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input collects events once per frame and tracks which keys and mouse
// buttons are held.
type Input struct {
	events  []Event
	keys    map[sdl.Keycode]bool
	buttons map[int]bool
	mouseX  int
	mouseY  int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[sdl.Keycode]bool),
		buttons: make(map[int]bool),
	}
}

// Update polls SDL events. Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			quit = true
		}
	}
	return quit
}

func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}
		if e.Event == sdl.WINDOWEVENT_FOCUS_LOST {
			i.releaseAll()
		}

	case *sdl.KeyboardEvent:
		switch e.Type {
		case sdl.KEYDOWN:
			i.keys[e.Keysym.Sym] = true
			if e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Sym})
			}
		case sdl.KEYUP:
			i.keys[e.Keysym.Sym] = false
			i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Sym})
		}

	case *sdl.MouseMotionEvent:
		i.mouseX, i.mouseY = int(e.X), int(e.Y)
		i.events = append(i.events, Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		})

	case *sdl.MouseButtonEvent:
		i.mouseX, i.mouseY = int(e.X), int(e.Y)
		ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			i.buttons[int(e.Button)] = true
			ev.Type = EventMouseDown
		case sdl.MOUSEBUTTONUP:
			i.buttons[int(e.Button)] = false
			ev.Type = EventMouseUp
		}
		i.events = append(i.events, ev)
	}
	return false
}

func (i *Input) releaseAll() {
	clear(i.keys)
	clear(i.buttons)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Pressed reports whether key went down during the last Update.
func (i *Input) Pressed(key sdl.Keycode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

// MousePosition returns the last known cursor position in window pixels.
func (i *Input) MousePosition() (x, y int) {
	return i.mouseX, i.mouseY
}

// MouseDown reports whether an SDL mouse button is held.
func (i *Input) MouseDown(button int) bool {
	return i.buttons[button]
}

// KeyDown reports whether the key producing the character r is held.
// Letters are matched case-insensitively.
func (i *Input) KeyDown(r rune) bool {
	return i.keys[sdl.Keycode(unicode.ToLower(r))]
}
