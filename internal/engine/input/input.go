// Package input turns SDL2 events into per-frame viewer input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	// EventClick is a left button release with little motion since the press.
	EventClick
)

// clickSlop is how far in pixels the mouse may travel between press and
// release for the release to count as a click.
const clickSlop = 4

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	// X and Y are the cursor position of a click, in window pixels.
	X, Y   int
}

// Input collects one frame of events plus accumulated mouse motion.
type Input struct {
	events []Event

	// DragX/DragY accumulate motion while the left button is held.
	DragX, DragY float32
	// PanX/PanY accumulate motion while the right button is held.
	PanX, PanY float32
	// Wheel accumulates vertical scroll.
	Wheel float32

	leftDown  bool
	rightDown bool
	travel    float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events for one frame.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.DragX, i.DragY = 0, 0
	i.PanX, i.PanY = 0, 0
	i.Wheel = 0

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			t := EventKeyUp
			if e.Type == sdl.KEYDOWN {
				t = EventKeyDown
			}
			i.events = append(i.events, Event{Type: t, Key: e.Keysym.Sym})

		case *sdl.MouseButtonEvent:
			pressed := e.State == sdl.PRESSED
			switch e.Button {
			case sdl.BUTTON_LEFT:
				if pressed {
					i.travel = 0
				} else if i.leftDown && i.travel <= clickSlop {
					i.events = append(i.events, Event{Type: EventClick, X: int(e.X), Y: int(e.Y)})
				}
				i.leftDown = pressed
			case sdl.BUTTON_RIGHT:
				i.rightDown = pressed
			}

		case *sdl.MouseMotionEvent:
			if i.leftDown {
				i.DragX += float32(e.XRel)
				i.DragY += float32(e.YRel)
				i.travel += abs(float32(e.XRel)) + abs(float32(e.YRel))
			}
			if i.rightDown {
				i.PanX += float32(e.XRel)
				i.PanY += float32(e.YRel)
			}

		case *sdl.MouseWheelEvent:
			i.Wheel += float32(e.Y)
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Held reports whether a key is currently down.
func Held(scancode sdl.Scancode) bool {
	return sdl.GetKeyboardState()[scancode] != 0
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
