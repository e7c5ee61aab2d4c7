// Package input turns SDL2 events into game events and tracks connected
// game controllers.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/logger"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventTouchMove
	EventButtonDown
	EventButtonUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int

	// Relative motion: pixels for the mouse, window fractions for touch.
	DX, DY float32

	Button uint8
}

// Input handles all input processing.
type Input struct {
	events      []Event
	controllers map[sdl.JoystickID]*sdl.GameController
	log         *zap.Logger
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:      make([]Event, 0, 16),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		log:         logger.Named("input"),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.events = append(i.events, Event{Type: EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type: EventMouseMove,
				DX:   float32(e.XRel),
				DY:   float32(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			t := EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				t = EventMouseDown
			}
			i.events = append(i.events, Event{Type: t, Button: e.Button})

		case *sdl.TouchFingerEvent:
			if e.Type == sdl.FINGERMOTION {
				i.events = append(i.events, Event{Type: EventTouchMove, DX: e.DX, DY: e.DY})
			}

		case *sdl.ControllerDeviceEvent:
			i.controllerDevice(e)

		case *sdl.ControllerButtonEvent:
			t := EventButtonUp
			if e.Type == sdl.CONTROLLERBUTTONDOWN {
				t = EventButtonDown
			}
			i.events = append(i.events, Event{Type: t, Button: e.Button})
		}
	}

	return false
}

func (i *Input) controllerDevice(e *sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		gc := sdl.GameControllerOpen(int(e.Which))
		if gc == nil {
			i.log.Warn("failed to open controller", zap.Int("index", int(e.Which)))
			return
		}
		id := gc.Joystick().InstanceID()
		i.controllers[id] = gc
		i.log.Info("controller connected", zap.String("name", gc.Name()))
	case sdl.CONTROLLERDEVICEREMOVED:
		if gc, ok := i.controllers[e.Which]; ok {
			gc.Close()
			delete(i.controllers, e.Which)
			i.log.Info("controller disconnected")
		}
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

var padAxes = [...]sdl.GameControllerAxis{
	sdl.CONTROLLER_AXIS_LEFTX,
	sdl.CONTROLLER_AXIS_LEFTY,
	sdl.CONTROLLER_AXIS_RIGHTX,
	sdl.CONTROLLER_AXIS_RIGHTY,
}

// Pads returns the stick axes of every connected controller, each in
// [-1, 1] ordered left x, left y, right x, right y.
func (i *Input) Pads() [][]float32 {
	if len(i.controllers) == 0 {
		return nil
	}
	pads := make([][]float32, 0, len(i.controllers))
	for _, gc := range i.controllers {
		axes := make([]float32, len(padAxes))
		for n, a := range padAxes {
			axes[n] = float32(gc.Axis(a)) / 32767
		}
		pads = append(pads, axes)
	}
	return pads
}

// Close releases open controllers.
func (i *Input) Close() {
	for id, gc := range i.controllers {
		gc.Close()
		delete(i.controllers, id)
	}
}
