package game

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gallery-walk/internal/session"
)

// KeyMap binds keyboard scancodes to player controls.
type KeyMap map[sdl.Scancode]session.Control

// DefaultKeyMap returns the stock bindings. Jump has no key by default.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		sdl.SCANCODE_W:      session.ControlForward,
		sdl.SCANCODE_UP:     session.ControlForward,
		sdl.SCANCODE_S:      session.ControlBackward,
		sdl.SCANCODE_DOWN:   session.ControlBackward,
		sdl.SCANCODE_A:      session.ControlLeft,
		sdl.SCANCODE_LEFT:   session.ControlLeft,
		sdl.SCANCODE_D:      session.ControlRight,
		sdl.SCANCODE_RIGHT:  session.ControlRight,
		sdl.SCANCODE_J:      session.ControlTurnLeft,
		sdl.SCANCODE_L:      session.ControlTurnRight,
		sdl.SCANCODE_I:      session.ControlTurnUp,
		sdl.SCANCODE_K:      session.ControlTurnDown,
		sdl.SCANCODE_Q:      session.ControlUp,
		sdl.SCANCODE_E:      session.ControlDown,
		sdl.SCANCODE_LSHIFT: session.ControlSlow,
		sdl.SCANCODE_LALT:   session.ControlNoclip,
		sdl.SCANCODE_Z:      session.ControlZoom,
		sdl.SCANCODE_F2:     session.ControlLocation,
		sdl.SCANCODE_ESCAPE: session.ControlUnlock,
	}
}
