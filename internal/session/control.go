package session

import (
	"github.com/Faultbox/gallery-walk/internal/game/states"
	"github.com/Faultbox/gallery-walk/internal/player"
)

// Control is a bindable player command.
type Control int

const (
	ControlForward Control = iota
	ControlBackward
	ControlLeft
	ControlRight
	ControlUp
	ControlDown
	ControlTurnLeft
	ControlTurnRight
	ControlTurnUp
	ControlTurnDown
	ControlSlow
	ControlJump
	ControlNoclip
	ControlZoom
	ControlLocation
	ControlUnlock
)

var moveActions = map[Control]player.Action{
	ControlForward:   player.Forward,
	ControlBackward:  player.Backward,
	ControlLeft:      player.Left,
	ControlRight:     player.Right,
	ControlUp:        player.Up,
	ControlDown:      player.Down,
	ControlTurnLeft:  player.TurnLeft,
	ControlTurnRight: player.TurnRight,
	ControlTurnUp:    player.TurnUp,
	ControlTurnDown:  player.TurnDown,
}

// Press handles a control going down. Only unlock works outside the
// playing phase.
func (s *Session) Press(c Control) {
	if c == ControlUnlock {
		s.Unlock()
		return
	}
	if !s.machine.Playing() {
		return
	}

	if a, ok := moveActions[c]; ok {
		s.actor.Intent.Set(a, true)
		return
	}
	switch c {
	case ControlSlow:
		s.actor.Slowed = true
	case ControlJump:
		s.controls.Jump()
	case ControlNoclip:
		s.controls.ToggleNoclip()
	case ControlZoom:
		s.zoomed = true
	case ControlLocation:
		s.controls.LogLocation()
	}
}

// Release handles a control going up. Releases are never gated so keys
// cannot stick across a pause.
func (s *Session) Release(c Control) {
	if a, ok := moveActions[c]; ok {
		s.actor.Intent.Set(a, false)
		return
	}
	switch c {
	case ControlSlow:
		s.actor.Slowed = false
	case ControlZoom:
		s.zoomed = false
	}
}

// Look applies a relative mouse movement.
func (s *Session) Look(dx, dy float32) {
	if !s.machine.Playing() {
		return
	}
	s.actor.Look.Update(dx, dy, s.cfg.Controls.MouseSensitivity)
}

// TouchLook applies a touch drag in pixels.
func (s *Session) TouchLook(dx, dy float32) {
	if !s.machine.Playing() {
		return
	}
	s.actor.Look.Update(dx, dy, s.cfg.Controls.TouchSensitivity)
}

// SelectStart handles the VR controller select (or gamepad primary
// button). While playing it walks forward until released; otherwise it
// requests the lock.
func (s *Session) SelectStart() {
	switch s.machine.Phase() {
	case states.Playing:
		s.triggerMovement = true
		s.actor.Intent.Forward = true
	case states.Ready, states.Paused:
		s.RequestLock()
	}
}

// SelectEnd releases select-driven movement.
func (s *Session) SelectEnd() {
	s.triggerMovement = false
	s.actor.Intent.Forward = false
}
