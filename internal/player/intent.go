package player

import (
	"fmt"

	"github.com/Faultbox/gallery-walk/internal/config"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Action is one movement or turn intent.
type Action int

// Unbound marks an axis half with no action.
const Unbound Action = -1

// Actions, in Intent field order.
const (
	Forward Action = iota
	Backward
	Left
	Right
	Up
	Down
	TurnLeft
	TurnRight
	TurnUp
	TurnDown
)

// Names are shared with config validation.
var actionNames = config.ActionNames

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction returns the action with the given config name.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Intent is the set of held movement and turn inputs. Input handlers write
// it; the integrator reads it once per sub-step.
type Intent struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool

	TurnLeft, TurnRight bool
	TurnUp, TurnDown    bool
}

// Set turns an action on or off.
func (i *Intent) Set(a Action, on bool) {
	switch a {
	case Forward:
		i.Forward = on
	case Backward:
		i.Backward = on
	case Left:
		i.Left = on
	case Right:
		i.Right = on
	case Up:
		i.Up = on
	case Down:
		i.Down = on
	case TurnLeft:
		i.TurnLeft = on
	case TurnRight:
		i.TurnRight = on
	case TurnUp:
		i.TurnUp = on
	case TurnDown:
		i.TurnDown = on
	}
}

// Direction is the normalized move direction: x = right - left,
// z = forward - backward. Opposing keys cancel to zero.
func (i Intent) Direction() math.Vec3 {
	return math.Vec3{
		X: axis(i.Right, i.Left),
		Z: axis(i.Forward, i.Backward),
	}.Normalize()
}

// TurnDirection is the normalized look-turn direction: x = right - left,
// z = up - down.
func (i Intent) TurnDirection() math.Vec3 {
	return math.Vec3{
		X: axis(i.TurnRight, i.TurnLeft),
		Z: axis(i.TurnUp, i.TurnDown),
	}.Normalize()
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}
