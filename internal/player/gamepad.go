package player

import (
	"fmt"

	"github.com/Faultbox/gallery-walk/internal/config"
)

// AxisBinding maps the two halves of a gamepad axis to actions. Either half
// may be Unbound.
type AxisBinding struct {
	Axis     int
	Positive Action
	Negative Action
}

// GamepadMapper turns raw axis arrays into move intents.
type GamepadMapper struct {
	Threshold float32
	Bindings  []AxisBinding
}

// DefaultGamepadMapper maps both sticks to strafe and walk.
func DefaultGamepadMapper() GamepadMapper {
	m, _ := GamepadMapperFromConfig(config.Default().Input)
	return m
}

// GamepadMapperFromConfig builds a mapper from the input config section.
func GamepadMapperFromConfig(c config.InputConfig) (GamepadMapper, error) {
	m := GamepadMapper{Threshold: c.GamepadThreshold}
	for _, b := range c.Axes {
		pos, err := parseBinding(b.Positive)
		if err != nil {
			return GamepadMapper{}, fmt.Errorf("axis %d: %w", b.Axis, err)
		}
		neg, err := parseBinding(b.Negative)
		if err != nil {
			return GamepadMapper{}, fmt.Errorf("axis %d: %w", b.Axis, err)
		}
		m.Bindings = append(m.Bindings, AxisBinding{Axis: b.Axis, Positive: pos, Negative: neg})
	}
	return m, nil
}

func parseBinding(name string) (Action, error) {
	if name == "" {
		return Unbound, nil
	}
	return ParseAction(name)
}

// Actions returns the union of actions pushed past the threshold across
// all pads. Missing axes read as centred.
func (m GamepadMapper) Actions(pads [][]float32) map[Action]bool {
	out := make(map[Action]bool)
	for _, axes := range pads {
		for _, b := range m.Bindings {
			if b.Axis < 0 || b.Axis >= len(axes) {
				continue
			}
			v := axes[b.Axis]
			if v > m.Threshold && b.Positive != Unbound {
				out[b.Positive] = true
			}
			if v < -m.Threshold && b.Negative != Unbound {
				out[b.Negative] = true
			}
		}
	}
	return out
}

// Apply writes every bound intent from the pads. While the trigger is
// held, axes are ignored and forward is forced.
func (m GamepadMapper) Apply(intent *Intent, pads [][]float32, triggerHeld bool) {
	if triggerHeld {
		intent.Forward = true
		return
	}
	set := m.Actions(pads)
	for _, b := range m.Bindings {
		for _, a := range [...]Action{b.Positive, b.Negative} {
			if a != Unbound {
				intent.Set(a, set[a])
			}
		}
	}
}
