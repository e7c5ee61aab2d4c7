// Package trigger finds proximity triggers in a level and reports when the
// player walks into or out of them.
package trigger

import (
	"strings"
	"time"

	"github.com/Faultbox/gallery-walk/internal/config"
	"github.com/Faultbox/gallery-walk/internal/scene"
)

// State is a trigger's proximity state.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Trigger is one named proximity zone centred on a scene node.
type Trigger struct {
	ID     string
	Text   string
	Radius float32
	Node   *scene.Node

	state      State
	lastChange time.Time

	bobAmplitude float32
	bobSpeed     float32
	bobPhase     float32
}

// State returns the current proximity state.
func (t *Trigger) State() State { return t.state }

// EnterEvent is emitted when the player enters a trigger's radius.
type EnterEvent struct {
	ID   string
	Text string
}

// ExitEvent is emitted when the player leaves a trigger's radius.
type ExitEvent struct {
	ID string
}

// Options configures trigger discovery and behaviour.
type Options struct {
	Prefix        string
	DefaultRadius float32
	Debounce      time.Duration
	Texts         map[string]string

	// Marker animation.
	ArrowOffset  float32
	BobAmplitude float32
	BobSpeed     float32
}

// DefaultOptions returns the stock trigger settings.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Triggers)
}

// OptionsFromConfig copies the triggers config section.
func OptionsFromConfig(c config.TriggerConfig) Options {
	return Options{
		Prefix:        c.Prefix,
		DefaultRadius: c.DefaultRadius,
		Debounce:      c.Debounce,
		Texts:         c.Texts,
		ArrowOffset:   c.ArrowOffset,
		BobAmplitude:  c.BobAmplitude,
		BobSpeed:      c.BobSpeed,
	}
}

// TriggerID derives a trigger id from a node name: the prefix and any
// leading underscores are removed. A bare prefix keeps the full name; a
// name of only underscores after the prefix yields an empty id.
func TriggerID(name, prefix string) string {
	raw := strings.TrimPrefix(name, prefix)
	if raw == "" {
		return name
	}
	return strings.TrimLeft(raw, "_")
}
