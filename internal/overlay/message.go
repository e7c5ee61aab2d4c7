package overlay

import (
	"github.com/Faultbox/gallery-walk/internal/game/states"
	"github.com/Faultbox/gallery-walk/internal/player"
	"github.com/Faultbox/gallery-walk/internal/trigger"
)

// Message types.
const (
	TypeTriggerEnter = "trigger_enter"
	TypeTriggerExit  = "trigger_exit"
	TypePhase        = "phase"
	TypeActor        = "actor"
)

// Message is one JSON frame sent to overlay clients.
type Message struct {
	Type string `json:"type"`

	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`

	Phase string `json:"phase,omitempty"`

	Actor *ActorStatus `json:"actor,omitempty"`
}

// ActorStatus is the actor snapshot shown by the overlay.
type ActorStatus struct {
	Position   [3]float32 `json:"position"`
	Mode       string     `json:"mode"`
	OnGround   bool       `json:"on_ground"`
	Underwater bool       `json:"underwater"`
	Flying     bool       `json:"flying"`
}

// TriggerEnter wraps a trigger enter event.
func TriggerEnter(e trigger.EnterEvent) Message {
	return Message{Type: TypeTriggerEnter, ID: e.ID, Text: e.Text}
}

// TriggerExit wraps a trigger exit event.
func TriggerExit(e trigger.ExitEvent) Message {
	return Message{Type: TypeTriggerExit, ID: e.ID}
}

// PhaseChanged wraps a lifecycle change.
func PhaseChanged(c states.Change) Message {
	return Message{Type: TypePhase, Phase: c.To.String()}
}

// Actor snapshots a.
func Actor(a *player.Actor) Message {
	return Message{Type: TypeActor, Actor: &ActorStatus{
		Position:   [3]float32{a.Position.X, a.Position.Y, a.Position.Z},
		Mode:       a.Mode().String(),
		OnGround:   a.OnGround,
		Underwater: a.Underwater,
		Flying:     a.Flying,
	}}
}
