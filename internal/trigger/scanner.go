package trigger

import (
	gomath "math"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/logger"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Marker is a bobbing arrow drawn above a trigger.
type Marker struct {
	ID       string
	Position math.Vec3
	Active   bool
}

// Scanner holds the triggers of one level and tracks the player against
// them. It is driven once per rendered frame from the main loop.
type Scanner struct {
	opts     Options
	triggers []*Trigger

	onEnter []func(EnterEvent)
	onExit  []func(ExitEvent)

	log *zap.Logger
}

// NewScanner collects every node under root whose name starts with the
// trigger prefix and marks its subtree non-physical, so it must run before
// the collider is built. rng seeds the marker bob phases; nil uses the
// global source.
func NewScanner(root *scene.Node, opts Options, rng *rand.Rand) *Scanner {
	s := &Scanner{
		opts: opts,
		log:  logger.Named("trigger"),
	}
	if root == nil {
		return s
	}

	phase := rand.Float32
	if rng != nil {
		phase = rng.Float32
	}

	root.Traverse(func(n *scene.Node) {
		if opts.Prefix == "" || !strings.HasPrefix(n.Name, opts.Prefix) {
			return
		}
		n.MarkNonPhysical()

		id := TriggerID(n.Name, opts.Prefix)
		t := &Trigger{
			ID:           id,
			Text:         s.text(n, id),
			Radius:       opts.DefaultRadius,
			Node:         n,
			bobAmplitude: opts.BobAmplitude,
			bobSpeed:     opts.BobSpeed,
			bobPhase:     phase() * 2 * gomath.Pi,
		}
		if n.UserData.Radius != 0 {
			t.Radius = n.UserData.Radius
		}
		if n.UserData.BobAmplitude != 0 {
			t.bobAmplitude = n.UserData.BobAmplitude
		}
		if n.UserData.BobSpeed != 0 {
			t.bobSpeed = n.UserData.BobSpeed
		}
		s.triggers = append(s.triggers, t)
	})

	s.log.Debug("triggers scanned", zap.Int("count", len(s.triggers)))
	return s
}

func (s *Scanner) text(n *scene.Node, id string) string {
	if n.UserData.Text != "" {
		return n.UserData.Text
	}
	if t := s.opts.Texts[id]; t != "" {
		return t
	}
	if id != "" {
		return id
	}
	return n.Name
}

// OnEnter registers fn for enter events.
func (s *Scanner) OnEnter(fn func(EnterEvent)) {
	s.onEnter = append(s.onEnter, fn)
}

// OnExit registers fn for exit events.
func (s *Scanner) OnExit(fn func(ExitEvent)) {
	s.onExit = append(s.onExit, fn)
}

// Triggers returns the scanned triggers in scene order.
func (s *Scanner) Triggers() []*Trigger {
	return s.triggers
}

// Tick compares pos with every trigger's current world position and
// emits enter/exit events. A trigger only changes state once the debounce
// window since its previous change has elapsed.
func (s *Scanner) Tick(pos math.Vec3, now time.Time) {
	for _, t := range s.triggers {
		if now.Sub(t.lastChange) < s.opts.Debounce {
			continue
		}
		inside := pos.Sub(t.Node.WorldPosition()).Length() <= t.Radius

		switch {
		case t.state == Idle && inside:
			t.state = Active
			t.lastChange = now
			s.log.Debug("trigger enter", zap.String("id", t.ID))
			for _, fn := range s.onEnter {
				fn(EnterEvent{ID: t.ID, Text: t.Text})
			}
		case t.state == Active && !inside:
			t.state = Idle
			t.lastChange = now
			s.log.Debug("trigger exit", zap.String("id", t.ID))
			for _, fn := range s.onExit {
				fn(ExitEvent{ID: t.ID})
			}
		}
	}
}

// Markers returns the arrow positions at time now.
func (s *Scanner) Markers(now time.Time) []Marker {
	secs := float64(now.UnixNano()) / float64(time.Second)
	out := make([]Marker, 0, len(s.triggers))
	for _, t := range s.triggers {
		bob := gomath.Sin(secs*float64(t.bobSpeed)*2*gomath.Pi + float64(t.bobPhase))
		p := t.Node.WorldPosition()
		p.Y += s.opts.ArrowOffset + float32(bob)*t.bobAmplitude
		out = append(out, Marker{ID: t.ID, Position: p, Active: t.state == Active})
	}
	return out
}

// Dispose drops all triggers and their markers.
func (s *Scanner) Dispose() {
	s.triggers = nil
}
