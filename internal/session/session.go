// Package session ties the walkthrough together independent of the window
// system: lifecycle phases, pointer lock, input gating, the control loop,
// level loading and proximity triggers.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/collision"
	"github.com/Faultbox/gallery-walk/internal/config"
	"github.com/Faultbox/gallery-walk/internal/game/states"
	"github.com/Faultbox/gallery-walk/internal/logger"
	"github.com/Faultbox/gallery-walk/internal/overlay"
	"github.com/Faultbox/gallery-walk/internal/player"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/internal/trigger"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Publisher receives overlay messages. *overlay.Hub implements it.
type Publisher interface {
	Publish(m overlay.Message)
}

// Options are the session's collaborators.
type Options struct {
	Config    *config.Config
	Host      Host
	Publisher Publisher              // optional
	Rand      *rand.Rand             // marker phases; nil uses the global source
	Index     collision.IndexFactory // nil uses the BVH
}

// Session owns one walkthrough: the actor, its controls and the loaded
// level. All methods must be called from the main loop.
type Session struct {
	cfg      *config.Config
	machine  *states.Machine
	locker   *Locker
	actor    *player.Actor
	controls *player.Controls
	gamepad  player.GamepadMapper
	builder  *collision.Builder
	pub      Publisher
	rng      *rand.Rand

	level    *scene.Level
	scanner  *trigger.Scanner
	collider *collision.Collider

	triggerMovement bool
	padHeld         bool // a stick was past the threshold last frame
	zoomed          bool

	onEnter []func(trigger.EnterEvent)
	onExit  []func(trigger.ExitEvent)

	log *zap.Logger
}

// New builds a session in the loading phase.
func New(opts Options) (*Session, error) {
	if opts.Host == nil {
		return nil, errors.New("session: host is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	gamepad, err := player.GamepadMapperFromConfig(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("gamepad bindings: %w", err)
	}

	log := logger.Named("session")
	actor := player.NewActor(collision.NewCapsule(cfg.Actor.Radius, cfg.Actor.Height))
	actor.Noclip = cfg.Controls.Noclip
	actor.Flying = cfg.Controls.Flying

	s := &Session{
		cfg:     cfg,
		machine: states.NewMachine(),
		locker: &Locker{
			host:       opts.Host,
			Fullscreen: cfg.Display.Fullscreen,
			VR:         cfg.Display.VR,
			log:        log,
		},
		actor:   actor,
		gamepad: gamepad,
		builder: collision.NewBuilder(opts.Index),
		pub:     opts.Publisher,
		rng:     opts.Rand,
		log:     log,
	}
	s.controls = player.NewControls(actor, player.SettingsFromConfig(cfg.Controls), s.machine.Playing)
	s.controls.VR = cfg.Display.VR
	s.machine.Subscribe(s.phaseChanged)
	return s, nil
}

func (s *Session) phaseChanged(c states.Change) {
	s.log.Info("phase changed", zap.Stringer("from", c.From), zap.Stringer("to", c.To))
	if c.From == states.Playing {
		s.actor.Intent = player.Intent{}
		s.actor.Slowed = false
		s.triggerMovement = false
		s.padHeld = false
		s.zoomed = false
	}
	s.publish(overlay.PhaseChanged(c))
}

func (s *Session) publish(m overlay.Message) {
	if s.pub != nil {
		s.pub.Publish(m)
	}
}

// Load replaces the current level. Triggers are scanned first so their
// subtrees are excluded from the collider. On success the session is
// ready to lock.
func (s *Session) Load(lvl *scene.Level) error {
	if lvl == nil || lvl.Root == nil {
		return errors.New("session: empty level")
	}
	if err := s.machine.Set(states.Loading); err != nil {
		return err
	}
	s.unload()

	s.scanner = trigger.NewScanner(lvl.Root, trigger.OptionsFromConfig(s.cfg.Triggers), s.rng)
	s.scanner.OnEnter(s.triggerEntered)
	s.scanner.OnExit(s.triggerExited)

	col, err := s.builder.Build(lvl.Root)
	if err != nil {
		return fmt.Errorf("building collider: %w", err)
	}
	s.collider = col
	s.controls.SetCollider(col)
	s.level = lvl

	s.spawn(lvl.Spawn)
	s.log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("triangles", col.TriangleCount()),
		zap.Int("triggers", len(s.scanner.Triggers())),
	)
	return s.machine.Set(states.Ready)
}

// spawn places the actor. Non-zero config spawn values override the
// level's.
func (s *Session) spawn(sp scene.Spawn) {
	pos, dir := sp.Position, sp.Direction
	if p := s.cfg.Actor.SpawnPosition; p != [3]float32{} {
		pos = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	if d := s.cfg.Actor.SpawnDirection; d != [3]float32{} {
		dir = math.Vec3{X: d[0], Y: d[1], Z: d[2]}
	}
	s.actor.Teleport(pos)
	s.actor.OnGround = true
	s.actor.Look.LookAt(dir)
}

func (s *Session) unload() {
	if s.scanner != nil {
		s.scanner.Dispose()
		s.scanner = nil
	}
	if s.collider != nil {
		s.controls.SetCollider(nil)
		s.collider.Dispose()
		s.collider = nil
	}
	s.level = nil
}

func (s *Session) triggerEntered(e trigger.EnterEvent) {
	s.log.Info("entered trigger", zap.String("id", e.ID))
	s.publish(overlay.TriggerEnter(e))
	for _, fn := range s.onEnter {
		fn(e)
	}
}

func (s *Session) triggerExited(e trigger.ExitEvent) {
	s.publish(overlay.TriggerExit(e))
	for _, fn := range s.onExit {
		fn(e)
	}
}

// OnTriggerEnter registers fn for trigger enter events of every level.
func (s *Session) OnTriggerEnter(fn func(trigger.EnterEvent)) {
	s.onEnter = append(s.onEnter, fn)
}

// OnTriggerExit registers fn for trigger exit events of every level.
func (s *Session) OnTriggerExit(fn func(trigger.ExitEvent)) {
	s.onExit = append(s.onExit, fn)
}

// RequestLock locks the pointer and starts playing. Failures are logged
// and leave the phase unchanged so the user can retry.
func (s *Session) RequestLock() error {
	p := s.machine.Phase()
	if p != states.Ready && p != states.Paused {
		return nil
	}
	if err := s.locker.Lock(); err != nil {
		s.log.Error("lock request failed", zap.Error(err))
		return err
	}
	return s.machine.Set(states.Playing)
}

// Unlock releases the pointer and pauses.
func (s *Session) Unlock() {
	if !s.machine.Playing() {
		return
	}
	if err := s.locker.Unlock(); err != nil {
		s.log.Warn("unlock failed", zap.Error(err))
	}
	if err := s.machine.Set(states.Paused); err != nil {
		s.log.Error("pause failed", zap.Error(err))
	}
}

// FocusLost pauses when the window loses focus while playing, the same way
// an explicit unlock does.
func (s *Session) FocusLost() {
	if !s.machine.Playing() {
		return
	}
	s.log.Info("focus lost")
	s.Unlock()
}

// Tick runs one rendered frame: gamepad intents, the control loop, then
// the trigger scan at the camera position.
func (s *Session) Tick(frameDelta float32, now time.Time, pads [][]float32) {
	if s.machine.Playing() {
		s.applyPads(pads)
	}
	s.controls.Tick(frameDelta)
	if s.scanner != nil {
		s.scanner.Tick(s.actor.EyePosition(), now)
	}
}

// applyPads lets the sticks drive planar intents while pushed, and releases
// them once on return to centre. Idle pads leave keyboard intents alone.
func (s *Session) applyPads(pads [][]float32) {
	if s.triggerMovement {
		s.gamepad.Apply(&s.actor.Intent, pads, true)
		return
	}
	held := len(s.gamepad.Actions(pads)) > 0
	if held || s.padHeld {
		s.gamepad.Apply(&s.actor.Intent, pads, false)
	}
	s.padHeld = held
}

// PublishStatus sends an actor snapshot to the overlay.
func (s *Session) PublishStatus() {
	s.publish(overlay.Actor(s.actor))
}

// Close tears the level down and ends the session.
func (s *Session) Close() error {
	if s.machine.Playing() {
		s.Unlock()
	}
	s.unload()
	if s.machine.Phase() == states.Done {
		return nil
	}
	return s.machine.Set(states.Done)
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() states.Phase { return s.machine.Phase() }

// Actor returns the player.
func (s *Session) Actor() *player.Actor { return s.actor }

// Controls returns the control loop.
func (s *Session) Controls() *player.Controls { return s.controls }

// Collider returns the active level collider, or nil.
func (s *Session) Collider() *collision.Collider { return s.collider }

// Level returns the loaded level, or nil.
func (s *Session) Level() *scene.Level { return s.level }

// Zoomed reports whether zoom is held.
func (s *Session) Zoomed() bool { return s.zoomed }

// Markers returns trigger marker positions at now.
func (s *Session) Markers(now time.Time) []trigger.Marker {
	if s.scanner == nil {
		return nil
	}
	return s.scanner.Markers(now)
}
