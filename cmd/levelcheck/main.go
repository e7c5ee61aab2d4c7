// Package main provides a headless checker for level files.
//
// It builds the collider and triggers for a level, drops the actor at the
// spawn point and optionally walks it forward, reporting where it ends up
// and which triggers fired along the way.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Faultbox/gallery-walk/internal/config"
	"github.com/Faultbox/gallery-walk/internal/logger"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/internal/session"
	"github.com/Faultbox/gallery-walk/internal/trigger"
)

var (
	flagSeconds = flag.Float64("seconds", 2, "Seconds to let the actor settle")
	flagWalk    = flag.Float64("walk", 0, "Seconds to walk forward after settling")
	flagFPS     = flag.Int("fps", 60, "Simulated frame rate")
)

// headless grants pointer lock without a window.
type headless struct{}

func (headless) IsFullscreen() bool        { return false }
func (headless) SetFullscreen(bool) error  { return nil }
func (headless) SetPointerLock(bool) error { return nil }

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if *flagFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", *flagFPS)
	}

	lvl, err := scene.LoadLevel(cfg.Level.Path)
	if err != nil {
		return err
	}

	s, err := session.New(session.Options{Config: cfg, Host: headless{}})
	if err != nil {
		return err
	}
	defer s.Close()

	var fired []string
	s.OnTriggerEnter(func(e trigger.EnterEvent) {
		fired = append(fired, fmt.Sprintf("enter %s: %q", e.ID, e.Text))
	})
	s.OnTriggerExit(func(e trigger.ExitEvent) {
		fired = append(fired, "exit "+e.ID)
	})

	if err := s.Load(lvl); err != nil {
		return err
	}

	col := s.Collider()
	fmt.Printf("Level:     %s (%s)\n", lvl.Name, cfg.Level.Path)
	fmt.Printf("Triangles: %d\n", col.TriangleCount())
	if col.Index != nil && !col.Index.Bounds().IsEmpty() {
		b := col.Index.Bounds()
		fmt.Printf("Bounds:    [%.2f, %.2f, %.2f] - [%.2f, %.2f, %.2f]\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}

	markers := s.Markers(time.Time{})
	fmt.Printf("Triggers:  %d\n", len(markers))
	for _, m := range markers {
		fmt.Printf("  %-16s [%.2f, %.2f, %.2f]\n", m.ID, m.Position.X, m.Position.Y, m.Position.Z)
	}

	if err := s.RequestLock(); err != nil {
		return err
	}

	dt := float32(1) / float32(*flagFPS)
	now := time.Now()
	step := func(seconds float64) {
		frames := int(seconds * float64(*flagFPS))
		for i := 0; i < frames; i++ {
			now = now.Add(time.Duration(float64(dt) * float64(time.Second)))
			s.Tick(dt, now, nil)
		}
	}

	step(*flagSeconds)
	report("Settled", s)

	if *flagWalk > 0 {
		s.Press(session.ControlForward)
		step(*flagWalk)
		s.Release(session.ControlForward)
		report("Walked", s)
	}

	if len(fired) > 0 {
		fmt.Println("Trigger events:")
		for _, f := range fired {
			fmt.Println("  " + f)
		}
	}
	return nil
}

func report(label string, s *session.Session) {
	a := s.Actor()
	fmt.Printf("%-9s  position [%.3f, %.3f, %.3f] mode=%s on_ground=%v\n",
		label+":", a.Position.X, a.Position.Y, a.Position.Z, a.Mode(), a.OnGround)
}
