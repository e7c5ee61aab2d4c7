// Package game runs the interactive walkthrough: SDL window, input, the
// debug line renderer and the session that owns the simulation.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/config"
	"github.com/Faultbox/gallery-walk/internal/engine/camera"
	"github.com/Faultbox/gallery-walk/internal/engine/debug"
	"github.com/Faultbox/gallery-walk/internal/engine/frameloop"
	"github.com/Faultbox/gallery-walk/internal/engine/input"
	"github.com/Faultbox/gallery-walk/internal/engine/renderer"
	"github.com/Faultbox/gallery-walk/internal/engine/window"
	"github.com/Faultbox/gallery-walk/internal/game/states"
	"github.com/Faultbox/gallery-walk/internal/logger"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/internal/session"
	"github.com/Faultbox/gallery-walk/internal/trigger"
)

const (
	title        = "Gallery Walk"
	markerSize   = 0.5
	maxFrameTime = 100 * time.Millisecond
)

// Game is the main game instance.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FirstPersonCamera
	session  *session.Session
	keys     KeyMap
	shots    debug.Screenshots
	log      *zap.Logger
}

// New creates the window, renderer and session. pub may be nil.
func New(cfg *config.Config, pub session.Publisher) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Display.Width),
		zap.Int("height", cfg.Display.Height),
		zap.String("quality", cfg.Display.Quality),
	)

	g := &Game{
		cfg:    cfg,
		camera: camera.NewFirstPersonCamera(cfg.Display.FOV),
		keys:   DefaultKeyMap(),
		shots:  debug.Screenshots{Dir: "screenshots", Prefix: "gallery-walk", Format: cfg.Display.Screenshot},
		log:    log,
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:  title,
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		VSync:  cfg.Display.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since the OpenGL context must exist
	g.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Scale:  cfg.Display.RenderScale(),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	g.session, err = session.New(session.Options{
		Config:    cfg,
		Host:      g.window,
		Publisher: pub,
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	g.session.OnTriggerEnter(func(e trigger.EnterEvent) {
		g.window.SetTitle(title + " | " + e.Text)
	})
	g.session.OnTriggerExit(func(trigger.ExitEvent) {
		g.window.SetTitle(title)
	})

	log.Info("game initialized successfully")
	return g, nil
}

// Session returns the simulation session.
func (g *Game) Session() *session.Session {
	return g.session
}

// Load loads lvl and uploads its collider for drawing.
func (g *Game) Load(lvl *scene.Level) error {
	if err := g.session.Load(lvl); err != nil {
		return err
	}
	col := g.session.Collider()
	lines := debug.ColliderLines(col, debug.ColliderColor)
	if col.Index != nil && !col.Index.Bounds().IsEmpty() {
		lines = append(lines, debug.BoxLines(col.Index.Bounds(), debug.BoundsColor)...)
	}
	g.renderer.SetStatic(lines)
	return nil
}

// Run starts the main game loop. It returns when the window is closed or
// ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	g.running = true
	g.log.Info("starting game loop")

	loop := frameloop.Loop{
		MaxDelta: maxFrameTime,
		OnSecond: func(frames int, f frameloop.Frame) {
			g.log.Debug("fps", zap.Int("count", frames), zap.String("dt", fmt.Sprintf("%.2fms", f.Delta*1000)))
			g.session.PublishStatus()
		},
	}
	err := loop.Run(ctx, func(f frameloop.Frame) bool {
		// 1. Process input
		if g.input.Update() {
			return false
		}
		g.handleEvents()
		if !g.running {
			return false
		}

		// 2. Simulate
		g.session.Tick(float32(f.Delta), f.Now, g.input.Pads())

		// 3. Render
		g.render(f.Now)
		g.window.SwapBuffers()
		return true
	})
	g.running = false

	if errors.Is(err, context.Canceled) {
		g.log.Info("game loop interrupted")
		return nil
	}
	return err
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.renderer.Resize(event.Width, event.Height)

		case input.EventFocusLost:
			g.session.FocusLost()

		case input.EventKeyDown:
			g.keyDown(event.Key)

		case input.EventKeyUp:
			if c, ok := g.keys[event.Key]; ok {
				g.session.Release(c)
			}

		case input.EventMouseDown:
			if g.session.Phase() != states.Playing {
				g.session.RequestLock()
			}

		case input.EventMouseMove:
			g.session.Look(event.DX, event.DY)

		case input.EventTouchMove:
			w, h := g.window.GetSize()
			g.session.TouchLook(event.DX*float32(w), event.DY*float32(h))

		case input.EventButtonDown:
			if event.Button == uint8(sdl.CONTROLLER_BUTTON_A) {
				g.session.SelectStart()
			}

		case input.EventButtonUp:
			if event.Button == uint8(sdl.CONTROLLER_BUTTON_A) {
				g.session.SelectEnd()
			}
		}
	}
}

func (g *Game) keyDown(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_F12:
		g.screenshot()
		return
	case sdl.SCANCODE_F3:
		g.cycleQuality()
		return
	case sdl.SCANCODE_ESCAPE:
		// Escape unlocks while playing and quits otherwise.
		if g.session.Phase() != states.Playing {
			g.running = false
			return
		}
	}
	if c, ok := g.keys[key]; ok {
		g.session.Press(c)
	}
}

var qualities = []string{"high", "medium", "low"}

func (g *Game) cycleQuality() {
	next := qualities[0]
	for i, q := range qualities {
		if q == g.cfg.Display.Quality {
			next = qualities[(i+1)%len(qualities)]
		}
	}
	g.cfg.SetDisplayPreferences(g.cfg.Display.Fullscreen, next, g.cfg.Display.VR)
	g.renderer.SetScale(g.cfg.Display.RenderScale())
	g.log.Info("quality changed", zap.String("quality", next))
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.Capture()
	path, err := g.shots.Save(pixels, w, h, time.Now())
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) render(now time.Time) {
	actor := g.session.Actor()
	g.camera.Follow(actor.EyePosition(), actor.Look.Rotation())
	g.camera.Zoomed = g.session.Zoomed()

	var lines []debug.Vertex
	for _, m := range g.session.Markers(now) {
		color := debug.MarkerColor
		if m.Active {
			color = debug.ActiveColor
		}
		lines = append(lines, debug.ArrowLines(m.Position, markerSize, color)...)
	}

	viewProj := g.camera.ProjectionMatrix(g.renderer.Aspect()).Mul(g.camera.ViewMatrix())
	g.renderer.Frame(viewProj, lines)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")
	if g.session != nil {
		if err := g.session.Close(); err != nil {
			g.log.Warn("session close", zap.Error(err))
		}
	}
	if g.input != nil {
		g.input.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
