// Package config handles walkthrough configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Config holds all walkthrough settings.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Controls ControlsConfig `yaml:"controls"`
	Actor    ActorConfig    `yaml:"actor"`
	Triggers TriggerConfig  `yaml:"triggers"`
	Input    InputConfig    `yaml:"input"`
	Level    LevelConfig    `yaml:"level"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DisplayConfig holds window and presentation settings.
type DisplayConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"` // request fullscreen before pointer lock
	VSync      bool    `yaml:"vsync"`
	Quality    string  `yaml:"quality"` // high, medium, low
	FOV        float32 `yaml:"fov"`     // vertical, degrees
	VR         bool    `yaml:"vr"`
	Screenshot string  `yaml:"screenshot"` // png or bmp
}

// ControlsConfig holds movement tuning. Names follow the in-game settings.
type ControlsConfig struct {
	Gravity          float32 `yaml:"gravity"`
	Decceleration    float32 `yaml:"decceleration"`
	PlayerSpeed      float32 `yaml:"player_speed"`
	SwimSpeed        float32 `yaml:"swim_speed"`
	PhysicsSteps     int     `yaml:"physics_steps"`
	JumpForce        float32 `yaml:"jump_force"`
	GroundCheck      float32 `yaml:"ground_check"`
	MaxVelocity      float32 `yaml:"max_velocity"`
	HeadBob          bool    `yaml:"head_bob"`
	GravityEnabled   bool    `yaml:"gravity_enabled"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	TouchSensitivity float32 `yaml:"touch_sensitivity"`
	TurnSpeed        float32 `yaml:"turn_speed"`
	VRSpeedFactor    float32 `yaml:"vr_speed_factor"`
	SlowFactor       float32 `yaml:"slow_factor"`
	Noclip           bool    `yaml:"noclip"`
	Flying           bool    `yaml:"flying"`
}

// ActorConfig describes the player body and where it starts.
type ActorConfig struct {
	Radius         float32    `yaml:"radius"`
	Height         float32    `yaml:"height"`
	SpawnPosition  [3]float32 `yaml:"spawn_position"`
	SpawnDirection [3]float32 `yaml:"spawn_direction"`
}

// TriggerConfig holds proximity trigger settings.
type TriggerConfig struct {
	Prefix        string            `yaml:"prefix"`
	DefaultRadius float32           `yaml:"default_radius"`
	Debounce      time.Duration     `yaml:"debounce"`
	ArrowOffset   float32           `yaml:"arrow_offset"`
	BobAmplitude  float32           `yaml:"bob_amplitude"`
	BobSpeed      float32           `yaml:"bob_speed"`
	Texts         map[string]string `yaml:"texts"`
}

// InputConfig holds gamepad settings.
type InputConfig struct {
	GamepadThreshold float32       `yaml:"gamepad_threshold"`
	Axes             []AxisBinding `yaml:"axes"`
}

// ActionNames are the movement and turn actions input bindings may name,
// in player.Action order.
var ActionNames = []string{
	"forward", "backward",
	"left", "right",
	"up", "down",
	"turn_left", "turn_right",
	"turn_up", "turn_down",
}

// ValidBinding reports whether name may be bound to an axis half. Empty
// leaves the half unbound.
func ValidBinding(name string) bool {
	return name == "" || slices.Contains(ActionNames, name)
}

// AxisBinding maps one gamepad axis to a pair of actions.
type AxisBinding struct {
	Axis     int    `yaml:"axis"`
	Positive string `yaml:"positive"`
	Negative string `yaml:"negative"`
}

// LevelConfig points at the level file.
type LevelConfig struct {
	Path string `yaml:"path"`
}

// OverlayConfig holds the websocket overlay bridge settings.
type OverlayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: true,
			VSync:      true,
			Quality:    "high",
			FOV:        75,
			Screenshot: "png",
		},
		Controls: ControlsConfig{
			Gravity:          -5,
			Decceleration:    7,
			PlayerSpeed:      40,
			SwimSpeed:        2,
			PhysicsSteps:     10,
			JumpForce:        2,
			GroundCheck:      0.25,
			MaxVelocity:      -60,
			HeadBob:          true,
			GravityEnabled:   true,
			MouseSensitivity: 0.002,
			TouchSensitivity: 0.01,
			TurnSpeed:        0.005,
			VRSpeedFactor:    0.75,
			SlowFactor:       0.5,
		},
		Actor: ActorConfig{
			Radius: 0.4,
			Height: 2,
		},
		Triggers: TriggerConfig{
			Prefix:        "TextTrigger",
			DefaultRadius: 5,
			Debounce:      200 * time.Millisecond,
			ArrowOffset:   4.5,
			BobAmplitude:  0.25,
			BobSpeed:      0.5,
			Texts:         DefaultTexts(),
		},
		Input: InputConfig{
			GamepadThreshold: 0.5,
			Axes: []AxisBinding{
				{Axis: 0, Positive: "right", Negative: "left"},
				{Axis: 1, Positive: "backward", Negative: "forward"},
				{Axis: 2, Positive: "right", Negative: "left"},
				{Axis: 3, Positive: "backward", Negative: "forward"},
			},
		},
		Level: LevelConfig{
			Path: "levels/gallery.yaml",
		},
		Overlay: OverlayConfig{
			Enabled: false,
			Listen:  "127.0.0.1:8765",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultTexts returns the built-in trigger id -> display text map.
func DefaultTexts() map[string]string {
	return map[string]string{
		"intro":   "Welcome to this interactive gallery! Walk (arrow keys or WASD) towards the glowing boxes. They will guide you in the intended order of visiting the exhibits.",
		"bio":     "This is an interactive gallery. Move the mouse to look around. Press Z to zoom to take a closer look at pictures. Keep moving to the next glowing box you see.",
		"aboutme": "I've lived in a lot of places, but I've spent most of my life in the Chicago area.",
		"hobbies": "I love learning new skills. Here are some samples of my woodworking, leathercrafting, and a behind-the scenes of this current project.",
		"travel":  "I love to travel too; so many mysteries in this world. I want to uncover them all!",
		"thanks":  "Thanks for walking through this display. Though we've finished here, the real-life journey doesn't end here. I hope you enjoyed it! (Press Esc to exit)",
	}
}

// RenderScale returns the framebuffer scale for the configured quality.
func (d DisplayConfig) RenderScale() float32 {
	switch d.Quality {
	case "medium":
		return 0.75
	case "low":
		return 0.5
	default:
		return 1
	}
}

// Validate reports settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Controls.PhysicsSteps < 1 {
		errs = append(errs, fmt.Errorf("controls.physics_steps must be >= 1, got %d", c.Controls.PhysicsSteps))
	}
	if c.Controls.Decceleration < 0 {
		errs = append(errs, fmt.Errorf("controls.decceleration must be >= 0, got %v", c.Controls.Decceleration))
	}
	if c.Actor.Radius <= 0 {
		errs = append(errs, fmt.Errorf("actor.radius must be > 0, got %v", c.Actor.Radius))
	}
	if c.Actor.Height < 0 {
		errs = append(errs, fmt.Errorf("actor.height must be >= 0, got %v", c.Actor.Height))
	}
	if c.Triggers.DefaultRadius < 0 {
		errs = append(errs, fmt.Errorf("triggers.default_radius must be >= 0, got %v", c.Triggers.DefaultRadius))
	}
	if c.Triggers.Debounce < 0 {
		errs = append(errs, fmt.Errorf("triggers.debounce must be >= 0, got %v", c.Triggers.Debounce))
	}
	switch c.Display.Quality {
	case "high", "medium", "low":
	default:
		errs = append(errs, fmt.Errorf("display.quality must be high, medium or low, got %q", c.Display.Quality))
	}
	switch c.Display.Screenshot {
	case "png", "bmp":
	default:
		errs = append(errs, fmt.Errorf("display.screenshot must be png or bmp, got %q", c.Display.Screenshot))
	}
	for _, b := range c.Input.Axes {
		for _, name := range []string{b.Positive, b.Negative} {
			if !ValidBinding(name) {
				errs = append(errs, fmt.Errorf("input.axes[%d]: unknown action %q", b.Axis, name))
			}
		}
	}
	return errors.Join(errs...)
}
