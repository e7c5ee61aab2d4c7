package player

import "github.com/Faultbox/gallery-walk/internal/config"

// Settings tunes the integrator and control loop.
type Settings struct {
	Gravity        float32 // vertical acceleration; positive floats upward
	Decceleration  float32 // horizontal velocity decay rate
	PlayerSpeed    float32
	SwimSpeed      float32
	PhysicsSteps   int
	JumpForce      float32
	GroundCheck    float32
	MaxVelocity    float32 // magnitude bound for vertical velocity
	HeadBob        bool
	GravityEnabled bool
	TurnSpeed      float32
	TurnDecay      float32
	VRSpeedFactor  float32
	SlowFactor     float32
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default().Controls)
}

// SettingsFromConfig copies tuning from the controls config section.
func SettingsFromConfig(c config.ControlsConfig) Settings {
	return Settings{
		Gravity:        c.Gravity,
		Decceleration:  c.Decceleration,
		PlayerSpeed:    c.PlayerSpeed,
		SwimSpeed:      c.SwimSpeed,
		PhysicsSteps:   c.PhysicsSteps,
		JumpForce:      c.JumpForce,
		GroundCheck:    c.GroundCheck,
		MaxVelocity:    c.MaxVelocity,
		HeadBob:        c.HeadBob,
		GravityEnabled: c.GravityEnabled,
		TurnSpeed:      c.TurnSpeed,
		TurnDecay:      4,
		VRSpeedFactor:  c.VRSpeedFactor,
		SlowFactor:     c.SlowFactor,
	}
}
