// Package frameloop drives the variable-step render loop.
package frameloop

import (
	"context"
	"time"
)

// Frame is one iteration of the loop.
type Frame struct {
	Now   time.Time
	Delta float64 // seconds since the previous frame, clamped
}

// Loop runs frames until the frame function asks to stop or the context is
// cancelled.
type Loop struct {
	// MaxDelta clamps long frames (debugger pauses, window drags). Zero
	// disables clamping.
	MaxDelta time.Duration
	// Clock returns the current time; nil uses time.Now.
	Clock func() time.Time
	// OnSecond, when set, is called about once per second with the number
	// of frames run since the previous call.
	OnSecond func(frames int, last Frame)
}

func (l Loop) now() time.Time {
	if l.Clock != nil {
		return l.Clock()
	}
	return time.Now()
}

// Run calls frame until it returns false, which yields nil, or until ctx is
// done, which yields ctx.Err(). The context is checked before every frame.
func (l Loop) Run(ctx context.Context, frame func(Frame) bool) error {
	last := l.now()
	statsAt := last
	frames := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := l.now()
		d := now.Sub(last)
		if l.MaxDelta > 0 && d > l.MaxDelta {
			d = l.MaxDelta
		}
		last = now

		f := Frame{Now: now, Delta: d.Seconds()}
		if !frame(f) {
			return nil
		}

		frames++
		if l.OnSecond != nil && now.Sub(statsAt) >= time.Second {
			l.OnSecond(frames, f)
			frames = 0
			statsAt = now
		}
	}
}
