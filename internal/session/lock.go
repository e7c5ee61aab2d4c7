package session

import (
	"fmt"

	"go.uber.org/zap"
)

// Host is the windowing environment that grants pointer lock and
// fullscreen.
type Host interface {
	IsFullscreen() bool
	SetFullscreen(on bool) error
	SetPointerLock(on bool) error
}

// Locker acquires and releases pointer lock, optionally going fullscreen
// first.
type Locker struct {
	host       Host
	Fullscreen bool
	VR         bool
	log        *zap.Logger
}

// Lock requests fullscreen when configured (never in VR) and then pointer
// lock. A fullscreen failure is logged and lock is still attempted.
func (l *Locker) Lock() error {
	if l.Fullscreen && !l.VR && !l.host.IsFullscreen() {
		if err := l.host.SetFullscreen(true); err != nil {
			l.log.Error("fullscreen request failed", zap.Error(err))
		}
	}
	if err := l.host.SetPointerLock(true); err != nil {
		return fmt.Errorf("pointer lock: %w", err)
	}
	return nil
}

// Unlock releases pointer lock.
func (l *Locker) Unlock() error {
	if err := l.host.SetPointerLock(false); err != nil {
		return fmt.Errorf("pointer unlock: %w", err)
	}
	return nil
}
