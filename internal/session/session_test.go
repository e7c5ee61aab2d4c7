package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gallery-walk/internal/config"
	"github.com/Faultbox/gallery-walk/internal/game/states"
	"github.com/Faultbox/gallery-walk/internal/overlay"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/internal/trigger"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

type fakeHost struct {
	fullscreen    bool
	fullscreenErr error
	lockErr       error
	calls         []string
}

func (h *fakeHost) IsFullscreen() bool { return h.fullscreen }

func (h *fakeHost) SetFullscreen(on bool) error {
	h.calls = append(h.calls, fmt.Sprintf("fullscreen:%v", on))
	if h.fullscreenErr != nil {
		return h.fullscreenErr
	}
	h.fullscreen = on
	return nil
}

func (h *fakeHost) SetPointerLock(on bool) error {
	h.calls = append(h.calls, fmt.Sprintf("lock:%v", on))
	return h.lockErr
}

type recorder struct {
	msgs []overlay.Message
}

func (r *recorder) Publish(m overlay.Message) { r.msgs = append(r.msgs, m) }

func (r *recorder) types() []string {
	var out []string
	for _, m := range r.msgs {
		out = append(out, m.Type+":"+m.Phase+m.ID)
	}
	return out
}

func testLevel() *scene.Level {
	root := scene.NewNode("gallery")
	root.Add(scene.NewMesh("floor", scene.PlaneGeometry(100, 100)))

	tr := scene.NewMesh("TextTrigger_intro", scene.BoxGeometry(1, 1, 1))
	tr.Position = math.Vec3{Z: -10}
	root.Add(tr)

	return &scene.Level{
		Name:  "test",
		Root:  root,
		Spawn: scene.Spawn{Position: math.Vec3{Y: 2.4}, Direction: math.Vec3{Z: -1}},
	}
}

func newSession(t *testing.T, mutate func(*config.Config)) (*Session, *fakeHost, *recorder) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	host := &fakeHost{}
	rec := &recorder{}
	s, err := New(Options{
		Config:    cfg,
		Host:      host,
		Publisher: rec,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	})
	require.NoError(t, err)
	return s, host, rec
}

func loaded(t *testing.T, mutate func(*config.Config)) (*Session, *fakeHost, *recorder) {
	t.Helper()
	s, host, rec := newSession(t, mutate)
	require.NoError(t, s.Load(testLevel()))
	return s, host, rec
}

func TestNewRequiresHost(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNewRejectsBadBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Axes[0].Positive = "sideways"
	_, err := New(Options{Config: cfg, Host: &fakeHost{}})
	assert.Error(t, err)
}

func TestNewAcceptsHalfBoundAxis(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Axes = append(cfg.Input.Axes, config.AxisBinding{Axis: 4, Positive: "forward"})
	require.NoError(t, cfg.Validate())

	_, err := New(Options{Config: cfg, Host: &fakeHost{}})
	assert.NoError(t, err)
}

func TestLoad(t *testing.T) {
	s, _, rec := newSession(t, nil)
	assert.Equal(t, states.Loading, s.Phase())

	require.NoError(t, s.Load(testLevel()))
	assert.Equal(t, states.Ready, s.Phase())
	assert.Equal(t, 2, s.Collider().TriangleCount(), "trigger box excluded")
	assert.Equal(t, math.Vec3{Y: 2.4}, s.Actor().Position)
	assert.Len(t, s.Markers(time.Now()), 1)
	assert.Equal(t, []string{"phase:ready"}, rec.types())

	assert.Error(t, s.Load(nil))
}

func TestConfigSpawnOverridesLevel(t *testing.T) {
	s, _, _ := loaded(t, func(c *config.Config) {
		c.Actor.SpawnPosition = [3]float32{5, 3, 5}
	})
	assert.Equal(t, math.Vec3{X: 5, Y: 3, Z: 5}, s.Actor().Position)
}

func TestRequestLock(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		host   fakeHost
		want   []string
	}{
		{"fullscreen first", nil, fakeHost{}, []string{"fullscreen:true", "lock:true"}},
		{"already fullscreen", nil, fakeHost{fullscreen: true}, []string{"lock:true"}},
		{"windowed", func(c *config.Config) { c.Display.Fullscreen = false }, fakeHost{}, []string{"lock:true"}},
		{"vr never fullscreen", func(c *config.Config) { c.Display.VR = true }, fakeHost{}, []string{"lock:true"}},
		{"fullscreen failure still locks", nil, fakeHost{fullscreenErr: errors.New("denied")}, []string{"fullscreen:true", "lock:true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, host, _ := loaded(t, tt.mutate)
			*host = tt.host

			require.NoError(t, s.RequestLock())
			assert.Equal(t, tt.want, host.calls)
			assert.Equal(t, states.Playing, s.Phase())
		})
	}
}

func TestLockFailureKeepsPhase(t *testing.T) {
	s, host, _ := loaded(t, nil)
	host.lockErr = errors.New("rejected")

	assert.Error(t, s.RequestLock())
	assert.Equal(t, states.Ready, s.Phase())

	s.Press(ControlForward)
	assert.False(t, s.Actor().Intent.Forward, "input gated while not playing")

	host.lockErr = nil
	require.NoError(t, s.RequestLock(), "retry succeeds")
	assert.Equal(t, states.Playing, s.Phase())
}

func TestRequestLockWhileLoading(t *testing.T) {
	s, host, _ := newSession(t, nil)
	require.NoError(t, s.RequestLock())
	assert.Empty(t, host.calls)
	assert.Equal(t, states.Loading, s.Phase())
}

func TestInputGatingAndUnlock(t *testing.T) {
	s, host, rec := loaded(t, nil)
	require.NoError(t, s.RequestLock())

	s.Press(ControlForward)
	s.Press(ControlSlow)
	s.Look(100, 0)
	a := s.Actor()
	assert.True(t, a.Intent.Forward)
	assert.True(t, a.Slowed)
	assert.InDelta(t, -0.2, a.Look.Yaw, 1e-6)

	s.Press(ControlUnlock)
	assert.Equal(t, states.Paused, s.Phase())
	assert.Equal(t, "lock:false", host.calls[len(host.calls)-1])
	assert.False(t, a.Intent.Forward, "intents cleared on pause")
	assert.False(t, a.Slowed)

	s.Look(100, 0)
	assert.InDelta(t, -0.2, a.Look.Yaw, 1e-6, "look gated while paused")
	assert.Equal(t, []string{"phase:ready", "phase:playing", "phase:paused"}, rec.types())
}

func TestReleaseNotGated(t *testing.T) {
	s, _, _ := loaded(t, nil)
	s.Actor().Intent.Left = true
	s.Release(ControlLeft)
	assert.False(t, s.Actor().Intent.Left)
}

func TestWalkIntoTrigger(t *testing.T) {
	s, _, rec := loaded(t, nil)
	var entered []trigger.EnterEvent
	s.OnTriggerEnter(func(e trigger.EnterEvent) { entered = append(entered, e) })
	require.NoError(t, s.RequestLock())

	now := time.Unix(1000, 0)
	s.Tick(1.0/60, now, nil)
	assert.Empty(t, entered, "spawn is outside the radius")

	s.Actor().Teleport(math.Vec3{Y: 2.4, Z: -8})
	s.Tick(1.0/60, now.Add(time.Second), nil)
	require.Len(t, entered, 1)
	assert.Equal(t, "intro", entered[0].ID)
	assert.Contains(t, entered[0].Text, "Welcome")
	assert.Contains(t, rec.types(), "trigger_enter:intro")
}

func TestSelectDrivesMovement(t *testing.T) {
	s, host, _ := loaded(t, func(c *config.Config) { c.Display.VR = true })

	s.SelectStart()
	assert.Equal(t, states.Playing, s.Phase(), "select locks when ready")
	assert.Equal(t, []string{"lock:true"}, host.calls)
	assert.False(t, s.Actor().Intent.Forward)

	s.SelectStart()
	assert.True(t, s.Actor().Intent.Forward)

	// Held select overrides the sticks.
	s.Tick(1.0/60, time.Unix(1000, 0), [][]float32{{0, 1}})
	assert.True(t, s.Actor().Intent.Forward)
	assert.False(t, s.Actor().Intent.Backward)
	assert.Less(t, s.Actor().Position.Z, float32(0))

	s.SelectEnd()
	assert.False(t, s.Actor().Intent.Forward)
}

func TestGamepadIntents(t *testing.T) {
	s, _, _ := loaded(t, nil)

	s.Tick(1.0/60, time.Unix(1000, 0), [][]float32{{0, -1}})
	assert.False(t, s.Actor().Intent.Forward, "pads ignored until playing")

	require.NoError(t, s.RequestLock())
	s.Tick(1.0/60, time.Unix(1000, 0), [][]float32{{0, -1}})
	assert.True(t, s.Actor().Intent.Forward)

	s.Tick(1.0/60, time.Unix(1001, 0), [][]float32{{0, 0}})
	assert.False(t, s.Actor().Intent.Forward)

	s.Press(ControlLeft)
	s.Tick(1.0/60, time.Unix(1002, 0), [][]float32{{0, 0}})
	assert.True(t, s.Actor().Intent.Left, "idle pad keeps keyboard intents")
}

func TestFocusLostPauses(t *testing.T) {
	s, host, _ := loaded(t, nil)

	s.FocusLost()
	assert.Equal(t, states.Ready, s.Phase())
	assert.Empty(t, host.calls, "nothing to release before playing")

	require.NoError(t, s.RequestLock())
	s.Press(ControlForward)
	s.FocusLost()

	assert.Equal(t, states.Paused, s.Phase())
	assert.Equal(t, "lock:false", host.calls[len(host.calls)-1])
	assert.False(t, s.Actor().Intent.Forward)

	require.NoError(t, s.RequestLock())
	assert.Equal(t, states.Playing, s.Phase(), "lock can be taken again after refocus")
}

func TestZoomAndNoclip(t *testing.T) {
	s, _, _ := loaded(t, nil)
	require.NoError(t, s.RequestLock())

	s.Press(ControlZoom)
	assert.True(t, s.Zoomed())
	s.Release(ControlZoom)
	assert.False(t, s.Zoomed())

	s.Press(ControlNoclip)
	assert.True(t, s.Actor().Noclip)
	assert.False(t, s.Controls().Settings.HeadBob)
}

func TestTickPausedDoesNotMove(t *testing.T) {
	s, _, _ := loaded(t, nil)
	s.Actor().Intent.Forward = true
	s.Tick(0.1, time.Unix(1000, 0), nil)
	assert.Equal(t, math.Vec3{Y: 2.4}, s.Actor().Position)
}

func TestClose(t *testing.T) {
	s, host, rec := loaded(t, nil)
	require.NoError(t, s.RequestLock())

	require.NoError(t, s.Close())
	assert.Equal(t, states.Done, s.Phase())
	assert.Nil(t, s.Collider())
	assert.Nil(t, s.Markers(time.Now()))
	assert.Equal(t, "lock:false", host.calls[len(host.calls)-1])
	assert.Equal(t, "phase:done", rec.types()[len(rec.types())-1])

	require.NoError(t, s.Close(), "idempotent")
}
