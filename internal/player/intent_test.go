package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentDirection(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		x, z   float32
	}{
		{"idle", Intent{}, 0, 0},
		{"forward", Intent{Forward: true}, 0, 1},
		{"backward", Intent{Backward: true}, 0, -1},
		{"opposing cancel", Intent{Forward: true, Backward: true}, 0, 0},
		{"diagonal", Intent{Forward: true, Right: true}, 0.70710677, 0.70710677},
		{"left", Intent{Left: true}, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.intent.Direction()
			assert.InDelta(t, tt.x, d.X, 1e-6)
			assert.Zero(t, d.Y)
			assert.InDelta(t, tt.z, d.Z, 1e-6)
		})
	}
}

func TestIntentTurnDirection(t *testing.T) {
	d := Intent{TurnLeft: true, TurnUp: true}.TurnDirection()
	assert.InDelta(t, -0.70710677, d.X, 1e-6)
	assert.InDelta(t, 0.70710677, d.Z, 1e-6)
}

func TestIntentSet(t *testing.T) {
	var i Intent
	for a := Forward; a <= TurnDown; a++ {
		i.Set(a, true)
	}
	assert.Equal(t, Intent{
		Forward: true, Backward: true, Left: true, Right: true, Up: true, Down: true,
		TurnLeft: true, TurnRight: true, TurnUp: true, TurnDown: true,
	}, i)

	i.Set(Up, false)
	assert.False(t, i.Up)
}

func TestParseAction(t *testing.T) {
	for a := Forward; a <= TurnDown; a++ {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAction("sideways")
	assert.Error(t, err)
	assert.Equal(t, "Action(42)", Action(42).String())
}
