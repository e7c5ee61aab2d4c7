package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gallery-walk/internal/config"
)

func TestGamepadDefaultMapping(t *testing.T) {
	m := DefaultGamepadMapper()
	require.Len(t, m.Bindings, 4)

	tests := []struct {
		name string
		pads [][]float32
		want Intent
	}{
		{"centred", [][]float32{{0, 0, 0, 0}}, Intent{}},
		{"below threshold", [][]float32{{0.4, -0.5, 0, 0}}, Intent{}},
		{"left stick forward", [][]float32{{0, -0.9}}, Intent{Forward: true}},
		{"right stick strafe", [][]float32{{0, 0, 0.8, 0.6}}, Intent{Right: true, Backward: true}},
		{"union across pads", [][]float32{{-1, 0}, {0, -1}}, Intent{Left: true, Forward: true}},
		{"short axes array", [][]float32{{}}, Intent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Intent
			m.Apply(&got, tt.pads, false)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGamepadReleasesIntents(t *testing.T) {
	m := DefaultGamepadMapper()
	i := Intent{Forward: true, Left: true, TurnLeft: true}
	m.Apply(&i, nil, false)
	assert.Equal(t, Intent{TurnLeft: true}, i, "only bound actions are owned by the pad")
}

func TestGamepadTriggerForcesForward(t *testing.T) {
	m := DefaultGamepadMapper()
	var i Intent
	m.Apply(&i, [][]float32{{0, 1}}, true)
	assert.True(t, i.Forward)
	assert.False(t, i.Backward, "axes ignored while the trigger is held")
}

func TestGamepadMapperFromConfig(t *testing.T) {
	_, err := GamepadMapperFromConfig(config.InputConfig{
		GamepadThreshold: 0.5,
		Axes:             []config.AxisBinding{{Axis: 0, Positive: "right", Negative: "sideways"}},
	})
	assert.Error(t, err)

	m, err := GamepadMapperFromConfig(config.InputConfig{
		GamepadThreshold: 0.2,
		Axes:             []config.AxisBinding{{Axis: 5, Positive: "turn_right", Negative: "turn_left"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []AxisBinding{{Axis: 5, Positive: TurnRight, Negative: TurnLeft}}, m.Bindings)
	assert.True(t, m.Actions([][]float32{{0, 0, 0, 0, 0, 0.3}})[TurnRight])
}

func TestGamepadHalfBoundAxis(t *testing.T) {
	m, err := GamepadMapperFromConfig(config.InputConfig{
		GamepadThreshold: 0.5,
		Axes: []config.AxisBinding{
			{Axis: 4, Positive: "forward", Negative: ""},
			{Axis: 2, Positive: "turn_right", Negative: "turn_left"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Unbound, m.Bindings[0].Negative)

	i := Intent{Backward: true}
	m.Apply(&i, [][]float32{{0, 0, 0, 0, -1}}, false)
	assert.Equal(t, Intent{Backward: true}, i, "unbound half does nothing")
	assert.Empty(t, m.Actions([][]float32{{0, 0, 0, 0, -1}}))

	m.Apply(&i, [][]float32{{0, 0, -0.9, 0, 1}}, false)
	assert.Equal(t, Intent{Backward: true, Forward: true, TurnLeft: true}, i)

	m.Apply(&i, [][]float32{{0, 0, 0, 0, 0}}, false)
	assert.Equal(t, Intent{Backward: true}, i)
}
