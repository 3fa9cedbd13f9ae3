package gesture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/carousel/pkg/gesture"
)

func TestTransition(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		from gesture.State
		kind gesture.Kind
		want gesture.State
	}{
		"idle down":         {from: gesture.Idle, kind: gesture.PointerDown, want: gesture.Pressed},
		"idle move ignored": {from: gesture.Idle, kind: gesture.PointerMove, want: gesture.Idle},
		"idle up ignored":   {from: gesture.Idle, kind: gesture.PointerUp, want: gesture.Idle},
		"idle animate":      {from: gesture.Idle, kind: gesture.Animate, want: gesture.Settling},
		"idle settled":      {from: gesture.Idle, kind: gesture.Settled, want: gesture.Idle},
		"pressed move":      {from: gesture.Pressed, kind: gesture.PointerMove, want: gesture.Dragging},
		"pressed up (tap)":  {from: gesture.Pressed, kind: gesture.PointerUp, want: gesture.Settling},
		"pressed cancel":    {from: gesture.Pressed, kind: gesture.PointerCancel, want: gesture.Settling},
		"pressed animate":   {from: gesture.Pressed, kind: gesture.Animate, want: gesture.Pressed},
		"dragging move":     {from: gesture.Dragging, kind: gesture.PointerMove, want: gesture.Dragging},
		"dragging up":       {from: gesture.Dragging, kind: gesture.PointerUp, want: gesture.Settling},
		"dragging down":     {from: gesture.Dragging, kind: gesture.PointerDown, want: gesture.Pressed},
		"dragging animate":  {from: gesture.Dragging, kind: gesture.Animate, want: gesture.Dragging},
		"settling down":     {from: gesture.Settling, kind: gesture.PointerDown, want: gesture.Pressed},
		"settling move":     {from: gesture.Settling, kind: gesture.PointerMove, want: gesture.Settling},
		"settling animate":  {from: gesture.Settling, kind: gesture.Animate, want: gesture.Settling},
		"settling settled":  {from: gesture.Settling, kind: gesture.Settled, want: gesture.Idle},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, gesture.Transition(tc.from, tc.kind))
		})
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", gesture.Idle.String())
	assert.Equal(t, "settling", gesture.Settling.String())
	assert.Equal(t, "state(9)", gesture.State(9).String())
	assert.Equal(t, "move", gesture.PointerMove.String())
	assert.Equal(t, "kind(9)", gesture.Kind(9).String())
}
