package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/carousel/pkg/geometry"
)

func TestParseAxis(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  geometry.Axis
		err   bool
	}{
		"horizontal":       {input: "horizontal", want: geometry.Horizontal},
		"primary alias":    {input: "Primary", want: geometry.Horizontal},
		"empty is default": {input: "", want: geometry.Horizontal},
		"vertical":         {input: " vertical ", want: geometry.Vertical},
		"cross alias":      {input: "cross", want: geometry.Vertical},
		"unknown":          {input: "diagonal", err: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := geometry.ParseAxis(tc.input)
			if tc.err {
				require.ErrorIs(t, err, geometry.ErrUnknownAxis)
				assert.Contains(t, err.Error(), "supported axes are horizontal and vertical")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.String(), got.String())
		})
	}
}

func TestAxisComponents(t *testing.T) {
	t.Parallel()

	p := geometry.Point{X: 3, Y: 7}
	assert.InDelta(t, 3.0, p.Along(geometry.Horizontal), 0)
	assert.InDelta(t, 7.0, p.Along(geometry.Vertical), 0)
	assert.Equal(t, geometry.Point{X: 2, Y: 5}, p.Sub(geometry.Point{X: 1, Y: 2}))

	s := geometry.SizeOf(geometry.Vertical, 20, 5)
	assert.Equal(t, geometry.Size{Width: 5, Height: 20}, s)
	assert.Equal(t, 20, s.Main(geometry.Vertical))
	assert.Equal(t, 5, s.Cross(geometry.Vertical))
	assert.Equal(t, 5, s.Main(geometry.Horizontal))
}

func TestConstraintsLoosen(t *testing.T) {
	t.Parallel()

	c := geometry.Fixed(geometry.Size{Width: 80, Height: 24})

	h := c.Loosen(geometry.Horizontal, 60)
	assert.Equal(t, geometry.Constraints{MinWidth: 60, MaxWidth: 60, MinHeight: 0, MaxHeight: 24}, h)
	assert.Equal(t, 80, c.Main(geometry.Horizontal))
	assert.Equal(t, geometry.Size{Width: 60, Height: 10}, h.Constrain(geometry.Size{Width: 100, Height: 10}))

	v := c.Loosen(geometry.Vertical, 12)
	assert.Equal(t, geometry.Constraints{MinWidth: 0, MaxWidth: 80, MinHeight: 12, MaxHeight: 12}, v)
	assert.Equal(t, geometry.Size{Width: 80, Height: 12}, v.Constrain(geometry.Size{Width: 200, Height: 1}))
}
