package pager_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/carousel/pkg/geometry"
	"github.com/macropower/carousel/pkg/gesture"
	"github.com/macropower/carousel/pkg/motion"
	"github.com/macropower/carousel/pkg/pager"
)

type placed struct {
	index int
	item  string
	size  geometry.Size
	pos   geometry.Point
}

type host struct {
	measured []int
	placed   []placed
	height   func(i int) int
}

func (h *host) Measure(i int, _ string, c geometry.Constraints) geometry.Size {
	h.measured = append(h.measured, i)

	height := 3
	if h.height != nil {
		height = h.height(i)
	}

	return geometry.Size{Width: c.MaxWidth, Height: height}
}

func (h *host) Place(i int, item string, size geometry.Size, pos geometry.Point) {
	h.placed = append(h.placed, placed{index: i, item: item, size: size, pos: pos})
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %d", i)
	}

	return out
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		count int
		opts  []pager.PagerOpt
		err   error
	}{
		"defaults": {
			count: 3,
		},
		"empty with default index": {
			count: 0,
		},
		"last initial index": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithInitialIndex(2)},
		},
		"initial index past the end": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithInitialIndex(3)},
			err:   pager.ErrInitialIndex,
		},
		"negative initial index": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithInitialIndex(-1)},
			err:   pager.ErrInitialIndex,
		},
		"empty with nonzero index": {
			count: 0,
			opts:  []pager.PagerOpt{pager.WithInitialIndex(1)},
			err:   pager.ErrInitialIndex,
		},
		"zero item fraction": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithItemFraction(0)},
			err:   pager.ErrItemFraction,
		},
		"item fraction above one": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithItemFraction(1.2)},
			err:   pager.ErrItemFraction,
		},
		"zero overshoot": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithOvershootFraction(0)},
			err:   pager.ErrOvershootFraction,
		},
		"negative spacing": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithItemSpacing(-1)},
			err:   pager.ErrItemSpacing,
		},
		"zero fps": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithFPS(0)},
			err:   pager.ErrFPS,
		},
		"spring without stiffness": {
			count: 3,
			opts:  []pager.PagerOpt{pager.WithSpring(motion.Spring{DampingRatio: 1})},
			err:   pager.ErrSpring,
		},
		"several errors are joined": {
			count: 3,
			opts: []pager.PagerOpt{
				pager.WithItemFraction(2),
				pager.WithOvershootFraction(-1),
			},
			err: pager.ErrOvershootFraction,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := pager.New(items(tc.count), tc.opts...)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, pager.ErrInvalidOption)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.count, p.Len())
		})
	}
}

func TestLayoutInitialIndex(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(4), pager.WithInitialIndex(3))
	require.NoError(t, err)

	var selected []int
	p.OnSelect(func(i int, _ string) { selected = append(selected, i) })

	h := &host{}
	l := p.Layout(geometry.Size{Width: 300, Height: 10}, h, h)

	assert.InDelta(t, 900.0, p.Offset(), 0)
	assert.Equal(t, 3, p.Index())
	assert.Equal(t, geometry.Window{First: 2, Last: 3}, l.Window)
	assert.Equal(t, []int{2, 3}, h.measured)
	assert.Empty(t, selected)

	item, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "item 3", item)

	require.Len(t, h.placed, 2)
	assert.Equal(t, placed{index: 3, item: "item 3", size: geometry.Size{Width: 300, Height: 3}}, h.placed[1])
	assert.InDelta(t, -300.0, h.placed[0].pos.X, 0)
}

func TestLayoutFractionalSpacing(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(20), pager.WithInitialIndex(10), pager.WithItemSpacing(0.5))
	require.NoError(t, err)

	h := &host{}
	l := p.Layout(geometry.Size{Width: 300, Height: 100}, h, h)

	assert.InDelta(t, 3005.0, p.Offset(), 1e-9)
	assert.Equal(t, 10, p.Index())
	require.Equal(t, geometry.Window{First: 10, Last: 10}, l.Window)
	require.Len(t, h.placed, 1)
	assert.InDelta(t, 0.0, h.placed[0].pos.X, 0)
}

func TestLayoutIsVirtualized(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(100_000),
		pager.WithInitialIndex(50_000),
		pager.WithItemFraction(0.5),
		pager.WithItemSpacing(2),
	)
	require.NoError(t, err)

	h := &host{}
	l := p.Layout(geometry.Size{Width: 80, Height: 24}, h, h)

	assert.LessOrEqual(t, len(h.measured), 4)
	assert.Len(t, h.placed, len(h.measured))
	assert.True(t, l.Window.Contains(50_000))

	for _, pl := range h.placed {
		assert.Equal(t, 40, pl.size.Width, "items are forced to the item dimension")
		assert.Less(t, pl.pos.X, 80.0)
		assert.Greater(t, pl.pos.X+40, 0.0)
	}
}

func TestLayoutCrossSize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		axis     geometry.Axis
		viewport geometry.Size
		want     geometry.Size
	}{
		"horizontal uses tallest visible item": {
			axis:     geometry.Horizontal,
			viewport: geometry.Size{Width: 30, Height: 20},
			want:     geometry.Size{Width: 30, Height: 7},
		},
		"vertical uses widest visible item": {
			axis:     geometry.Vertical,
			viewport: geometry.Size{Width: 50, Height: 30},
			want:     geometry.Size{Width: 50, Height: 30},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := pager.New(items(5), pager.WithAxis(tc.axis), pager.WithItemFraction(0.5))
			require.NoError(t, err)

			h := &host{height: func(i int) int { return 5 + i*2 }}
			l := p.Layout(tc.viewport, h, h)

			assert.Equal(t, tc.want, l.Size)

			if tc.axis == geometry.Vertical {
				for _, pl := range h.placed {
					assert.InDelta(t, 0.0, pl.pos.X, 0, "cross axis position is 0")
					assert.Equal(t, 15, pl.size.Height)
				}
			}
		})
	}
}

func TestLayoutZeroViewport(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(3), pager.WithInitialIndex(1))
	require.NoError(t, err)

	h := &host{}
	l := p.Layout(geometry.Size{}, h, h)

	assert.True(t, l.Window.Empty())
	assert.Empty(t, h.measured)
	assert.Empty(t, l.Placements)

	p.Layout(geometry.Size{Width: 10, Height: 1}, h, h)
	assert.InDelta(t, 10.0, p.Offset(), 0)
	assert.Equal(t, 1, p.Index())
}

func TestLayoutNoItems(t *testing.T) {
	t.Parallel()

	p, err := pager.New([]string{})
	require.NoError(t, err)

	h := &host{}
	l := p.Layout(geometry.Size{Width: 10, Height: 1}, h, h)

	assert.True(t, l.Window.Empty())
	assert.Empty(t, h.measured)

	_, ok := p.Selected()
	assert.False(t, ok)

	p.Next(t.Context())
	assert.False(t, p.Animating())
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(5))
	require.NoError(t, err)

	var selected []string
	p.OnSelect(func(_ int, item string) { selected = append(selected, item) })

	h := &host{}
	viewport := geometry.Size{Width: 20, Height: 5}
	p.Layout(viewport, h, h)

	settle := func() {
		for p.Step() {
			p.Layout(viewport, h, h)
		}
	}

	p.Next(t.Context())
	p.Next(t.Context())
	assert.Equal(t, 2, p.Target(), "navigation accumulates on the target")
	settle()
	assert.Equal(t, 2, p.Index())
	assert.InDelta(t, 40.0, p.Offset(), 0)

	p.Last(t.Context())
	settle()
	assert.Equal(t, 4, p.Index())

	p.Next(t.Context())
	settle()
	assert.Equal(t, 4, p.Index(), "next on the last item stays")

	p.Prev(t.Context())
	settle()
	assert.Equal(t, 3, p.Index())

	p.First(t.Context())
	settle()
	assert.Equal(t, 0, p.Index())

	require.NoError(t, p.SnapTo(2))
	assert.Equal(t, 2, p.Index())
	assert.False(t, p.Animating())

	require.NoError(t, p.AnimateTo(t.Context(), 4))
	settle()
	assert.Equal(t, 4, p.Index())

	require.ErrorIs(t, p.AnimateTo(t.Context(), 5), pager.ErrIndex)
	require.ErrorIs(t, p.SnapTo(-1), pager.ErrIndex)

	assert.Equal(t, []string{
		"item 1", "item 2", // Next, Next
		"item 3", "item 4", // Last
		"item 3",                     // Prev
		"item 2", "item 1", "item 0", // First
		"item 2",           // SnapTo
		"item 3", "item 4", // AnimateTo
	}, selected)
}

func TestPointerGesture(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(4), pager.WithDecay(motion.ExponentialDecay{FrictionMultiplier: 100}))
	require.NoError(t, err)

	var selected []int
	p.OnSelect(func(i int, _ string) { selected = append(selected, i) })

	h := &host{}
	viewport := geometry.Size{Width: 300, Height: 10}
	p.Layout(viewport, h, h)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.Handle(t.Context(), gesture.Down(now, geometry.Point{X: 250}))
	p.Handle(t.Context(), gesture.Move(now.Add(20*time.Millisecond), geometry.Point{X: 150}))
	p.Handle(t.Context(), gesture.Move(now.Add(40*time.Millisecond), geometry.Point{X: 50}))

	assert.Equal(t, gesture.Dragging, p.State())
	assert.InDelta(t, 200.0, p.Offset(), 0)
	assert.Equal(t, []int{1}, selected)

	p.Handle(t.Context(), gesture.Up(now.Add(50*time.Millisecond), geometry.Point{X: 50}))
	assert.Equal(t, gesture.Settling, p.State())

	for p.Step() {
		p.Layout(viewport, h, h)
	}

	assert.Equal(t, gesture.Idle, p.State())
	assert.InDelta(t, 300.0, p.Offset(), 0)
	assert.Equal(t, []int{1}, selected)
}

func TestSetItems(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(6), pager.WithInitialIndex(5))
	require.NoError(t, err)

	var selected []int
	p.OnSelect(func(i int, _ string) { selected = append(selected, i) })

	h := &host{}
	p.Layout(geometry.Size{Width: 10, Height: 1}, h, h)
	require.Equal(t, 5, p.Index())

	p.SetItems(items(3))

	// Re-clamped into the overshoot past the new last item, then settled.
	assert.Equal(t, 2, p.Index())
	assert.InDelta(t, 30.0, p.Offset(), 0)
	assert.Equal(t, []int{2}, selected)
	assert.True(t, p.Animating())

	for p.Step() {
	}

	assert.InDelta(t, 20.0, p.Offset(), 0)
	assert.Equal(t, []int{2}, selected)

	p.SetItems(nil)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, []int{2}, selected, "no item to report")
}

func TestSetters(t *testing.T) {
	t.Parallel()

	p, err := pager.New(items(4), pager.WithInitialIndex(2))
	require.NoError(t, err)

	h := &host{}
	p.Layout(geometry.Size{Width: 100, Height: 5}, h, h)
	require.InDelta(t, 200.0, p.Offset(), 0)

	require.ErrorIs(t, p.SetItemFraction(0), pager.ErrItemFraction)
	assert.InDelta(t, 1.0, p.Options().ItemFraction, 0, "invalid values are not applied")

	require.NoError(t, p.SetItemFraction(0.5))
	assert.InDelta(t, 100.0, p.Offset(), 0, "the focused item stays centered")
	assert.Equal(t, 2, p.Index())

	require.NoError(t, p.SetItemSpacing(10))
	assert.InDelta(t, 120.0, p.Offset(), 0)

	require.ErrorIs(t, p.SetOvershootFraction(1.5), pager.ErrOvershootFraction)
	require.NoError(t, p.SetOvershootFraction(0.25))
	assert.InDelta(t, 0.0, p.Bounds().Min, 0)
}
