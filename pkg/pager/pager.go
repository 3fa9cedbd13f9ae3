// Package pager is a virtualized, gesture-driven carousel of items.
//
// A [Pager] keeps one item centered at a time. The host feeds it pointer
// events and frame ticks, and calls [Pager.Layout] once per frame with a
// [Measurer] and a [Placer]; only the items intersecting the viewport are
// measured and placed, regardless of the number of items.
package pager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/macropower/carousel/pkg/geometry"
	"github.com/macropower/carousel/pkg/gesture"
	"github.com/macropower/carousel/pkg/offset"
)

// Measurer measures the natural size of an item within constraints.
type Measurer[T any] interface {
	Measure(index int, item T, c geometry.Constraints) geometry.Size
}

// Placer receives the position of a measured item relative to the viewport.
type Placer[T any] interface {
	Place(index int, item T, size geometry.Size, pos geometry.Point)
}

// MeasureFunc adapts a function to a [Measurer].
type MeasureFunc[T any] func(index int, item T, c geometry.Constraints) geometry.Size

// Measure implements [Measurer].
func (f MeasureFunc[T]) Measure(index int, item T, c geometry.Constraints) geometry.Size {
	return f(index, item, c)
}

// PlaceFunc adapts a function to a [Placer].
type PlaceFunc[T any] func(index int, item T, size geometry.Size, pos geometry.Point)

// Place implements [Placer].
func (f PlaceFunc[T]) Place(index int, item T, size geometry.Size, pos geometry.Point) {
	f(index, item, size, pos)
}

// Layout is the result of one layout pass.
type Layout struct {
	// Placements of the visible items, in index order.
	Placements []geometry.Placement
	// Sizes of the visible items, parallel to Placements.
	Sizes []geometry.Size
	// Size of the pager: the viewport along the scroll axis and the largest
	// measured item across it.
	Size    geometry.Size
	Metrics geometry.Metrics
	Window  geometry.Window
}

// Pager is a carousel over items of type T.
//
// A Pager is not safe for concurrent use. Pointer events, frame steps and
// layout passes must all come from the same goroutine.
type Pager[T any] struct {
	onSelect func(index int, item T)
	model    *offset.Model
	machine  *gesture.Machine
	items    []T
	opts     Options
	viewport geometry.Size
}

// New creates a [Pager] over items. Invalid options are returned as an error
// wrapping [ErrInvalidOption].
func New[T any](items []T, opts ...PagerOpt) (*Pager[T], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	err := o.Validate(len(items))
	if err != nil {
		return nil, err
	}

	p := &Pager[T]{
		items: items,
		opts:  o,
	}

	p.model = offset.New(o.InitialIndex, o.OvershootFraction, p.selected)
	p.machine = gesture.NewMachine(p.model, gesture.Config{
		Axis:   o.Axis,
		Decay:  o.Decay,
		Spring: o.Spring,
		FPS:    o.FPS,
	})

	return p, nil
}

// OnSelect sets the callback invoked synchronously whenever the focused item
// changes. It is not invoked for the initial index.
func (p *Pager[T]) OnSelect(fn func(index int, item T)) {
	p.onSelect = fn
}

func (p *Pager[T]) selected(index int) {
	slog.Debug("pager selection changed", slog.Int("index", index))

	if p.onSelect == nil || index >= len(p.items) {
		return
	}

	p.onSelect(index, p.items[index])
}

// Options returns the active options.
func (p *Pager[T]) Options() Options {
	return p.opts
}

// Axis returns the scroll axis.
func (p *Pager[T]) Axis() geometry.Axis {
	return p.opts.Axis
}

// Len returns the number of items.
func (p *Pager[T]) Len() int {
	return len(p.items)
}

// Items returns the items.
func (p *Pager[T]) Items() []T {
	return p.items
}

// Index returns the focused index.
func (p *Pager[T]) Index() int {
	return p.model.Index()
}

// Selected returns the focused item, or false when there are no items.
func (p *Pager[T]) Selected() (T, bool) {
	i := p.model.Index()
	if i < 0 || i >= len(p.items) {
		var zero T
		return zero, false
	}

	return p.items[i], true
}

// Offset returns the scroll offset.
func (p *Pager[T]) Offset() float64 {
	return p.model.Offset()
}

// Bounds returns the range the offset is clamped to.
func (p *Pager[T]) Bounds() offset.Bounds {
	return p.model.Bounds()
}

// Metrics returns the metrics of the last layout pass.
func (p *Pager[T]) Metrics() geometry.Metrics {
	return p.model.Metrics()
}

// State returns the gesture state.
func (p *Pager[T]) State() gesture.State {
	return p.machine.State()
}

// Target returns the index the pager is settling on, or the focused index.
func (p *Pager[T]) Target() int {
	return p.machine.Target()
}

// Handle applies a pointer event.
func (p *Pager[T]) Handle(ctx context.Context, e gesture.Event) {
	p.machine.Handle(ctx, e)
}

// Step advances a running animation by one frame. It returns true while
// more frames follow.
func (p *Pager[T]) Step() bool {
	return p.machine.Step()
}

// Animating reports whether [Pager.Step] should be called on the next frame.
func (p *Pager[T]) Animating() bool {
	return p.machine.Animating()
}

// FrameInterval returns the time between two frames.
func (p *Pager[T]) FrameInterval() time.Duration {
	return p.machine.FrameInterval()
}

// AnimateTo settles on item index.
func (p *Pager[T]) AnimateTo(ctx context.Context, index int) error {
	if index < 0 || index >= len(p.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndex, index, len(p.items))
	}

	p.machine.AnimateTo(ctx, index)

	return nil
}

// SnapTo centers item index without animating.
func (p *Pager[T]) SnapTo(index int) error {
	if index < 0 || index >= len(p.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndex, index, len(p.items))
	}

	p.machine.SnapTo(index)

	return nil
}

// Next settles on the item after the current target.
func (p *Pager[T]) Next(ctx context.Context) {
	p.step(ctx, 1)
}

// Prev settles on the item before the current target.
func (p *Pager[T]) Prev(ctx context.Context) {
	p.step(ctx, -1)
}

// First settles on the first item.
func (p *Pager[T]) First(ctx context.Context) {
	if len(p.items) > 0 {
		p.machine.AnimateTo(ctx, 0)
	}
}

// Last settles on the last item.
func (p *Pager[T]) Last(ctx context.Context) {
	if len(p.items) > 0 {
		p.machine.AnimateTo(ctx, len(p.items)-1)
	}
}

func (p *Pager[T]) step(ctx context.Context, delta int) {
	if len(p.items) == 0 {
		return
	}

	i := min(max(p.machine.Target()+delta, 0), len(p.items)-1)
	p.machine.AnimateTo(ctx, i)
}

// SetItems replaces the items, re-clamping the offset to the new count.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.remeasure()
}

// SetItemFraction changes the fraction of the viewport each item occupies.
func (p *Pager[T]) SetItemFraction(f float64) error {
	return p.update(func(o *Options) { o.ItemFraction = f })
}

// SetItemSpacing changes the gap between items.
func (p *Pager[T]) SetItemSpacing(px float64) error {
	return p.update(func(o *Options) { o.ItemSpacing = px })
}

// SetOvershootFraction changes how far the content may be dragged past
// either end.
func (p *Pager[T]) SetOvershootFraction(f float64) error {
	err := p.update(func(o *Options) { o.OvershootFraction = f })
	if err != nil {
		return err
	}

	p.model.SetOvershoot(f)

	return nil
}

func (p *Pager[T]) update(fn PagerOpt) error {
	o := p.opts
	fn(&o)

	// The initial index only applies to the first layout pass.
	o.InitialIndex = 0

	err := o.Validate(len(p.items))
	if err != nil {
		return err
	}

	o.InitialIndex = p.opts.InitialIndex
	p.opts = o
	p.remeasure()

	return nil
}

// Resize recomputes the metrics for a new viewport ahead of the next layout
// pass. An idle pager left between items starts animating back; check
// [Pager.Animating] afterwards.
func (p *Pager[T]) Resize(viewport geometry.Size) {
	if viewport == p.viewport {
		return
	}

	p.viewport = viewport
	p.remeasure()
}

// remeasure recomputes the metrics for the last known viewport.
func (p *Pager[T]) remeasure() {
	if p.viewport == (geometry.Size{}) {
		return
	}

	p.machine.SetMetrics(p.metrics(p.viewport))
}

func (p *Pager[T]) metrics(viewport geometry.Size) geometry.Metrics {
	return geometry.NewMetrics(
		viewport.Main(p.opts.Axis),
		p.opts.ItemFraction,
		p.opts.ItemSpacing,
		len(p.items),
	)
}

// Layout runs a layout pass for the viewport. Visible items are measured
// with m and then placed with pl, in index order. A viewport too small to
// hold a single pixel of an item yields an empty layout.
func (p *Pager[T]) Layout(viewport geometry.Size, m Measurer[T], pl Placer[T]) Layout {
	p.Resize(viewport)

	metrics := p.metrics(viewport)

	out := Layout{
		Metrics: metrics,
		Window:  geometry.EmptyWindow,
		Size:    geometry.SizeOf(p.opts.Axis, viewport.Main(p.opts.Axis), 0),
	}

	window, err := geometry.VisibleWindow(p.model.Offset(), metrics)
	if errors.Is(err, geometry.ErrZeroItemDimension) {
		return out
	}

	c := geometry.Fixed(viewport).Loosen(p.opts.Axis, metrics.ItemDimension)

	out.Window = window
	out.Sizes = make([]geometry.Size, 0, window.Len())

	for i := window.First; i <= window.Last; i++ {
		out.Sizes = append(out.Sizes, c.Constrain(m.Measure(i, p.items[i], c)))
	}

	out.Size = geometry.SizeOf(
		p.opts.Axis,
		viewport.Main(p.opts.Axis),
		geometry.CrossExtent(p.opts.Axis, out.Sizes...),
	)

	out.Placements = geometry.Place(window, p.model.Offset(), metrics, p.opts.Axis)
	for j, placed := range out.Placements {
		pl.Place(placed.Index, p.items[placed.Index], out.Sizes[j], placed.Position)
	}

	return out
}
