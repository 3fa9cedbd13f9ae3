package pager

import (
	"errors"
	"fmt"
	"math"

	"github.com/macropower/carousel/pkg/geometry"
	"github.com/macropower/carousel/pkg/motion"
)

var (
	ErrInvalidOption     = errors.New("invalid pager option")
	ErrInitialIndex      = errors.New("initial index out of range")
	ErrItemFraction      = errors.New("item fraction must be in (0, 1]")
	ErrOvershootFraction = errors.New("overshoot fraction must be in (0, 1]")
	ErrItemSpacing       = errors.New("item spacing must be a finite value >= 0")
	ErrFPS               = errors.New("fps must be > 0")
	ErrSpring            = errors.New("spring stiffness and damping ratio must be > 0")
	ErrIndex             = errors.New("index out of range")
)

// Options is the configuration surface of a [Pager].
type Options struct {
	// Decay resolves where a fling comes to rest.
	Decay motion.Decay
	// Spring settles on an item after a release or navigation.
	Spring motion.Spring
	// Axis is the scroll axis.
	Axis geometry.Axis
	// InitialIndex is the item centered on the first layout pass.
	InitialIndex int
	// ItemFraction is the fraction of the viewport an item occupies along
	// the scroll axis.
	ItemFraction float64
	// ItemSpacing is the gap between items in pixels.
	ItemSpacing float64
	// OvershootFraction is how far, as a fraction of the viewport, the
	// content may be dragged past the first and last item.
	OvershootFraction float64
	// FPS is the rate [Pager.Step] is expected to be called at while
	// animating.
	FPS int
}

// DefaultOptions returns the options used by [New] before any [PagerOpt].
func DefaultOptions() Options {
	return Options{
		Axis:              geometry.Horizontal,
		ItemFraction:      1,
		OvershootFraction: 1,
		FPS:               motion.DefaultFPS,
		Spring:            motion.DefaultSpring,
		Decay:             motion.ExponentialDecay{},
	}
}

// Validate checks o against a list of count items. Out of range values are
// reported, never clamped.
func (o Options) Validate(count int) error {
	var errs []error

	if o.InitialIndex < 0 || (count > 0 && o.InitialIndex >= count) || (count == 0 && o.InitialIndex != 0) {
		errs = append(errs, fmt.Errorf("%w: %d not in [0, %d)", ErrInitialIndex, o.InitialIndex, max(count, 1)))
	}
	if !(o.ItemFraction > 0 && o.ItemFraction <= 1) {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrItemFraction, o.ItemFraction))
	}
	if !(o.OvershootFraction > 0 && o.OvershootFraction <= 1) {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrOvershootFraction, o.OvershootFraction))
	}
	if o.ItemSpacing < 0 || math.IsNaN(o.ItemSpacing) || math.IsInf(o.ItemSpacing, 0) {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrItemSpacing, o.ItemSpacing))
	}
	if o.FPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrFPS, o.FPS))
	}
	if !(o.Spring.Stiffness > 0) || !(o.Spring.DampingRatio > 0) {
		errs = append(errs, fmt.Errorf("%w: got %+v", ErrSpring, o.Spring))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOption, errors.Join(errs...))
	}

	return nil
}

// PagerOpt modifies [Options].
type PagerOpt func(*Options)

// WithOptions replaces all options.
func WithOptions(o Options) PagerOpt {
	return func(opts *Options) {
		*opts = o
	}
}

// WithAxis sets the scroll axis.
func WithAxis(a geometry.Axis) PagerOpt {
	return func(o *Options) {
		o.Axis = a
	}
}

// WithInitialIndex sets the item centered on the first layout pass.
func WithInitialIndex(i int) PagerOpt {
	return func(o *Options) {
		o.InitialIndex = i
	}
}

// WithItemFraction sets the fraction of the viewport each item occupies.
func WithItemFraction(f float64) PagerOpt {
	return func(o *Options) {
		o.ItemFraction = f
	}
}

// WithItemSpacing sets the gap between items.
func WithItemSpacing(px float64) PagerOpt {
	return func(o *Options) {
		o.ItemSpacing = px
	}
}

// WithOvershootFraction sets how far the content may be dragged past either
// end.
func WithOvershootFraction(f float64) PagerOpt {
	return func(o *Options) {
		o.OvershootFraction = f
	}
}

// WithFPS sets the animation frame rate.
func WithFPS(fps int) PagerOpt {
	return func(o *Options) {
		o.FPS = fps
	}
}

// WithSpring sets the settle spring.
func WithSpring(s motion.Spring) PagerOpt {
	return func(o *Options) {
		o.Spring = s
	}
}

// WithDecay sets the fling decay.
func WithDecay(d motion.Decay) PagerOpt {
	return func(o *Options) {
		o.Decay = d
	}
}
