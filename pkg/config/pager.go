package config

import (
	"fmt"

	"github.com/macropower/carousel/pkg/geometry"
	"github.com/macropower/carousel/pkg/motion"
	"github.com/macropower/carousel/pkg/pager"
)

// PagerConfig configures layout and motion of the carousel. Zero values
// select the defaults, except for itemSpacing and initialIndex, where zero
// is meaningful.
type PagerConfig struct {
	// Spring settles on a card after a release or navigation.
	Spring *SpringConfig `json:"spring,omitempty" jsonschema:"title=Spring"`
	// Decay resolves where a fling comes to rest.
	Decay *DecayConfig `json:"decay,omitempty" jsonschema:"title=Decay"`
	// Orientation is the scroll axis.
	Orientation string `json:"orientation,omitempty" jsonschema:"title=Orientation,enum=horizontal,enum=vertical,enum=primary,enum=cross"`
	// ItemFraction is the fraction of the viewport a card occupies along
	// the scroll axis.
	ItemFraction float64 `json:"itemFraction,omitempty" jsonschema:"title=Item Fraction,exclusiveMinimum=0,maximum=1"`
	// ItemSpacing is the gap between cards in cells.
	ItemSpacing float64 `json:"itemSpacing,omitempty" jsonschema:"title=Item Spacing,minimum=0"`
	// OvershootFraction is how far, as a fraction of the viewport, cards may
	// be dragged past either end.
	OvershootFraction float64 `json:"overshootFraction,omitempty" jsonschema:"title=Overshoot Fraction,exclusiveMinimum=0,maximum=1"`
	// InitialIndex is the card focused on start.
	InitialIndex int `json:"initialIndex,omitempty" jsonschema:"title=Initial Index,minimum=0"`
	// FPS is the animation frame rate.
	FPS int `json:"fps,omitempty" jsonschema:"title=Frames Per Second,minimum=1,maximum=240"`
}

type SpringConfig struct {
	// DampingRatio is 1 for no bounce; lower values bounce more.
	DampingRatio float64 `json:"dampingRatio,omitempty" jsonschema:"title=Damping Ratio,exclusiveMinimum=0"`
	Stiffness    float64 `json:"stiffness,omitempty"    jsonschema:"title=Stiffness,exclusiveMinimum=0"`
}

type DecayConfig struct {
	Type string `json:"type,omitempty" jsonschema:"title=Type,enum=exponential,enum=spline"`
	// Friction scales deceleration. Zero selects the default of the type.
	Friction float64 `json:"friction,omitempty" jsonschema:"title=Friction,minimum=0"`
}

func (c *PagerConfig) EnsureDefaults() {
	d := pager.DefaultOptions()

	if c.Orientation == "" {
		c.Orientation = d.Axis.String()
	}
	if c.ItemFraction == 0 {
		c.ItemFraction = d.ItemFraction
	}
	if c.OvershootFraction == 0 {
		c.OvershootFraction = d.OvershootFraction
	}
	if c.FPS == 0 {
		c.FPS = d.FPS
	}

	if c.Spring == nil {
		c.Spring = &SpringConfig{}
	}
	if c.Spring.DampingRatio == 0 {
		c.Spring.DampingRatio = d.Spring.DampingRatio
	}
	if c.Spring.Stiffness == 0 {
		c.Spring.Stiffness = d.Spring.Stiffness
	}

	if c.Decay == nil {
		c.Decay = &DecayConfig{}
	}
	if c.Decay.Type == "" {
		c.Decay.Type = motion.DecayExponential
	}
}

// Options converts c to pager options.
func (c *PagerConfig) Options() (pager.Options, error) {
	axis, err := geometry.ParseAxis(c.Orientation)
	if err != nil {
		return pager.Options{}, fmt.Errorf("orientation: %w", err)
	}

	o := pager.Options{
		Axis:              axis,
		InitialIndex:      c.InitialIndex,
		ItemFraction:      c.ItemFraction,
		ItemSpacing:       c.ItemSpacing,
		OvershootFraction: c.OvershootFraction,
		FPS:               c.FPS,
	}

	if c.Spring != nil {
		o.Spring = motion.Spring{DampingRatio: c.Spring.DampingRatio, Stiffness: c.Spring.Stiffness}
	}

	var decayType string

	var friction float64
	if c.Decay != nil {
		decayType, friction = c.Decay.Type, c.Decay.Friction
	}

	o.Decay, err = motion.ParseDecay(decayType, friction)
	if err != nil {
		return pager.Options{}, fmt.Errorf("decay: %w", err)
	}

	return o, nil
}

// PagerOpts returns c as a single [pager.PagerOpt].
func (c *PagerConfig) PagerOpts() ([]pager.PagerOpt, error) {
	o, err := c.Options()
	if err != nil {
		return nil, err
	}

	return []pager.PagerOpt{pager.WithOptions(o)}, nil
}

// Validate checks every option except the initial index, which can only be
// checked against the loaded cards.
func (c *PagerConfig) Validate() error {
	o, err := c.Options()
	if err != nil {
		return err
	}

	err = o.Validate(o.InitialIndex + 1)
	if err != nil {
		return fmt.Errorf("pager: %w", err)
	}

	return nil
}
