package motion

import (
	"errors"
	"fmt"
	"math"
	"strings"

	xstrings "github.com/charmbracelet/x/exp/strings"

	"github.com/macropower/carousel/pkg/geometry"
)

// ErrUnknownDecay is returned by [ParseDecay] for unsupported decay names.
var ErrUnknownDecay = errors.New("unknown decay")

// Decay names accepted by [ParseDecay].
const (
	DecayExponential = "exponential"
	DecaySpline      = "spline"
)

// AllDecays lists the decay names accepted by [ParseDecay].
var AllDecays = []string{DecayExponential, DecaySpline}

// Decay resolves where a fling comes to rest.
type Decay interface {
	// Target returns the offset a value starting at offset with the given
	// velocity (px/s) converges to. It is finite for any finite velocity.
	Target(offset, velocity float64) float64
}

// ParseDecay returns the decay with the given name. friction is the friction
// multiplier for exponential decay and the scroll friction for spline decay;
// zero selects the default.
func ParseDecay(name string, friction float64) (Decay, error) {
	switch strings.ToLower(name) {
	case DecayExponential, "":
		return ExponentialDecay{FrictionMultiplier: friction}, nil
	case DecaySpline:
		return SplineDecay{Friction: friction}, nil
	}

	return nil, fmt.Errorf("%w: %q, supported decays are %s",
		ErrUnknownDecay, name, xstrings.EnglishJoin(AllDecays, true))
}

// ExponentialDecay decelerates as offset(t) = target - (target-offset)*e^(-k*t)
// with k = 4.2*FrictionMultiplier.
type ExponentialDecay struct {
	// FrictionMultiplier scales the friction. Values <= 0 mean 1.
	FrictionMultiplier float64
}

const exponentialFriction = 4.2

// Target implements [Decay].
func (d ExponentialDecay) Target(offset, velocity float64) float64 {
	m := d.FrictionMultiplier
	if m <= 0 {
		m = 1
	}

	return offset + velocity/(exponentialFriction*m)
}

// Spline fling constants.
const (
	DefaultScrollFriction = 0.015

	inflexion      = 0.35
	gravityEarth   = 9.80665 // m/s².
	inchesPerMeter = 39.37
	physicalCoeff  = 0.84
)

var decelerationRate = math.Log(0.78) / math.Log(0.9)

// SplineDecay is the fling curve used by touch platforms, derived from a
// deceleration spline tuned to feel physical.
type SplineDecay struct {
	// Friction is the scroll friction. Values <= 0 mean [DefaultScrollFriction].
	Friction float64
	// Density is the number of pixels per density-independent pixel.
	// Values <= 0 mean 1.
	Density float64
}

// Target implements [Decay].
func (d SplineDecay) Target(offset, velocity float64) float64 {
	if velocity == 0 {
		return offset
	}

	return offset + math.Copysign(d.Distance(velocity), velocity)
}

// Distance returns the unsigned fling distance for the velocity.
func (d SplineDecay) Distance(velocity float64) float64 {
	friction := d.Friction
	if friction <= 0 {
		friction = DefaultScrollFriction
	}

	density := d.Density
	if density <= 0 {
		density = 1
	}

	coeff := gravityEarth * inchesPerMeter * density * 160 * physicalCoeff

	l := math.Log(inflexion * math.Abs(velocity) / (friction * coeff))

	return friction * coeff * math.Exp(decelerationRate/(decelerationRate-1)*l)
}

// Snap resolves a decay target to the offset of an item.
//
// The item is chosen by dividing |target| by the stride and rounding up when
// the remainder exceeds half a stride. The result keeps the sign of the
// target and is clamped to [0, (count-1)*stride], so a settle always ends on a
// valid item.
//
// Dividing by the stride rather than the item dimension keeps items reachable
// when spacing is non-zero; with zero spacing the two are identical.
func Snap(target float64, m geometry.Metrics) (int, float64) {
	if !m.Valid() || m.Count <= 0 {
		return 0, 0
	}

	var (
		abs    = math.Abs(target)
		stride = m.Stride()
		idx    int
	)

	switch {
	case math.IsNaN(target):
		idx = 0
	case abs >= float64(m.Count)*stride:
		idx = m.Count
	default:
		idx = int(abs / stride)
		if math.Mod(abs, stride) > stride/2 {
			idx++
		}
	}

	if target < 0 {
		idx = -idx
	}

	idx = min(max(idx, 0), m.Count-1)

	return idx, m.ItemOffset(idx)
}
