package motion

import (
	"iter"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Damping ratio presets.
const (
	DampingRatioHighBouncy   = 0.2
	DampingRatioMediumBouncy = 0.5
	DampingRatioLowBouncy    = 0.75
	DampingRatioNoBouncy     = 1.0
)

// Stiffness presets.
const (
	StiffnessHigh      = 10_000.0
	StiffnessMedium    = 1500.0
	StiffnessMediumLow = 400.0
	StiffnessLow       = 200.0
	StiffnessVeryLow   = 50.0
)

const (
	// DefaultFPS is the frame rate animations are stepped at.
	DefaultFPS = 60
	// VisibilityThreshold is the displacement and velocity below which a
	// spring is considered settled.
	VisibilityThreshold = 0.01
	// MaxDuration bounds the length of any animation.
	MaxDuration = 30 * time.Second
)

// Spring describes a damped harmonic oscillator with unit mass.
type Spring struct {
	DampingRatio float64 `json:"dampingRatio,omitempty" yaml:"dampingRatio,omitempty"`
	Stiffness    float64 `json:"stiffness,omitempty"    yaml:"stiffness,omitempty"`
}

// DefaultSpring is the spring used to settle on an item.
var DefaultSpring = Spring{
	DampingRatio: DampingRatioLowBouncy,
	Stiffness:    StiffnessLow,
}

// AngularFrequency returns sqrt(stiffness).
func (s Spring) AngularFrequency() float64 {
	return math.Sqrt(s.Stiffness)
}

// Animate starts an animation from `from` toward `to` with the given initial
// velocity in px/s, stepped at fps frames per second.
func (s Spring) Animate(from, to, velocity float64, fps int) *Animation {
	if fps <= 0 {
		fps = DefaultFPS
	}

	return &Animation{
		spring:    harmonica.NewSpring(harmonica.FPS(fps), s.AngularFrequency(), s.DampingRatio),
		value:     from,
		velocity:  velocity,
		target:    to,
		fps:       fps,
		maxFrames: int(MaxDuration.Seconds() * float64(fps)),
	}
}

// Animation is a cancelable, frame-driven spring animation.
//
// Each call to [Animation.Next] advances one frame. The sequence is finite:
// the last frame is exactly the target. An Animation is not safe for
// concurrent use.
type Animation struct {
	spring    harmonica.Spring
	value     float64
	velocity  float64
	target    float64
	fps       int
	frame     int
	maxFrames int
	done      bool
	canceled  bool
}

// Next advances one frame and returns the new value. It returns false when
// the animation has already finished or was canceled.
func (a *Animation) Next() (float64, bool) {
	if a.done || a.canceled {
		return a.value, false
	}

	a.frame++
	a.value, a.velocity = a.spring.Update(a.value, a.velocity, a.target)

	if a.settled() || a.frame >= a.maxFrames {
		a.value = a.target
		a.velocity = 0
		a.done = true
	}

	return a.value, true
}

// Frames returns the remaining frames as a sequence.
func (a *Animation) Frames() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for {
			v, ok := a.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Cancel stops the animation. No further frames are emitted and the value
// stays at the last emitted frame.
func (a *Animation) Cancel() {
	a.canceled = true
}

// Retarget moves the target without resetting the current value or velocity.
func (a *Animation) Retarget(to float64) {
	a.target = to
}

// Done reports whether the animation reached its target.
func (a *Animation) Done() bool {
	return a.done
}

// Canceled reports whether [Animation.Cancel] was called.
func (a *Animation) Canceled() bool {
	return a.canceled
}

// Active reports whether more frames will be emitted.
func (a *Animation) Active() bool {
	return !a.done && !a.canceled
}

// Value returns the last emitted value.
func (a *Animation) Value() float64 {
	return a.value
}

// Velocity returns the current velocity in px/s.
func (a *Animation) Velocity() float64 {
	return a.velocity
}

// Target returns the value the animation converges to.
func (a *Animation) Target() float64 {
	return a.target
}

// Elapsed returns the animated time so far.
func (a *Animation) Elapsed() time.Duration {
	return time.Duration(a.frame) * time.Second / time.Duration(a.fps)
}

// FrameInterval returns the time between two frames.
func (a *Animation) FrameInterval() time.Duration {
	return time.Second / time.Duration(a.fps)
}

func (a *Animation) settled() bool {
	return math.Abs(a.value-a.target) < VisibilityThreshold &&
		math.Abs(a.velocity) < VisibilityThreshold
}
