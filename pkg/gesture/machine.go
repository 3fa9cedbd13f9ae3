package gesture

import (
	"context"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/carousel/pkg/geometry"
	"github.com/macropower/carousel/pkg/log"
	"github.com/macropower/carousel/pkg/motion"
	"github.com/macropower/carousel/pkg/offset"
	"github.com/macropower/carousel/pkg/velocity"
)

var tracer = otel.Tracer("gesture")

// alignTolerance is the largest distance from an item that is corrected
// without animating.
const alignTolerance = 0.5

// Config configures a [Machine].
type Config struct {
	// Decay resolves the rest position of a fling.
	// Defaults to [motion.ExponentialDecay].
	Decay motion.Decay
	// Spring animates the settle. Defaults to [motion.DefaultSpring].
	Spring motion.Spring
	// FPS is the frame rate [Machine.Step] is called at.
	// Defaults to [motion.DefaultFPS].
	FPS int
	// Axis is the scroll axis. Movement on the other axis is ignored.
	Axis geometry.Axis
}

// Release describes how a drag was resolved when the pointer was lifted.
type Release struct {
	// Velocity of the content in px/s. It has the opposite sign of the
	// pointer velocity.
	Velocity float64
	// DecayTarget is where the content would have come to rest.
	DecayTarget float64
	// Offset is the snapped offset the settle animates to.
	Offset float64
	// Index is the item at Offset.
	Index int
}

// session is the state kept from pointer-down until the settle ends.
type session struct {
	ctx    context.Context
	span   trace.Span
	bounds offset.Bounds
	start  float64
	last   geometry.Point
	moves  int
}

// Machine drives an [offset.Model] from pointer events.
//
// Events are processed strictly in order, each fully applied before the next.
// A Machine is not safe for concurrent use; like the model it is owned by a
// single UI loop, which calls [Machine.Step] once per frame while
// [Machine.Animating] is true.
type Machine struct {
	model   *offset.Model
	anim    *motion.Animation
	session *session
	tracker velocity.Tracker
	cfg     Config
	state   State
	target  int
}

// NewMachine creates a [Machine] for the model.
func NewMachine(model *offset.Model, cfg Config) *Machine {
	if cfg.Decay == nil {
		cfg.Decay = motion.ExponentialDecay{}
	}
	if cfg.Spring == (motion.Spring{}) {
		cfg.Spring = motion.DefaultSpring
	}
	if cfg.FPS <= 0 {
		cfg.FPS = motion.DefaultFPS
	}

	return &Machine{
		model:  model,
		cfg:    cfg,
		target: model.Index(),
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Model returns the offset model driven by m.
func (m *Machine) Model() *offset.Model {
	return m.model
}

// Animating reports whether [Machine.Step] should be called on the next frame.
func (m *Machine) Animating() bool {
	return m.anim != nil && m.anim.Active()
}

// FrameInterval returns the time between two calls to [Machine.Step].
func (m *Machine) FrameInterval() time.Duration {
	return time.Second / time.Duration(m.cfg.FPS)
}

// Target returns the index the machine is settling on, or the focused index
// when it is not settling.
func (m *Machine) Target() int {
	if m.state == Settling {
		return m.target
	}

	return m.model.Index()
}

// Handle applies a pointer event.
func (m *Machine) Handle(ctx context.Context, e Event) {
	prev := m.state
	next := Transition(prev, e.Kind)

	switch e.Kind {
	case PointerDown:
		// The running animation must stop before this gesture touches the
		// offset.
		m.stop("superseded")
		m.begin(ctx, e)

	case PointerMove:
		if next != Dragging {
			return
		}

		m.drag(e)

	case PointerUp, PointerCancel:
		if next != Settling {
			return
		}

		var v float64
		if e.Kind == PointerUp {
			m.tracker.Add(e.Time, e.Position)
			v = -m.tracker.Velocity(m.cfg.Axis)
		}

		m.release(v)

	case Animate, Settled:
		// Produced internally by AnimateTo and Step.
	}

	m.state = next
}

// AnimateTo settles on item index with the spring. While a pointer is down
// the request is ignored. A running settle is retargeted and keeps its
// velocity.
func (m *Machine) AnimateTo(ctx context.Context, index int) {
	next := Transition(m.state, Animate)
	if next != Settling || !m.model.Ready() {
		return
	}

	metrics := m.model.Metrics()
	index = min(max(index, 0), max(metrics.Count-1, 0))
	m.target = index

	to := m.model.ItemOffset(index)
	if m.Animating() {
		m.anim.Retarget(to)
	} else {
		if m.session == nil {
			s := &session{start: m.model.Offset(), bounds: m.model.Bounds()}
			s.ctx, s.span = tracer.Start(ctx, "animate",
				trace.WithAttributes(attribute.Int("gesture.target_index", index)),
			)
			m.session = s
		}

		m.anim = m.cfg.Spring.Animate(m.model.Offset(), to, 0, m.cfg.FPS)
	}

	m.state = next
}

// SnapTo jumps to item index without animating, canceling any settle.
func (m *Machine) SnapTo(index int) {
	if m.state == Pressed || m.state == Dragging || !m.model.Ready() {
		return
	}

	m.stop("snapped")

	metrics := m.model.Metrics()
	m.target = min(max(index, 0), max(metrics.Count-1, 0))
	m.model.Set(m.model.ItemOffset(m.target))
	m.state = Idle
}

// Cancel stops any running animation, leaving the offset where it is.
func (m *Machine) Cancel() {
	m.stop("canceled")
	m.state = Idle
}

// Step advances the settle animation by one frame and applies the new value
// to the model. It returns true while more frames follow.
func (m *Machine) Step() bool {
	if !m.Animating() {
		return false
	}

	v, ok := m.anim.Next()
	if ok {
		m.model.Set(v)
	}

	if m.anim.Active() {
		return true
	}

	m.state = Transition(m.state, Settled)
	m.end(codes.Ok, "")

	return false
}

// SetMetrics forwards a layout pass to the model. A running settle is moved
// to the same item at the new stride, continuing from the rescaled offset.
// When idle and the new bounds leave the content off an item, it settles on
// the focused item.
func (m *Machine) SetMetrics(metrics geometry.Metrics) {
	prev := m.model.Metrics()
	if !m.model.SetMetrics(metrics) || !metrics.Valid() {
		return
	}

	switch {
	case m.Animating():
		m.target = min(m.target, max(metrics.Count-1, 0))
		to := m.model.ItemOffset(m.target)

		scale := 1.0
		if prev.Valid() {
			scale = metrics.Stride() / prev.Stride()
		}

		m.anim.Cancel()
		m.anim = m.cfg.Spring.Animate(m.model.Offset(), to, m.anim.Velocity()*scale, m.cfg.FPS)

	case m.state == Idle:
		index := m.model.Index()
		to := m.model.ItemOffset(index)

		switch d := math.Abs(m.model.Offset() - to); {
		case d > alignTolerance:
			m.AnimateTo(context.Background(), index)
		case d > 0:
			m.model.Set(to)
		}
	}
}

func (m *Machine) begin(ctx context.Context, e Event) {
	m.tracker.Reset()
	m.tracker.Add(e.Time, e.Position)

	s := &session{
		start:  m.model.Offset(),
		bounds: m.model.Bounds(),
		last:   e.Position,
	}
	s.ctx, s.span = tracer.Start(ctx, "gesture",
		trace.WithAttributes(
			attribute.Float64("gesture.start_offset", s.start),
			attribute.Float64("gesture.min_offset", s.bounds.Min),
			attribute.Float64("gesture.max_offset", s.bounds.Max),
			attribute.String("gesture.axis", m.cfg.Axis.String()),
		),
	)
	m.session = s

	log.WithContext(s.ctx).DebugContext(s.ctx, "gesture started",
		slog.Float64("offset", s.start),
		slog.Int("index", m.model.Index()),
	)
}

func (m *Machine) drag(e Event) {
	s := m.session
	if s == nil {
		return
	}

	delta := e.Position.Sub(s.last).Along(m.cfg.Axis)
	s.last = e.Position
	s.moves++

	m.tracker.Add(e.Time, e.Position)
	m.model.Set(m.model.Offset() - delta)
}

// release resolves the settle target for a content velocity and starts the
// spring.
func (m *Machine) release(v float64) {
	metrics := m.model.Metrics()
	from := m.model.Offset()

	target := m.cfg.Decay.Target(from, v)
	index, to := motion.Snap(target, metrics)

	r := Release{Velocity: v, DecayTarget: target, Offset: to, Index: index}
	m.target = r.Index
	m.anim = m.cfg.Spring.Animate(from, r.Offset, r.Velocity, m.cfg.FPS)

	if s := m.session; s != nil {
		s.span.SetAttributes(
			attribute.Int("gesture.moves", s.moves),
			attribute.Float64("gesture.release_velocity", r.Velocity),
			attribute.Float64("gesture.decay_target", r.DecayTarget),
			attribute.Int("gesture.snapped_index", r.Index),
		)
		log.WithContext(s.ctx).DebugContext(s.ctx, "gesture released",
			slog.Float64("velocity", r.Velocity),
			slog.Float64("decay_target", r.DecayTarget),
			slog.Int("snapped_index", r.Index),
		)
	}
}

// stop cancels the running animation and ends the session.
func (m *Machine) stop(reason string) {
	if m.anim != nil && m.anim.Active() {
		m.anim.Cancel()
	}

	if m.session != nil {
		m.end(codes.Unset, reason)
	}
}

func (m *Machine) end(code codes.Code, reason string) {
	s := m.session
	if s == nil {
		return
	}

	m.session = nil

	s.span.SetAttributes(attribute.Float64("gesture.end_offset", m.model.Offset()))
	if reason != "" {
		s.span.SetAttributes(attribute.String("gesture.interrupted", reason))
	}

	s.span.SetStatus(code, reason)
	s.span.End()

	log.WithContext(s.ctx).DebugContext(s.ctx, "gesture ended",
		slog.Float64("offset", m.model.Offset()),
		slog.Int("index", m.model.Index()),
		slog.String("reason", reason),
	)
}
