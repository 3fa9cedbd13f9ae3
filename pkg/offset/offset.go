// Package offset owns the scroll offset of a pager and the focused index
// derived from it.
//
// The offset is always stored clamped to the current [Bounds]. Every mutation
// that changes the derived index invokes the change callback synchronously,
// exactly once per distinct index.
package offset

import (
	"log/slog"
	"math"

	"github.com/macropower/carousel/pkg/geometry"
)

// Bounds is the closed range the offset is clamped to.
type Bounds struct {
	Min, Max float64
}

// Clamp returns v clamped into b.
func (b Bounds) Clamp(v float64) float64 {
	return min(max(v, b.Min), b.Max)
}

// Contains reports whether v lies within b.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// ComputeBounds returns the offset bounds for the given metrics and overshoot
// fraction.
//
//	min = -viewport*overshoot + sideMargin
//	max = count*stride - (1-overshoot)*viewport + sideMargin
//
// The range is widened so that both the first and the last item can always be
// centered.
func ComputeBounds(m geometry.Metrics, overshoot float64) Bounds {
	if !m.Valid() || m.Count <= 0 {
		return Bounds{}
	}

	var (
		viewport = float64(m.Viewport)
		stride   = m.Stride()
		margin   = m.SideMargin()
	)

	b := Bounds{
		Min: -viewport*overshoot + margin,
		Max: float64(m.Count)*stride - (1-overshoot)*viewport + margin,
	}

	b.Min = min(b.Min, 0)
	b.Max = max(b.Max, float64(m.Count-1)*stride)

	return b
}

// IndexAt returns the focused index for offset v.
func IndexAt(v float64, m geometry.Metrics) int {
	if !m.Valid() || m.Count <= 0 {
		return 0
	}

	i := int(math.Round(v / m.Stride()))

	return min(max(i, 0), m.Count-1)
}

// Model is the scroll offset of a pager.
//
// A Model is not safe for concurrent use; it is owned by a single UI loop.
type Model struct {
	onChange  func(index int)
	metrics   geometry.Metrics
	bounds    Bounds
	overshoot float64
	value     float64
	index     int
	ready     bool
}

// New creates a [Model] that will center initialIndex once it receives valid
// metrics. onChange may be nil.
func New(initialIndex int, overshoot float64, onChange func(index int)) *Model {
	return &Model{
		index:     initialIndex,
		overshoot: overshoot,
		onChange:  onChange,
	}
}

// OnChange replaces the index change callback.
func (m *Model) OnChange(fn func(index int)) {
	m.onChange = fn
}

// Ready reports whether the model has received metrics with a non-zero item
// dimension.
func (m *Model) Ready() bool {
	return m.ready
}

// Metrics returns the metrics of the last layout pass.
func (m *Model) Metrics() geometry.Metrics {
	return m.metrics
}

// Bounds returns the current clamping range.
func (m *Model) Bounds() Bounds {
	return m.bounds
}

// Offset returns the current scroll offset.
func (m *Model) Offset() float64 {
	return m.value
}

// Index returns the focused index. Before the first valid layout pass this is
// the initial index.
func (m *Model) Index() int {
	return m.index
}

// Clamp returns v clamped into the current bounds. NaN maps to the current
// offset.
func (m *Model) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return m.value
	}

	return m.bounds.Clamp(v)
}

// ItemOffset returns the offset at which item i is centered.
func (m *Model) ItemOffset(i int) float64 {
	return m.metrics.ItemOffset(i)
}

// Set stores v clamped into the bounds and returns the stored value.
// Calls made before the model is ready, or with NaN, are ignored.
func (m *Model) Set(v float64) float64 {
	if !m.ready {
		return m.value
	}

	m.value = m.Clamp(v)
	m.update()

	return m.value
}

// SetOvershoot changes the overshoot fraction and re-clamps the offset.
func (m *Model) SetOvershoot(overshoot float64) {
	m.overshoot = overshoot
	if m.ready {
		m.SetMetrics(m.metrics)
	}
}

// SetMetrics recomputes the bounds for a new layout pass.
//
// The first valid metrics place the initial index at the center. Later stride
// changes rescale the offset so the same fractional item position remains
// centered. The offset is then re-clamped, which may change the index.
// It reports whether the metrics differ from the previous pass.
func (m *Model) SetMetrics(metrics geometry.Metrics) bool {
	changed := metrics != m.metrics
	if !metrics.Valid() {
		// Transient layout state; keep the offset for the next valid pass.
		return changed
	}

	prev := m.metrics

	m.metrics = metrics
	m.bounds = ComputeBounds(metrics, m.overshoot)

	switch {
	case !m.ready:
		m.ready = true
		m.index = min(max(m.index, 0), max(metrics.Count-1, 0))
		m.value = m.bounds.Clamp(metrics.ItemOffset(m.index))
	case prev.Valid() && prev.Stride() != metrics.Stride():
		m.value = m.value / prev.Stride() * metrics.Stride()
		m.value = m.bounds.Clamp(m.value)
	default:
		m.value = m.bounds.Clamp(m.value)
	}

	if changed {
		slog.Debug("offset metrics changed",
			slog.Int("viewport", metrics.Viewport),
			slog.Int("item_dimension", metrics.ItemDimension),
			slog.Int("count", metrics.Count),
			slog.Float64("offset", m.value),
		)
	}

	m.update()

	return changed
}

func (m *Model) update() {
	i := IndexAt(m.value, m.metrics)
	if i == m.index {
		return
	}

	m.index = i
	if m.onChange != nil {
		m.onChange(i)
	}
}
