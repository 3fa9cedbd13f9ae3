package geometry

import (
	"errors"
	"math"
)

// ErrZeroItemDimension is returned when an item would occupy less than one
// pixel along the scroll axis.
var ErrZeroItemDimension = errors.New("item dimension must be at least 1 pixel")

// Metrics describes one layout pass along the scroll axis.
type Metrics struct {
	// Viewport is the viewport extent along the scroll axis.
	Viewport int
	// ItemDimension is the extent of every item along the scroll axis.
	ItemDimension int
	// Spacing is the gap between two adjacent items.
	Spacing float64
	// Count is the number of items.
	Count int
}

// NewMetrics derives the item dimension from the viewport and the fraction of
// it each item occupies.
func NewMetrics(viewport int, itemFraction, spacing float64, count int) Metrics {
	return Metrics{
		Viewport:      viewport,
		ItemDimension: ItemDimension(viewport, itemFraction),
		Spacing:       spacing,
		Count:         count,
	}
}

// ItemDimension returns round(viewport * itemFraction).
func ItemDimension(viewport int, itemFraction float64) int {
	return int(math.Round(float64(viewport) * itemFraction))
}

// Valid reports whether the metrics can be laid out.
func (m Metrics) Valid() bool {
	return m.ItemDimension >= 1
}

// Stride is the distance between the leading edges of adjacent items.
func (m Metrics) Stride() float64 {
	return float64(m.ItemDimension) + m.Spacing
}

// SideMargin is the space on either side of a centered item.
func (m Metrics) SideMargin() float64 {
	return float64(m.Viewport-m.ItemDimension) / 2
}

// ItemOffset is the scroll offset at which item i is centered.
func (m Metrics) ItemOffset(i int) float64 {
	return float64(i) * m.Stride()
}

// Window is an inclusive range of item indexes. It is empty when Last < First.
type Window struct {
	First, Last int
}

// EmptyWindow contains no items.
var EmptyWindow = Window{First: 0, Last: -1}

// Empty reports whether w contains no items.
func (w Window) Empty() bool {
	return w.Last < w.First
}

// Len returns the number of items in w.
func (w Window) Len() int {
	if w.Empty() {
		return 0
	}

	return w.Last - w.First + 1
}

// Contains reports whether index i is in w.
func (w Window) Contains(i int) bool {
	return i >= w.First && i <= w.Last
}

// VisibleWindow returns the smallest range of items that covers every item
// intersecting the viewport at the given scroll offset.
func VisibleWindow(offset float64, m Metrics) (Window, error) {
	if !m.Valid() {
		return EmptyWindow, ErrZeroItemDimension
	}
	if m.Count <= 0 {
		return EmptyWindow, nil
	}

	stride := m.Stride()
	sideMargin := m.SideMargin()

	first := math.Ceil((offset - float64(m.ItemDimension) - sideMargin) / stride)
	last := math.Floor((float64(m.Viewport) + offset - sideMargin) / stride)

	w := Window{
		First: int(max(first, 0)),
		Last:  int(min(last, float64(m.Count-1))),
	}
	if w.First > m.Count-1 || w.Last < 0 || w.Empty() {
		return EmptyWindow, nil
	}

	return w, nil
}

// Placement is where a single item is placed, relative to the viewport.
type Placement struct {
	// Index of the placed item.
	Index int
	// Offset of the item's leading edge along the scroll axis.
	Offset int
	// Position is Offset expressed as a point, with 0 on the cross axis.
	Position Point
}

// Place returns the placement of every item in w.
func Place(w Window, offset float64, m Metrics, a Axis) []Placement {
	if w.Empty() {
		return nil
	}

	var (
		stride     = m.Stride()
		sideMargin = (m.Viewport - m.ItemDimension) / 2
		out        = make([]Placement, 0, w.Len())
	)

	for i := w.First; i <= w.Last; i++ {
		// Round once, so fractional spacing never accumulates per index.
		off := int(math.Round(float64(i)*stride-offset)) + sideMargin

		p := Placement{Index: i, Offset: off}
		if a == Vertical {
			p.Position = Point{Y: float64(off)}
		} else {
			p.Position = Point{X: float64(off)}
		}

		out = append(out, p)
	}

	return out
}

// CrossExtent returns the largest cross-axis extent among the measured sizes.
func CrossExtent(a Axis, sizes ...Size) int {
	extent := 0
	for _, s := range sizes {
		extent = max(extent, s.Cross(a))
	}

	return extent
}
