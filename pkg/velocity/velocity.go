// Package velocity estimates pointer velocity from timestamped positions.
package velocity

import (
	"math"
	"time"

	"github.com/macropower/carousel/pkg/geometry"
)

const (
	// HistorySize is the number of samples kept.
	HistorySize = 20
	// Horizon is how far back from the newest sample samples are considered.
	Horizon = 100 * time.Millisecond
	// StopThreshold is the largest gap between consecutive samples that still
	// counts as continuous movement.
	StopThreshold = 40 * time.Millisecond
)

// Sample is a pointer position at a point in time.
type Sample struct {
	Time     time.Time
	Position geometry.Point
}

// Tracker records recent pointer samples in a ring buffer.
// The zero value is ready to use.
type Tracker struct {
	samples [HistorySize]Sample
	head    int
	n       int
}

// Add records a sample. Samples must be added in time order.
func (t *Tracker) Add(at time.Time, pos geometry.Point) {
	t.samples[t.head] = Sample{Time: at, Position: pos}
	t.head = (t.head + 1) % HistorySize
	t.n = min(t.n+1, HistorySize)
}

// Reset drops all samples.
func (t *Tracker) Reset() {
	t.head = 0
	t.n = 0
}

// Len returns the number of recorded samples.
func (t *Tracker) Len() int {
	return t.n
}

// Velocity returns the pointer velocity along the axis in pixels per second.
//
// Only the newest run of samples within [Horizon] that has no gap larger than
// [StopThreshold] is used. Velocity is the slope of a least-squares line
// through those samples; fewer than two samples yield zero.
func (t *Tracker) Velocity(a geometry.Axis) float64 {
	if t.n < 2 {
		return 0
	}

	var (
		xs     [HistorySize]float64
		ys     [HistorySize]float64
		count  int
		newest = t.at(0)
		prev   = newest
	)

	for i := range t.n {
		s := t.at(i)
		age := newest.Time.Sub(s.Time)
		if age > Horizon || prev.Time.Sub(s.Time) > StopThreshold {
			break
		}

		xs[count] = -age.Seconds()
		ys[count] = s.Position.Along(a) - newest.Position.Along(a)
		count++
		prev = s
	}

	return slope(xs[:count], ys[:count])
}

// at returns the i-th newest sample.
func (t *Tracker) at(i int) Sample {
	return t.samples[(t.head-1-i+HistorySize*2)%HistorySize]
}

func slope(xs, ys []float64) float64 {
	n := float64(len(xs))
	if len(xs) < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}

	meanX, meanY := sumX/n, sumY/n

	var num, den float64
	for i := range xs {
		dx := xs[i] - meanX
		num += dx * (ys[i] - meanY)
		den += dx * dx
	}

	v := num / den
	if den == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
