// Package geometry maps a scroll offset onto the pager items that intersect
// the viewport, and computes where each of those items is placed.
//
// All functions are pure. Only the items inside the returned [Window] need to
// be measured or placed, so the cost of a layout pass depends on the number of
// visible items rather than on the total item count.
package geometry
