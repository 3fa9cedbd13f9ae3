// Package motion provides the physics used to settle a pager: decay functions
// that resolve where a fling comes to rest, snapping of that rest position to
// an item, and frame-stepped spring animations built on harmonica.
package motion
