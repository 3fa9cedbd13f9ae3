// Package gesture turns pointer events into scroll offset changes.
//
// A [Machine] applies drags directly to an [offset.Model]. On release it
// estimates the pointer velocity, resolves the rest position of the fling
// with a [motion.Decay], snaps it to an item with [motion.Snap] and animates
// there with a spring, one frame per [Machine.Step]. A new pointer-down
// cancels a running settle before it touches the offset.
//
// Every gesture is traced as an OpenTelemetry span.
package gesture
