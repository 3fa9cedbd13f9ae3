// Package uitest provides helpers for testing bubbletea components:
// an adapter for models whose Update returns their concrete type, a fake
// clock and mouse gesture builders for driving drags and flings, and an
// ANSI style inspector.
//
//	clock := uitest.NewClock()
//	m := carousel.New(ctx, p, carousel.Config{Clock: clock.Now})
//	for _, msg := range uitest.Drag(clock, 40, 5, 10, 5, 10*time.Millisecond) {
//	    m, _ = m.Update(msg)
//	}
package uitest
