package uitest

import (
	"iter"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock is a manually advanced clock for time stamping pointer events.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func Press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func Motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func Release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func Wheel(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionPress, Button: button}
}

// Drag returns a horizontal drag from x0 to x1 on row y in steps moves,
// followed by a release. Each message is produced lazily so that clock is
// advanced by interval between them, as a real pointer would be.
func Drag(clock *Clock, x0, x1, y, steps int, interval time.Duration) iter.Seq[tea.Msg] {
	return func(yield func(tea.Msg) bool) {
		if !yield(Press(x0, y)) {
			return
		}

		for i := 1; i <= steps; i++ {
			clock.Advance(interval)

			x := x0 + (x1-x0)*i/max(steps, 1)
			if !yield(Motion(x, y)) {
				return
			}
		}

		clock.Advance(interval)
		yield(Release(x1, y))
	}
}
