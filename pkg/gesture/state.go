package gesture

import (
	"fmt"
	"time"

	"github.com/macropower/carousel/pkg/geometry"
)

// State is the lifecycle state of a gesture.
type State int

const (
	// Idle means no pointer is down and nothing is animating.
	Idle State = iota
	// Pressed means a pointer is down but has not moved yet.
	Pressed
	// Dragging means a pointer is down and has moved at least once.
	Dragging
	// Settling means the pointer was released and the offset is animating
	// toward an item.
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	}

	return fmt.Sprintf("state(%d)", int(s))
}

// Kind identifies an [Event].
type Kind int

const (
	// PointerDown starts a gesture.
	PointerDown Kind = iota
	// PointerMove moves a pressed pointer.
	PointerMove
	// PointerUp releases the pointer.
	PointerUp
	// PointerCancel aborts the gesture; it settles like a release without
	// velocity.
	PointerCancel
	// Animate requests a programmatic settle on an item.
	Animate
	// Settled is emitted by the machine itself when an animation completes.
	Settled
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case Animate:
		return "animate"
	case Settled:
		return "settled"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a pointer event delivered by the host.
type Event struct {
	Time     time.Time
	Position geometry.Point
	Kind     Kind
}

// Down returns a [PointerDown] event.
func Down(at time.Time, pos geometry.Point) Event {
	return Event{Kind: PointerDown, Time: at, Position: pos}
}

// Move returns a [PointerMove] event.
func Move(at time.Time, pos geometry.Point) Event {
	return Event{Kind: PointerMove, Time: at, Position: pos}
}

// Up returns a [PointerUp] event.
func Up(at time.Time, pos geometry.Point) Event {
	return Event{Kind: PointerUp, Time: at, Position: pos}
}

// Transition returns the state that follows s when an event of kind k is
// received. Events that do not apply to s leave it unchanged.
//
//	any      + down          -> pressed
//	pressed  + move          -> dragging
//	dragging + move          -> dragging
//	pressed  + up | cancel   -> settling
//	dragging + up | cancel   -> settling
//	idle     + animate       -> settling
//	settling + animate       -> settling
//	settling + settled       -> idle
func Transition(s State, k Kind) State {
	switch k {
	case PointerDown:
		return Pressed
	case PointerMove:
		if s == Pressed || s == Dragging {
			return Dragging
		}
	case PointerUp, PointerCancel:
		if s == Pressed || s == Dragging {
			return Settling
		}
	case Animate:
		if s == Idle || s == Settling {
			return Settling
		}
	case Settled:
		if s == Settling {
			return Idle
		}
	}

	return s
}
