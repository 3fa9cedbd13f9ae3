package geometry

import (
	"errors"
	"fmt"
	"strings"

	xstrings "github.com/charmbracelet/x/exp/strings"
)

// ErrUnknownAxis is returned when parsing an unsupported orientation.
var ErrUnknownAxis = errors.New("unknown axis")

// Axis is the direction items are laid out and scrolled in.
type Axis int

const (
	// Horizontal lays items out from left to right.
	Horizontal Axis = iota
	// Vertical lays items out from top to bottom.
	Vertical
)

// AllAxes lists the names accepted by [ParseAxis].
var AllAxes = []string{Horizontal.String(), Vertical.String()}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}

	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis parses an orientation name. "primary" and "cross" are accepted as
// aliases for horizontal and vertical.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "primary", "":
		return Horizontal, nil
	case "vertical", "cross":
		return Vertical, nil
	}

	return 0, fmt.Errorf("%w: %q, supported axes are %s",
		ErrUnknownAxis, s, xstrings.EnglishJoin(AllAxes, true))
}

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Along returns the component of p on the given axis.
func (p Point) Along(a Axis) float64 {
	if a == Vertical {
		return p.Y
	}

	return p.X
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is an integer extent in pixels.
type Size struct {
	Width, Height int
}

// Main returns the extent of s along the axis.
func (s Size) Main(a Axis) int {
	if a == Vertical {
		return s.Height
	}

	return s.Width
}

// Cross returns the extent of s perpendicular to the axis.
func (s Size) Cross(a Axis) int {
	if a == Vertical {
		return s.Width
	}

	return s.Height
}

// SizeOf builds a [Size] from main and cross extents.
func SizeOf(a Axis, main, cross int) Size {
	if a == Vertical {
		return Size{Width: cross, Height: main}
	}

	return Size{Width: main, Height: cross}
}

// Constraints bound the size a measured item may take.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Fixed returns constraints that only admit the given size.
func Fixed(s Size) Constraints {
	return Constraints{
		MinWidth:  s.Width,
		MaxWidth:  s.Width,
		MinHeight: s.Height,
		MaxHeight: s.Height,
	}
}

// Main returns the maximum extent along the axis.
func (c Constraints) Main(a Axis) int {
	if a == Vertical {
		return c.MaxHeight
	}

	return c.MaxWidth
}

// Loosen returns the constraints items are measured with: the scroll axis is
// forced to itemDimension and the cross axis minimum is dropped to zero.
func (c Constraints) Loosen(a Axis, itemDimension int) Constraints {
	if a == Vertical {
		return Constraints{
			MinWidth:  0,
			MaxWidth:  c.MaxWidth,
			MinHeight: itemDimension,
			MaxHeight: itemDimension,
		}
	}

	return Constraints{
		MinWidth:  itemDimension,
		MaxWidth:  itemDimension,
		MinHeight: 0,
		MaxHeight: c.MaxHeight,
	}
}

// Constrain clamps s into c.
func (c Constraints) Constrain(s Size) Size {
	return Size{
		Width:  min(max(s.Width, c.MinWidth), c.MaxWidth),
		Height: min(max(s.Height, c.MinHeight), c.MaxHeight),
	}
}
