// Package overlay composites ANSI-styled blocks onto a background: centered
// dialogs over the carousel, and cards clipped at arbitrary cell offsets.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/macropower/carousel/pkg/ui/theme"
)

const defaultMinWidth = 16

// Overlay places dialogs in the middle of a view of a known size.
type Overlay struct {
	theme *theme.Theme

	width, height int
	minWidth      int
}

type OverlayOpt func(*Overlay)

// WithMinWidth sets the minimum dialog width in cells.
func WithMinWidth(minWidth int) OverlayOpt {
	return func(o *Overlay) {
		o.minWidth = minWidth
	}
}

func New(t *theme.Theme, opts ...OverlayOpt) *Overlay {
	o := &Overlay{theme: t, minWidth: defaultMinWidth}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// SetSize sets the size of the view dialogs are placed on.
func (o *Overlay) SetSize(width, height int) {
	o.width = max(0, width)
	o.height = max(0, height)
}

// Place wraps fg to widthFraction of the view, styles it, and centers it on
// bg. Content taller than the view is cut with a note.
func (o *Overlay) Place(bg, fg string, widthFraction float64, style lipgloss.Style) string {
	w := min(max(int(float64(o.width)*widthFraction), o.minWidth), o.width)

	lines := strings.Split(cellbuf.Wrap(fg, max(1, w-style.GetHorizontalFrameSize()), " /-"), "\n")

	limit := o.height - 8
	switch {
	case limit < 1:
		lines = nil
	case len(lines) > limit:
		note := ansi.Truncate("output truncated", max(0, w-4), o.theme.Ellipsis)
		lines = append(lines[:limit], "", o.theme.SubtleStyle.Render(note))
	}

	box := style.Width(max(0, w-style.GetHorizontalBorderSize())).Render(strings.Join(lines, "\n"))

	bgLines := strings.Split(bg, "\n")
	bgWidth := Width(bgLines)
	boxLines := strings.Split(box, "\n")

	x := max(0, bgWidth-Width(boxLines)) / 2
	y := max(0, len(bgLines)-len(boxLines)) / 2

	return strings.Join(Paste(bgLines, bgWidth, box, x, y), "\n")
}

// Canvas returns height blank lines of width cells.
func Canvas(width, height int) []string {
	line := strings.Repeat(" ", max(0, width))
	lines := make([]string, max(0, height))
	for i := range lines {
		lines[i] = line
	}

	return lines
}

// Paste draws fg over bg with its top-left corner at cell (x, y). Parts of
// fg outside [0, width) x [0, len(bg)) are clipped, so x and y may be
// negative. bg is modified in place and returned.
func Paste(bg []string, width int, fg string, x, y int) []string {
	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 {
			continue
		}

		if row >= len(bg) {
			break
		}

		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}

		if col >= width {
			continue
		}

		if ansi.StringWidth(line) > width-col {
			line = ansi.Truncate(line, width-col, "")
		}

		bg[row] = splice(bg[row], line, col)
	}

	return bg
}

// Width returns the width of the widest line.
func Width(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}

	return w
}

func splice(bg, fg string, col int) string {
	left := ansi.Truncate(bg, col, "")
	if lw := ansi.StringWidth(left); lw < col {
		left += strings.Repeat(" ", col-lw)
	}

	end := col + ansi.StringWidth(fg)
	right := ansi.TruncateLeft(bg, end, "")

	// Keep the line width stable when fg covers a wide rune boundary.
	if gap := ansi.StringWidth(bg) - end - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}

	return left + fg + right
}
