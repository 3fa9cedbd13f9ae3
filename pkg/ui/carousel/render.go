package carousel

import (
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/macropower/carousel/pkg/geometry"
	"github.com/macropower/carousel/pkg/source"
	"github.com/macropower/carousel/pkg/ui/overlay"
	"github.com/macropower/carousel/pkg/ui/theme"
)

// canvas renders cards for one layout pass. Measure renders a card at its
// constrained size and keeps the result for Place, which pastes it at its
// cell position.
type canvas struct {
	theme    *theme.Theme
	rendered map[int]string
	lines    []string
	width    int
	focused  int
	axis     geometry.Axis
	wordWrap bool
}

func newCanvas(t *theme.Theme, size geometry.Size, axis geometry.Axis, focused int, wordWrap bool) *canvas {
	return &canvas{
		theme:    t,
		rendered: map[int]string{},
		lines:    overlay.Canvas(size.Width, size.Height),
		width:    size.Width,
		focused:  focused,
		axis:     axis,
		wordWrap: wordWrap,
	}
}

// Measure implements [pager.Measurer]. Along the scroll axis the card fills
// the item dimension; across it the card fills the viewport.
func (c *canvas) Measure(index int, card source.Card, cons geometry.Constraints) geometry.Size {
	size := geometry.Size{Width: cons.MaxWidth, Height: cons.MaxHeight}
	if c.axis == geometry.Vertical {
		size.Height = cons.MinHeight
	} else {
		size.Width = cons.MinWidth
	}

	c.rendered[index] = c.render(card, index == c.focused, size)

	return size
}

// Place implements [pager.Placer].
func (c *canvas) Place(index int, _ source.Card, _ geometry.Size, pos geometry.Point) {
	c.lines = overlay.Paste(c.lines, c.width, c.rendered[index], int(pos.X), int(pos.Y))
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

func (c *canvas) render(card source.Card, focused bool, size geometry.Size) string {
	style := c.theme.CardStyle
	if focused {
		style = c.theme.FocusedCardStyle
	}

	innerW := max(0, size.Width-style.GetHorizontalFrameSize())
	innerH := max(0, size.Height-style.GetVerticalFrameSize())

	content := fit(c.theme.CardTitleStyle.Render(card.Title)+"\n\n"+card.Body, innerW, innerH, c.wordWrap, c.theme.Ellipsis)

	return style.
		Width(max(0, size.Width-style.GetHorizontalBorderSize())).
		Height(max(0, size.Height-style.GetVerticalBorderSize())).
		MaxWidth(size.Width).
		MaxHeight(size.Height).
		Render(content)
}

// fit wraps or truncates s to width cells and cuts it to height lines.
func fit(s string, width, height int, wrap bool, tail string) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	if wrap {
		s = cellbuf.Wrap(s, width, " -")
	}

	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
		lines[height-1] = ansi.Truncate(lines[height-1]+" "+tail, width, tail)
	}

	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			lines[i] = ansi.Truncate(l, width, tail)
		}
	}

	return strings.Join(lines, "\n")
}

func newDots(t *theme.Theme) paginator.Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 1
	p.ActiveDot = t.ActiveDotStyle.Render("•")
	p.InactiveDot = t.DotStyle.Render("◦")

	return p
}

// pagination renders the position indicator, switching from dots to
// "n/N" when the dots do not fit.
func pagination(p paginator.Model, t *theme.Theme, width int) string {
	if p.TotalPages <= 1 {
		return ""
	}

	view := p.View()
	if ansi.StringWidth(view) > width {
		p.Type = paginator.Arabic
		view = p.View()
	}

	return t.SubtleStyle.Width(width).AlignHorizontal(0.5).Render(view)
}
