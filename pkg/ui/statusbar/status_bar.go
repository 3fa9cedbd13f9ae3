// Package statusbar renders the one-line status bar and the help panel shown
// below the carousel.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/carousel/pkg/ui/theme"
	"github.com/macropower/carousel/pkg/version"
)

const helpText = " ? Help "

type Style int

const (
	StyleNormal Style = iota
	StyleSuccess
	StyleError
)

// StatusBar renders "logo | note | position | help" across a fixed width.
type StatusBar struct {
	theme   *theme.Theme
	message string
	width   int
	style   Style
}

type StatusBarOpt func(*StatusBar)

// WithMessage replaces the note with a transient message.
func WithMessage(message string, style Style) StatusBarOpt {
	return func(sb *StatusBar) {
		if message == "" {
			return
		}

		sb.message = message
		sb.style = style
	}
}

func New(t *theme.Theme, width int, opts ...StatusBarOpt) *StatusBar {
	sb := &StatusBar{theme: t, width: max(0, width)}
	for _, opt := range opts {
		opt(sb)
	}

	return sb
}

// Position formats a one-based position such as "12 of 1,024".
func Position(index, count int) string {
	if count == 0 {
		return "0 of 0"
	}

	return fmt.Sprintf("%s of %s", humanize.Comma(int64(index+1)), humanize.Comma(int64(count)))
}

// Render draws the bar. note is shown unless a message was set.
func (sb *StatusBar) Render(note, position string) string {
	logo := sb.theme.LogoStyle.Render(fmt.Sprintf(" carousel %s ", version.GetVersion()))
	pos := sb.fill(sb.theme.StatusBarPosStyle).Render(" " + position + " ")
	help := sb.theme.StatusBarHelpStyle.Render(helpText)

	if sb.message != "" {
		note = sb.message
	}

	note = strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))

	avail := max(0, sb.width-ansi.StringWidth(logo)-ansi.StringWidth(pos)-ansi.StringWidth(help))
	note = truncate.StringWithTail(" "+note+" ", uint(avail), sb.theme.Ellipsis) //nolint:gosec // Uses max.

	noteStyle := sb.fill(sb.theme.StatusBarStyle)
	noteView := noteStyle.Render(note)
	gap := max(0, sb.width-ansi.StringWidth(logo)-ansi.StringWidth(noteView)-ansi.StringWidth(pos)-ansi.StringWidth(help))

	return logo + noteView + noteStyle.Render(strings.Repeat(" ", gap)) + pos + help
}

func (sb *StatusBar) fill(normal lipgloss.Style) lipgloss.Style {
	switch sb.style {
	case StyleSuccess:
		return sb.theme.StatusMessageStyle
	case StyleError:
		return sb.theme.StatusErrorStyle
	}

	return normal
}
