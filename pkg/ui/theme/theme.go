// Package theme derives the TUI palette from a chroma style, so any chroma
// style name can be used as a theme.
package theme

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const Ellipsis = "…"

var (
	ErrInvalidName    = errors.New("theme name must not be empty")
	ErrRegisterStyles = errors.New("register theme")
)

var Default = New("auto")

type Theme struct {
	CardStyle        lipgloss.Style
	FocusedCardStyle lipgloss.Style
	CardTitleStyle   lipgloss.Style

	DotStyle       lipgloss.Style
	ActiveDotStyle lipgloss.Style

	LogoStyle           lipgloss.Style
	StatusBarStyle      lipgloss.Style
	StatusBarPosStyle   lipgloss.Style
	StatusBarHelpStyle  lipgloss.Style
	StatusMessageStyle  lipgloss.Style
	StatusErrorStyle    lipgloss.Style
	SearchPromptStyle   lipgloss.Style
	SearchCursorStyle   lipgloss.Style
	HelpStyle           lipgloss.Style
	ErrorTitleStyle     lipgloss.Style
	ErrorOverlayStyle   lipgloss.Style
	GenericOverlayStyle lipgloss.Style
	GenericTextStyle    lipgloss.Style
	SubtleStyle         lipgloss.Style

	ChromaStyle *chroma.Style
	Name        string
	Ellipsis    string
}

// New builds a theme from the named chroma style. "auto" (or "") picks a
// light or dark github style from the terminal background; "dark" and
// "light" are shorthands. Unknown names fall back to chroma's fallback style.
func New(name string) *Theme {
	cs := newChromaStyle(name)

	var (
		text   = cs.fg(chroma.Background)
		bg     = cs.bg(chroma.Background)
		accent = cs.fg(chroma.NameTag)
		subtle = cs.fg(chroma.Comment)
		bad    = cs.fg(chroma.GenericDeleted)

		generic = lipgloss.NewStyle().Foreground(text)
	)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(subtle).
		Padding(0, 1)

	return &Theme{
		CardStyle:        card,
		FocusedCardStyle: card.BorderForeground(accent),
		CardTitleStyle:   lipgloss.NewStyle().Foreground(accent).Bold(true),

		DotStyle:       lipgloss.NewStyle().Foreground(subtle),
		ActiveDotStyle: lipgloss.NewStyle().Foreground(accent),

		LogoStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(text).
			Background(cs.bgShade(chroma.Background, 0.1)),
		StatusBarPosStyle: lipgloss.NewStyle().
			Foreground(text).
			Background(cs.bgShade(chroma.Background, 0.15)),
		StatusBarHelpStyle: lipgloss.NewStyle().
			Foreground(cs.fgShade(chroma.Background, 0.2)).
			Background(cs.bgShade(chroma.Background, 0.2)),
		StatusMessageStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(cs.fgShade(chroma.NameTag, 0.15)),
		StatusErrorStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(bad),
		SearchPromptStyle: lipgloss.NewStyle().Foreground(accent),
		SearchCursorStyle: lipgloss.NewStyle().Foreground(cs.fgShade(chroma.NameTag, 0.3)),
		HelpStyle: lipgloss.NewStyle().
			Foreground(cs.fgShade(chroma.Background, 0.2)).
			Background(cs.bgShade(chroma.Background, 0.2)),
		ErrorTitleStyle: generic.Background(bad),
		ErrorOverlayStyle: generic.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(bad),
		GenericOverlayStyle: generic.Border(lipgloss.RoundedBorder()),
		GenericTextStyle:    generic,
		SubtleStyle:         lipgloss.NewStyle().Foreground(subtle),

		ChromaStyle: cs.style,
		Name:        cs.style.Name,
		Ellipsis:    Ellipsis,
	}
}

// Register adds a chroma style that [New] can then find by name.
func Register(name string, entries chroma.StyleEntries) error {
	if name == "" {
		return ErrInvalidName
	}

	s, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrRegisterStyles, name, err)
	}

	styles.Register(s)

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(name string) chromaStyle {
	s := styles.Get(resolve(name))
	if s == nil {
		s = styles.Fallback
	}

	return chromaStyle{style: s}
}

func (cs chromaStyle) fg(t chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Colour.String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bg(t chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Background.String())
}

func (cs chromaStyle) fgShade(t chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Colour.BrightenOrDarken(factor).String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bgShade(t chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Background.BrightenOrDarken(factor).String())
}

func resolve(name string) string {
	switch name {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return "github"
		}

		if termenv.HasDarkBackground() {
			return "github-dark"
		}

		return "github"
	}

	return name
}
