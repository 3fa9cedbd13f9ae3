package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/carousel/pkg/ui/theme"
)

type KeyBindRenderer interface {
	Render(width int) string
}

// Help renders the key binding panel.
type Help struct {
	theme    *theme.Theme
	keyBinds KeyBindRenderer
}

func NewHelp(t *theme.Theme, keyBinds KeyBindRenderer) *Help {
	return &Help{theme: t, keyBinds: keyBinds}
}

func (h *Help) Render(width int) string {
	content := lipgloss.NewStyle().
		Padding(1).
		Render(h.keyBinds.Render(max(0, width-2)))

	return h.theme.HelpStyle.Render(content)
}

// Height is the number of lines [Help.Render] produces.
func (h *Help) Height(width int) int {
	return strings.Count(h.Render(width), "\n") + 1
}
