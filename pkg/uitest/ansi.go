package uitest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// SetupColorProfile forces true color output so styles can be compared.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// Lines strips ANSI sequences from s and splits it into lines.
func Lines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

// Foreground returns the true color foreground ("#RRGGBB") active at the
// first cell of text in output, or "" if text is unstyled or absent.
func Foreground(output, text string) string {
	var (
		fg    string
		plain strings.Builder
		state byte
	)

	// Foreground active at each plain byte offset.
	var colors []string

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	input := []byte(output)
	for len(input) > 0 {
		seq, width, n, next := ansi.DecodeSequence(input, state, p)

		switch {
		case ansi.HasCsiPrefix(seq) && seq[len(seq)-1] == 'm':
			fg = sgrForeground(p.Params(), fg)
		case width > 0 || string(seq) == "\n":
			plain.Write(seq)
			for range seq {
				colors = append(colors, fg)
			}
		}

		input = input[n:]
		state = next
	}

	i := strings.Index(plain.String(), text)
	if i < 0 {
		return ""
	}

	return colors[i]
}

func sgrForeground(params ansi.Params, fg string) string {
	if len(params) == 0 {
		return ""
	}

	for i := 0; i < len(params); i++ {
		switch params[i].Param(0) {
		case 0, 39:
			fg = ""
		case 38:
			if i+4 < len(params) && params[i+1].Param(0) == 2 {
				fg = fmt.Sprintf("#%02X%02X%02X", params[i+2].Param(0), params[i+3].Param(0), params[i+4].Param(0))
				i += 4
			}
		}
	}

	return fg
}
