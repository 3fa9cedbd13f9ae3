package theme_test

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/carousel/pkg/ui/theme"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err     error
		entries chroma.StyleEntries
		name    string
	}{
		"valid entries": {
			name: "carousel-test-full",
			entries: chroma.StyleEntries{
				chroma.Background:     "#ffffff bg:#000000",
				chroma.Comment:        "italic #008000",
				chroma.NameTag:        "bold #800080",
				chroma.GenericDeleted: "#ff0000",
			},
		},
		"minimal entries": {
			name: "carousel-test-minimal",
			entries: chroma.StyleEntries{
				chroma.Background: "#ffffff bg:#000000",
			},
		},
		"empty name": {
			entries: chroma.StyleEntries{
				chroma.Background: "#ffffff",
			},
			err: theme.ErrInvalidName,
		},
		"invalid color": {
			name: "carousel-test-invalid",
			entries: chroma.StyleEntries{
				chroma.Background: "invalid-color-format",
			},
			err: theme.ErrRegisterStyles,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := theme.Register(tc.name, tc.entries)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)

			th := theme.New(tc.name)
			assert.Equal(t, tc.name, th.Name)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"light":   "github",
		"dark":    "github-dark",
		"monokai": "monokai",
		"nope":    "swapoff",
	}

	for in, want := range tcs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			th := theme.New(in)
			assert.Equal(t, want, th.Name)
			assert.Equal(t, theme.Ellipsis, th.Ellipsis)
			assert.Contains(t, th.FocusedCardStyle.Render("card"), "card")
		})
	}
}

func TestNew_DistinctPalettes(t *testing.T) {
	t.Parallel()

	lipgloss.SetColorProfile(termenv.TrueColor)

	light := theme.New("light")
	dark := theme.New("dark")

	assert.NotEqual(t, light.GenericTextStyle.Render("x"), dark.GenericTextStyle.Render("x"))
	assert.NotEqual(t, light.CardStyle.GetBorderTopForeground(), light.FocusedCardStyle.GetBorderTopForeground())
}
