package overlay_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/carousel/pkg/ui/overlay"
	"github.com/macropower/carousel/pkg/ui/theme"
)

func TestPaste(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		fg   string
		want []string
		x, y int
	}{
		"inside": {
			fg:   "ab\ncd",
			x:    1,
			y:    1,
			want: []string{"......", ".ab...", ".cd...", "......"},
		},
		"clipped left": {
			fg:   "abcd",
			x:    -2,
			y:    0,
			want: []string{"cd....", "......", "......", "......"},
		},
		"clipped right": {
			fg:   "abcd",
			x:    4,
			y:    3,
			want: []string{"......", "......", "......", "....ab"},
		},
		"clipped top and bottom": {
			fg:   "1\n2\n3\n4\n5\n6",
			x:    0,
			y:    -1,
			want: []string{"2.....", "3.....", "4.....", "5....."},
		},
		"fully outside": {
			fg:   "abcd",
			x:    6,
			y:    0,
			want: []string{"......", "......", "......", "......"},
		},
		"fully left": {
			fg:   "abcd",
			x:    -4,
			y:    0,
			want: []string{"......", "......", "......", "......"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			bg := strings.Split(strings.Repeat("......\n", 4)[:27], "\n")
			got := overlay.Paste(bg, 6, tc.fg, tc.x, tc.y)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaste_Styled(t *testing.T) {
	t.Parallel()

	fg := "\x1b[1mbold\x1b[0m"
	got := overlay.Paste(overlay.Canvas(8, 1), 8, fg, 6, 0)

	require.Len(t, got, 1)
	assert.Equal(t, 8, ansi.StringWidth(got[0]))
	assert.Equal(t, "      bo", ansi.Strip(got[0]))
}

func TestCanvas(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"   ", "   "}, overlay.Canvas(3, 2))
	assert.Empty(t, overlay.Canvas(3, 0))
	assert.Equal(t, []string{""}, overlay.Canvas(-1, 1))
}

func TestOverlay_Place(t *testing.T) {
	t.Parallel()

	th := theme.New("github")

	tcs := map[string]struct {
		fg            string
		contains      []string
		width, height int
		fraction      float64
	}{
		"centered dialog": {
			fg:       "hello",
			width:    40,
			height:   20,
			fraction: 0.5,
			contains: []string{"hello"},
		},
		"long content is truncated": {
			fg:       strings.Repeat("line\n", 30),
			width:    40,
			height:   12,
			fraction: 0.5,
			contains: []string{"output truncated"},
		},
		"too short for content": {
			fg:       "hidden",
			width:    40,
			height:   5,
			fraction: 0.5,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			o := overlay.New(th, overlay.WithMinWidth(10))
			o.SetSize(tc.width, tc.height)

			bg := strings.Join(overlay.Canvas(tc.width, tc.height), "\n")
			got := o.Place(bg, tc.fg, tc.fraction, lipgloss.NewStyle().Border(lipgloss.RoundedBorder()))
			lines := strings.Split(got, "\n")

			assert.Len(t, lines, tc.height)

			for _, l := range lines {
				assert.Equal(t, tc.width, ansi.StringWidth(l))
			}

			for _, s := range tc.contains {
				assert.Contains(t, ansi.Strip(got), s)
			}
		})
	}
}
