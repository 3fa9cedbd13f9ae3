package keys_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/carousel/pkg/keys"
)

func TestKey_String(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		key  keys.Key
		want string
	}{
		"code": {
			key:  keys.New("l"),
			want: "l",
		},
		"alias": {
			key:  keys.New("right", keys.WithAlias("→")),
			want: "→",
		},
		"hidden keeps its name": {
			key:  keys.New("ctrl+c", keys.Hidden()),
			want: "ctrl+c",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.key.String())
		})
	}
}

func TestKeyBind(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("next card",
		keys.New("right", keys.WithAlias("→")),
		keys.New("l"),
		keys.New("ctrl+n", keys.Hidden()),
	)

	assert.Equal(t, "→/l", kb.String())
	assert.True(t, kb.Match("right"))
	assert.True(t, kb.Match("ctrl+n"))
	assert.False(t, kb.Match("→"))

	kb.AddKey(keys.New("l"))
	assert.Len(t, kb.Keys, 3)

	kb.AddKey(keys.New("tab"))
	assert.Len(t, kb.Keys, 4)

	var nilBind *keys.KeyBind
	assert.False(t, nilBind.Match("l"))
	nilBind.AddKey(keys.New("l"))
}

func TestKeyBind_Row(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		kb        keys.KeyBind
		want      string
		keyWidth  int
		descWidth int
	}{
		"padded": {
			kb:        keys.NewBind("first", keys.New("g")),
			keyWidth:  3,
			descWidth: 10,
			want:      "g    first   ",
		},
		"truncated description": {
			kb:        keys.NewBind("copy the focused card", keys.New("y")),
			keyWidth:  1,
			descWidth: 8,
			want:      "y  copy …",
		},
		"all hidden": {
			kb:        keys.NewBind("quit", keys.New("ctrl+c", keys.Hidden())),
			keyWidth:  4,
			descWidth: 10,
			want:      "",
		},
		"no room for description": {
			kb:        keys.NewBind("help", keys.New("?")),
			keyWidth:  1,
			descWidth: 2,
			want:      "?  " + keys.Ellipsis,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.kb.Row(tc.keyWidth, tc.descWidth))
		})
	}
}

func TestIsTextInputAction(t *testing.T) {
	t.Parallel()

	tcs := map[string]bool{
		"a":      true,
		"/":      true,
		"esc":    false,
		"enter":  false,
		"left":   false,
		"ctrl+c": false,
	}

	for key, want := range tcs {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, want, keys.IsTextInputAction(key))
		})
	}
}

func TestValidateBinds(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		groups  [][]keys.KeyBind
		wantErr int
	}{
		"unique": {
			groups: [][]keys.KeyBind{
				{keys.NewBind("next", keys.New("l")), keys.NewBind("prev", keys.New("h"))},
				{keys.NewBind("quit", keys.New("q"))},
			},
		},
		"duplicate within group": {
			groups: [][]keys.KeyBind{
				{keys.NewBind("next", keys.New("l")), keys.NewBind("last", keys.New("l"))},
			},
			wantErr: 1,
		},
		"duplicates across groups": {
			groups: [][]keys.KeyBind{
				{keys.NewBind("next", keys.New("l"), keys.New("j"))},
				{keys.NewBind("last", keys.New("l")), keys.NewBind("down", keys.New("j"))},
			},
			wantErr: 2,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := keys.ValidateBinds(tc.groups...)
			if tc.wantErr == 0 {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, keys.ErrDuplicateKey)
			assert.Len(t, strings.Split(err.Error(), "\n"), tc.wantErr)
		})
	}
}

func TestSetDefaultBind(t *testing.T) {
	t.Parallel()

	def := keys.NewBind("next", keys.New("l"))

	var unset *keys.KeyBind
	keys.SetDefaultBind(&unset, def)
	require.NotNil(t, unset)
	assert.Equal(t, def, *unset)

	noKeys := &keys.KeyBind{Description: "forward"}
	keys.SetDefaultBind(&noKeys, def)
	assert.Equal(t, "forward", noKeys.Description)
	assert.Equal(t, def.Keys, noKeys.Keys)

	noDesc := &keys.KeyBind{Keys: []keys.Key{keys.New("n")}}
	keys.SetDefaultBind(&noDesc, def)
	assert.Equal(t, "next", noDesc.Description)
	assert.Equal(t, "n", noDesc.Keys[0].Code)
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	var empty keys.Renderer
	assert.Empty(t, empty.Render(80))

	r := &keys.Renderer{}
	r.AddColumn()
	r.AddColumn(
		keys.NewBind("previous", keys.New("left", keys.WithAlias("←")), keys.New("h")),
		keys.NewBind("next", keys.New("right", keys.WithAlias("→")), keys.New("l")),
	)
	r.AddColumn(
		keys.NewBind("quit", keys.New("q")),
	)

	out := r.Render(60)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "←/h")
	assert.Contains(t, lines[0], "quit")
	assert.Contains(t, lines[1], "→/l")

	for _, l := range lines {
		assert.Equal(t, 60, ansi.StringWidth(l))
	}
}
