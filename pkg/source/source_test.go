package source_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/carousel/pkg/expr"
	"github.com/macropower/carousel/pkg/source"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text      string
		separator string
		want      []source.Card
	}{
		"blank lines": {
			text: "First\nbody one\n\n\nSecond\n\nThird\nline a\nline b\n",
			want: []source.Card{
				{Title: "First", Body: "body one", Index: 0},
				{Title: "Second", Index: 1},
				{Title: "Third", Body: "line a\nline b", Index: 2},
			},
		},
		"windows line endings": {
			text: "A\r\nb\r\n\r\nC\r\n",
			want: []source.Card{
				{Title: "A", Body: "b", Index: 0},
				{Title: "C", Index: 1},
			},
		},
		"literal separator keeps blank lines inside cards": {
			text:      "---\nOne\n\n  indented\n---\n\nTwo\n ---  \n",
			separator: "---",
			want: []source.Card{
				{Title: "One", Body: "\n  indented", Index: 0},
				{Title: "Two", Index: 1},
			},
		},
		"whitespace only": {
			text: " \n\n\t\n",
			want: nil,
		},
		"empty": {
			text: "",
			want: nil,
		},
		"title is trimmed": {
			text: "   Title  \nbody",
			want: []source.Card{{Title: "Title", Body: "body", Index: 0}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, source.Split(tc.text, tc.separator))
		})
	}
}

func TestCardText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "T\nbody", source.Card{Title: "T", Body: "body"}.Text())
	assert.Equal(t, "T", source.Card{Title: "T"}.Text())
}

func TestFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cards.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\nb\n"), 0o600))

	f := source.File{Path: path}
	got, err := f.Read(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb\n", got)
	assert.Equal(t, path, f.String())

	_, err = source.File{Path: filepath.Join(t.TempDir(), "missing")}.Read(t.Context())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader(t *testing.T) {
	t.Parallel()

	r := source.NewReader(strings.NewReader("one\n\ntwo"), "stdin")

	for range 2 {
		got, err := r.Read(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "one\n\ntwo", got)
	}

	assert.Equal(t, "stdin", r.String())
}

func TestCommand(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line string
		want string
		err  error
	}{
		"quoted arguments": {
			line: `printf '%s\n\n%s\n' "first card" second`,
			want: "first card\n\nsecond\n",
		},
		"failing command": {
			line: "false",
			err:  source.ErrCommandExecution,
		},
		"empty command": {
			line: "   ",
			err:  source.ErrEmptyCommand,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := source.Command{Line: tc.line}.Read(t.Context())
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoader(t *testing.T) {
	t.Parallel()

	text := "alpha\n1\n---\nbeta\n2\n---\ngamma\n3\n"

	f, err := expr.MustNewEnvironment().NewFilter(`item.title != "beta"`)
	require.NoError(t, err)

	l := source.NewLoader(
		source.NewReader(strings.NewReader(text), "stdin"),
		source.WithSeparator("---"),
		source.WithFilter(f),
	)

	cards, err := l.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []source.Card{
		{Title: "alpha", Body: "1", Index: 0},
		{Title: "gamma", Body: "3", Index: 2},
	}, cards)
	assert.Equal(t, "stdin", l.Source().String())
}

func TestLoaderFilterError(t *testing.T) {
	t.Parallel()

	f, err := expr.MustNewEnvironment().NewFilter(`item.title`)
	require.NoError(t, err)

	l := source.NewLoader(source.NewReader(strings.NewReader("a"), "stdin"), source.WithFilter(f))

	_, err = l.Load(t.Context())
	require.ErrorIs(t, err, expr.ErrNotBool)
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cards.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o600))

	w, err := source.NewWatcher(source.NewLoader(source.File{Path: path}), path)
	require.NoError(t, err)
	t.Cleanup(w.Close)

	events := make(chan source.Event, 8)
	w.Subscribe(events)

	go w.Run(t.Context())

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("one\n\ntwo\n\nthree"), 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt := <-events:
			require.NoError(t, evt.Err)
			if len(evt.Cards) == 3 {
				assert.Equal(t, "three", evt.Cards[2].Title)
				return
			}
		case <-deadline:
			t.Fatal("no reload event")
		}
	}
}
