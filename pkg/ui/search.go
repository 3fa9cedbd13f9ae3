package ui

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/macropower/carousel/pkg/source"
)

// Normalize folds text for matching: diacritics are removed ("ö" becomes
// "o") and the result is lower case.
func Normalize(in string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, in)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	return strings.ToLower(out), nil
}

// cardTargets is a [fuzzy.Source] over normalized card text. Titles come
// first so that a title match scores higher than the same match in a body.
type cardTargets []string

func (c cardTargets) String(i int) string { return c[i] }
func (c cardTargets) Len() int            { return len(c) }

// Search ranks cards by how well they match query, best first.
func Search(query string, cards []source.Card) ([]int, error) {
	q, err := Normalize(strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}

	if q == "" {
		return nil, nil
	}

	targets := make(cardTargets, len(cards))
	for i, c := range cards {
		text, err := Normalize(c.Title + " " + strings.ReplaceAll(c.Body, "\n", " "))
		if err != nil {
			return nil, err
		}

		targets[i] = text
	}

	matches := fuzzy.FindFrom(q, targets)
	sort.Stable(matches)

	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}

	return out, nil
}
