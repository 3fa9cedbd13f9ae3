package source

import (
	"strings"
)

// Card is one item of a carousel.
type Card struct {
	// Title is the first line of the card.
	Title string
	// Body is the rest of the card.
	Body string
	// Index is the position of the card in its source, before filtering.
	Index int
}

// Text returns the card as it appeared in the source.
func (c Card) Text() string {
	if c.Body == "" {
		return c.Title
	}

	return c.Title + "\n" + c.Body
}

// Split splits text into cards. With an empty separator, cards are separated
// by one or more blank lines; otherwise by lines equal to the separator,
// ignoring surrounding whitespace. Empty cards are dropped.
func Split(text, separator string) []Card {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	separator = strings.TrimSpace(separator)

	var (
		cards   []Card
		current []string
	)

	flush := func() {
		if c, ok := newCard(current, len(cards)); ok {
			cards = append(cards, c)
		}

		current = current[:0]
	}

	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\n")
		trimmed := strings.TrimSpace(line)

		isSep := (separator == "" && trimmed == "") || (separator != "" && trimmed == separator)
		if isSep {
			flush()
			continue
		}

		current = append(current, line)
	}

	flush()

	return cards
}

func newCard(lines []string, index int) (Card, bool) {
	// Trim blank lines at both ends.
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return Card{}, false
	}

	return Card{
		Title: strings.TrimSpace(lines[0]),
		Body:  strings.Join(lines[1:], "\n"),
		Index: index,
	}, true
}
