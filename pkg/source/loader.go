package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/macropower/carousel/pkg/expr"
	"github.com/macropower/carousel/pkg/log"
)

// Loader reads a [Source] and turns it into cards.
type Loader struct {
	src       Source
	filter    *expr.Filter
	separator string
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithSeparator sets the card separator line. Empty means blank lines.
func WithSeparator(sep string) LoaderOpt {
	return func(l *Loader) {
		l.separator = sep
	}
}

// WithFilter keeps only the cards matching f.
func WithFilter(f *expr.Filter) LoaderOpt {
	return func(l *Loader) {
		l.filter = f
	}
}

// NewLoader creates a [Loader] for src.
func NewLoader(src Source, opts ...LoaderOpt) *Loader {
	l := &Loader{src: src}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Source returns the underlying source.
func (l *Loader) Source() Source {
	return l.src
}

// Load reads the source and returns its cards.
func (l *Loader) Load(ctx context.Context) ([]Card, error) {
	text, err := l.src.Read(ctx)
	if err != nil {
		return nil, err
	}

	cards := Split(text, l.separator)

	if l.filter != nil {
		cards, err = l.apply(cards)
		if err != nil {
			return nil, err
		}
	}

	log.WithContext(ctx).DebugContext(ctx, "loaded cards",
		slog.String("source", l.src.String()),
		slog.Int("count", len(cards)),
	)

	return cards, nil
}

func (l *Loader) apply(cards []Card) ([]Card, error) {
	items := make([]expr.Item, len(cards))
	for i, c := range cards {
		items[i] = expr.Item{Title: c.Title, Body: c.Body, Index: c.Index}
	}

	keep, err := l.filter.Select(items)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	out := make([]Card, 0, len(keep))
	for _, i := range keep {
		out = append(out, cards[i])
	}

	return out, nil
}
