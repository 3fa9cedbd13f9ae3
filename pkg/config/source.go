package config

import (
	"fmt"

	"github.com/macropower/carousel/pkg/expr"
	"github.com/macropower/carousel/pkg/source"
)

// SourceConfig configures how text is split into cards.
type SourceConfig struct {
	// Separator is a line that separates cards. Empty means blank lines.
	Separator string `json:"separator,omitempty" jsonschema:"title=Separator"`
	// Filter is a CEL expression over item.title, item.body and
	// item.index; only matching cards are shown.
	Filter string `json:"filter,omitempty" jsonschema:"title=Filter"`
}

// LoaderOpts compiles c into [source.Loader] options.
func (c *SourceConfig) LoaderOpts() ([]source.LoaderOpt, error) {
	opts := []source.LoaderOpt{source.WithSeparator(c.Separator)}

	if c.Filter == "" {
		return opts, nil
	}

	env, err := expr.NewEnvironment()
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	f, err := env.NewFilter(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	return append(opts, source.WithFilter(f)), nil
}

// Validate compiles the filter.
func (c *SourceConfig) Validate() error {
	_, err := c.LoaderOpts()

	return err
}
