package config

import (
	"bytes"
	"fmt"

	"github.com/macropower/carousel/pkg/yaml"
)

// Validator validates raw configuration documents.
type Validator interface {
	ValidateYAML(data []byte) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator replaces the schema validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// WithColor renders errors with colored source excerpts.
func WithColor(colored bool) LoaderOpt {
	return func(l *Loader) {
		l.colored = colored
	}
}

// Loader validates and decodes a configuration document.
type Loader struct {
	validator Validator
	data      []byte
	colored   bool
}

// NewLoaderFromBytes creates a [Loader] for data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{data: data}
	for _, opt := range opts {
		opt(l)
	}

	if l.validator == nil {
		l.validator = DefaultValidator()
	}

	return l
}

// NewLoaderFromFile creates a [Loader] for the file at path.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Validate checks the document against the schema without decoding it.
func (l *Loader) Validate() error {
	err := l.validator.ValidateYAML(l.data)
	if err != nil {
		return l.wrap(err)
	}

	return nil
}

// Load validates the document and decodes it over the defaults.
func (l *Loader) Load() (*Config, error) {
	err := l.Validate()
	if err != nil {
		return nil, err
	}

	c := New()

	err = yaml.NewDecoder(bytes.NewReader(l.data)).Decode(c)
	if err != nil {
		return nil, l.wrap(err)
	}

	c.EnsureDefaults()

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (l *Loader) wrap(err error) error {
	return fmt.Errorf("load config: %w",
		yaml.Wrap(err, yaml.WithSource(l.data), yaml.WithColor(l.colored)))
}
