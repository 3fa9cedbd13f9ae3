package yaml

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder decodes YAML documents, converting syntax errors into [*Error]s
// that can point at the offending token.
type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder creates a [Decoder] reading from r. Unknown fields are rejected.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, yaml.DisallowUnknownField()),
	}
}

// Decode decodes the next document into v.
func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return NewError(errors.New(yamlErr.GetMessage()), WithToken(yamlErr.GetToken()))
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}

// Unmarshal decodes data into v. Errors carry data as their source.
func Unmarshal(data []byte, v any) error {
	err := yaml.UnmarshalWithOptions(data, v, yaml.AllowDuplicateMapKey())
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return NewError(errors.New(yamlErr.GetMessage()),
			WithToken(yamlErr.GetToken()),
			WithSource(data),
		)
	}

	return fmt.Errorf("unmarshal: %w", err)
}
