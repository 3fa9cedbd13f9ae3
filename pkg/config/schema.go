package config

//go:generate go run ../../internal/schemagen -o config.v1beta1.json

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/macropower/carousel/pkg/yaml"
)

// SchemaURL identifies the configuration schema.
const SchemaURL = "https://carousel.macropower.dev/schemas/config.v1beta1.json"

// DefaultValidator returns the validator for the configuration schema.
var DefaultValidator = sync.OnceValue(func() *yaml.Validator {
	b, err := Schema()
	if err != nil {
		panic(err)
	}

	return yaml.MustNewValidator(SchemaURL, b)
})

// Schema returns the JSON schema of [Config], reflected from the Go types.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}

	s := r.Reflect(New())
	s.ID = SchemaURL
	s.Title = "carousel configuration"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return b, nil
}
