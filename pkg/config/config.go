package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/carousel/pkg/ui"
	"github.com/macropower/carousel/pkg/yaml"
)

const (
	// APIVersion is the current configuration API version.
	APIVersion = "carousel.macropower.dev/v1beta1"
	// Kind is the kind of a configuration document.
	Kind = "Configuration"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	ValidAPIVersions = []string{APIVersion}
	ValidKinds       = []string{Kind}

	ErrInvalidConfig = errors.New("invalid configuration")
)

//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Pager configures layout and motion.
	Pager *PagerConfig `json:"pager,omitempty" jsonschema:"title=Pager"`
	// UI configures the terminal interface.
	UI *ui.Config `json:"ui,omitempty" jsonschema:"title=UI"`
	// Source configures how cards are read.
	Source *SourceConfig `json:"source,omitempty" jsonschema:"title=Source"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// New returns a [Config] with default values.
func New() *Config {
	c := &Config{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil sections and unset fields.
func (c *Config) EnsureDefaults() {
	if c.Pager == nil {
		c.Pager = &PagerConfig{}
	}

	c.Pager.EnsureDefaults()

	if c.UI == nil {
		c.UI = &ui.Config{}
	}

	c.UI.EnsureDefaults()

	if c.Source == nil {
		c.Source = &SourceConfig{}
	}
}

// Validate runs the checks the schema cannot express.
func (c *Config) Validate() error {
	var errs []error

	err := c.Pager.Validate()
	if err != nil {
		errs = append(errs, yaml.NewError(err, yaml.WithPath(yaml.NewPathBuilder().Root().Child("pager").Build())))
	}

	err = c.UI.Validate()
	if err != nil {
		errs = append(errs, yaml.NewError(err, yaml.WithPath(yaml.NewPathBuilder().Root().Child("ui").Build())))
	}

	err = c.Source.Validate()
	if err != nil {
		errs = append(errs, yaml.NewError(err, yaml.WithPath(yaml.NewPathBuilder().Root().Child("source").Build())))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	extendSchemaWithEnums(jss, ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c *Config) MarshalYAML() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}

// Write writes c to path unless a file already exists there.
func (c *Config) Write(path string) error {
	exists, err := fileExists(path)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	b, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	err = os.WriteFile(path, b, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// DefaultYAML returns the commented default configuration document.
func DefaultYAML() []byte {
	return defaultConfigYAML
}

// extendSchemaWithEnums restricts apiVersion and kind to known values.
func extendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	for name, values := range map[string][]string{
		"apiVersion": apiVersions,
		"kind":       kinds,
	} {
		prop, ok := jss.Properties.Get(name)
		if !ok {
			panic(name + " property not found in schema")
		}

		prop.Enum = make([]any, 0, len(values))
		for _, v := range values {
			prop.Enum = append(prop.Enum, v)
		}

		_, _ = jss.Properties.Set(name, prop)
	}
}
