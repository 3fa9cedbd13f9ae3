package ui

import "fmt"

// Config contains TUI settings.
type Config struct {
	// KeyBinds overrides the default key bindings.
	KeyBinds *KeyBinds `json:"keybinds,omitempty" jsonschema:"title=Key Binds"`
	// Pagination shows the position indicator below the cards.
	Pagination *bool `json:"pagination,omitempty" jsonschema:"title=Pagination"`
	// WordWrap wraps long card lines instead of truncating them.
	WordWrap *bool `json:"wordWrap,omitempty" jsonschema:"title=Word Wrap"`
	// Theme is a chroma style name, or one of auto, dark and light.
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
	// Mouse enables dragging and flinging cards with the mouse.
	Mouse *bool `json:"mouse,omitempty" jsonschema:"title=Mouse"`
}

func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults fills unset fields.
func (c *Config) EnsureDefaults() {
	if c.Theme == "" {
		c.Theme = "auto"
	}

	setDefault(&c.Pagination, true)
	setDefault(&c.WordWrap, true)
	setDefault(&c.Mouse, true)

	if c.KeyBinds == nil {
		c.KeyBinds = &KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()
}

// Validate reports key binding conflicts.
func (c *Config) Validate() error {
	if c.KeyBinds == nil {
		return nil
	}

	err := c.KeyBinds.Validate()
	if err != nil {
		return fmt.Errorf("keybinds: %w", err)
	}

	return nil
}

func setDefault[T any](p **T, v T) {
	if *p == nil {
		*p = &v
	}
}
