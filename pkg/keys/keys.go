// Package keys models key bindings: the keys that trigger an action, a
// description for the help overlay, and column rendering of both.
package keys

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated help text.
const Ellipsis = "…"

// ErrDuplicateKey is returned when one key triggers more than one binding.
var ErrDuplicateKey = errors.New("duplicate key binding")

// Key is a single key as reported by bubbletea, e.g. "ctrl+c" or "left".
type Key struct {
	// Code is the key name matched against key presses.
	Code string `json:"code" jsonschema:"title=Code"`
	// Alias replaces Code in the help overlay.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden keys still match but are not shown in help.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := Key{Code: code}
	for _, opt := range opts {
		opt(&k)
	}

	return k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind is an action together with the keys that trigger it.
type KeyBind struct {
	// Description is shown next to the keys in the help overlay.
	Description string `json:"description" jsonschema:"title=Description"`
	// Keys trigger the action.
	Keys []Key `json:"keys" jsonschema:"title=Keys"`
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{Description: description, Keys: keys}
}

// String joins the visible keys with "/".
func (kb *KeyBind) String() string {
	visible := make([]string, 0, len(kb.Keys))
	for _, k := range kb.Keys {
		if !k.Hidden {
			visible = append(visible, k.String())
		}
	}

	return strings.Join(visible, "/")
}

// Row renders the binding as a help row, padding the keys to keyWidth and the
// description to descWidth. Bindings with no visible keys render as "".
func (kb *KeyBind) Row(keyWidth, descWidth int) string {
	k := kb.String()
	if k == "" {
		return ""
	}

	desc := truncate(kb.Description, descWidth-2)

	return fmt.Sprintf("%s%s  %s%s",
		k, pad(keyWidth-ansi.StringWidth(k)),
		desc, pad(descWidth-ansi.StringWidth(desc)-2),
	)
}

// Match reports whether key triggers the binding. A nil binding never
// matches.
func (kb *KeyBind) Match(key string) bool {
	if kb == nil {
		return false
	}

	return slices.ContainsFunc(kb.Keys, func(k Key) bool { return k.Code == key })
}

// AddKey appends key unless a key with the same code is already bound.
func (kb *KeyBind) AddKey(key Key) {
	if kb == nil || kb.Match(key.Code) {
		return
	}

	kb.Keys = append(kb.Keys, key)
}

// IsTextInputAction reports whether key should be typed into a focused text
// input rather than handled as a binding.
func IsTextInputAction(key string) bool {
	switch key {
	case "esc", "enter", "up", "down", "left", "right", "ctrl+c":
		return false
	}

	return true
}

// ValidateBinds reports every key that is bound more than once across all
// given groups.
func ValidateBinds(groups ...[]KeyBind) error {
	var errs []error

	seen := map[string]string{}
	for _, group := range groups {
		for _, kb := range group {
			for _, k := range kb.Keys {
				if prev, ok := seen[k.Code]; ok {
					errs = append(errs, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateKey, k.Code, prev, kb.Description))

					continue
				}

				seen[k.Code] = kb.Description
			}
		}
	}

	return errors.Join(errs...)
}

// SetDefaultBind fills a nil binding, or the empty fields of a configured
// one, from def.
func SetDefaultBind(kb **KeyBind, def KeyBind) {
	if *kb == nil {
		*kb = &def

		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = def.Keys
	}

	if (*kb).Description == "" {
		(*kb).Description = def.Description
	}
}

// Renderer lays key bindings out in columns for the help overlay.
type Renderer struct {
	columns [][]KeyBind
}

func (r *Renderer) AddColumn(kbs ...KeyBind) {
	if len(kbs) > 0 {
		r.columns = append(r.columns, kbs)
	}
}

// Render draws the columns side by side within width cells.
func (r *Renderer) Render(width int) string {
	if len(r.columns) == 0 {
		return ""
	}

	colWidth := max(6, width/len(r.columns)-2)
	remainder := 0
	if len(r.columns) > 1 {
		remainder = width % len(r.columns)
	}

	cols := make([][]string, len(r.columns))
	rows := 0

	for i, col := range r.columns {
		cols[i] = column(colWidth, col...)
		rows = max(rows, len(cols[i]))
	}

	lines := make([]string, rows)
	for row := range rows {
		var sb strings.Builder
		for _, col := range cols {
			cell := pad(colWidth)
			if row < len(col) {
				cell = col[row]
			}

			sb.WriteString(" " + cell + " ")
		}

		sb.WriteString(pad(remainder))
		lines[row] = sb.String()
	}

	return strings.Join(lines, "\n")
}

func column(width int, kbs ...KeyBind) []string {
	keyWidth := 0
	for _, kb := range kbs {
		keyWidth = max(keyWidth, ansi.StringWidth(kb.String()))
	}

	rows := make([]string, 0, len(kbs))
	for _, kb := range kbs {
		if row := kb.Row(keyWidth, width-keyWidth); row != "" {
			rows = append(rows, row)
		}
	}

	return rows
}

func truncate(s string, width int) string {
	if width <= 0 {
		if s == "" {
			return ""
		}

		return Ellipsis
	}

	return ansi.Truncate(s, width, Ellipsis)
}

func pad(n int) string {
	return strings.Repeat(" ", max(0, n))
}
