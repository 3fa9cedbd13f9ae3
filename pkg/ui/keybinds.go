package ui

import "github.com/macropower/carousel/pkg/keys"

type KeyBinds struct {
	Quit    *keys.KeyBind `json:"quit,omitempty"`
	Suspend *keys.KeyBind `json:"suspend,omitempty"`
	Help    *keys.KeyBind `json:"help,omitempty"`
	Escape  *keys.KeyBind `json:"escape,omitempty"`
	Reload  *keys.KeyBind `json:"reload,omitempty"`
	Copy    *keys.KeyBind `json:"copy,omitempty"`
	Search  *keys.KeyBind `json:"search,omitempty"`

	// Navigation.
	Prev  *keys.KeyBind `json:"prev,omitempty"`
	Next  *keys.KeyBind `json:"next,omitempty"`
	First *keys.KeyBind `json:"first,omitempty"`
	Last  *keys.KeyBind `json:"last,omitempty"`
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Quit, keys.NewBind("quit", keys.New("q")))
	// ctrl+c always quits.
	kb.Quit.AddKey(keys.New("ctrl+c", keys.WithAlias("⌃c"), keys.Hidden()))

	keys.SetDefaultBind(&kb.Suspend,
		keys.NewBind("suspend",
			keys.New("ctrl+z", keys.WithAlias("⌃z"), keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Help,
		keys.NewBind("toggle help",
			keys.New("?"),
		))
	keys.SetDefaultBind(&kb.Escape,
		keys.NewBind("close",
			keys.New("esc"),
		))
	keys.SetDefaultBind(&kb.Reload,
		keys.NewBind("reload",
			keys.New("r"),
		))
	keys.SetDefaultBind(&kb.Copy,
		keys.NewBind("copy card",
			keys.New("y"),
			keys.New("c"),
		))
	keys.SetDefaultBind(&kb.Search,
		keys.NewBind("search",
			keys.New("/"),
		))

	keys.SetDefaultBind(&kb.Prev,
		keys.NewBind("previous card",
			keys.New("left", keys.WithAlias("←")),
			keys.New("up", keys.WithAlias("↑")),
			keys.New("h"),
			keys.New("k"),
			keys.New("shift+tab", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Next,
		keys.NewBind("next card",
			keys.New("right", keys.WithAlias("→")),
			keys.New("down", keys.WithAlias("↓")),
			keys.New("l"),
			keys.New("j"),
			keys.New("tab", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.First,
		keys.NewBind("first card",
			keys.New("home"),
			keys.New("g"),
		))
	keys.SetDefaultBind(&kb.Last,
		keys.NewBind("last card",
			keys.New("end"),
			keys.New("G"),
		))
}

func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Prev,
		*kb.Next,
		*kb.First,
		*kb.Last,
		*kb.Search,
		*kb.Copy,
		*kb.Reload,
		*kb.Help,
		*kb.Escape,
		*kb.Quit,
		*kb.Suspend,
	}
}

func (kb *KeyBinds) Validate() error {
	return keys.ValidateBinds(kb.GetKeyBinds()) //nolint:wrapcheck // Wrapped by the caller.
}

func (kb *KeyBinds) renderer() *keys.Renderer {
	r := &keys.Renderer{}
	r.AddColumn(*kb.Prev, *kb.Next, *kb.First, *kb.Last)
	r.AddColumn(*kb.Search, *kb.Copy, *kb.Reload, *kb.Help, *kb.Quit)

	return r
}
