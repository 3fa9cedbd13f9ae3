package uitest

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

var (
	// Compact is the classic 80x24 terminal.
	Compact = Size{Width: 80, Height: 24}
	// Standard is a typical modern terminal.
	Standard = Size{Width: 120, Height: 40}
	// Tiny fits a few cards in a test assertion.
	Tiny = Size{Width: 40, Height: 10}
)
