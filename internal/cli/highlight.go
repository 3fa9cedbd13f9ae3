package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/macropower/carousel/pkg/ui/theme"
)

// highlightYAML writes src to w with the syntax colors of t.
func highlightYAML(w io.Writer, src string, t *theme.Theme) error {
	lexer := chroma.Coalesce(lexers.Get("yaml"))

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return fmt.Errorf("tokenise yaml: %w", err)
	}

	err = formatters.TTY16m.Format(w, t.ChromaStyle, it)
	if err != nil {
		return fmt.Errorf("format yaml: %w", err)
	}

	return nil
}
