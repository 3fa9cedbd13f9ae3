package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-shellwords"

	"github.com/macropower/carousel/pkg/log"
)

var (
	// ErrCommandExecution is returned when a command source fails.
	ErrCommandExecution = errors.New("run")

	// ErrEmptyCommand is returned when a command source has no command.
	ErrEmptyCommand = errors.New("empty command")
)

// Source produces the raw text cards are split from.
type Source interface {
	// Read returns the current content of the source.
	Read(ctx context.Context) (string, error)
	// String describes the source for display.
	String() string
}

// File reads a file from disk.
type File struct {
	Path string
}

// Read implements [Source].
func (f File) Read(_ context.Context) (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", f.Path, err)
	}

	return string(b), nil
}

func (f File) String() string {
	return f.Path
}

// Reader reads from an [io.Reader] once, such as stdin. Later reads return
// the same content.
type Reader struct {
	r    io.Reader
	name string
	data *string
}

// NewReader creates a [Reader] named name.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{r: r, name: name}
}

// Read implements [Source].
func (r *Reader) Read(_ context.Context) (string, error) {
	if r.data != nil {
		return *r.data, nil
	}

	b, err := io.ReadAll(r.r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", r.name, err)
	}

	s := string(b)
	r.data = &s

	return s, nil
}

func (r *Reader) String() string {
	return r.name
}

// Command runs a command line and reads its standard output.
type Command struct {
	Line string
	Dir  string
	Env  []string
}

// Read implements [Source].
func (c Command) Read(ctx context.Context) (string, error) {
	args, err := shellwords.Parse(c.Line)
	if err != nil {
		return "", fmt.Errorf("parse command %q: %w", c.Line, err)
	}
	if len(args) == 0 {
		return "", ErrEmptyCommand
	}

	//nolint:gosec // G204: Subprocess launched with a potential tainted input or cmd arguments.
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%w: %w: %s", ErrCommandExecution, err, bytes.TrimSpace(stderr.Bytes()))
		}

		return "", fmt.Errorf("%w: %w", ErrCommandExecution, err)
	}

	log.WithContext(ctx).DebugContext(ctx, "command executed successfully")

	return stdout.String(), nil
}

func (c Command) String() string {
	return c.Line
}
