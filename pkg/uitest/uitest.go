package uitest

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// BubbleModel is a bubbletea model whose Update returns its concrete type.
type BubbleModel[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (T, tea.Cmd)
	View() string
}

type adapter[T BubbleModel[T]] struct {
	model T
}

func (a adapter[T]) Init() tea.Cmd { return a.model.Init() }

//nolint:ireturn // Must satisfy [tea.Model].
func (a adapter[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.model.Update(msg)

	return adapter[T]{model: m}, cmd
}

func (a adapter[T]) View() string { return a.model.View() }

// Adapt wraps m so it satisfies [tea.Model].
//
//nolint:ireturn // Wrapper type is unexported.
func Adapt[T BubbleModel[T]](m T) tea.Model {
	return adapter[T]{model: m}
}

// NewTestModel starts m in a teatest program of the given size.
func NewTestModel(tb testing.TB, m tea.Model, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(tb, m, teatest.WithInitialTermSize(size.Width, size.Height))
}

// WaitFor waits until the program output satisfies condition and returns
// the output seen so far.
func WaitFor(tb testing.TB, r io.Reader, condition func([]byte) bool, opts ...teatest.WaitForOption) string {
	tb.Helper()

	var captured []byte

	teatest.WaitFor(tb, r, func(b []byte) bool {
		if !condition(b) {
			return false
		}

		captured = append([]byte(nil), b...)

		return true
	}, opts...)

	return string(captured)
}

// FinalOutput waits for the program to exit and returns everything it wrote.
func FinalOutput(tb testing.TB, tm *teatest.TestModel, timeout time.Duration) string {
	tb.Helper()

	b, err := io.ReadAll(tm.FinalOutput(tb, teatest.WithFinalTimeout(timeout)))
	if err != nil {
		tb.Fatal(err)
	}

	return string(b)
}
