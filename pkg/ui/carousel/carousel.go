// Package carousel is a bubbletea component hosting a [pager.Pager] of cards.
//
// Terminal cells stand in for pixels: mouse presses, motion and releases are
// forwarded to the pager as pointer events, and while the pager animates the
// component schedules frame ticks at the pager's frame interval.
package carousel

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/carousel/pkg/geometry"
	"github.com/macropower/carousel/pkg/gesture"
	"github.com/macropower/carousel/pkg/pager"
	"github.com/macropower/carousel/pkg/source"
	"github.com/macropower/carousel/pkg/ui/theme"
)

// FrameMsg advances the pager animation by one frame.
type FrameMsg struct {
	id int
}

// SelectedMsg is sent after an update changed the focused card.
type SelectedMsg struct {
	Card  source.Card
	Index int
}

// Config configures a [Model].
type Config struct {
	// Theme styles the cards and pagination. Defaults to [theme.Default].
	Theme *theme.Theme
	// Clock returns the time stamped on pointer events. Defaults to
	// [time.Now].
	Clock func() time.Time
	// Pagination shows the position below the cards.
	Pagination bool
	// WordWrap wraps card bodies instead of truncating them.
	WordWrap bool
}

// Model is the carousel component.
type Model struct {
	ctx      context.Context //nolint:containedctx // Traces gesture sessions.
	pager    *pager.Pager[source.Card]
	theme    *theme.Theme
	now      func() time.Time
	selected *[]int
	dots     paginator.Model
	width    int
	height   int
	frame    int
	ticking  bool
	paginate bool
	wordWrap bool
}

// New creates a [Model] showing the cards of p. Selection changes of p are
// reported as [SelectedMsg]; ctx scopes the traces of pointer gestures.
func New(ctx context.Context, p *pager.Pager[source.Card], cfg Config) Model {
	t := cfg.Theme
	if t == nil {
		t = theme.Default
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:      ctx,
		pager:    p,
		theme:    t,
		now:      now,
		selected: new([]int),
		dots:     newDots(t),
		paginate: cfg.Pagination,
		wordWrap: cfg.WordWrap,
	}

	p.OnSelect(func(index int, _ source.Card) {
		*m.selected = append(*m.selected, index)
	})

	m.syncDots()

	return m
}

// Pager returns the hosted pager.
func (m Model) Pager() *pager.Pager[source.Card] {
	return m.pager
}

// SetSize sets the area the carousel draws into, including pagination, and
// lays the pager out for it. The returned command drives any realignment the
// new size started.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = max(0, width)
	m.height = max(0, height)

	m.pager.Resize(m.viewport(m.pagination()))

	return m.settle()
}

// SetItems replaces the cards, keeping the focused index when possible.
func (m *Model) SetItems(cards []source.Card) tea.Cmd {
	m.pager.SetItems(cards)
	m.syncDots()
	// Dots come and go with the card count.
	m.pager.Resize(m.viewport(m.pagination()))

	return m.settle()
}

// Current returns the focused card.
func (m Model) Current() (source.Card, bool) {
	return m.pager.Selected()
}

// AnimateTo settles on card index.
func (m *Model) AnimateTo(index int) tea.Cmd {
	err := m.pager.AnimateTo(m.ctx, index)
	if err != nil {
		slog.Debug("ignore navigation", slog.Int("index", index), slog.Any("err", err))

		return nil
	}

	return m.settle()
}

func (m *Model) Next() tea.Cmd {
	m.pager.Next(m.ctx)

	return m.settle()
}

func (m *Model) Prev() tea.Cmd {
	m.pager.Prev(m.ctx)

	return m.settle()
}

func (m *Model) First() tea.Cmd {
	m.pager.First(m.ctx)

	return m.settle()
}

func (m *Model) Last() tea.Cmd {
	m.pager.Last(m.ctx)

	return m.settle()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case FrameMsg:
		if msg.id != m.frame {
			// Superseded by a newer tick chain.
			break
		}

		m.ticking = false
		if m.pager.Step() {
			cmds = append(cmds, m.schedule())
		}
	}

	cmds = append(cmds, m.flushSelected())

	return m, tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	pos := geometry.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Button {
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		if msg.Action == tea.MouseActionPress {
			return m.Next()
		}

		return nil

	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		if msg.Action == tea.MouseActionPress {
			return m.Prev()
		}

		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}

		m.pager.Handle(m.ctx, gesture.Down(m.now(), pos))

	case tea.MouseActionMotion:
		if s := m.pager.State(); s != gesture.Pressed && s != gesture.Dragging {
			return nil
		}

		m.pager.Handle(m.ctx, gesture.Move(m.now(), pos))

	case tea.MouseActionRelease:
		if s := m.pager.State(); s != gesture.Pressed && s != gesture.Dragging {
			return nil
		}

		m.pager.Handle(m.ctx, gesture.Up(m.now(), pos))
	}

	return m.schedule()
}

// settle schedules frames for a navigation and reports any selection it
// already caused.
func (m *Model) settle() tea.Cmd {
	return tea.Batch(m.schedule(), m.flushSelected())
}

// schedule starts a frame tick chain if the pager animates and none is
// pending.
func (m *Model) schedule() tea.Cmd {
	if !m.pager.Animating() || m.ticking {
		return nil
	}

	m.frame++
	m.ticking = true
	id := m.frame

	return tea.Tick(m.pager.FrameInterval(), func(time.Time) tea.Msg {
		return FrameMsg{id: id}
	})
}

// flushSelected reports selection callbacks collected during the update as
// one [SelectedMsg] for the card focused last.
func (m *Model) flushSelected() tea.Cmd {
	if len(*m.selected) == 0 {
		return nil
	}

	idx := (*m.selected)[len(*m.selected)-1]
	*m.selected = (*m.selected)[:0]

	m.syncDots()

	cards := m.pager.Items()
	if idx >= len(cards) {
		return nil
	}

	msg := SelectedMsg{Index: idx, Card: cards[idx]}

	return func() tea.Msg { return msg }
}

func (m *Model) syncDots() {
	m.dots.SetTotalPages(m.pager.Len())
	m.dots.Page = m.pager.Index()
}

// pagination renders the position indicator, or "" when it is hidden.
func (m Model) pagination() string {
	if !m.paginate || m.width == 0 {
		return ""
	}

	m.syncDots()

	return pagination(m.dots, m.theme, m.width)
}

// viewport is the area left for cards once dots are drawn.
func (m Model) viewport(dots string) geometry.Size {
	height := m.height
	if dots != "" {
		height -= lipgloss.Height(dots)
	}

	return geometry.Size{Width: m.width, Height: max(0, height)}
}

// View renders the cards. The pager was sized by [Model.SetSize], so the
// layout pass only reads its state.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	dots := m.pagination()
	size := m.viewport(dots)

	c := newCanvas(m.theme, size, m.pager.Axis(), m.pager.Index(), m.wordWrap)
	m.pager.Layout(size, c, c)

	if dots == "" {
		return c.String()
	}

	return strings.Join([]string{c.String(), dots}, "\n")
}
