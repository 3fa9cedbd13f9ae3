// Package ui provides the carousel TUI: the card carousel, a status bar,
// search and the help and error overlays.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/carousel/pkg/pager"
	"github.com/macropower/carousel/pkg/source"
	"github.com/macropower/carousel/pkg/ui/carousel"
	"github.com/macropower/carousel/pkg/ui/overlay"
	"github.com/macropower/carousel/pkg/ui/statusbar"
	"github.com/macropower/carousel/pkg/ui/theme"
)

// StatusMessageTimeout is how long status messages are shown.
const StatusMessageTimeout = 3 * time.Second

const statusBarHeight = 1

type (
	// ReloadedMsg carries a new set of cards, or the error loading them.
	ReloadedMsg struct {
		Err   error
		Cards []source.Card
	}

	// ErrMsg shows an error overlay.
	ErrMsg struct{ Err error } //nolint:errname // Tea message.

	statusTimeoutMsg struct{ id int }
)

func (e ErrMsg) Error() string { return e.Err.Error() }

// Reloader loads the cards again.
type Reloader func(ctx context.Context) ([]source.Card, error)

type ModelOpt func(*model)

// WithReloader enables the reload binding.
func WithReloader(r Reloader) ModelOpt {
	return func(m *model) {
		m.reload = r
	}
}

// WithEvents shows cards received on ch, e.g. from a [source.Watcher].
func WithEvents(ch <-chan source.Event) ModelOpt {
	return func(m *model) {
		m.events = ch
	}
}

// WithClock sets the clock used to time stamp pointer events.
func WithClock(now func() time.Time) ModelOpt {
	return func(m *model) {
		m.clock = now
	}
}

// NewProgram returns a tea program showing the cards of p.
func NewProgram(ctx context.Context, cfg *Config, p *pager.Pager[source.Card], opts ...ModelOpt) *tea.Program {
	slog.Debug("starting carousel ui")

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse != nil && *cfg.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	return tea.NewProgram(NewModel(ctx, cfg, p, opts...), progOpts...)
}

type model struct {
	ctx      context.Context //nolint:containedctx // Passed to reloads.
	err      error
	clock    func() time.Time
	reload   Reloader
	events   <-chan source.Event
	theme    *theme.Theme
	kb       *KeyBinds
	overlay  *overlay.Overlay
	help     *statusbar.Help
	message  string
	search   textinput.Model
	carousel carousel.Model
	style    statusbar.Style
	width    int
	height   int
	status   int
	showHelp bool
}

// NewModel returns the top-level model. It is exported for tests; use
// [NewProgram] to run it.
func NewModel(ctx context.Context, cfg *Config, p *pager.Pager[source.Card], opts ...ModelOpt) tea.Model {
	cfg.EnsureDefaults()

	t := theme.New(cfg.Theme)

	search := textinput.New()
	search.Prompt = "/"
	search.PromptStyle = t.SearchPromptStyle
	search.Cursor.Style = t.SearchCursorStyle
	search.Placeholder = "search cards"

	m := &model{
		ctx:     ctx,
		theme:   t,
		kb:      cfg.KeyBinds,
		overlay: overlay.New(t),
		help:    statusbar.NewHelp(t, cfg.KeyBinds.renderer()),
		search:  search,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.carousel = carousel.New(ctx, p, carousel.Config{
		Theme:      t,
		Clock:      m.clock,
		Pagination: *cfg.Pagination,
		WordWrap:   *cfg.WordWrap,
	})

	return m
}

func (m *model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.overlay.SetSize(msg.Width, msg.Height)

		return m, m.resize()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case ReloadedMsg:
		cmds = append(cmds, m.handleReload(msg))
		if m.events != nil {
			cmds = append(cmds, m.waitForEvent())
		}

		return m, tea.Batch(cmds...)

	case ErrMsg:
		m.err = msg.Err

		return m, nil

	case statusTimeoutMsg:
		if msg.id == m.status {
			m.message = ""
		}

		return m, nil

	case carousel.SelectedMsg:
		slog.Debug("card selected",
			slog.Int("index", msg.Index),
			slog.String("title", msg.Card.Title),
		)
	}

	var cmd tea.Cmd

	m.carousel, cmd = m.carousel.Update(msg)

	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if m.kb.Suspend.Match(key) {
		return tea.Suspend
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	if m.err != nil {
		// Any key dismisses the error.
		m.err = nil

		if m.kb.Escape.Match(key) {
			return nil
		}
	}

	switch {
	case m.kb.Quit.Match(key):
		return tea.Quit

	case m.kb.Escape.Match(key):
		if m.showHelp {
			return m.toggleHelp()
		}

	case m.kb.Help.Match(key):
		return m.toggleHelp()

	case m.kb.Search.Match(key):
		m.search.SetValue("")
		focus := m.search.Focus()

		return tea.Batch(m.resize(), focus)

	case m.kb.Copy.Match(key):
		return m.copyCurrent()

	case m.kb.Reload.Match(key):
		return m.runReload()

	case m.kb.Prev.Match(key):
		return m.carousel.Prev()

	case m.kb.Next.Match(key):
		return m.carousel.Next()

	case m.kb.First.Match(key):
		return m.carousel.First()

	case m.kb.Last.Match(key):
		return m.carousel.Last()
	}

	return nil
}

func (m *model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()

		return m.resize()

	case tea.KeyEnter:
		query := m.search.Value()
		m.search.Blur()

		return tea.Batch(m.resize(), m.jump(query))
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)

	return cmd
}

// jump settles on the best match for query.
func (m *model) jump(query string) tea.Cmd {
	matches, err := Search(query, m.carousel.Pager().Items())
	if err != nil {
		return m.sendStatus(err.Error(), statusbar.StyleError)
	}

	if len(matches) == 0 {
		return m.sendStatus(fmt.Sprintf("no cards match %q", query), statusbar.StyleError)
	}

	return tea.Batch(
		m.carousel.AnimateTo(matches[0]),
		m.sendStatus(fmt.Sprintf("%d matching cards", len(matches)), statusbar.StyleSuccess),
	)
}

func (m *model) copyCurrent() tea.Cmd {
	card, ok := m.carousel.Current()
	if !ok {
		return nil
	}

	// OSC 52 for remote sessions, then the system clipboard.
	termenv.Copy(card.Text())

	err := clipboard.WriteAll(card.Text())
	if err != nil {
		slog.Debug("write system clipboard", slog.Any("err", err))
	}

	return m.sendStatus("copied card", statusbar.StyleSuccess)
}

func (m *model) runReload() tea.Cmd {
	if m.reload == nil {
		return nil
	}

	ctx, reload := m.ctx, m.reload

	return func() tea.Msg {
		cards, err := reload(ctx)

		return ReloadedMsg{Cards: cards, Err: err}
	}
}

func (m *model) handleReload(msg ReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.err = msg.Err

		return nil
	}

	return tea.Batch(
		m.carousel.SetItems(msg.Cards),
		m.sendStatus(fmt.Sprintf("loaded %d cards", len(msg.Cards)), statusbar.StyleSuccess),
	)
}

func (m *model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}

	ch := m.events

	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}

		return ReloadedMsg{Cards: evt.Cards, Err: evt.Err}
	}
}

func (m *model) sendStatus(msg string, style statusbar.Style) tea.Cmd {
	m.status++
	m.message = msg
	m.style = style

	id := m.status

	return tea.Tick(StatusMessageTimeout, func(time.Time) tea.Msg {
		return statusTimeoutMsg{id: id}
	})
}

func (m *model) toggleHelp() tea.Cmd {
	m.showHelp = !m.showHelp

	return m.resize()
}

func (m *model) resize() tea.Cmd {
	h := m.height - statusBarHeight
	if m.showHelp {
		h -= m.help.Height(m.width)
	}

	if m.search.Focused() {
		h--
	}

	m.search.Width = max(0, m.width-lipgloss.Width(m.search.Prompt)-1)
	return m.carousel.SetSize(m.width, max(0, h))
}

func (m *model) View() string {
	parts := []string{m.carousel.View()}

	if m.search.Focused() {
		parts = append(parts, m.search.View())
	}

	parts = append(parts, m.statusBar())

	if m.showHelp {
		parts = append(parts, m.help.Render(m.width))
	}

	s := strings.Join(parts, "\n")

	if m.err != nil {
		s = m.overlay.Place(s, m.errorView(), 2.0/3.0, m.theme.ErrorOverlayStyle.Padding(1))
	}

	return s
}

func (m *model) statusBar() string {
	p := m.carousel.Pager()

	var note string
	if card, ok := p.Selected(); ok {
		note = card.Title
	}

	return statusbar.New(m.theme, m.width, statusbar.WithMessage(m.message, m.style)).
		Render(note, statusbar.Position(p.Index(), p.Len()))
}

func (m *model) errorView() string {
	return lipgloss.JoinVertical(lipgloss.Top,
		m.theme.ErrorTitleStyle.Padding(0, 1).Render("ERROR"),
		lipgloss.NewStyle().Padding(1, 0).Render(m.err.Error()),
	)
}
