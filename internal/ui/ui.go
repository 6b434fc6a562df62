package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/discover/internal/formatter"
	"github.com/desertthunder/discover/internal/models"
)

// TermSetter is the producer side of the shared search term.
type TermSetter interface {
	SetTerm(term string)
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	state     TermSetter
	snapshots <-chan models.Snapshot
	snap      models.Snapshot
	focus     models.SectionKind
	term      string
	width     int
	height    int
	input     textinput.Model
	spinner   spinner.Model
	items     list.Model
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model that writes search edits to state and renders snapshots received on snapshots.
func NewModel(ctx context.Context, state TermSetter, snapshots <-chan models.Snapshot) *Model {
	input := textinput.New()
	input.Placeholder = "Search artists"
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.warn

	items := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	items.SetShowTitle(false)
	items.SetShowHelp(false)
	items.SetShowStatusBar(false)
	items.SetFilteringEnabled(false)

	return &Model{
		ctx:       ctx,
		state:     state,
		snapshots: snapshots,
		focus:     models.NewReleases,
		input:     input,
		spinner:   sp,
		items:     items,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts the cursor blink, the spinner and the snapshot subscription.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForSnapshot())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.items.SetSize(msg.Width-4, max(msg.Height-10, 3))
		return m, nil

	case Msg:
		switch msg.kind {
		case MsgSnapshot:
			m.applySnapshot(msg.data.(models.Snapshot))
			return m, m.waitForSnapshot()
		case MsgWatchClosed:
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.handleSearchKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.done):
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.cycle(1)
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.cycle(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.term {
		m.term = value
		m.state.SetTerm(value)
	}
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.next):
		m.cycle(1)
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.cycle(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)
	return m, cmd
}

// applySnapshot stores snap, moving focus to search results when they first appear
// and away from them when they are hidden.
func (m *Model) applySnapshot(snap models.Snapshot) {
	hadSearch := m.snap.SearchResults != nil
	m.snap = snap

	switch {
	case snap.SearchResults != nil && !hadSearch:
		m.focus = models.SearchResults
	case snap.SearchResults == nil && m.focus == models.SearchResults:
		m.focus = models.NewReleases
	}
	m.refreshList()
}

func (m *Model) cycle(step int) {
	sections := m.snap.Sections()
	if len(sections) == 0 {
		return
	}

	current := 0
	for i, s := range sections {
		if s.Kind == m.focus {
			current = i
			break
		}
	}
	next := (current + step + len(sections)) % len(sections)
	m.focus = sections[next].Kind
	m.refreshList()
}

func (m *Model) refreshList() {
	section, _ := m.snap.Section(m.focus)
	m.items.SetItems(listItems(section))
}

func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		select {
		case snap, ok := <-m.snapshots:
			if !ok {
				return watchClosedMsg()
			}
			return snapshotMsg(snap)
		case <-m.ctx.Done():
			return watchClosedMsg()
		}
	}
}

// View renders the search box, the section tabs and the focused section.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Discover"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderSection())
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.helpKeys()))

	return b.String()
}

func (m *Model) renderTabs() string {
	sections := m.snap.Sections()
	tabs := make([]string, 0, len(sections))
	for _, s := range sections {
		label := s.Kind.Title()
		if s.Kind == models.SearchResults && s.QueryKey != "" {
			label = fmt.Sprintf("%s %q", label, s.QueryKey)
		}

		switch s.Status {
		case models.Loading:
			label = m.spinner.View() + label
		case models.Failed:
			label = styles.err.Render("✗ " + label)
		case models.Loaded:
			label = fmt.Sprintf("%s (%d)", label, len(models.Renderable(s.Items)))
		}

		if s.Kind == m.focus {
			label = styles.ok.Render("[" + label + "]")
		}
		tabs = append(tabs, label)
	}
	return strings.Join(tabs, "  ")
}

func (m *Model) renderSection() string {
	section, _ := m.snap.Section(m.focus)
	if section.Status == models.Loaded && len(m.items.Items()) > 0 {
		return m.items.View()
	}

	placeholder := formatter.Placeholder(section)
	switch section.Status {
	case models.Failed:
		return styles.err.Render(placeholder)
	case models.Loading:
		return m.spinner.View() + styles.warn.Render(placeholder)
	default:
		return styles.help.Render(placeholder)
	}
}

func (m *Model) helpKeys() []key.Binding {
	if m.input.Focused() {
		return []key.Binding{m.keys.done, m.keys.next}
	}
	return []key.Binding{m.keys.search, m.keys.up, m.keys.down, m.keys.next, m.keys.quit}
}
