package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/training"
	"github.com/garrettladley/pulse/internal/tui/theme"
	"github.com/garrettladley/pulse/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	livePage
)

// keys the monitor reacts to, as reported by tea.KeyMsg.String.
var (
	stopKeys     = []string{"q", "ctrl+c", "esc"}
	toggleKeys   = []string{"tab"}
	helpKeys     = []string{"?"}
	continueKeys = []string{"enter", "space", " "}
)

type Model struct {
	ready  bool
	page   page
	width  int
	height int
	theme  theme.Theme
	deps   Deps

	snapshot *training.Snapshot
	showRest bool
	showHelp bool
	stopping bool
	ended    bool
}

func New(deps Deps) Model {
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		splashTickCmd(),
		listenSnapshotsCmd(m.deps.Snapshots),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case SplashTickMsg:
		m.page = livePage
		return m, nil
	case SnapshotMsg:
		return m, m.applySnapshot(msg.Snapshot)
	case SessionEndedMsg:
		m.ended = true
		return m, tea.Quit
	}
	return m, nil
}

// applySnapshot stores snap and keeps listening until the stream closes.
func (m *Model) applySnapshot(snap training.Snapshot) tea.Cmd {
	m.snapshot = &snap
	if snap.Final && m.deps.Logger != nil {
		m.deps.Logger.Info("final snapshot received", xslog.Count(snap.Samples))
	}
	return listenSnapshotsCmd(m.deps.Snapshots)
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch {
	case matches(key, stopKeys):
		return m.stop()
	case matches(key, toggleKeys):
		m.showRest = !m.showRest
	case matches(key, helpKeys):
		m.showHelp = !m.showHelp
	case matches(key, continueKeys):
		m.page = livePage
	}
	return nil
}

// stop asks the session to end once; the controller then closes the
// snapshot stream, which quits through SessionEndedMsg.
func (m *Model) stop() tea.Cmd {
	if m.ended {
		return tea.Quit
	}
	if m.stopping {
		return nil
	}
	m.stopping = true
	if m.deps.Stop != nil {
		m.deps.Stop()
	}
	return nil
}

func matches(key string, keys []string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true
	view.BackgroundColor = m.theme.Background()

	if !m.ready {
		return view
	}

	switch m.page {
	case splashPage:
		view.BackgroundColor = theme.ColorBlack
		view.SetContent(m.fill(m.height, m.LogoView()))
	case livePage:
		footer := m.FooterView()
		body := m.LiveView()
		if m.showHelp {
			body = m.HelpView()
		}
		view.SetContent(lipgloss.JoinVertical(lipgloss.Left,
			m.fill(max(m.height-lipgloss.Height(footer), 0), body),
			footer,
		))
	}
	return view
}

// fill centers content in a full-width box of the given height.
func (m *Model) fill(height int, content string) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, content)
}
