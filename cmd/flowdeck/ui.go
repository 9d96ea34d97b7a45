package main

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"flowdeck/internal/brief"
	"flowdeck/internal/console"
)

// --- Messages ---

// consoleChangedMsg arrives whenever the engine mutated state.
type consoleChangedMsg struct{}

// briefChangedMsg arrives when the campaign brief file was edited.
type briefChangedMsg struct{}

// briefReloadedMsg carries the reloaded brief text.
type briefReloadedMsg struct {
	text string
	err  error
}

// tickMsg drives the status-bar clock.
type tickMsg struct{}

// --- Key bindings ---

type keyMap struct {
	Advisor key.Binding
	Deploy  key.Binding
	Steps   key.Binding
	Esc     key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Advisor: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ai insight")),
	Deploy:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deploy")),
	Steps:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "inspect step")),
	Esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close detail")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// stepKeys maps number keys to catalog ids for fast inspection.
var stepKeys = map[string]string{
	"1": "ideate",
	"2": "create",
	"3": "optimize",
	"4": "publish",
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advisor, k.Deploy, k.Steps, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Steps, k.Esc, k.Advisor},
		{k.Deploy, k.Help, k.Quit},
	}
}

// --- Model ---

type uiModel struct {
	ctrl      *console.Controller
	snap      console.Snapshot
	briefPath string
	version   string

	width  int
	height int

	help     help.Model
	showHelp bool
	spin     spinner.Model

	now time.Time
}

func newModel(ctrl *console.Controller, briefPath, version string) uiModel {
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = spinnerStyle

	return uiModel{
		ctrl:      ctrl,
		snap:      ctrl.Snapshot(),
		briefPath: briefPath,
		version:   version,
		help:      help.New(),
		spin:      sp,
		now:       time.Now(),
	}
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickEvery())
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Number keys open the step detail pane.
		if id, ok := stepKeys[msg.String()]; ok {
			m.ctrl.SelectStep(id)
			m.snap = m.ctrl.Snapshot()
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Esc):
			m.ctrl.ClearSelection()
			m.snap = m.ctrl.Snapshot()

		case key.Matches(msg, keys.Advisor):
			m.ctrl.TriggerAdvisor()
			m.snap = m.ctrl.Snapshot()

		case key.Matches(msg, keys.Deploy):
			m.ctrl.LogUserAction("MANUAL_DEPLOY_TRIGGERED")
			m.snap = m.ctrl.Snapshot()

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case consoleChangedMsg:
		m.snap = m.ctrl.Snapshot()

	case briefChangedMsg:
		return m, m.reloadBrief()

	case briefReloadedMsg:
		if msg.err == nil {
			m.ctrl.ReloadBrief(msg.text)
			m.snap = m.ctrl.Snapshot()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		m.now = time.Now()
		return m, tickEvery()
	}

	return m, nil
}

// reloadBrief re-reads the brief file off the update loop.
func (m uiModel) reloadBrief() tea.Cmd {
	path := m.briefPath
	return func() tea.Msg {
		text, err := brief.Load(path)
		return briefReloadedMsg{text: text, err: err}
	}
}
