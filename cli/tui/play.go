package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lithica-io/flipbook/session"
	"github.com/lithica-io/flipbook/types"
)

// footerRows is the number of terminal rows reserved below the frame
// view for the status line and help text.
const footerRows = 2

// Messages delivered from the session's callbacks. The play command
// pushes these into the model's channel from the loader and scheduler
// goroutines.
type (
	// FrameMsg carries one rendered ANSI frame.
	FrameMsg string
	// ProgressMsg carries a loading progress fraction in (0, 1].
	ProgressMsg float64
	// LoadedMsg signals that every frame has loaded.
	LoadedMsg struct{}
	// LoadFailedMsg signals a permanent load failure.
	LoadFailedMsg struct{ Err error }
)

type phase int

const (
	phaseLoading phase = iota
	phasePlaying
	phaseFailed
)

// keyMap defines play view key bindings.
type keyMap struct {
	Toggle  key.Binding
	Restart key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "stop/replay"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PlayModel is the Bubble Tea model for sequence playback.
type PlayModel struct {
	session *session.Session
	msgs    <-chan tea.Msg

	phase    phase
	progress progress.Model
	percent  float64
	frame    string
	err      error

	width    int
	height   int
	quitting bool
}

// NewPlayModel creates a play model consuming session messages from msgs.
func NewPlayModel(s *session.Session, msgs <-chan tea.Msg) PlayModel {
	return PlayModel{
		session:  s,
		msgs:     msgs,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (m PlayModel) Init() tea.Cmd {
	return m.waitMsg()
}

// waitMsg relays the next session message into the program.
func (m PlayModel) waitMsg() tea.Cmd {
	return func() tea.Msg {
		return <-m.msgs
	}
}

// Update implements tea.Model.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-4, 60)
		m.resizeSession()
		return m, nil

	case ProgressMsg:
		m.percent = float64(msg)
		return m, m.waitMsg()

	case LoadedMsg:
		m.phase = phasePlaying
		m.resizeSession()
		return m, m.waitMsg()

	case LoadFailedMsg:
		m.phase = phaseFailed
		m.err = msg.Err
		return m, m.waitMsg()

	case FrameMsg:
		m.frame = string(msg)
		return m, m.waitMsg()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit

	case key.Matches(msg, keys.Toggle):
		if m.session.Status() == types.StatusPlaying {
			m.session.Stop()
		} else {
			m.session.Play()
		}
		return m, nil

	case key.Matches(msg, keys.Restart):
		m.session.Stop()
		m.session.Play()
		return m, nil
	}

	return m, nil
}

// resizeSession forwards the terminal size to the session. Each cell is
// two pixels tall under half-block rendering.
func (m PlayModel) resizeSession() {
	if m.width <= 0 || m.height <= footerRows {
		return
	}
	m.session.Resize(m.width, (m.height-footerRows)*2)
}

// View implements tea.Model.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseLoading:
		return m.viewLoading()
	case phaseFailed:
		return m.viewFailed()
	default:
		return m.viewPlaying()
	}
}

func (m PlayModel) viewLoading() string {
	title := TitleStyle.Render(m.session.Meta().Prefix)
	bar := m.progress.ViewAs(m.percent)
	help := HelpStyle.Render("Press q to quit")
	return fmt.Sprintf("%s\n\nloading frames…\n%s\n\n%s\n", title, bar, help)
}

func (m PlayModel) viewFailed() string {
	title := TitleStyle.Render(m.session.Meta().Prefix)
	body := ErrorStyle.Render(fmt.Sprintf("load failed: %v", m.err))
	help := HelpStyle.Render("Press q to quit")
	return fmt.Sprintf("%s\n\n%s\n\n%s\n", title, body, help)
}

func (m PlayModel) viewPlaying() string {
	footer := m.footer()
	if m.frame == "" {
		return "\n" + footer
	}
	return m.frame + "\n" + footer
}

func (m PlayModel) footer() string {
	status := m.session.Status()
	var state string
	switch status {
	case types.StatusPlaying:
		state = PlayingStyle.Render("playing")
	case types.StatusStopped:
		state = StoppedStyle.Render("stopped")
	default:
		state = FooterStyle.Render("idle")
	}

	left := FooterStyle.Render(fmt.Sprintf("%s  frame %d", m.session.Meta().Prefix, m.session.FrameIndex()+1))
	help := HelpStyle.Render("space stop/replay · r restart · q quit")
	return fmt.Sprintf("%s  %s\n%s", left, state, help)
}

// RunPlay runs the playback TUI until the user quits.
func RunPlay(s *session.Session, msgs <-chan tea.Msg) error {
	p := tea.NewProgram(NewPlayModel(s, msgs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
