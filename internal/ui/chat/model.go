// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/n1k4/internal/gemini"
	"github.com/jeranaias/n1k4/internal/model"
	"github.com/jeranaias/n1k4/internal/session"
	"github.com/jeranaias/n1k4/internal/ui/components"
	"github.com/jeranaias/n1k4/internal/ui/styles"
)

// App is the application state the terminal renders. *app.App
// implements it.
type App interface {
	SubmitLogin(name string) bool
	SendMessage(ctx context.Context, text string) error
	Session() session.Session
	Status() session.Status
	Messages() []model.Message
	IsProcessing() bool
	Mode() gemini.Mode
	ModelName() string
	MinUsernameLength() int
	Subscribe(fn func())
}

// Options configures the terminal.
type Options struct {
	AltScreen     bool
	Markdown      bool
	MarkdownStyle string
}

// State is the active screen.
type State int

const (
	StateLogin State = iota // gateway and connection sequence
	StateChat               // transcript and input
)

// Default size used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the root Bubble Tea model.
type Model struct {
	app      App
	ctx      context.Context
	theme    *styles.Theme
	keys     KeyMap
	help     help.Model
	renderer *components.MessageRenderer

	state  State
	width  int
	height int

	login    textinput.Model
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	progress progress.Model
	frame    int

	// Transcript shape at the last refresh, used to decide auto-scroll.
	shownMessages   int
	shownProcessing bool

	lastErr error
}

// New creates the terminal model on the login screen.
func New(ctx context.Context, a App, opts Options) Model {
	theme := styles.NewTheme()

	login := textinput.New()
	login.Prompt = ""
	login.Placeholder = "CODENAME"
	login.CharLimit = 24
	login.Width = 24
	login.Focus()

	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.Placeholder = "ENTER COMMAND..."
	input.CharLimit = 4096

	sp := spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(theme.Spinner))

	m := Model{
		app:      a,
		ctx:      ctx,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		renderer: components.NewMessageRenderer(theme, opts.Markdown, opts.MarkdownStyle),
		state:    StateLogin,
		login:    login,
		input:    input,
		viewport: viewport.New(defaultWidth, defaultHeight),
		spinner:  sp,
		progress: components.NewStageProgress(),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init starts cursor blink and the title animation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, glitchTick())
}

func glitchTick() tea.Cmd {
	return tea.Tick(glitchInterval, func(t time.Time) tea.Msg {
		return GlitchTickMsg{Time: t}
	})
}

// State returns the active screen.
func (m Model) State() State { return m.state }

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state == StateLogin {
			return m.handleLoginKey(msg)
		}
		return m.handleChatKey(msg)

	case StateChangedMsg:
		return m.sync()

	case SendDoneMsg:
		m.lastErr = msg.Err
		return m.sync()

	case GlitchTickMsg:
		if m.state != StateLogin {
			return m, nil
		}
		m.frame++
		return m, glitchTick()

	case spinner.TickMsg:
		if !m.app.IsProcessing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.app.Status() != session.StatusDisconnected {
		return m, nil
	}
	if key.Matches(msg, m.keys.Submit) {
		if m.app.SubmitLogin(m.login.Value()) {
			m.login.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	pos := m.login.Position()
	m.login.SetValue(strings.ToUpper(m.login.Value()))
	m.login.SetCursor(pos)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if strings.TrimSpace(text) == "" || m.app.IsProcessing() {
			return m, nil
		}
		m.input.Reset()
		m.lastErr = nil
		return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sendCmd runs the send off the event loop. Progress reaches the view
// through StateChangedMsg; SendDoneMsg closes it out.
func (m Model) sendCmd(text string) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		return SendDoneMsg{Err: a.SendMessage(ctx, text)}
	}
}

// sync switches to the chat screen once logged in and rebuilds the
// transcript.
func (m Model) sync() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.state == StateLogin && m.app.Session().IsLoggedIn {
		m.state = StateChat
		m.login.Blur()
		m.input.Focus()
		m.layout()
		cmd = textinput.Blink
	}
	if m.state == StateChat {
		m.refresh()
	}
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.help.Width = width
	m.layout()
	if m.state == StateChat {
		m.refresh()
	}
}

func (m *Model) layout() {
	m.input.Width = m.width - m.theme.InputContainer.GetHorizontalFrameSize() - len(m.input.Prompt) - 1
	m.renderer.SetWidth(m.width)

	h := m.height - m.chromeHeight()
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

// chromeHeight is the number of rows around the transcript.
func (m *Model) chromeHeight() int {
	header := components.RenderHeader(m.theme, m.width)
	return lineCount(header) + 2 + 1 + 1 // input, status bar, help
}

// refresh rebuilds the transcript and follows the tail when something new
// arrived.
func (m *Model) refresh() {
	msgs := m.app.Messages()
	processing := m.app.IsProcessing()
	sess := m.app.Session()

	var b strings.Builder
	b.WriteString(components.RenderBanner(m.theme, sess, m.width))
	if len(msgs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderer.RenderAll(msgs, sess.Username))
	}
	if processing {
		b.WriteString("\n\n")
		b.WriteString(m.renderer.RenderComputing(m.spinner.View()))
	}

	follow := m.viewport.AtBottom() ||
		len(msgs) != m.shownMessages ||
		processing != m.shownProcessing
	m.viewport.SetContent(b.String())
	if follow {
		m.viewport.GotoBottom()
	}
	m.shownMessages = len(msgs)
	m.shownProcessing = processing
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
