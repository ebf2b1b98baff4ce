// Package tui is the interactive terminal front end: first-run provider
// setup, a short project wizard, then chat with the script assistant.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/document"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/session"
	"github.com/sant0-9/hookline/internal/store"
)

type view int

const (
	viewSetup view = iota
	viewWizard
	viewChat
	viewSettings
	viewHelp
	viewError
)

// ConnectFunc builds the session manager for cfg. It runs again after
// first-run setup changes the provider.
type ConnectFunc func(cfg *config.Config) (*session.Manager, error)

type Options struct {
	Config     *config.Config
	NeedsSetup bool
	Connect    ConnectFunc
	// ProjectID resumes a saved project instead of running the wizard.
	ProjectID string
	// Documents are applied to a project created by the wizard.
	Documents []*document.Document
	Logger    *zap.Logger
}

type App struct {
	width    int
	height   int
	view     view
	prev     view
	state    *state
	logger   *zap.Logger
	quitting bool
}

func NewApp(opts Options) *App {
	s := newState()
	s.config = opts.Config
	if s.config == nil {
		s.config = config.DefaultConfig()
	}
	s.needsSetup = opts.NeedsSetup
	s.connect = opts.Connect
	s.projectID = opts.ProjectID
	s.documents = opts.Documents

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	v := viewWizard
	if s.needsSetup {
		v = viewSetup
	}
	return &App{view: v, state: s, logger: logger}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}
	a.state.input.Focus()
	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.connectCmd(),
		a.testProvider(),
	)
}

func (a *App) connectCmd() tea.Cmd {
	cfg, connect, projectID := a.state.config, a.state.connect, a.state.projectID
	return func() tea.Msg {
		if connect == nil {
			return fatalMsg{errors.New("no session backend configured")}
		}
		mgr, err := connect(cfg)
		if err != nil {
			return fatalMsg{err}
		}
		if projectID == "" {
			return connectedMsg{sessions: mgr}
		}

		ctx := context.Background()
		conv, err := mgr.Resume(ctx, projectID)
		if err != nil {
			return fatalMsg{err}
		}
		_, p, err := mgr.Open(ctx, conv.ID)
		if err != nil {
			return fatalMsg{err}
		}
		return connectedMsg{sessions: mgr, conversation: conv, project: p}
	}
}

func (a *App) testProvider() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		provider, err := llm.NewProvider(cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.view = viewWizard
		a.state.input.Focus()
		return a, tea.Batch(textinput.Blink, a.connectCmd(), a.testProvider())

	case setupErrorMsg:
		a.fail(msg.error)
		return a, nil

	case connectedMsg:
		a.state.sessions = msg.sessions
		if msg.conversation != nil {
			a.openConversation(msg.conversation, msg.project)
			return a, a.loadHistory()
		}
		return a, nil

	case conversationMsg:
		a.openConversation(msg.conversation, msg.project)
		a.state.history = append(a.state.history, message{role: store.RoleAssistant, content: readyText(msg.project)})
		a.state.options = startOptions
		a.refresh()
		return a, nil

	case historyMsg:
		for _, m := range msg.messages {
			a.state.history = append(a.state.history, message{role: m.Role, content: m.Content})
		}
		a.refresh()
		return a, nil

	case turnMsg:
		a.finishTurn(msg)
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, nil

	case providerErrorMsg:
		a.state.providerError = msg.error
		a.logger.Warn("provider check failed", zap.Error(msg.error))
		return a, nil

	case fatalMsg:
		a.fail(msg.error)
		return a, nil

	case spinner.TickMsg:
		if a.state.waiting {
			var cmd tea.Cmd
			a.state.spinner, cmd = a.state.spinner.Update(msg)
			a.refresh()
			return a, cmd
		}
		return a, nil
	}

	// Update text inputs based on view
	switch {
	case a.view == viewSetup && a.state.setupStep == 1:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewWizard || a.view == viewChat:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.view == viewChat {
		var cmd tea.Cmd
		a.state.viewport, cmd = a.state.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey reports whether the key was consumed.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a.quit(), true

	case key.Matches(msg, keys.Back):
		switch {
		case a.view == viewSettings || a.view == viewHelp:
			a.view = a.prev
			return nil, true
		case a.view == viewSetup && a.state.setupStep == 1:
			// Go back to provider selection
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		case a.view == viewChat && a.state.waiting:
			a.state.cancel()
			return nil, true
		}
		return a.quit(), true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg), true
	case viewWizard:
		return a.handleWizardKey(msg)
	case viewChat:
		if key.Matches(msg, keys.Enter) {
			return a.handleInput(), true
		}
	case viewError, viewSettings, viewHelp:
		return nil, true
	}
	return nil, false
}

func (a *App) quit() tea.Cmd {
	if a.state.cancel != nil {
		a.state.cancel()
	}
	a.quitting = true
	return tea.Quit
}

func (a *App) fail(err error) {
	a.logger.Error("tui error", zap.Error(err))
	a.state.err = err
	a.view = viewError
}

// handleInput runs slash commands locally and sends everything else to
// the router.
func (a *App) handleInput() tea.Cmd {
	input := strings.TrimSpace(a.state.input.Value())
	if input == "" || a.state.waiting || a.state.sessions == nil {
		return nil
	}
	a.state.input.Reset()

	switch strings.ToLower(input) {
	case "/help", "/h":
		a.show(viewHelp)
		return nil
	case "/settings", "/s":
		a.show(viewSettings)
		return nil
	case "/quit", "/q", "exit", "quit":
		return a.quit()
	}

	a.state.history = append(a.state.history, message{role: store.RoleUser, content: input})
	a.state.options = nil
	a.state.waiting = true
	a.state.turnStart = time.Now()
	a.refresh()
	return tea.Batch(a.sendTurn(input), a.state.spinner.Tick)
}

func (a *App) show(v view) {
	a.prev = a.view
	a.view = v
}

func (a *App) sendTurn(text string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	a.state.cancel = cancel
	mgr, id := a.state.sessions, a.state.conversationID
	return func() tea.Msg {
		defer cancel()
		turn, err := mgr.Chat(ctx, id, router.Message{Text: text})
		return turnMsg{turn: turn, err: err}
	}
}

func (a *App) finishTurn(msg turnMsg) {
	a.state.waiting = false
	a.state.cancel = nil
	if msg.err != nil {
		a.logger.Error("chat turn failed", zap.String("conversation_id", a.state.conversationID), zap.Error(msg.err))
		a.state.history = append(a.state.history, message{role: store.RoleAssistant,
			content: "⚠️ Could not save this turn: " + msg.err.Error()})
		a.refresh()
		return
	}
	if msg.turn.Err != nil {
		a.logger.Warn("turn answered with an error", zap.String("conversation_id", a.state.conversationID), zap.Error(msg.turn.Err))
	}
	a.state.project = msg.turn.State
	a.state.history = append(a.state.history, message{role: store.RoleAssistant, content: msg.turn.Response.Content})
	a.state.options = msg.turn.Response.Options
	a.refresh()
}

func (a *App) handleWizardKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	w := &a.state.wizard
	switch {
	case key.Matches(msg, keys.Up) && len(w.choices()) > 0:
		w.move(-1)
		return nil, true
	case key.Matches(msg, keys.Down) && len(w.choices()) > 0:
		w.move(1)
		return nil, true
	case key.Matches(msg, keys.Enter):
		if a.state.sessions == nil {
			return nil, true
		}
		a.state.wizardHint = w.submit(a.state.input.Value())
		if a.state.wizardHint == "" {
			a.state.input.Reset()
		}
		if w.done() {
			return a.startProject(), true
		}
		return nil, true
	}
	return nil, false
}

func (a *App) startProject() tea.Cmd {
	p := a.state.wizard.project()
	document.Apply(p, a.state.documents...)
	mgr := a.state.sessions
	return func() tea.Msg {
		conv, err := mgr.Start(context.Background(), p)
		if err != nil {
			return fatalMsg{err}
		}
		return conversationMsg{conversation: conv, project: p}
	}
}

func (a *App) openConversation(conv *store.Conversation, p *script.ProjectState) {
	a.state.conversationID = conv.ID
	a.state.project = p
	a.view = viewChat
	a.state.input.Focus()
	a.logger.Info("conversation opened", zap.String("conversation_id", conv.ID), zap.String("project_id", conv.ProjectID))
}

func (a *App) loadHistory() tea.Cmd {
	mgr, id := a.state.sessions, a.state.conversationID
	return func() tea.Msg {
		msgs, err := mgr.History(context.Background(), id)
		if err != nil {
			return fatalMsg{err}
		}
		return historyMsg{messages: msgs}
	}
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	if a.state.setupStep == 1 {
		if key.Matches(msg, keys.Enter) {
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			return a.finishSetup()
		}
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Up):
		a.state.selectedProvider = max(a.state.selectedProvider-1, 0)
	case key.Matches(msg, keys.Down):
		a.state.selectedProvider = min(a.state.selectedProvider+1, len(config.Providers)-1)
	case key.Matches(msg, keys.Enter):
		p := config.Providers[a.state.selectedProvider]
		a.state.config.Provider = p.ID
		a.state.config.Model = p.DefaultModel
		if !p.NeedsAPIKey {
			return a.finishSetup()
		}
		a.state.setupStep = 1
		a.state.apiKeyInput.Focus()
		return textinput.Blink
	}
	return nil
}

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{}
type providerErrorMsg struct{ error }
type fatalMsg struct{ error }

type connectedMsg struct {
	sessions     *session.Manager
	conversation *store.Conversation
	project      *script.ProjectState
}

type conversationMsg struct {
	conversation *store.Conversation
	project      *script.ProjectState
}

type historyMsg struct {
	messages []store.Message
}

type turnMsg struct {
	turn *session.Turn
	err  error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewWizard:
		return a.renderWizard()
	case viewChat:
		return a.renderChat()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderWizard()
	}
}
