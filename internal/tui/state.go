package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/document"
	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/session"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool
	connect    ConnectFunc
	sessions   *session.Manager

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Project wizard
	wizard     wizard
	wizardHint string
	projectID  string
	documents  []*document.Document

	// Conversation
	conversationID string
	project        *script.ProjectState
	history        []message
	options        []router.Option

	// In-flight turn
	waiting   bool
	cancel    context.CancelFunc
	turnStart time.Time
	spinner   spinner.Model

	viewport viewport.Model
	renderer *glamour.TermRenderer
	wrap     int

	// Input
	input textinput.Model

	// Provider
	providerReady bool
	providerError error

	err error
}

type message struct {
	role    string
	content string
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = "Type a message, a number to pick an option, or /help"
	input.CharLimit = 2000
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorPrimary)),
	)

	vp := viewport.New(70, 20)
	vp.KeyMap = viewport.KeyMap{PageUp: keys.PageUp, PageDown: keys.PageDown}

	return &state{
		input:       input,
		apiKeyInput: apiKey,
		spinner:     sp,
		viewport:    vp,
	}
}
