// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/jeranaias/paperchat/internal/backend"
	"github.com/jeranaias/paperchat/internal/i18n"
	"github.com/jeranaias/paperchat/internal/model"
	"github.com/jeranaias/paperchat/internal/ui/styles"
)

// Backend is the part of the backend client the view needs.
// *backend.Client implements it.
type Backend interface {
	Chat(ctx context.Context, query string) (*backend.ChatResponse, error)
	Health(ctx context.Context) error
}

// =============================================================================
// STATE
// =============================================================================

// HealthState is the backend status shown in the header.
type HealthState int

const (
	HealthChecking HealthState = iota
	HealthConnected
	HealthUnreachable
)

// focusTarget is the control that receives key input.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusSend
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Client performs requests. Required.
	Client Backend
	// Context is passed to every request. Canceling it abandons an
	// outstanding request. Defaults to context.Background().
	Context context.Context

	Theme   *styles.Theme
	Printer *i18n.Printer
	Logger  zerolog.Logger

	// Markdown renders answers with glamour.
	Markdown bool
	// ShowHelp shows the key help footer.
	ShowHelp bool

	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctx    context.Context
	client Backend
	log    zerolog.Logger

	conv *model.Conversation

	theme *styles.Theme
	text  *i18n.Printer
	keys  KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model

	focus     focusTarget
	health    HealthState
	statusMsg string
	showHelp  bool

	markdown bool
	renderer *glamour.TermRenderer

	clipboard func(string) error
}

// New creates a chat model. The model starts with the text field focused
// and the backend status "checking".
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Printer == nil {
		opts.Printer = i18n.New("en")
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = opts.Theme.InputPrompt
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New(
		spinner.WithSpinner(styles.ProcessingSpinner),
		spinner.WithStyle(opts.Theme.Spinner),
	)

	return Model{
		ctx:       opts.Context,
		client:    opts.Client,
		log:       opts.Logger.With().Str("component", "chat").Logger(),
		conv:      model.NewConversation(),
		theme:     opts.Theme,
		text:      opts.Printer,
		keys:      NewKeyMap(opts.Printer),
		viewport:  vp,
		input:     ti,
		spinner:   sp,
		help:      help.New(),
		focus:     focusInput,
		health:    HealthChecking,
		showHelp:  opts.ShowHelp,
		markdown:  opts.Markdown,
		clipboard: opts.Clipboard,
	}
}

// Init starts the cursor blink and the health check, and sets the window
// title.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle(m.text.T(i18n.Title)),
		m.healthCmd(),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversation returns the conversation the view renders.
func (m Model) Conversation() *model.Conversation {
	return m.conv
}

// InFlight reports whether a query is waiting for its response.
func (m Model) InFlight() bool {
	return m.conv.InFlight()
}

// InputValue returns the pending query text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// SendFocused reports whether the Send control has focus.
func (m Model) SendFocused() bool {
	return m.focus == focusSend
}

// Health returns the backend status shown in the header.
func (m Model) Health() HealthState {
	return m.health
}

// StatusMessage returns the transient status line text.
func (m Model) StatusMessage() string {
	return m.statusMsg
}
