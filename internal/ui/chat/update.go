// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/paperchat/internal/backend"
	"github.com/jeranaias/paperchat/internal/i18n"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// askCmd runs one /chat request and reports it as a ChatResultMsg.
func (m Model) askCmd(turnID, query string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		start := time.Now()
		resp, err := client.Chat(ctx, query)
		return ChatResultMsg{
			TurnID:   turnID,
			Response: resp,
			Err:      err,
			Latency:  time.Since(start),
		}
	}
}

// healthCmd checks /health once.
func (m Model) healthCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		return HealthStatusMsg{Err: client.Health(ctx)}
	}
}

// copyCmd writes content to the clipboard off the Update goroutine.
func (m Model) copyCmd(content string) tea.Cmd {
	write := m.clipboard
	return func() tea.Msg {
		return CopyCompleteMsg{Error: write(content)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		// The tick chain ends once nothing is in flight.
		if !m.conv.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewport(false)
		return m, cmd

	case ChatResultMsg:
		return m.handleChatResult(msg)

	case HealthStatusMsg:
		return m.handleHealth(msg)

	case CopyCompleteMsg:
		if msg.Error != nil {
			m.log.Warn().Err(msg.Error).Msg("clipboard write failed")
			m.statusMsg = m.text.T(i18n.CopyFailed, msg.Error)
		} else {
			m.statusMsg = m.text.T(i18n.CopyDone)
		}
		return m, nil
	}

	// Cursor blink and other textinput messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.help.Width = m.width - 2

	// The input field shares its row with the Send control.
	inputWidth := m.width - lipgloss.Width(m.renderSendButton()) - lipgloss.Width(m.input.Prompt) - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	// Measure the fixed parts; the viewport gets the rest.
	chrome := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.renderInputRow()) +
		lipgloss.Height(m.renderFooter())
	vpHeight := m.height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight

	if m.markdown {
		m.renderer = m.newMarkdownRenderer()
	}

	m.ready = true
	m.refreshViewport(true)
	return m, nil
}

// newMarkdownRenderer builds a glamour renderer sized to the answer bubble.
// It returns nil, and answers render as plain text, if glamour fails.
func (m Model) newMarkdownRenderer() *glamour.TermRenderer {
	style := "dark"
	switch {
	case m.theme.ColorProfile == termenv.Ascii:
		style = "notty"
	case !m.theme.IsDark:
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(m.contentWidth()),
	)
	if err != nil {
		m.log.Warn().Err(err).Msg("markdown renderer unavailable")
		return nil
	}
	return r
}

// refreshViewport re-renders the turn list. With toBottom set the view
// scrolls to the newest turn.
func (m *Model) refreshViewport(toBottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTurns())
	if toBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Copy):
		return m.copyLastAnswer()

	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	if m.focus == focusSend {
		if key.Matches(msg, m.keys.Activate) {
			return m.submit()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Submit) {
		return m.submit()
	}

	m.statusMsg = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusSend
		m.input.Blur()
		return m, nil
	}
	m.focus = focusInput
	return m, m.input.Focus()
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit sends the pending query. Blank input and input typed while a
// query is in flight are ignored; the field keeps its text in both cases.
func (m Model) submit() (tea.Model, tea.Cmd) {
	query := m.input.Value()
	turn, ok := m.conv.Begin(query)
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.statusMsg = ""
	m.refreshViewport(true)

	m.log.Debug().
		Str("turn", turn.ID).
		Int("query_len", len(query)).
		Str("preview", turn.Preview(40)).
		Msg("query submitted")

	return m, tea.Batch(m.askCmd(turn.ID, query), m.spinner.Tick)
}

func (m Model) handleChatResult(msg ChatResultMsg) (tea.Model, tea.Cmd) {
	turn := m.conv.Settle(msg.Response, msg.Err, m.text.T(i18n.ServerError))
	if turn == nil {
		m.log.Warn().Str("turn", msg.TurnID).Msg("result without a pending query")
		return m, nil
	}

	if msg.Err != nil {
		m.log.Warn().
			Err(msg.Err).
			Str("turn", msg.TurnID).
			Str("kind", backend.KindOf(msg.Err).String()).
			Dur("latency", msg.Latency).
			Msg("query failed")
	} else {
		m.log.Info().
			Str("turn", msg.TurnID).
			Int("sources", len(turn.Sources)).
			Dur("latency", msg.Latency).
			Msg("query answered")
	}

	m.refreshViewport(true)
	return m, nil
}

func (m Model) handleHealth(msg HealthStatusMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.health = HealthUnreachable
		m.log.Warn().
			Err(msg.Err).
			Str("kind", backend.KindOf(msg.Err).String()).
			Msg("backend health check failed")
	} else {
		m.health = HealthConnected
		m.log.Debug().Msg("backend healthy")
	}
	return m, nil
}

// =============================================================================
// CLIPBOARD
// =============================================================================

func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	last := m.conv.LastAnswer()
	if last == nil || strings.TrimSpace(last.Content) == "" {
		m.statusMsg = m.text.T(i18n.CopyEmpty)
		return m, nil
	}
	return m, m.copyCmd(last.Content)
}
