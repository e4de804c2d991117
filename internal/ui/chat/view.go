// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/paperchat/internal/i18n"
	"github.com/jeranaias/paperchat/internal/model"
	"github.com/jeranaias/paperchat/internal/ui/styles"
	"github.com/jeranaias/paperchat/internal/util"
)

// View renders the header, the scrolling turn list, the input row and the
// footer, top to bottom.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInputRow(),
		m.renderFooter(),
	)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	status := m.renderHealth()
	avail := m.width - 2 - lipgloss.Width(status) - 1
	title := m.theme.HeaderTitle.Render(util.TruncateWidth(m.text.T(i18n.Title), avail))

	gap := m.width - 2 - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	line := title + strings.Repeat(" ", gap) + status

	width := m.width
	if width < 1 {
		width = 1
	}
	return m.theme.Header.Width(width).Render(line)
}

func (m Model) renderHealth() string {
	switch m.health {
	case HealthConnected:
		return m.theme.Connected.Render(styles.StatusIndicators.Connected + " " + m.text.T(i18n.StatusConnected))
	case HealthUnreachable:
		return m.theme.Unreachable.Render(styles.StatusIndicators.Unreachable + " " + m.text.T(i18n.StatusUnreachable))
	default:
		return m.theme.Checking.Render(styles.StatusIndicators.Checking + " " + m.text.T(i18n.StatusChecking))
	}
}

// =============================================================================
// TURNS
// =============================================================================

func (m Model) renderTurns() string {
	if m.conv.IsEmpty() {
		return m.theme.EmptyHint.Render(util.Wrap(m.text.T(i18n.EmptyHint), m.width-2))
	}

	turns := m.conv.Turns()
	parts := make([]string, 0, len(turns)+1)
	for _, turn := range turns {
		parts = append(parts, m.renderTurn(turn))
	}
	if m.conv.InFlight() {
		parts = append(parts, m.renderProcessing())
	}
	return strings.Join(parts, "\n\n")
}

// renderTurn draws one turn as a labelled bubble. User turns are
// right-aligned; assistant and system turns are left-aligned.
func (m Model) renderTurn(turn *model.Turn) string {
	var bubble lipgloss.Style
	var label i18n.Key
	switch turn.Role {
	case model.RoleUser:
		bubble, label = m.theme.UserBubble, i18n.RoleUser
	case model.RoleAssistant:
		bubble, label = m.theme.AssistantBubble, i18n.RoleAssistant
	default:
		bubble, label = m.theme.SystemBubble, i18n.RoleSystem
	}

	body := m.renderContent(turn)
	if turn.HasSources() {
		body += "\n" + m.renderReferences(turn)
	}
	box := bubble.MaxWidth(m.theme.BubbleWidth()).Render(body)

	if turn.Role == model.RoleUser {
		block := lipgloss.JoinVertical(lipgloss.Right, m.theme.RoleLabel.Render(m.text.T(label)), box)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.theme.RoleLabel.Render(m.text.T(label)), box)
}

func (m Model) renderContent(turn *model.Turn) string {
	if turn.Role == model.RoleAssistant && m.renderer != nil {
		out, err := m.renderer.Render(turn.Content)
		if err == nil {
			return strings.Trim(out, "\n")
		}
		m.log.Debug().Err(err).Msg("markdown render failed, showing plain text")
	}
	return util.Wrap(turn.Content, m.contentWidth())
}

// renderReferences lists the turn's sources as "[n] title (day)", each an
// OSC 8 hyperlink to the paper. Long references wrap rather than lose
// their date.
func (m Model) renderReferences(turn *model.Turn) string {
	lines := make([]string, 0, len(turn.Sources)+1)
	lines = append(lines, m.theme.ReferencesTitle.Render(m.text.T(i18n.References)))
	for i, src := range turn.Sources {
		for _, line := range strings.Split(util.Wrap(src.Reference(i), m.contentWidth()), "\n") {
			lines = append(lines, m.theme.Hyperlink(src.URL, m.theme.Reference.Render(line)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProcessing() string {
	return m.spinner.View() + " " + m.theme.Processing.Render(m.text.T(i18n.Processing))
}

// contentWidth is the text width inside a bubble: border and padding
// take two cells on each side.
func (m Model) contentWidth() int {
	w := m.theme.BubbleWidth() - 4
	if w < 10 {
		w = 10
	}
	return w
}

// =============================================================================
// INPUT AND FOOTER
// =============================================================================

// renderSendButton draws the Send control: dimmed while a query is in
// flight, highlighted when focused.
func (m Model) renderSendButton() string {
	label := "[ " + m.text.T(i18n.Send) + " ]"
	switch {
	case m.conv.InFlight():
		return m.theme.SendButtonDisabled.Render(label)
	case m.focus == focusSend:
		return m.theme.SendButtonFocused.Render(label)
	default:
		return m.theme.SendButton.Render(label)
	}
}

func (m Model) renderInputRow() string {
	row := lipgloss.JoinHorizontal(lipgloss.Center, m.renderInput(), " ", m.renderSendButton())
	width := m.width
	if width < 1 {
		width = 1
	}
	return m.theme.InputContainer.Width(width).Render(row)
}

// renderInput draws the text field. An empty field shows the localized
// placeholder, clipped by display width so wide scripts fit the field.
func (m Model) renderInput() string {
	if m.input.Value() != "" {
		return m.input.View()
	}

	c := m.input.Cursor
	c.SetChar(" ")
	hint := util.TruncateWidth(m.text.T(i18n.Placeholder), m.input.Width)
	if pad := m.input.Width - lipgloss.Width(hint); pad > 0 {
		hint += strings.Repeat(" ", pad)
	}
	return m.input.PromptStyle.Render(m.input.Prompt) + c.View() + m.theme.InputPlaceholder.Render(hint)
}

func (m Model) renderFooter() string {
	status := m.theme.StatusLine.Render(util.TruncateWidth(m.statusMsg, m.width-2))
	if !m.showHelp {
		return status
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.theme.Help.Render(m.help.View(m.keys)))
}
