// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Connected   lipgloss.Style
	Unreachable lipgloss.Style
	Checking    lipgloss.Style

	// Turns
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	RoleLabel       lipgloss.Style
	ReferencesTitle lipgloss.Style
	Reference       lipgloss.Style
	EmptyHint       lipgloss.Style

	// In-flight indicator
	Spinner    lipgloss.Style
	Processing lipgloss.Style

	// Input row
	InputContainer     lipgloss.Style
	InputPrompt        lipgloss.Style
	InputPlaceholder   lipgloss.Style
	SendButton         lipgloss.Style
	SendButtonFocused  lipgloss.Style
	SendButtonDisabled lipgloss.Style

	// Footer
	StatusLine lipgloss.Style
	Help       lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	return NewThemeWithProfile(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeWithProfile creates a theme for an explicit color profile.
// termenv.Ascii disables color and hyperlinks, which tests rely on.
func NewThemeWithProfile(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(t.ColorProfile)
	r.SetHasDarkBackground(t.IsDark)

	t.Header = r.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = r.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.Connected = r.NewStyle().Foreground(Emerald)
	t.Unreachable = r.NewStyle().Foreground(Rose)
	t.Checking = r.NewStyle().Foreground(Amber)

	t.UserBubble = r.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = r.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.SystemBubble = r.NewStyle().
		Foreground(SystemBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(SystemBubbleBorder).
		Padding(0, 1)

	t.RoleLabel = r.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	t.ReferencesTitle = r.NewStyle().
		Foreground(TextSecondary).
		Bold(true).
		MarginTop(1)

	// Underline keeps links distinguishable without color.
	t.Reference = r.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.EmptyHint = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = r.NewStyle().Foreground(Cyan)
	t.Processing = r.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.InputContainer = r.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = r.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputPlaceholder = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SendButton = r.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.SendButtonFocused = r.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 1)

	t.SendButtonDisabled = r.NewStyle().
		Foreground(TextMuted).
		Faint(true).
		Padding(0, 1)

	t.StatusLine = r.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.Help = r.NewStyle().Padding(0, 1)
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink to url. Terminals
// without OSC 8 support show the text alone. With the Ascii profile, or an
// empty url, text is returned unchanged.
func (t *Theme) Hyperlink(url, text string) string {
	if url == "" || t.ColorProfile == termenv.Ascii {
		return text
	}
	return termenv.Hyperlink(url, text)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// BubbleWidth returns the maximum outer width of a turn bubble.
func (t *Theme) BubbleWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return t.Width
	case LayoutMedium:
		return t.Width * 85 / 100
	default:
		return t.Width * 3 / 4
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
