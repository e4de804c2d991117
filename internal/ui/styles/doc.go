// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the paperchat TUI.

# Colors (colors.go)

All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
Each turn role has a foreground and border pair:

	UserBubbleFg, UserBubbleBorder           - right-aligned user turns
	AssistantBubbleFg, AssistantBubbleBorder - answers
	SystemBubbleFg, SystemBubbleBorder       - the connectivity error turn

# Theme (theme.go)

Theme bundles the lipgloss styles, bound to one termenv color profile:

	theme := styles.NewTheme()
	theme.SetSize(msg.Width, msg.Height)
	box := theme.AssistantBubble.Width(theme.BubbleWidth()).Render(answer)

Reference lines are wrapped in OSC 8 hyperlinks with Theme.Hyperlink.
NewThemeWithProfile(termenv.Ascii, true) produces plain output for tests.
*/
package styles
