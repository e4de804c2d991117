// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// outputStyles are the shared styles for line-mode commands. They are
// bound to the color profile of the writer they render for, so piped
// output stays plain.
type outputStyles struct {
	profile termenv.Profile

	Title     lipgloss.Style
	Section   lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Dim       lipgloss.Style
	Reference lipgloss.Style
}

func newOutputStyles(w io.Writer) *outputStyles {
	profile := colorProfile(w)
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &outputStyles{
		profile: profile,
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")), // Cyan
		Section: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true),
		Dim: r.NewStyle().
			Foreground(lipgloss.Color("242")),
		Reference: r.NewStyle().
			Foreground(lipgloss.Color("75")),
	}
}
