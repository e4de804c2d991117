// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea chat view for paperchat.

The view owns a text field, a Send control and a scrolling list of turns.
Submitting a query appends the user turn at once and runs the backend call
as a tea.Cmd; the outcome comes back as a ChatResultMsg and is appended as
an assistant turn (answer plus references) or as a single system turn with
the localized connectivity message.

# Files

  - model.go: Model, Options, Init and the Backend interface
  - update.go: message handling, submission, commands
  - view.go: header, turn rendering, input row, footer
  - keys.go: key bindings and help
  - messages.go: messages returned by commands

# Usage

	m := chat.New(chat.Options{
	    Client:  backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: cfg.Backend.BaseURL}),
	    Theme:   styles.NewTheme(),
	    Printer: i18n.New(cfg.UI.Language),
	})
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()

At most one query is in flight. While it is, Enter in the field and the
Send control are inert, and a spinner with a processing line follows the
last turn.
*/
package chat
