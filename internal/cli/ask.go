// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/paperchat/internal/backend"
	"github.com/jeranaias/paperchat/internal/i18n"
	"github.com/jeranaias/paperchat/internal/model"
	"github.com/jeranaias/paperchat/internal/util"
)

func newAskCommand(a *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask one question and print the answer with its references",
		Example: `  paperchat ask "What are recent advances in retrieval-augmented generation?"
  paperchat ask --json diffusion models for video`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				return &UsageError{Reason: "a question is required", Usage: cmd.UseLine()}
			}
			return a.ask(cmd.Context(), query, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the backend response as JSON")
	return cmd
}

func (a *App) ask(ctx context.Context, query string, jsonOut bool) error {
	start := time.Now()
	resp, err := a.newClient().Chat(ctx, query)
	if err != nil {
		a.log.Info().
			Err(err).
			Str("kind", backend.KindOf(err).String()).
			Dur("latency", time.Since(start)).
			Msg("chat request failed")
		fmt.Fprintln(a.Err, a.printer().T(i18n.ServerError))
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	a.log.Debug().
		Int("sources", len(resp.Sources)).
		Dur("latency", time.Since(start)).
		Msg("chat request settled")

	if jsonOut {
		return writeJSON(a.Out, resp)
	}

	st := newOutputStyles(a.Out)
	width := terminalWidth(a.Out)

	answer := wrapAnswer(resp.Answer, width)
	if a.cfg.UI.Markdown && isTerminal(a.Out) {
		rendered, err := renderMarkdown(resp.Answer, width)
		if err != nil {
			a.log.Warn().Err(err).Msg("markdown rendering failed")
		} else {
			answer = rendered
		}
	}

	fmt.Fprintln(a.Out, answer)
	printReferences(a.Out, st, a.printer(), model.SourcesFromBackend(resp.Sources))
	return nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// renderMarkdown renders answer with glamour for a terminal of the given width.
func renderMarkdown(answer string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(answer)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// wrapAnswer word-wraps plain answer text, leaving a small right margin.
func wrapAnswer(answer string, width int) string {
	if width > 10 {
		width -= 2
	}
	return util.Wrap(answer, width)
}

// printReferences writes the numbered reference block, followed by each
// paper's URL. Nothing is written when sources is empty.
func printReferences(w io.Writer, st *outputStyles, text *i18n.Printer, sources []model.Source) {
	if len(sources) == 0 {
		return
	}
	lines := make([]string, len(sources))
	for i, s := range sources {
		lines[i] = st.Reference.Render(s.Reference(i))
		if s.URL != "" {
			lines[i] += " " + st.Dim.Render(s.URL)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.Section.Render(text.T(i18n.References)))
	fmt.Fprintln(w, util.Indent(strings.Join(lines, "\n"), "  "))
}
