// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/paperchat/internal/backend"
	"github.com/jeranaias/paperchat/internal/i18n"
	"github.com/jeranaias/paperchat/internal/model"
)

const replPrompt = "paperchat> "

// =============================================================================
// LINE EDITING
// =============================================================================

// lineReader is the subset of *liner.State used by the REPL.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLiner opens a liner session. History is kept in memory only.
func newLiner() lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// =============================================================================
// REPL
// =============================================================================

// asker sends one query to the backend.
type asker interface {
	Chat(ctx context.Context, query string) (*backend.ChatResponse, error)
}

// REPL runs a conversation in a plain terminal, one line per question.
type REPL struct {
	conv   *model.Conversation
	client asker
	text   *i18n.Printer
	out    io.Writer
	styles *outputStyles
	width  int
	log    zerolog.Logger
}

// NewREPL creates a REPL that writes to out.
func NewREPL(client asker, text *i18n.Printer, out io.Writer, log zerolog.Logger) *REPL {
	return &REPL{
		conv:   model.NewConversation(),
		client: client,
		text:   text,
		out:    out,
		styles: newOutputStyles(out),
		width:  terminalWidth(out),
		log:    log,
	}
}

// Conversation returns the REPL's conversation.
func (r *REPL) Conversation() *model.Conversation {
	return r.conv
}

// Run reads lines until /quit, Ctrl-D, Ctrl-C or a read error.
func (r *REPL) Run(ctx context.Context, lines lineReader) error {
	fmt.Fprintln(r.out, r.styles.Title.Render(r.text.T(i18n.Title)))
	fmt.Fprintln(r.out, r.styles.Dim.Render(r.text.T(i18n.EmptyHint)))
	fmt.Fprintln(r.out)

	for {
		input, err := lines.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(r.out)
				fmt.Fprintln(r.out, r.text.T(i18n.ReplGoodbye))
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		switch strings.TrimSpace(input) {
		case "":
			continue
		case "/quit", "/exit":
			fmt.Fprintln(r.out, r.text.T(i18n.ReplGoodbye))
			return nil
		}
		lines.AppendHistory(input)

		r.Submit(ctx, input)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Submit sends one query and prints the settled turn. It returns nil
// when the query was blank.
func (r *REPL) Submit(ctx context.Context, query string) *model.Turn {
	if _, ok := r.conv.Begin(query); !ok {
		return nil
	}

	start := time.Now()
	resp, err := r.client.Chat(ctx, query)
	turn := r.conv.Settle(resp, err, r.text.T(i18n.ServerError))

	if err != nil {
		r.log.Info().
			Err(err).
			Str("kind", backend.KindOf(err).String()).
			Dur("latency", time.Since(start)).
			Msg("chat request failed")
	} else {
		r.log.Debug().
			Int("sources", len(resp.Sources)).
			Dur("latency", time.Since(start)).
			Msg("chat request settled")
	}

	r.printTurn(turn)
	return turn
}

func (r *REPL) printTurn(turn *model.Turn) {
	if turn == nil {
		return
	}
	if turn.Role == model.RoleSystem {
		fmt.Fprintln(r.out, r.styles.Error.Render(turn.Content))
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintln(r.out, wrapAnswer(turn.Content, r.width))
	printReferences(r.out, r.styles, r.text, turn.Sources)
	fmt.Fprintln(r.out)
}

// =============================================================================
// COMMAND
// =============================================================================

func newChatCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in line mode, without the full-screen view",
		Long: `Starts a line-by-line conversation in the current terminal.

Each line is sent as a question. Arrow keys recall earlier lines.
Type /quit or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines := a.newLineReader()
			defer lines.Close()

			repl := NewREPL(a.newClient(), a.printer(), a.Out, a.log)
			return repl.Run(cmd.Context(), lines)
		},
	}
}
