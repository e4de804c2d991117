// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/paperchat/internal/backend"
	"github.com/jeranaias/paperchat/internal/config"
	"github.com/jeranaias/paperchat/internal/i18n"
	"github.com/jeranaias/paperchat/internal/logging"
	"github.com/jeranaias/paperchat/internal/ui/chat"
	"github.com/jeranaias/paperchat/internal/ui/styles"
)

// Build information, set via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APP
// =============================================================================

// App holds the streams and resolved settings shared by every command.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Flag values.
	configPath string
	logLevel   string
	logFile    string
	apiURL     string

	cfg      *config.Config
	log      zerolog.Logger
	closeLog func() error

	// runTUI runs the full-screen program until it quits.
	runTUI func(ctx context.Context, m tea.Model) error
	// newLineReader opens the line editor used by the chat command.
	newLineReader func() lineReader
}

// NewApp creates an App bound to the process streams.
func NewApp() *App {
	a := &App{
		In:            os.Stdin,
		Out:           os.Stdout,
		Err:           os.Stderr,
		log:           zerolog.Nop(),
		newLineReader: newLiner,
	}
	a.runTUI = a.runProgram
	return a
}

// Execute runs the CLI with os.Args and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewApp().Execute(ctx, os.Args[1:])
}

// Execute runs the command line args and returns the exit code.
// Errors not already reported by a command are printed to Err.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if cerr := a.teardown(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil && !reported(err) {
		fmt.Fprintln(a.Err, "Error:", err)
	}
	return GetExitCode(err)
}

// RootCommand builds the command tree. The root command runs the TUI.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "paperchat",
		Short: "Ask about AI research and get answers that cite arXiv papers",
		Long: `paperchat is a terminal client for an arXiv research assistant.

Without a subcommand it opens the full-screen chat. Each question is sent
to the backend's /chat endpoint and the answer is shown with numbered
references to the papers it cites.

The backend URL comes from --api-url, the ` + config.EnvAPIURL + ` environment
variable, or the [backend] section of a --config file.`,
		Version:           Version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runRoot,
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)
	root.SetVersionTemplate(versionLine() + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	flags.StringVar(&a.logFile, "log-file", "", "write JSON logs to this file (rotated)")
	flags.StringVar(&a.apiURL, "api-url", "", "backend base URL (overrides "+config.EnvAPIURL+")")

	root.AddCommand(
		newChatCommand(a),
		newAskCommand(a),
		newHealthCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)
	return root
}

// =============================================================================
// SETUP
// =============================================================================

// setup resolves configuration and logging. Precedence, highest first:
// flags, PAPERCHAT_API_URL, the --config file, defaults.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(a.configPath, func(c *config.Config) {
		if a.apiURL != "" {
			c.Backend.BaseURL = a.apiURL
		}
		if a.logLevel != "" {
			c.Log.Level = a.logLevel
		}
		if a.logFile != "" {
			c.Log.File = a.logFile
		}
	})
	if err != nil {
		return &ConfigError{Path: a.configPath, Err: err}
	}
	a.cfg = cfg

	// The TUI owns the terminal, so it only ever logs to a file.
	tui := cmd == cmd.Root()
	log, closeLog, err := logging.New(logging.Options{
		Level:        cfg.Log.Level,
		DefaultLevel: zerolog.WarnLevel,
		File:         cfg.Log.File,
		MaxSizeMB:    cfg.Log.MaxSizeMB,
		MaxBackups:   cfg.Log.MaxBackups,
		Console:      !tui,
		Stderr:       a.Err,
	})
	if err != nil {
		return &ConfigError{Err: err}
	}
	a.log = log.With().Str("cmd", cmd.Name()).Logger()
	a.closeLog = closeLog

	a.log.Debug().
		Str("base_url", cfg.Backend.BaseURL).
		Str("config", a.configPath).
		Msg("configuration loaded")
	return nil
}

func (a *App) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

// newClient creates a backend client from the resolved configuration.
func (a *App) newClient() *backend.Client {
	return backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:       a.cfg.Backend.BaseURL,
		HealthTimeout: a.cfg.Backend.HealthTimeout.Duration,
		Logger:        a.log,
	})
}

func (a *App) printer() *i18n.Printer {
	return i18n.New(a.cfg.UI.Language)
}

// =============================================================================
// TUI
// =============================================================================

func (a *App) runRoot(cmd *cobra.Command, _ []string) error {
	if !isTerminal(a.In) || !isTerminal(a.Out) {
		return TTYRequiredError{}
	}

	// Canceled when the program exits, which abandons any outstanding request.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := chat.New(chat.Options{
		Client:   a.newClient(),
		Context:  ctx,
		Theme:    styles.NewTheme(),
		Printer:  a.printer(),
		Logger:   a.log,
		Markdown: a.cfg.UI.Markdown,
		ShowHelp: a.cfg.UI.ShowHelp,
	})
	return a.runTUI(ctx, m)
}

func (a *App) runProgram(_ context.Context, m tea.Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(a.In),
		tea.WithOutput(a.Out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
