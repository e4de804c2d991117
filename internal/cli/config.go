// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/paperchat/internal/config"
)

// newConfigCommand shows the effective configuration.
//
// Examples:
//
//	paperchat config                       Whole config as TOML
//	paperchat config backend.base_url      One value
//	paperchat config --keys                Every key name
func newConfigCommand(a *App) *cobra.Command {
	var listKeys bool

	cmd := &cobra.Command{
		Use:   "config [key]",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults, the --config file, the
` + config.EnvAPIURL + ` environment variable and flags have been applied.
Nothing is written to disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listKeys {
				fmt.Fprintln(a.Out, strings.Join(config.GetAllKeys(), "\n"))
				return nil
			}

			if len(args) == 1 {
				v, err := a.cfg.Get(args[0])
				if err != nil {
					return &UsageError{Reason: err.Error(), Usage: cmd.UseLine()}
				}
				fmt.Fprintln(a.Out, v)
				return nil
			}

			out, err := a.cfg.TOML()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(a.Out, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&listKeys, "keys", false, "list the available keys")
	return cmd
}
