// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/paperchat/internal/backend"
	"github.com/jeranaias/paperchat/internal/i18n"
	"github.com/jeranaias/paperchat/internal/ui/styles"
)

// HealthStatus is the data reported by `health --json`.
type HealthStatus struct {
	BaseURL   string `json:"base_url"`
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
}

func newHealthCommand(a *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "health",
		Aliases: []string{"status"},
		Short:   "Check that the backend is reachable and healthy",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := a.newClient()
			text := a.printer()

			start := time.Now()
			err := client.Health(cmd.Context())
			status := HealthStatus{
				BaseURL:   client.BaseURL(),
				Healthy:   err == nil,
				LatencyMS: time.Since(start).Milliseconds(),
			}

			if err != nil {
				a.log.Info().
					Err(err).
					Str("kind", backend.KindOf(err).String()).
					Msg("health check failed")
			} else {
				a.log.Debug().Int64("latency_ms", status.LatencyMS).Msg("health check ok")
			}

			if jsonOut {
				resp := NewJSONResponse("health", status)
				if err != nil {
					resp = NewJSONErrorResponse("health", status, err)
				}
				if perr := resp.Print(a.Out); perr != nil {
					return perr
				}
			} else {
				st := newOutputStyles(a.Out)
				if err != nil {
					fmt.Fprintf(a.Out, "%s %s  %s\n",
						st.Error.Render(styles.StatusIndicators.Unreachable),
						text.T(i18n.StatusUnreachable),
						st.Dim.Render(client.BaseURL()))
					fmt.Fprintln(a.Out, st.Dim.Render(err.Error()))
				} else {
					fmt.Fprintf(a.Out, "%s %s  %s  %s\n",
						st.Success.Render(styles.StatusIndicators.Connected),
						text.T(i18n.StatusConnected),
						st.Dim.Render(client.BaseURL()),
						st.Dim.Render(fmt.Sprintf("%dms", status.LatencyMS)))
				}
			}

			if err != nil {
				return &ExitError{Code: ExitGeneralError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	return cmd
}
