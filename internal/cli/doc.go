// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the paperchat command line.
//
// The root command opens the full-screen chat. Subcommands cover the
// same conversation without a full-screen view:
//
//   - chat: line-by-line conversation with line editing
//   - ask: one question, answer and references on stdout
//   - health: check the backend's /health endpoint
//   - config: print the effective configuration
//   - version: print build information
//
// Configuration is resolved once per invocation from defaults, an
// optional --config file, PAPERCHAT_API_URL and flags, in that order.
// Commands return errors; Execute maps them to exit codes.
package cli
