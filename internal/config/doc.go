// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for paperchat.
//
// Nothing is read from disk implicitly. Settings come from, in order of
// precedence:
//   - command-line overrides passed to Resolve
//   - PAPERCHAT_API_URL (backend.base_url only)
//   - a TOML file passed with --config
//   - built-in defaults
//
// # Usage
//
//	cfg, err := config.Resolve(path, func(c *config.Config) {
//	    c.Backend.BaseURL = flagURL
//	})
//	if err != nil {
//	    return err
//	}
//	client := backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: cfg.Backend.BaseURL})
//
// Example file:
//
//	[backend]
//	base_url = "http://localhost:8000"
//	health_timeout = "5s"
//
//	[ui]
//	language = "ko"
//	markdown = true
//
//	[log]
//	level = "debug"
//	file = "/tmp/paperchat.log"
package config
