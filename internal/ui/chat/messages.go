// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/paperchat/internal/backend"
)

// ChatResultMsg carries the outcome of one /chat request.
// Exactly one of Response and Err is set.
type ChatResultMsg struct {
	TurnID   string // ID of the user turn that issued the request
	Response *backend.ChatResponse
	Err      error
	Latency  time.Duration
}

// HealthStatusMsg reports the start-up /health check.
type HealthStatusMsg struct {
	Err error
}

// CopyCompleteMsg confirms a clipboard write.
type CopyCompleteMsg struct {
	Error error
}
