// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/paperchat/internal/backend"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the turns of one chat session and whether a request
// is outstanding.
//
// Turns are append-only: a user turn is added by Begin and its response
// turn by the matching Settle, so display order always equals submission
// order. A Conversation is not safe for concurrent use; the owning front
// end must mutate it from a single goroutine.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	turns    []*Turn
	inFlight bool
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: time.Now(),
		turns:     make([]*Turn, 0),
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Begin starts a query. It appends a user turn holding query (untrimmed)
// and marks the conversation in flight.
//
// Begin returns ok=false and changes nothing when query is blank after
// trimming or when a request is already in flight.
func (c *Conversation) Begin(query string) (*Turn, bool) {
	if strings.TrimSpace(query) == "" || c.inFlight {
		return nil, false
	}
	turn := NewTurn(RoleUser, query, nil)
	c.turns = append(c.turns, turn)
	c.inFlight = true
	return turn, true
}

// Settle records the outcome of the outstanding query and clears the
// in-flight flag.
//
// A successful response becomes an assistant turn with its sources. Any
// failure (err != nil or a nil response) becomes a system turn whose
// content is failureText; the kind of failure is not reflected in the turn.
// Settle returns nil and does nothing when no query is in flight.
func (c *Conversation) Settle(resp *backend.ChatResponse, err error, failureText string) *Turn {
	if !c.inFlight {
		return nil
	}
	defer func() { c.inFlight = false }()

	var turn *Turn
	if err != nil || resp == nil {
		turn = NewTurn(RoleSystem, failureText, nil)
	} else {
		turn = NewTurn(RoleAssistant, resp.Answer, SourcesFromBackend(resp.Sources))
	}
	c.turns = append(c.turns, turn)
	return turn
}

// =============================================================================
// ACCESSORS
// =============================================================================

// InFlight reports whether a query has been started but not settled.
func (c *Conversation) InFlight() bool {
	return c.inFlight
}

// Turns returns the turns in display order. The returned slice is a copy;
// the turns themselves must not be modified.
func (c *Conversation) Turns() []*Turn {
	out := make([]*Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// IsEmpty returns true if there are no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.turns) == 0
}

// Last returns the most recent turn, or nil if empty.
func (c *Conversation) Last() *Turn {
	if len(c.turns) == 0 {
		return nil
	}
	return c.turns[len(c.turns)-1]
}

// LastAnswer returns the most recent assistant turn, or nil.
func (c *Conversation) LastAnswer() *Turn {
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].Role == RoleAssistant {
			return c.turns[i]
		}
	}
	return nil
}
