// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/paperchat/internal/backend"
	"github.com/jeranaias/paperchat/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// Source is a cited paper. All fields come from the backend verbatim.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

// Day returns the calendar-day part of Date: everything before the first
// "T". Values without a "T" are returned unchanged.
func (s Source) Day() string {
	day, _, _ := strings.Cut(s.Date, "T")
	return day
}

// Reference formats the source as it appears in a reference list,
// e.g. "[1] Attention Is All You Need (2017-06-12)". index is zero-based.
func (s Source) Reference(index int) string {
	return "[" + strconv.Itoa(index+1) + "] " + s.Title + " (" + s.Day() + ")"
}

// SourcesFromBackend converts wire sources to model sources.
// A nil or empty input yields nil.
func SourcesFromBackend(in []backend.Source) []Source {
	if len(in) == 0 {
		return nil
	}
	out := make([]Source, len(in))
	for i, s := range in {
		out[i] = Source{Title: s.Title, URL: s.URL, Date: s.Date}
	}
	return out
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is a single message in the conversation. Turns are never modified
// after they are appended.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sources   []Source  `json:"sources,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn with a generated ID.
func NewTurn(role Role, content string, sources []Source) *Turn {
	return &Turn{
		ID:        "turn_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Sources:   sources,
		Timestamp: time.Now(),
	}
}

// HasSources reports whether the turn should render a reference list.
func (t *Turn) HasSources() bool {
	return len(t.Sources) > 0
}

// References returns the formatted reference lines, in order.
func (t *Turn) References() []string {
	if !t.HasSources() {
		return nil
	}
	refs := make([]string, len(t.Sources))
	for i, s := range t.Sources {
		refs[i] = s.Reference(i)
	}
	return refs
}

// Preview returns a truncated single-line preview of the content.
func (t *Turn) Preview(maxLen int) string {
	return util.TruncateRunes(strings.ReplaceAll(t.Content, "\n", " "), maxLen)
}
