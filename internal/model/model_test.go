// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/paperchat/internal/backend"
)

const failure = "Cannot reach the server."

// =============================================================================
// SOURCE TESTS
// =============================================================================

func TestSource_Day(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-02T00:00:00Z", "2024-01-02"},
		{"2017-06-12T17:57:34.000+09:00", "2017-06-12"},
		{"2024-01-02", "2024-01-02"},
		{"", ""},
		{"T12:00", ""},
	}

	for _, tc := range tests {
		t.Run(tc.date, func(t *testing.T) {
			assert.Equal(t, tc.want, Source{Date: tc.date}.Day())
		})
	}
}

func TestSource_Reference(t *testing.T) {
	s := Source{Title: "T", URL: "U", Date: "2024-01-02T00:00:00Z"}
	assert.Equal(t, "[1] T (2024-01-02)", s.Reference(0))
	assert.Equal(t, "[3] T (2024-01-02)", s.Reference(2))
}

func TestSourcesFromBackend(t *testing.T) {
	assert.Nil(t, SourcesFromBackend(nil))
	assert.Nil(t, SourcesFromBackend([]backend.Source{}))

	got := SourcesFromBackend([]backend.Source{
		{Title: "A", URL: "https://arxiv.org/abs/1", Date: "2023-05-01"},
		{Title: "B", URL: "https://arxiv.org/abs/2", Date: "2023-05-02"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "https://arxiv.org/abs/2", got[1].URL)
}

// =============================================================================
// TURN TESTS
// =============================================================================

func TestNewTurn(t *testing.T) {
	turn := NewTurn(RoleUser, "hello", nil)
	assert.Contains(t, turn.ID, "turn_")
	assert.Equal(t, RoleUser, turn.Role)
	assert.Equal(t, "hello", turn.Content)
	assert.False(t, turn.Timestamp.IsZero())
	assert.False(t, turn.HasSources())
	assert.Nil(t, turn.References())

	other := NewTurn(RoleUser, "hello", nil)
	assert.NotEqual(t, turn.ID, other.ID)
}

func TestTurn_References(t *testing.T) {
	turn := NewTurn(RoleAssistant, "X", []Source{
		{Title: "First", Date: "2024-01-02T00:00:00Z"},
		{Title: "Second", Date: "2024-02-03T10:00:00Z"},
	})
	assert.Equal(t, []string{
		"[1] First (2024-01-02)",
		"[2] Second (2024-02-03)",
	}, turn.References())
}

func TestTurn_Preview(t *testing.T) {
	turn := NewTurn(RoleUser, "line one\nline two", nil)
	assert.Equal(t, "line one line two", turn.Preview(100))
	assert.Equal(t, "line o...", turn.Preview(9))
	assert.Equal(t, "lin", turn.Preview(3))
	assert.Equal(t, "", turn.Preview(0))
	assert.Equal(t, "", turn.Preview(-1))
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "assistant", RoleAssistant.String())
	assert.Equal(t, "system", RoleSystem.String())
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation()
	assert.Contains(t, conv.ID, "conv_")
	assert.True(t, conv.IsEmpty())
	assert.Equal(t, 0, conv.Len())
	assert.False(t, conv.InFlight())
	assert.Nil(t, conv.Last())
	assert.Nil(t, conv.LastAnswer())
}

func TestConversation_Begin_BlankIsNoOp(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n", "   \r\n  "} {
		conv := NewConversation()
		turn, ok := conv.Begin(q)
		assert.False(t, ok, "query %q", q)
		assert.Nil(t, turn)
		assert.True(t, conv.IsEmpty())
		assert.False(t, conv.InFlight())
	}
}

func TestConversation_Begin_AppendsUserTurn(t *testing.T) {
	conv := NewConversation()
	turn, ok := conv.Begin("  what is RAG?  ")
	require.True(t, ok)

	assert.Equal(t, RoleUser, turn.Role)
	assert.Equal(t, "  what is RAG?  ", turn.Content, "content is kept untrimmed")
	assert.True(t, conv.InFlight())
	assert.Equal(t, 1, conv.Len())
	assert.Same(t, turn, conv.Last())
}

func TestConversation_Begin_RefusedWhileInFlight(t *testing.T) {
	conv := NewConversation()
	_, ok := conv.Begin("first")
	require.True(t, ok)

	turn, ok := conv.Begin("second")
	assert.False(t, ok)
	assert.Nil(t, turn)
	assert.Equal(t, 1, conv.Len())
	assert.True(t, conv.InFlight())
}

func TestConversation_Settle_Success(t *testing.T) {
	conv := NewConversation()
	conv.Begin("q")

	turn := conv.Settle(&backend.ChatResponse{
		Answer:  "X",
		Sources: []backend.Source{{Title: "T", URL: "U", Date: "2024-01-02T00:00:00Z"}},
	}, nil, failure)

	require.NotNil(t, turn)
	assert.Equal(t, RoleAssistant, turn.Role)
	assert.Equal(t, "X", turn.Content)
	assert.Equal(t, []string{"[1] T (2024-01-02)"}, turn.References())
	assert.Equal(t, "U", turn.Sources[0].URL)
	assert.False(t, conv.InFlight())
	assert.Same(t, turn, conv.LastAnswer())
}

func TestConversation_Settle_NoSources(t *testing.T) {
	conv := NewConversation()
	conv.Begin("q")

	turn := conv.Settle(&backend.ChatResponse{Answer: "plain"}, nil, failure)
	require.NotNil(t, turn)
	assert.False(t, turn.HasSources())
	assert.Empty(t, turn.References())
}

func TestConversation_Settle_Failure(t *testing.T) {
	errs := []error{
		&backend.ClientError{Type: backend.ErrTypeTransport, Message: "refused"},
		&backend.ClientError{Type: backend.ErrTypeStatus, StatusCode: 500},
		&backend.ClientError{Type: backend.ErrTypeDecode},
		errors.New("anything else"),
	}

	for _, err := range errs {
		t.Run(err.Error(), func(t *testing.T) {
			conv := NewConversation()
			conv.Begin("q")

			turn := conv.Settle(nil, err, failure)
			require.NotNil(t, turn)
			assert.Equal(t, RoleSystem, turn.Role)
			assert.Equal(t, failure, turn.Content)
			assert.False(t, turn.HasSources())
			assert.False(t, conv.InFlight())
			assert.Equal(t, 2, conv.Len())
			assert.Nil(t, conv.LastAnswer())
		})
	}
}

func TestConversation_Settle_NilResponseIsFailure(t *testing.T) {
	conv := NewConversation()
	conv.Begin("q")

	turn := conv.Settle(nil, nil, failure)
	require.NotNil(t, turn)
	assert.Equal(t, RoleSystem, turn.Role)
}

func TestConversation_Settle_WithoutBeginIsIgnored(t *testing.T) {
	conv := NewConversation()
	assert.Nil(t, conv.Settle(&backend.ChatResponse{Answer: "stale"}, nil, failure))
	assert.True(t, conv.IsEmpty())

	conv.Begin("q")
	conv.Settle(&backend.ChatResponse{Answer: "a"}, nil, failure)
	assert.Nil(t, conv.Settle(&backend.ChatResponse{Answer: "twice"}, nil, failure))
	assert.Equal(t, 2, conv.Len())
}

func TestConversation_Ordering(t *testing.T) {
	conv := NewConversation()

	conv.Begin("a")
	conv.Settle(&backend.ChatResponse{Answer: "resp(a)"}, nil, failure)
	conv.Begin("b")
	conv.Settle(nil, errors.New("down"), failure)
	conv.Begin("c")
	conv.Settle(&backend.ChatResponse{Answer: "resp(c)"}, nil, failure)

	var got []string
	for _, turn := range conv.Turns() {
		got = append(got, turn.Role.String()+":"+turn.Content)
	}
	assert.Equal(t, []string{
		"user:a", "assistant:resp(a)",
		"user:b", "system:" + failure,
		"user:c", "assistant:resp(c)",
	}, got)
	assert.Equal(t, "resp(c)", conv.LastAnswer().Content)
}

func TestConversation_TurnsReturnsCopy(t *testing.T) {
	conv := NewConversation()
	conv.Begin("a")

	turns := conv.Turns()
	turns[0] = nil
	turns = append(turns, NewTurn(RoleUser, "x", nil))

	assert.Equal(t, 1, conv.Len())
	assert.NotNil(t, conv.Last())
}
