// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for a research chat session.
//
// # Key Types
//
//   - Turn: one message in the conversation (user, assistant or system)
//   - Source: a paper cited by an assistant turn
//   - Conversation: the append-only turn list plus the in-flight flag
//   - Role: turn author enumeration
//
// # Usage
//
// A front end drives a Conversation in two steps per query:
//
//	conv := model.NewConversation()
//	if _, ok := conv.Begin(input); ok {
//	    resp, err := client.Chat(ctx, input)
//	    conv.Settle(resp, err, failureText)
//	}
//
// Begin refuses blank input and refuses to start while a request is in
// flight. Settle appends exactly one turn for the pending query and clears
// the flag; without a pending query it does nothing.
package model
