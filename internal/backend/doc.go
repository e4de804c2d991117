// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the research assistant API.
//
// The backend answers a free-text question with an answer and the papers it
// drew on. paperchat talks to two endpoints:
//
//   - POST /chat   {"query": "..."} -> {"answer": "...", "sources": [...]}
//   - GET  /health -> {"status": "ok"}
//
// # Key Types
//
//   - Client: HTTP client for the backend API
//   - ChatRequest / ChatResponse: the /chat wire format
//   - Source: one cited paper (title, url, ISO-8601 date)
//   - ClientError: categorized failure (request, status, transport, decode)
//
// # Usage
//
//	client := backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: "http://localhost:8000"})
//	resp, err := client.Chat(ctx, "recent work on retrieval augmented generation")
//	if err != nil {
//	    var cerr *backend.ClientError
//	    if errors.As(err, &cerr) {
//	        log.Printf("chat failed (%s): %v", cerr.Type, err)
//	    }
//	    return
//	}
//	fmt.Println(resp.Answer)
//
// The /chat call carries no client-side timeout; cancel the context to
// abandon it.
package backend
