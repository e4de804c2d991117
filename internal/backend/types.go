// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for the /chat endpoint.
type ChatRequest struct {
	Query string `json:"query"` // Raw user text, untrimmed
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Source is a paper cited by an answer.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"` // ISO-8601, e.g. "2024-01-02T00:00:00Z"
}

// ChatResponse is the response from the /chat endpoint.
// Sources may be absent or empty.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources,omitempty"`
}

// HasSources reports whether the response cites at least one paper.
func (r *ChatResponse) HasSources() bool {
	return r != nil && len(r.Sources) > 0
}

// HealthResponse is the response from the /health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// OK reports whether the backend declared itself healthy.
func (h *HealthResponse) OK() bool {
	return h != nil && h.Status == "ok"
}

// apiError is the error body FastAPI-style backends return on failure.
type apiError struct {
	Detail string `json:"detail"`
}
