// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{BaseURL: baseURL})
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestClient_Chat_Success(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"X","sources":[{"title":"T","url":"U","date":"2024-01-02T00:00:00Z"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Chat(context.Background(), "  what is RAG?  ")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/chat", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"query": "  what is RAG?  "}, gotBody, "query must be sent untrimmed")

	assert.Equal(t, "X", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, Source{Title: "T", URL: "U", Date: "2024-01-02T00:00:00Z"}, resp.Sources[0])
	assert.True(t, resp.HasSources())
}

func TestClient_Chat_SourcesOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"no citations here"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Chat(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "no citations here", resp.Answer)
	assert.Empty(t, resp.Sources)
	assert.False(t, resp.HasSources())
}

func TestClient_Chat_AcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"answer":"created"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Chat(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "created", resp.Answer)
}

func TestClient_Chat_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantType   ErrorType
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"boom"}`, ErrTypeStatus, 500},
		{"bad request", http.StatusBadRequest, `{"detail":"Query cannot be empty"}`, ErrTypeStatus, 400},
		{"not found plain body", http.StatusNotFound, `not here`, ErrTypeStatus, 404},
		{"malformed json", http.StatusOK, `{"answer":`, ErrTypeDecode, 0},
		{"missing answer", http.StatusOK, `{"sources":[]}`, ErrTypeDecode, 0},
		{"wrong sources shape", http.StatusOK, `{"answer":"a","sources":"nope"}`, ErrTypeDecode, 0},
		{"html body", http.StatusOK, `<html></html>`, ErrTypeDecode, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			resp, err := newTestClient(srv.URL).Chat(context.Background(), "q")
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tc.wantType, KindOf(err))

			var cerr *ClientError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.wantStatus, cerr.StatusCode)
		})
	}
}

func TestClient_Chat_OversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"`))
		_, _ = w.Write(bytes.Repeat([]byte("x"), maxResponseBytes))
		_, _ = w.Write([]byte(`"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Chat(context.Background(), "q")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Equal(t, ErrTypeTransport, KindOf(err))
	assert.Contains(t, err.Error(), "response body exceeds 8388608 bytes")
}

func TestClient_Chat_BodyAtLimit(t *testing.T) {
	prefix, suffix := `{"answer":"`, `"}`
	fill := maxResponseBytes - len(prefix) - len(suffix)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(prefix))
		_, _ = w.Write(bytes.Repeat([]byte("x"), fill))
		_, _ = w.Write([]byte(suffix))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Chat(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, resp.Answer, fill)
}

func TestClient_Health_OversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte(" "), maxResponseBytes+10))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Health(context.Background())
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestClient_Chat_DetailIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"vector store offline"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Chat(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vector store offline")
}

func TestClient_Chat_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listening any more

	_, err := newTestClient(url).Chat(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, ErrTypeTransport, KindOf(err))
}

func TestClient_Chat_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(srv.URL).Chat(ctx, "q")
	require.Error(t, err)
	assert.Equal(t, ErrTypeTransport, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// CONFIGURATION TESTS
// =============================================================================

func TestNewClient_Defaults(t *testing.T) {
	c := NewClientWithConfig(nil)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL + "/")
	assert.Equal(t, srv.URL, c.BaseURL())

	_, err := c.Chat(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "/chat", gotPath)
}

// =============================================================================
// HEALTH TESTS
// =============================================================================

func TestClient_Health(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		wantType ErrorType
	}{
		{"ok", http.StatusOK, `{"status":"ok"}`, false, ErrTypeUnknown},
		{"degraded", http.StatusOK, `{"status":"degraded"}`, true, ErrTypeDecode},
		{"not json", http.StatusOK, `ok`, true, ErrTypeDecode},
		{"unavailable", http.StatusServiceUnavailable, ``, true, ErrTypeStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				assert.Equal(t, http.MethodGet, r.Method)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := newTestClient(srv.URL).Health(context.Background())
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantType, KindOf(err))
		})
	}
}

func TestClient_Health_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.HealthTimeout = 30 * time.Millisecond

	err := NewClientWithConfig(cfg).Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrTypeTransport, KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// =============================================================================
// ERROR TYPE TESTS
// =============================================================================

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "request", ErrTypeRequest.String())
	assert.Equal(t, "status", ErrTypeStatus.String())
	assert.Equal(t, "transport", ErrTypeTransport.String())
	assert.Equal(t, "decode", ErrTypeDecode.String())
	assert.Equal(t, "unknown", ErrTypeUnknown.String())
}

func TestKindOf_NonClientError(t *testing.T) {
	assert.Equal(t, ErrTypeUnknown, KindOf(io.EOF))
	assert.Equal(t, ErrTypeUnknown, KindOf(nil))
}
