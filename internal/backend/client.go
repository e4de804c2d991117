// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for logging.
// The UI does not distinguish between them.
type ErrorType int

const (
	ErrTypeUnknown   ErrorType = iota
	ErrTypeRequest             // request could not be built
	ErrTypeStatus              // non-2xx response
	ErrTypeTransport           // network failure or context ended
	ErrTypeDecode              // body did not match the expected shape
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeRequest:
		return "request"
	case ErrTypeStatus:
		return "status"
	case ErrTypeTransport:
		return "transport"
	case ErrTypeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the backend client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int // set for ErrTypeStatus
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// KindOf returns the ErrorType carried by err, or ErrTypeUnknown.
func KindOf(err error) ErrorType {
	var cerr *ClientError
	if errors.As(err, &cerr) {
		return cerr.Type
	}
	return ErrTypeUnknown
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// ErrResponseTooLarge is the cause of a ClientError for a body larger
// than the client will read.
var ErrResponseTooLarge = errors.New("response body too large")

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// HealthTimeout bounds the /health check (default: 5s).
	// The /chat call has no timeout.
	HealthTimeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	// Logger receives request-level debug events.
	Logger zerolog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       DefaultBaseURL,
		HealthTimeout: 5 * time.Second,
		Logger:        zerolog.Nop(),
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the research assistant backend.
// It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.HealthTimeout == 0 {
		config.HealthTimeout = 5 * time.Second
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		log:        config.Logger.With().Str("component", "backend").Logger(),
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CHAT
// =============================================================================

// Chat posts query to /chat and returns the decoded answer.
// The query is sent exactly as given.
func (c *Client) Chat(ctx context.Context, query string) (*ChatResponse, error) {
	body, err := json.Marshal(ChatRequest{Query: query})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeRequest, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.Debug().Int("query_len", len(query)).Msg("chat request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "chat request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Int("bytes", len(data)).
		Msg("chat response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError("chat request failed", resp, data)
	}

	return decodeChatResponse(data)
}

// decodeChatResponse parses a /chat body. A body without an "answer"
// field is rejected as malformed.
func decodeChatResponse(data []byte) (*ChatResponse, error) {
	var raw struct {
		Answer  *string  `json:"answer"`
		Sources []Source `json:"sources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ClientError{Type: ErrTypeDecode, Message: "failed to decode response", Cause: err}
	}
	if raw.Answer == nil {
		return nil, &ClientError{Type: ErrTypeDecode, Message: "response has no answer"}
	}
	return &ChatResponse{Answer: *raw.Answer, Sources: raw.Sources}, nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Health checks /health. It returns nil only for a 2xx response whose
// status field is "ok".
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "health check failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("health check failed", resp, data)
	}

	var health HealthResponse
	if err := json.Unmarshal(data, &health); err != nil {
		return &ClientError{Type: ErrTypeDecode, Message: "failed to decode health response", Cause: err}
	}
	if !health.OK() {
		return &ClientError{Type: ErrTypeDecode, Message: "backend reported status " + strconv.Quote(health.Status)}
	}

	return nil
}

// readBody reads at most maxResponseBytes of the response body. A longer
// body is an error rather than a truncated read.
func readBody(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to read response", Cause: err}
	}
	if len(data) > maxResponseBytes {
		return nil, &ClientError{
			Type:    ErrTypeTransport,
			Message: fmt.Sprintf("response body exceeds %d bytes", maxResponseBytes),
			Cause:   ErrResponseTooLarge,
		}
	}
	return data, nil
}

// statusError builds an ErrTypeStatus error, preferring the backend's
// "detail" message when the body carries one.
func statusError(prefix string, resp *http.Response, body []byte) error {
	msg := prefix + ": " + resp.Status
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		msg = prefix + ": " + apiErr.Detail
	}
	return &ClientError{Type: ErrTypeStatus, Message: msg, StatusCode: resp.StatusCode}
}
