// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Medical RAG Analysis API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the analyze client.
type ClientError struct {
	Type    ErrorType
	Message string
	Status  int    // HTTP status code, set for ErrTypeHTTP
	Detail  string // backend "detail" field, set for ErrTypeHTTP when present
	Cause   error
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

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable     // request could not complete at all
	ErrTypeHTTP            // server answered with a failure status
	ErrTypeTimeout         // context deadline or cancellation
	ErrTypeInvalidResponse // body was not the expected JSON
)

// ErrTimeout is the sentinel for cancelled or deadline-expired requests.
var ErrTimeout = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}

// ErrNoClient is returned when no analyze client is configured.
var ErrNoClient = &ClientError{Type: ErrTypeUnknown, Message: "no analyze client configured"}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultEndpoint is the analyze URL used when none is configured.
// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6
// resolution issues on Windows
const DefaultEndpoint = "http://127.0.0.1:8000/analyze"

// ClientConfig holds configuration options for the analyze client.
type ClientConfig struct {
	// Endpoint is the full analyze URL (default: DefaultEndpoint)
	Endpoint string

	// Timeout for the analyze call. Zero means no client-side timeout: the
	// call is bounded only by the transport (retrieval plus generation on
	// the backend routinely runs long).
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Endpoint: DefaultEndpoint,
		Timeout:  0,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Medical RAG Analysis API.
//
// The Client is safe for concurrent use, though the UI never has more than
// one request in flight.
//
// Example:
//
//	client := api.NewClient()
//	resp, err := client.Analyze(ctx, api.QueryRequest{...})
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new analyze client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new analyze client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Endpoint returns the configured analyze URL.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// =============================================================================
// ANALYZE
// =============================================================================

// Analyze sends one analyze request and returns the parsed report payload.
// The response body is parsed as JSON regardless of HTTP status; a failure
// status becomes a ClientError carrying the status code and the backend's
// detail field when one was sent.
func (c *Client) Analyze(ctx context.Context, request QueryRequest) (*AnalyzeResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{
			Type:    ErrTypeUnreachable,
			Message: "could not reach analysis API at " + c.config.Endpoint,
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp ErrorResponse
		detail := ""
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			detail = errResp.Detail
		}
		message := "analysis failed with status " + strconv.Itoa(resp.StatusCode)
		if detail != "" {
			message += ": " + detail
		}
		return nil, &ClientError{
			Type:    ErrTypeHTTP,
			Message: message,
			Status:  resp.StatusCode,
			Detail:  detail,
		}
	}

	var result AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsUnreachable checks if an error indicates the API could not be reached.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return false
}

// IsHTTPError checks if an error is a failure status from the API.
func IsHTTPError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeHTTP
	}
	return false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// HTTPStatus returns the status code of an HTTP failure, or 0.
func HTTPStatus(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Status
	}
	return 0
}

// Detail returns the backend detail field of an HTTP failure, or "".
func Detail(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Detail
	}
	return ""
}
