// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the InsightPaper backend.
//
// The backend exposes three route groups: /auth for credential exchange,
// /chat for session management, and /document for upload-and-query. Every
// request is made exactly once; failed mutations are reported to the caller
// and never retried.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the base URL of a locally running backend.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout bounds ordinary JSON requests.
	DefaultTimeout = 30 * time.Second

	// UploadTimeout bounds document processing requests, which carry a file
	// upload and wait for the backend's answer in the same round trip.
	UploadTimeout = 5 * time.Minute

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024
)

var (
	// Shared HTTP client with connection pooling for all JSON requests.
	sharedHTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		Timeout: DefaultTimeout,
	}

	// sharedUploadClient is used for document uploads, which can legitimately
	// take far longer than the JSON endpoints.
	sharedUploadClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		Timeout: UploadTimeout,
	}
)

// Error variables for common backend errors.
var (
	// ErrConnection indicates the backend could not be reached at all.
	ErrConnection = errors.New("connection error")

	// ErrUnauthorized indicates the token or credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the chat or document does not exist (or belongs
	// to another account).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the server rejected a mutation because the chat
	// was modified concurrently.
	ErrConflict = errors.New("conflict")
)

// APIError represents a structured error response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// errorBody matches the two error envelopes the backend uses:
// auth routes respond with {"message": ...}, the rest with {"error": ...}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the InsightPaper backend API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	uploader   *http.Client
}

// NewClient creates a client for the given base URL. An empty base URL
// falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		uploader:   sharedUploadClient,
	}
}

// WithToken sets the bearer token attached to authenticated requests.
func (c *Client) WithToken(token string) *Client {
	c.token = strings.TrimSpace(token)
	return c
}

// WithHTTPClient overrides both HTTP clients. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	c.uploader = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken returns true if a bearer token is set.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// setHeaders sets the headers shared by all JSON requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "insight-tui/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// doJSON performs a single JSON request and decodes the response into out.
// A nil body sends no payload; a nil out discards the response body.
// Requests are never retried.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	// Never log headers (bearer token) or bodies (credentials, documents).
	log.Printf("API Request: %s %s", method, path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, time.Since(start))

	raw, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Best-effort decode so callers can inspect body flags that
		// accompany an error status (signup reports success this way).
		if out != nil {
			_ = json.Unmarshal(raw, out)
		}
		return handleErrorResponse(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// handleErrorResponse converts HTTP error responses to Go errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var eb errorBody
	message := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		message = eb.Error
		if message == "" {
			message = eb.Message
		}
	}

	switch statusCode {
	case http.StatusUnauthorized:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, message)
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, message)
		}
		return ErrNotFound
	case http.StatusConflict:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrConflict, message)
		}
		return ErrConflict
	default:
		if message == "" {
			message = strings.TrimSpace(string(body))
		}
		return &APIError{Status: statusCode, Message: message}
	}
}

// ErrorMessage extracts the human-readable message from a backend error,
// falling back to the given default. This mirrors how the workspace shows
// server failures inline in the thread.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
