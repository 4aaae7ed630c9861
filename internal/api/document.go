// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ProcessRequest describes one submission to POST /document/process-document.
type ProcessRequest struct {
	// Query is the question text. Required; the backend rejects blank queries.
	Query string

	// ChatID names the chat this question belongs to. For chats not yet known
	// to the server, the caller passes the locally generated ID and adopts
	// the server's chat_id from the response.
	ChatID string

	// ChatName is sent so the server can create the session under the
	// sidebar's current name if it does not exist yet.
	ChatName string

	// FilePath, when non-empty, is a local document to upload alongside
	// the question.
	FilePath string

	// FileName overrides the name sent for the upload; defaults to the
	// base name of FilePath.
	FileName string
}

// ProcessResponse is the backend's answer to a document query.
type ProcessResponse struct {
	Response string `json:"response"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ChatID   string `json:"chat_id"`
}

// ProcessDocument uploads an optional document together with a query and
// returns the backend's answer. The request is multipart form data and is
// made exactly once; the caller decides how to surface failures.
func (c *Client) ProcessDocument(ctx context.Context, req ProcessRequest) (*ProcessResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if req.FilePath != "" {
		name := req.FileName
		if name == "" {
			name = filepath.Base(req.FilePath)
		}
		if err := attachFile(writer, req.FilePath, name); err != nil {
			return nil, err
		}
	}

	if err := writer.WriteField("query", req.Query); err != nil {
		return nil, fmt.Errorf("failed to write query field: %w", err)
	}
	if err := writer.WriteField("chat_id", req.ChatID); err != nil {
		return nil, fmt.Errorf("failed to write chat_id field: %w", err)
	}
	if err := writer.WriteField("chat_name", req.ChatName); err != nil {
		return nil, fmt.Errorf("failed to write chat_name field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/document/process-document", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("User-Agent", "insight-tui/1.0")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Printf("API Request: POST /document/process-document")
	start := time.Now()

	resp, err := c.uploader.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, time.Since(start))

	raw, err := readResponse(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, handleErrorResponse(resp.StatusCode, raw)
	}

	var out ProcessResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}

// attachFile streams a local file into the multipart form under the "file"
// field.
func attachFile(writer *multipart.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open attachment: %w", err)
	}
	defer f.Close()

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to copy attachment: %w", err)
	}
	return nil
}
