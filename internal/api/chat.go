// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// FileRef records the attachment carried by a user entry, if any.
type FileRef struct {
	Name       string `json:"name"`
	DocumentID string `json:"document_id"`
}

// HistoryEntry is one message as stored server-side. Type is "user" or
// "response"; timestamps are clock strings ("15:04:05"), not full dates.
type HistoryEntry struct {
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
	File      *FileRef `json:"file,omitempty"`
}

// ChatRecord is one chat session as returned by GET /chat/history.
type ChatRecord struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	CreatedAt   string         `json:"created_at"`
	LastUpdated string         `json:"last_updated"`
	Pinned      bool           `json:"pinned"`
	History     []HistoryEntry `json:"history"`
	DocumentID  string         `json:"document_id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
}

// historyResponse is the envelope for GET /chat/history.
type historyResponse struct {
	Chats []ChatRecord `json:"chats"`
}

// createChatRequest is the payload for POST /chat/create.
type createChatRequest struct {
	Name       string `json:"name"`
	DocumentID string `json:"document_id,omitempty"`
}

// CreateChatResponse is the response from POST /chat/create.
type CreateChatResponse struct {
	Message string `json:"message"`
	ChatID  string `json:"chat_id"`
}

// renameChatRequest is the payload for PUT /chat/{id}/rename.
type renameChatRequest struct {
	Name string `json:"name"`
}

// PinResponse is the response from PUT /chat/{id}/pin. Pinned carries the
// new server-side state after the toggle.
type PinResponse struct {
	Message string `json:"message"`
	Pinned  bool   `json:"pinned"`
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// ChatHistory fetches all chat sessions for the authenticated account.
func (c *Client) ChatHistory(ctx context.Context) ([]ChatRecord, error) {
	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chat/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Chats, nil
}

// CreateChat registers a new chat session and returns its server-assigned ID.
func (c *Client) CreateChat(ctx context.Context, name string) (*CreateChatResponse, error) {
	var resp CreateChatResponse
	err := c.doJSON(ctx, http.MethodPost, "/chat/create", createChatRequest{Name: name}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteChat removes a chat session and its stored queries.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/chat/"+url.PathEscape(chatID), nil, nil)
}

// RenameChat changes a chat session's name.
func (c *Client) RenameChat(ctx context.Context, chatID, name string) error {
	return c.doJSON(ctx, http.MethodPut, "/chat/"+url.PathEscape(chatID)+"/rename",
		renameChatRequest{Name: name}, nil)
}

// TogglePin flips a chat session's pinned flag server-side and returns the
// resulting state.
func (c *Client) TogglePin(ctx context.Context, chatID string) (*PinResponse, error) {
	var resp PinResponse
	err := c.doJSON(ctx, http.MethodPut, "/chat/"+url.PathEscape(chatID)+"/pin", nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearMessages empties a chat session's thread but keeps the session.
func (c *Client) ClearMessages(ctx context.Context, chatID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/chat/"+url.PathEscape(chatID)+"/messages", nil, nil)
}
