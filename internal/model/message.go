// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// MESSAGE KIND
// =============================================================================

// Kind identifies who (or what) produced a message in the thread.
type Kind string

const (
	// KindUser is a question typed (or attached) by the person at the keyboard.
	KindUser Kind = "user"
	// KindResponse is an answer produced by the backend.
	KindResponse Kind = "response"
	// KindError is a failure rendered inline in the thread. Error messages
	// live only in memory; they are never persisted or sent to the server.
	KindError Kind = "error"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindUser:
		return "You"
	case KindResponse:
		return "InsightPaper"
	case KindError:
		return "Error"
	default:
		return string(k)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in a chat thread.
type Message struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// FileName is set on user messages that carried an attachment, so the
	// thread can show what was uploaded alongside the question.
	FileName string `json:"file_name,omitempty"`
}

// NewMessage creates a message with a generated ID.
func NewMessage(kind Kind, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return NewMessage(KindUser, content)
}

// NewResponseMessage creates a backend response message.
func NewResponseMessage(content string) *Message {
	return NewMessage(KindResponse, content)
}

// NewErrorMessage creates an inline error message.
func NewErrorMessage(content string) *Message {
	return NewMessage(KindError, content)
}

// Preview returns a truncated single-line preview of the message content.
func (m *Message) Preview(maxRunes int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxRunes {
		return m.Content
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}
