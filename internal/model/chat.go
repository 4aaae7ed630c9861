// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultChatName is the name given to freshly created chats.
const DefaultChatName = "New Chat"

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat holds a complete chat session with its message thread and metadata.
type Chat struct {
	// Identity. IDs are opaque strings assigned by the server; locally
	// created chats use a millisecond timestamp rendered in decimal, which
	// sorts newest-first under CompareIDs.
	ID   string `json:"id"`
	Name string `json:"name"`

	// Pinned chats sort ahead of everything else in the sidebar.
	Pinned bool `json:"pinned"`

	// Messages is the thread, oldest first.
	Messages []*Message `json:"messages"`
}

// NewChat creates a chat with a locally generated timestamp ID.
func NewChat() *Chat {
	return &Chat{
		ID:       strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:     DefaultChatName,
		Messages: make([]*Message, 0),
	}
}

// NewChatWithID creates a chat with a server-assigned ID and name.
func NewChatWithID(id, name string) *Chat {
	return &Chat{
		ID:       id,
		Name:     name,
		Messages: make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the thread.
func (c *Chat) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
}

// AddUserMessage creates and appends a user message.
func (c *Chat) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddResponseMessage creates and appends a backend response.
func (c *Chat) AddResponseMessage(content string) *Message {
	msg := NewResponseMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddErrorMessage creates and appends an inline error.
func (c *Chat) AddErrorMessage(content string) *Message {
	msg := NewErrorMessage(content)
	c.AddMessage(msg)
	return msg
}

// LastMessage returns the most recent message, or nil if the thread is empty.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// ClearMessages empties the thread but keeps the chat itself.
func (c *Chat) ClearMessages() {
	c.Messages = make([]*Message, 0)
}

// MessageCount returns the number of messages in the thread.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if the thread has no messages.
func (c *Chat) IsEmpty() bool {
	return len(c.Messages) == 0
}

// PersistableMessages returns the thread without inline error entries.
// Errors are a display artifact and never leave the client.
func (c *Chat) PersistableMessages() []*Message {
	out := make([]*Message, 0, len(c.Messages))
	for _, msg := range c.Messages {
		if msg.Kind == KindError {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// Clone creates a deep copy of the chat.
func (c *Chat) Clone() *Chat {
	clone := &Chat{
		ID:       c.ID,
		Name:     c.Name,
		Pinned:   c.Pinned,
		Messages: make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}

// =============================================================================
// ORDERING AND FILTERING
// =============================================================================

// CompareIDs orders two chat IDs newest-first for timestamp-derived IDs.
// When both IDs parse as integers they compare numerically; otherwise they
// compare as plain strings. The result is negative when a sorts before b.
func CompareIDs(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		switch {
		case ai > bi:
			return -1
		case ai < bi:
			return 1
		default:
			return 0
		}
	}
	// Lexicographic fallback, still descending.
	return strings.Compare(b, a)
}

// SortChats orders a chat list for the sidebar: pinned chats first, and
// within each group newest first by ID. The sort is stable so equal
// elements keep their relative order.
func SortChats(chats []*Chat) {
	sort.SliceStable(chats, func(i, j int) bool {
		if chats[i].Pinned != chats[j].Pinned {
			return chats[i].Pinned
		}
		return CompareIDs(chats[i].ID, chats[j].ID) < 0
	})
}

// FilterChats returns the chats whose name contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterChats(chats []*Chat, query string) []*Chat {
	if query == "" {
		return chats
	}
	needle := strings.ToLower(query)
	out := make([]*Chat, 0, len(chats))
	for _, c := range chats {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}
