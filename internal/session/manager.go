// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the sidebar's chat list: ordering, filtering,
// selection, and the optimistic mutations behind every sidebar action.
//
// Mutations apply locally first and always stick; the matching server call
// runs afterwards and a failure only produces a warning banner. Nothing is
// ever rolled back.
package session

import (
	"strings"
	"sync"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/model"
)

// Sync warning strings shown when a local mutation could not be mirrored
// server-side.
const (
	WarnDeleteSync = "Failed to sync deletion with server, but chat was removed locally."
	WarnRenameSync = "Failed to sync rename with server, but chat was renamed locally."
	WarnPinSync    = "Failed to sync pin status with server, but chat was updated locally."
	WarnClearSync  = "Failed to sync clearing with server, but chat was cleared locally."
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the chat list and the current-chat pointer.
type Manager struct {
	mu sync.Mutex

	chats     []*model.Chat
	currentID string
	filter    string

	// loading guards submission: while a question is in flight no second
	// submission is accepted.
	loading bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{chats: make([]*model.Chat, 0)}
}

// =============================================================================
// HYDRATION
// =============================================================================

// Hydrate replaces the chat list with server records, keeping the current
// selection when the chat still exists and selecting the top sorted chat
// otherwise. An empty account leaves the current pointer unset; the
// workspace shows its welcome view until a chat exists.
func (m *Manager) Hydrate(records []api.ChatRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chats := make([]*model.Chat, 0, len(records))
	for _, rec := range records {
		chats = append(chats, chatFromRecord(rec))
	}
	m.chats = chats
	m.ensureSelectionLocked()
}

// HydrateLocal replaces the chat list with locally stored chats (guest mode).
func (m *Manager) HydrateLocal(chats []*model.Chat) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chats = make([]*model.Chat, 0, len(chats))
	m.chats = append(m.chats, chats...)
	m.ensureSelectionLocked()
}

// chatFromRecord maps one wire record onto the local chat shape.
func chatFromRecord(rec api.ChatRecord) *model.Chat {
	chat := model.NewChatWithID(rec.ID, rec.Name)
	if chat.Name == "" {
		chat.Name = model.DefaultChatName
	}
	chat.Pinned = rec.Pinned
	for _, entry := range rec.History {
		msg := model.NewMessage(model.Kind(entry.Type), entry.Content)
		if entry.File != nil {
			msg.FileName = entry.File.Name
		}
		chat.AddMessage(msg)
	}
	return chat
}

// ensureSelectionLocked repairs the current pointer after the list changed.
// Caller holds the lock.
func (m *Manager) ensureSelectionLocked() {
	if m.findLocked(m.currentID) != nil {
		return
	}
	sorted := m.sortedLocked("")
	if len(sorted) > 0 {
		m.currentID = sorted[0].ID
		return
	}
	m.currentID = ""
}

// =============================================================================
// QUERIES
// =============================================================================

// findLocked returns the chat with the given ID, or nil. Caller holds the lock.
func (m *Manager) findLocked(id string) *model.Chat {
	for _, c := range m.chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Current returns the selected chat, or nil when the list is empty.
func (m *Manager) Current() *model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(m.currentID)
}

// CurrentID returns the selected chat's ID.
func (m *Manager) CurrentID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentID
}

// Get returns the chat with the given ID, or nil.
func (m *Manager) Get(id string) *model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(id)
}

// Count returns the number of chats, ignoring the filter.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chats)
}

// sortedLocked returns a filtered, sorted copy of the list. Caller holds
// the lock.
func (m *Manager) sortedLocked(filter string) []*model.Chat {
	filtered := model.FilterChats(m.chats, filter)
	out := make([]*model.Chat, len(filtered))
	copy(out, filtered)
	model.SortChats(out)
	return out
}

// Sorted returns the sidebar view: chats matching the search filter, pinned
// first, newest first within each group.
func (m *Manager) Sorted() []*model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLocked(m.filter)
}

// All returns every chat regardless of filter, in sidebar order.
func (m *Manager) All() []*model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLocked("")
}

// =============================================================================
// SELECTION AND FILTER
// =============================================================================

// Select makes the given chat current. Unknown IDs are ignored.
func (m *Manager) Select(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findLocked(id) != nil {
		m.currentID = id
	}
}

// SetFilter sets the sidebar search query.
func (m *Manager) SetFilter(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = query
}

// Filter returns the sidebar search query.
func (m *Manager) Filter() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// =============================================================================
// OPTIMISTIC MUTATIONS
// =============================================================================

// Create adds a fresh chat with a local timestamp ID, selects it, and
// returns it. The caller issues the server sync separately.
func (m *Manager) Create() *model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat := model.NewChat()
	m.chats = append(m.chats, chat)
	m.currentID = chat.ID
	return chat
}

// Delete removes a chat locally. When the deleted chat was current, the
// next entry in list order is promoted, not the sidebar's sorted order;
// deleting the last chat clears the selection. Returns false for unknown
// IDs.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, c := range m.chats {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	m.chats = append(m.chats[:idx], m.chats[idx+1:]...)

	if m.currentID == id {
		m.currentID = ""
		if len(m.chats) > 0 {
			m.currentID = m.chats[0].ID
		}
	}
	return true
}

// Rename changes a chat's name locally. Blank names are rejected; the
// stored name is the trimmed input. Returns false when nothing changed.
func (m *Manager) Rename(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	chat := m.findLocked(id)
	if chat == nil {
		return false
	}
	chat.Name = name
	return true
}

// TogglePin flips a chat's pinned flag locally and returns the new state.
func (m *Manager) TogglePin(id string) (pinned, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat := m.findLocked(id)
	if chat == nil {
		return false, false
	}
	chat.Pinned = !chat.Pinned
	return chat.Pinned, true
}

// ClearMessages empties a chat's thread locally.
func (m *Manager) ClearMessages(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat := m.findLocked(id)
	if chat == nil {
		return false
	}
	chat.ClearMessages()
	return true
}

// AdoptServerID renames a locally created chat to the ID the server
// assigned it, keeping the selection intact.
func (m *Manager) AdoptServerID(localID, serverID string) {
	if serverID == "" || localID == serverID {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	chat := m.findLocked(localID)
	if chat == nil {
		return
	}
	chat.ID = serverID
	if m.currentID == localID {
		m.currentID = serverID
	}
}

// =============================================================================
// SUBMISSION GUARD
// =============================================================================

// BeginSubmit marks a question in flight. Returns false when one already is;
// the caller must drop the submission.
func (m *Manager) BeginSubmit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		return false
	}
	m.loading = true
	return true
}

// EndSubmit clears the in-flight flag.
func (m *Manager) EndSubmit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
}

// IsLoading reports whether a question is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}
