// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/insightpaper/insight-tui/internal/model"
	"github.com/insightpaper/insight-tui/internal/store"
)

// =============================================================================
// WORKSPACE MESSAGES
// =============================================================================

// IdentityChangedMsg arrives when another process rewrote the persisted
// identity (login, logout, or guest entry elsewhere).
type IdentityChangedMsg struct {
	Identity store.Identity
}

// LogoutMsg tells the parent model to return to the auth panel.
type LogoutMsg struct{}

// guestChatsLoadedMsg delivers the local archive contents for guest sessions.
type guestChatsLoadedMsg struct {
	chats []*model.Chat
	err   error
}

// guestPersistFailedMsg reports a failed local archive write. The in-memory
// chat is kept as is.
type guestPersistFailedMsg struct {
	err error
}
