// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/model"
	"github.com/insightpaper/insight-tui/internal/storage"
	"github.com/insightpaper/insight-tui/internal/store"
)

// =============================================================================
// WORKSPACE COMMANDS
// =============================================================================

// waitIdentityCmd blocks on the identity watcher and surfaces the next
// cross-process identity change. Re-armed after every delivery.
func waitIdentityCmd(watcher *store.Watcher) tea.Cmd {
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		id, ok := <-watcher.Changes()
		if !ok {
			return nil
		}
		return IdentityChangedMsg{Identity: id}
	}
}

// loadGuestChatsCmd reads the guest archive.
func loadGuestChatsCmd(archive *storage.ChatArchive) tea.Cmd {
	if archive == nil {
		return nil
	}
	return func() tea.Msg {
		chats, err := archive.LoadChats()
		return guestChatsLoadedMsg{chats: chats, err: err}
	}
}

// persistGuestChatCmd writes one chat to the guest archive. The chat is
// cloned before the goroutine starts so later edits don't race the write.
func persistGuestChatCmd(archive *storage.ChatArchive, chat *model.Chat) tea.Cmd {
	if archive == nil || chat == nil {
		return nil
	}
	snapshot := chat.Clone()
	return func() tea.Msg {
		if err := archive.SaveChat(snapshot); err != nil {
			return guestPersistFailedMsg{err: err}
		}
		return nil
	}
}

// deleteGuestChatCmd removes one chat from the guest archive.
func deleteGuestChatCmd(archive *storage.ChatArchive, chatID string) tea.Cmd {
	if archive == nil {
		return nil
	}
	return func() tea.Msg {
		if err := archive.DeleteChat(chatID); err != nil {
			return guestPersistFailedMsg{err: err}
		}
		return nil
	}
}
