// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"
	"testing"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/config"
	"github.com/insightpaper/insight-tui/internal/session"
	"github.com/insightpaper/insight-tui/internal/storage"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

func newGuestWorkspace(t *testing.T) (*Model, *storage.ChatArchive) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	st, err := store.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDir failed: %v", err)
	}
	archive, err := storage.OpenPath(filepath.Join(t.TempDir(), "guest.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { archive.Close() })

	m := New(Options{
		Client:   api.NewClient(""),
		Store:    st,
		Archive:  archive,
		Identity: store.Identity{Guest: true},
		Theme:    styles.NewThemeWithMode(true),
		Config:   config.Default(),
	})
	m.setSize(120, 40)
	return m, archive
}

func TestGuestNewChatWritesArchive(t *testing.T) {
	m, archive := newGuestWorkspace(t)

	m, cmd := m.newChat()
	if cmd == nil {
		t.Fatal("expected the archive write command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("archive write failed: %v", msg)
	}

	n, err := archive.ChatCount()
	if err != nil {
		t.Fatalf("ChatCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("ChatCount = %d, want 1", n)
	}
}

func TestGuestAnswerPersistsThread(t *testing.T) {
	m, archive := newGuestWorkspace(t)
	chat := m.session.Create()
	chat.AddUserMessage("What is this paper about?")
	m.session.BeginSubmit()

	m, cmd := m.Update(session.AnswerMsg{Response: "It studies..."})
	if cmd == nil {
		t.Fatal("guest answers should persist to the archive")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("archive write failed: %v", msg)
	}

	chats, err := archive.LoadChats()
	if err != nil {
		t.Fatalf("LoadChats failed: %v", err)
	}
	if len(chats) != 1 || chats[0].MessageCount() != 2 {
		t.Errorf("persisted thread wrong: %d chats", len(chats))
	}
}

func TestGuestDeleteRemovesFromArchive(t *testing.T) {
	m, archive := newGuestWorkspace(t)

	m, cmd := m.newChat()
	if msg := cmd(); msg != nil {
		t.Fatalf("archive write failed: %v", msg)
	}
	id := m.currentChat().ID

	m, cmd = m.deleteChat(id)
	if cmd == nil {
		t.Fatal("expected the archive delete command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("archive delete failed: %v", msg)
	}

	n, _ := archive.ChatCount()
	if n != 0 {
		t.Errorf("ChatCount = %d after delete, want 0", n)
	}
}
