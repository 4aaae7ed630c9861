// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/insightpaper/insight-tui/internal/model"
)

func newTestArchive(t *testing.T) *ChatArchive {
	t.Helper()
	a, err := OpenPath(filepath.Join(t.TempDir(), "guest.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSaveAndLoadChat(t *testing.T) {
	a := newTestArchive(t)

	chat := model.NewChatWithID("1700000000000", "Research Notes")
	chat.Pinned = true
	chat.AddUserMessage("what is attention?")
	chat.AddResponseMessage("Attention is a mechanism...")

	if err := a.SaveChat(chat); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}

	chats, err := a.LoadChats()
	if err != nil {
		t.Fatalf("LoadChats failed: %v", err)
	}
	if len(chats) != 1 {
		t.Fatalf("loaded %d chats, want 1", len(chats))
	}

	got := chats[0]
	if got.ID != "1700000000000" || got.Name != "Research Notes" || !got.Pinned {
		t.Errorf("chat metadata mismatch: %+v", got)
	}
	if got.MessageCount() != 2 {
		t.Fatalf("loaded %d messages, want 2", got.MessageCount())
	}
	if got.Messages[0].Kind != model.KindUser || got.Messages[1].Kind != model.KindResponse {
		t.Error("message kinds not preserved in order")
	}
}

func TestErrorMessagesNotPersisted(t *testing.T) {
	a := newTestArchive(t)

	chat := model.NewChat()
	chat.AddUserMessage("question")
	chat.AddErrorMessage("Connection error. Please try again later.")

	if err := a.SaveChat(chat); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}

	chats, err := a.LoadChats()
	if err != nil {
		t.Fatalf("LoadChats failed: %v", err)
	}
	if chats[0].MessageCount() != 1 {
		t.Errorf("error entries must not be persisted, got %d messages", chats[0].MessageCount())
	}
}

func TestSaveChatReplacesThread(t *testing.T) {
	a := newTestArchive(t)

	chat := model.NewChat()
	chat.AddUserMessage("first")
	if err := a.SaveChat(chat); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}

	chat.ClearMessages()
	chat.Name = "renamed"
	if err := a.SaveChat(chat); err != nil {
		t.Fatalf("second SaveChat failed: %v", err)
	}

	chats, _ := a.LoadChats()
	if chats[0].Name != "renamed" {
		t.Errorf("Name = %q, want renamed", chats[0].Name)
	}
	if !chats[0].IsEmpty() {
		t.Error("cleared thread should persist as empty")
	}
}

func TestDeleteChat(t *testing.T) {
	a := newTestArchive(t)

	chat := model.NewChat()
	chat.AddUserMessage("hello")
	if err := a.SaveChat(chat); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}

	if err := a.DeleteChat(chat.ID); err != nil {
		t.Fatalf("DeleteChat failed: %v", err)
	}

	n, err := a.ChatCount()
	if err != nil {
		t.Fatalf("ChatCount failed: %v", err)
	}
	if n != 0 {
		t.Errorf("ChatCount = %d, want 0", n)
	}

	if err := a.DeleteChat(chat.ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("deleting a missing chat should return ErrChatNotFound, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	a := newTestArchive(t)

	for _, name := range []string{"one", "two", "three"} {
		chat := model.NewChatWithID("id-"+name, name)
		if err := a.SaveChat(chat); err != nil {
			t.Fatalf("SaveChat failed: %v", err)
		}
	}

	if err := a.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	n, _ := a.ChatCount()
	if n != 0 {
		t.Errorf("ChatCount after DeleteAll = %d", n)
	}
}

func TestArchiveSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guest.db")

	a, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	chat := model.NewChatWithID("c1", "kept")
	chat.AddUserMessage("persist me")
	if err := a.SaveChat(chat); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}
	a.Close()

	b, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()

	chats, err := b.LoadChats()
	if err != nil {
		t.Fatalf("LoadChats failed: %v", err)
	}
	if len(chats) != 1 || chats[0].Messages[0].Content != "persist me" {
		t.Error("chat did not survive reopen")
	}
}
