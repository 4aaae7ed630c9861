// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/config"
	"github.com/insightpaper/insight-tui/internal/model"
	"github.com/insightpaper/insight-tui/internal/session"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

func newTestWorkspace(t *testing.T) *Model {
	t.Helper()
	// Keep best-effort config writes away from the real home directory.
	t.Setenv("HOME", t.TempDir())
	st, err := store.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDir failed: %v", err)
	}
	m := New(Options{
		Client:   api.NewClient(""),
		Store:    st,
		Identity: store.Identity{Token: "tok", User: &api.User{ID: "1", Username: "rivera"}},
		Theme:    styles.NewThemeWithMode(true),
		Config:   config.Default(),
	})
	m.setSize(120, 40)
	return m
}

func pressKey(m *Model, k tea.KeyType) (*Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestHistoryLoadedHydrates(t *testing.T) {
	m := newTestWorkspace(t)

	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{
		{ID: "100", Name: "older"},
		{ID: "200", Name: "newer"},
	}})

	if m.session.Count() != 2 {
		t.Fatalf("Count = %d, want 2", m.session.Count())
	}
	if m.currentChat().Name != "newer" {
		t.Errorf("current = %q, want newer", m.currentChat().Name)
	}
}

func TestHistoryFailureShowsBanner(t *testing.T) {
	m := newTestWorkspace(t)

	m, cmd := m.Update(session.HistoryFailedMsg{Err: os.ErrDeadlineExceeded})
	if cmd == nil {
		t.Fatal("expected the banner timer command")
	}
	if !m.banner.Visible() || m.banner.Message() != msgHistoryLoadFailed {
		t.Errorf("banner = %q", m.banner.Message())
	}
}

func TestSyncFailureWarningKeepsLocalState(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{{ID: "100", Name: "kept"}}})

	m, _ = m.Update(session.SyncFailedMsg{Warning: session.WarnRenameSync})

	if !m.banner.Visible() || m.banner.Message() != session.WarnRenameSync {
		t.Errorf("banner = %q", m.banner.Message())
	}
	if m.session.Get("100") == nil {
		t.Error("local chat must survive a sync failure")
	}
}

func TestSubmitAppendsUserMessageAndGuards(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{{ID: "100", Name: "chat"}}})

	m.composer.SetValue("What is the main finding?")
	m, cmd := pressKey(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("submission should produce commands")
	}
	if got := m.currentChat().MessageCount(); got != 1 {
		t.Fatalf("MessageCount = %d, want 1", got)
	}
	if !m.session.IsLoading() {
		t.Error("submission should set the in-flight flag")
	}

	// Second submit while in flight is ignored.
	m.composer.SetValue("another question")
	m, cmd = pressKey(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("second submission while in flight must be dropped")
	}
	if got := m.currentChat().MessageCount(); got != 1 {
		t.Errorf("MessageCount = %d after guarded submit, want 1", got)
	}
}

func TestEmptySubmitIgnored(t *testing.T) {
	m := newTestWorkspace(t)
	m.composer.SetValue("   ")
	m, cmd := pressKey(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("blank question must not submit")
	}
	if m.session.IsLoading() {
		t.Error("no request should be in flight")
	}
}

func TestBareDocumentSubmitSummarizes(t *testing.T) {
	m := newTestWorkspace(t)
	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	m, _ = m.stageAttachment(path)

	m, cmd := pressKey(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("document-only submission should produce commands")
	}
	last := m.currentChat().LastMessage()
	if last == nil || last.Content != "Summarize the document" {
		t.Fatalf("last message = %+v", last)
	}
}

func TestAnswerAppendsResponseAndAdoptsID(t *testing.T) {
	m := newTestWorkspace(t)
	chat := m.session.Create()
	m.session.BeginSubmit()

	m, _ = m.Update(session.AnswerMsg{
		ChatID:       chat.ID,
		ServerChatID: "srv-9",
		Response:     "The paper argues...",
		Title:        "Attention Is All You Need",
	})

	if m.session.IsLoading() {
		t.Error("answer should clear the in-flight flag")
	}
	adopted := m.session.Get("srv-9")
	if adopted == nil {
		t.Fatal("server chat ID not adopted")
	}
	if adopted.Name != "Attention Is All You Need" {
		t.Errorf("fresh chat should take the document title, got %q", adopted.Name)
	}
	last := adopted.LastMessage()
	if last == nil || last.Kind != model.KindResponse {
		t.Errorf("last message = %+v", last)
	}
}

func TestAnswerFailureAddsInlineErrorOnly(t *testing.T) {
	m := newTestWorkspace(t)
	chat := m.session.Create()
	m.session.BeginSubmit()

	m, cmd := m.Update(session.AnswerFailedMsg{
		ChatID:  chat.ID,
		Message: "An unexpected error occurred",
	})

	last := chat.LastMessage()
	if last == nil || last.Kind != model.KindError {
		t.Fatalf("last message = %+v", last)
	}
	if len(chat.PersistableMessages()) != 0 {
		t.Error("error entries must never persist")
	}
	if m.session.IsLoading() {
		t.Error("failure should clear the in-flight flag")
	}
	if cmd == nil {
		t.Fatal("expected the banner timer command")
	}
	if !m.banner.Visible() || m.banner.Message() != "An unexpected error occurred" {
		t.Errorf("banner = %q, visible = %v", m.banner.Message(), m.banner.Visible())
	}
}

func TestFailedSubmitKeepsTypedQuestion(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{{ID: "100", Name: "chat"}}})

	m.composer.SetValue("what is the method?")
	m, _ = pressKey(m, tea.KeyEnter)
	if got := m.composer.Value(); got != "what is the method?" {
		t.Fatalf("composer during flight = %q", got)
	}

	m, _ = m.Update(session.AnswerFailedMsg{ChatID: "100", Message: "An unexpected error occurred"})
	if got := m.composer.Value(); got != "what is the method?" {
		t.Errorf("composer after failure = %q, want the typed question back", got)
	}
}

func TestAnswerClearsTypedQuestion(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{{ID: "100", Name: "chat"}}})

	m.composer.SetValue("what is the method?")
	m, _ = pressKey(m, tea.KeyEnter)
	m, _ = m.Update(session.AnswerMsg{ChatID: "100", Response: "It uses attention."})

	if got := m.composer.Value(); got != "" {
		t.Errorf("composer after answer = %q, want empty", got)
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{
		{ID: "100", Name: "a"},
		{ID: "200", Name: "b"},
	}})

	m, _ = pressKey(m, tea.KeyCtrlD)
	if m.overlay != overlayDeleteConfirm {
		t.Fatal("ctrl+d should open the delete confirmation")
	}

	// Escape cancels without deleting.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.overlay != overlayNone || m.session.Count() != 2 {
		t.Fatal("esc should cancel the delete")
	}

	// Confirm path: open, focus confirm, enter.
	m, _ = pressKey(m, tea.KeyCtrlD)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Count() != 1 {
		t.Errorf("Count = %d after delete, want 1", m.session.Count())
	}
	if cmd == nil {
		t.Error("delete should return the sync command")
	}
}

func TestDeleteOnlyChatShowsWelcome(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{{ID: "100", Name: "only"}}})

	m, _ = pressKey(m, tea.KeyCtrlD)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.currentChat() != nil {
		t.Fatalf("current = %+v, want nil after deleting the last chat", m.currentChat())
	}
	if !strings.Contains(m.View(), "get started") {
		t.Error("welcome view should show when no chat exists")
	}
}

func TestFirstQuestionCreatesChat(t *testing.T) {
	m := newTestWorkspace(t)
	if m.currentChat() != nil {
		t.Fatal("workspace should start without a chat")
	}

	m.composer.SetValue("what is the main finding?")
	m, cmd := pressKey(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("submission should produce commands")
	}
	cur := m.currentChat()
	if cur == nil {
		t.Fatal("submitting without a chat should create one")
	}
	if cur.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", cur.MessageCount())
	}
}

func TestRenameOverlayFlow(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{{ID: "100", Name: "old"}}})

	m, _ = pressKey(m, tea.KeyCtrlR)
	if m.overlay != overlayRename {
		t.Fatal("ctrl+r should open the rename prompt")
	}
	if m.prompt.Value() != "old" {
		t.Errorf("prompt pre-fill = %q", m.prompt.Value())
	}

	m.prompt.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.session.Get("100").Name; got != "oldx" {
		t.Errorf("Name = %q, want oldx", got)
	}
}

func TestSummarizeWithoutDocument(t *testing.T) {
	m := newTestWorkspace(t)

	m, _ = pressKey(m, tea.KeyCtrlS)
	if !m.banner.Visible() || m.banner.Message() != msgSummarizeNoDocument {
		t.Errorf("banner = %q", m.banner.Message())
	}
	if m.session.IsLoading() {
		t.Error("summarize without a document must not submit")
	}
}

func TestStageAttachmentRejectsWrongType(t *testing.T) {
	m := newTestWorkspace(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	m, _ = m.stageAttachment(path)
	if m.composer.Attachment() != nil {
		t.Error("rejected file must not be staged")
	}
	if m.banner.Message() != "Please upload only PDF or DOCX files." {
		t.Errorf("banner = %q", m.banner.Message())
	}
}

func TestStageAttachmentAcceptsPDF(t *testing.T) {
	m := newTestWorkspace(t)
	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	m, _ = m.stageAttachment(path)
	att := m.composer.Attachment()
	if att == nil || att.Name != "paper.pdf" {
		t.Fatalf("attachment = %+v", att)
	}
	if !m.preview.Open() {
		t.Error("preview pane should open for a staged PDF")
	}
}

func TestChatCreatedAdoptsServerID(t *testing.T) {
	m := newTestWorkspace(t)
	chat := m.session.Create()

	m, _ = m.Update(session.ChatCreatedMsg{LocalID: chat.ID, ServerID: "srv-1"})
	if m.session.Get("srv-1") == nil {
		t.Error("server ID not adopted")
	}
}

func TestIdentityClearedElsewhereLogsOut(t *testing.T) {
	m := newTestWorkspace(t)

	m, cmd := m.Update(IdentityChangedMsg{Identity: store.Identity{}})
	if cmd == nil {
		t.Fatal("expected commands")
	}
	// One of the batched commands must deliver LogoutMsg.
	if !batchDelivers(cmd, func(msg tea.Msg) bool {
		_, ok := msg.(LogoutMsg)
		return ok
	}) {
		t.Error("cleared identity should trigger LogoutMsg")
	}
}

func TestGuestIdentityChangeKeepsWorkspace(t *testing.T) {
	m := newTestWorkspace(t)

	m, cmd := m.Update(IdentityChangedMsg{Identity: store.Identity{Guest: true}})
	if batchDelivers(cmd, func(msg tea.Msg) bool {
		_, ok := msg.(LogoutMsg)
		return ok
	}) {
		t.Error("a guest identity must not trigger LogoutMsg")
	}
	if !m.isGuest() {
		t.Error("workspace should run in guest mode after the change")
	}
}

func TestBannerDismissedWithEsc(t *testing.T) {
	m := newTestWorkspace(t)

	m, _ = m.Update(session.SyncFailedMsg{Warning: session.WarnPinSync})
	if !m.banner.Visible() {
		t.Fatal("banner should be visible")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.banner.Visible() {
		t.Error("esc should dismiss the banner")
	}
}

// batchDelivers runs each non-blocking command in a batch and reports
// whether any produced a message matching the predicate.
func batchDelivers(cmd tea.Cmd, match func(tea.Msg) bool) bool {
	if cmd == nil {
		return false
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if match(c()) {
				return true
			}
		}
		return false
	}
	return match(msg)
}

func TestThemeToggleFlips(t *testing.T) {
	m := newTestWorkspace(t)
	wasDark := m.theme.IsDark

	m, _ = pressKey(m, tea.KeyCtrlB)
	if m.theme.IsDark == wasDark {
		t.Error("ctrl+b should flip the theme")
	}
}

func TestViewRendersAllRegions(t *testing.T) {
	m := newTestWorkspace(t)
	m, _ = m.Update(session.HistoryLoadedMsg{Chats: []api.ChatRecord{{ID: "100", Name: "visible chat"}}})

	v := m.View()
	for _, want := range []string{"InsightPaper", "visible chat", "rivera"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
