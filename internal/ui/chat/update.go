// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/model"
	"github.com/insightpaper/insight-tui/internal/preview"
	"github.com/insightpaper/insight-tui/internal/session"
	"github.com/insightpaper/insight-tui/internal/ui/components"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// Update handles workspace events.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		cmd := m.spinner.Update(msg)
		if m.spinner.Active() {
			m.refreshThread()
		}
		return m, cmd

	case components.BannerExpiredMsg:
		m.banner.Expire(msg)
		return m, nil

	case session.HistoryLoadedMsg:
		m.session.Hydrate(msg.Chats)
		m.refreshSidebar()
		m.refreshThread()
		return m, nil

	case session.HistoryFailedMsg:
		return m, m.banner.Show(components.BannerError, msgHistoryLoadFailed)

	case session.ChatCreatedMsg:
		m.session.AdoptServerID(msg.LocalID, msg.ServerID)
		m.refreshSidebar()
		return m, nil

	case session.SyncFailedMsg:
		return m, m.banner.Show(components.BannerWarning, msg.Warning)

	case session.AnswerMsg:
		return m.handleAnswer(msg)

	case session.AnswerFailedMsg:
		return m.handleAnswerFailed(msg)

	case IdentityChangedMsg:
		return m.handleIdentityChanged(msg)

	case guestChatsLoadedMsg:
		if msg.err != nil {
			return m, m.banner.Show(components.BannerError, "Failed to load saved chats")
		}
		m.session.HydrateLocal(msg.chats)
		m.refreshSidebar()
		m.refreshThread()
		return m, nil

	case guestPersistFailedMsg:
		return m, m.banner.Show(components.BannerWarning, "Failed to save chat locally")
	}

	return m, nil
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	sidebarWidth := 0
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		sidebarWidth = m.cfg.UI.SidebarWidth
	}
	previewWidth := 0
	if m.theme.GetLayoutMode() == styles.LayoutWide && m.preview.Open() {
		previewWidth = width / 4
	}

	threadWidth := width - sidebarWidth - previewWidth
	threadHeight := height - 7 // header, banner row, composer, status bar

	m.header.SetWidth(width)
	m.sidebar.SetSize(sidebarWidth, threadHeight)
	m.preview.SetSize(previewWidth, threadHeight)
	m.viewport.Width = atLeast(threadWidth-2, 20)
	m.viewport.Height = atLeast(threadHeight, 5)
	m.composer.SetWidth(width)
	m.banner.SetWidth(width)
	m.statusbar.SetWidth(width)

	m.refreshThread()
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	// A visible notice claims esc before anything else sees it.
	if m.banner.Visible() && key.Matches(msg, m.keyMap.DismissBanner) {
		m.banner.Dismiss()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.FocusSidebar):
		return m.toggleFocus()

	case key.Matches(msg, m.keyMap.NewChat):
		return m.newChat()

	case key.Matches(msg, m.keyMap.Upload):
		m.overlay = overlayAttach
		m.prompt = components.NewPromptDialog(m.theme, "Attach document", "")
		return m, nil

	case key.Matches(msg, m.keyMap.RemoveAttachment):
		m.composer.ClearAttachment()
		m.preview.Clear()
		m.setSize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keyMap.Summarize):
		return m.summarize()

	case key.Matches(msg, m.keyMap.DeleteChat):
		cur := m.currentChat()
		if cur == nil {
			return m, nil
		}
		m.overlay = overlayDeleteConfirm
		m.overlayTarget = cur.ID
		m.confirm = components.NewConfirmDialog(m.theme,
			"Delete chat", components.ConfirmDeleteChat, "Delete", true)
		return m, nil

	case key.Matches(msg, m.keyMap.ClearChat):
		cur := m.currentChat()
		if cur == nil {
			return m, nil
		}
		m.overlay = overlayClearConfirm
		m.overlayTarget = cur.ID
		m.confirm = components.NewConfirmDialog(m.theme,
			"Clear messages", components.ConfirmClearMessages, "Clear", true)
		return m, nil

	case key.Matches(msg, m.keyMap.RenameChat):
		cur := m.currentChat()
		if cur == nil {
			return m, nil
		}
		m.overlay = overlayRename
		m.overlayTarget = cur.ID
		m.prompt = components.NewPromptDialog(m.theme, "Rename chat", cur.Name)
		return m, nil

	case key.Matches(msg, m.keyMap.PinChat):
		return m.togglePin()

	case key.Matches(msg, m.keyMap.ToggleTheme):
		return m.toggleTheme()

	case key.Matches(msg, m.keyMap.Logout):
		return m.logout()

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleComposerKey(msg)
}

func (m *Model) toggleFocus() (*Model, tea.Cmd) {
	if m.focus == focusComposer {
		m.focus = focusSidebar
		m.composer.Blur()
		return m, nil
	}
	m.focus = focusComposer
	m.sidebar.StopSearch()
	return m, m.composer.Focus()
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.sidebar.Searching() {
		switch msg.String() {
		case "esc":
			m.sidebar.StopSearch()
			m.session.SetFilter("")
			m.refreshSidebar()
			return m, nil
		case "enter":
			// Keep the filter, move to list navigation.
			m.sidebar.StopSearch()
			return m, nil
		default:
			cmd := m.sidebar.Update(msg)
			m.session.SetFilter(m.sidebar.Query())
			m.refreshSidebar()
			return m, cmd
		}
	}

	if key.Matches(msg, m.keyMap.Search) {
		return m, m.sidebar.StartSearch()
	}

	switch msg.String() {
	case "up", "k":
		m.sidebar.MoveUp()
		return m, nil
	case "down", "j":
		m.sidebar.MoveDown()
		return m, nil
	case "enter":
		if sel := m.sidebar.Selected(); sel != nil {
			m.session.Select(sel.ID)
			m.refreshSidebar()
			m.refreshThread()
		}
		return m.toggleFocus()
	case "esc":
		m.session.SetFilter("")
		m.refreshSidebar()
		return m.toggleFocus()
	}
	return m, nil
}

func (m *Model) handleComposerKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Submit) {
		question := strings.TrimSpace(m.composer.Value())
		if question == "" {
			// A bare document submission turns into a summarize request.
			if m.composer.Attachment() == nil {
				return m, nil
			}
			question = summarizeQuery
		}
		return m.submitQuestion(question)
	}
	return m, m.composer.Update(msg)
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch m.overlay {
	case overlayDeleteConfirm, overlayClearConfirm:
		switch msg.String() {
		case "esc":
			m.closeOverlay()
			return m, nil
		case "tab", "left", "right":
			m.confirm.Toggle()
			return m, nil
		case "enter":
			confirmed := m.confirm.Confirmed()
			kind := m.overlay
			target := m.overlayTarget
			m.closeOverlay()
			if !confirmed {
				return m, nil
			}
			if kind == overlayDeleteConfirm {
				return m.deleteChat(target)
			}
			return m.clearChat(target)
		}
		return m, nil

	case overlayRename:
		switch msg.String() {
		case "esc":
			m.closeOverlay()
			return m, nil
		case "enter":
			name := m.prompt.Value()
			target := m.overlayTarget
			m.closeOverlay()
			return m.renameChat(target, name)
		}
		return m, m.prompt.Update(msg)

	case overlayAttach:
		switch msg.String() {
		case "esc":
			m.closeOverlay()
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.prompt.Value())
			m.closeOverlay()
			if path == "" {
				return m, nil
			}
			return m.stageAttachment(path)
		}
		return m, m.prompt.Update(msg)
	}

	m.closeOverlay()
	return m, nil
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.confirm = nil
	m.prompt = nil
	m.overlayTarget = ""
}

// =============================================================================
// CHAT MUTATIONS - applied locally first, synced after
// =============================================================================

func (m *Model) newChat() (*Model, tea.Cmd) {
	chat := m.session.Create()
	m.refreshSidebar()
	m.refreshThread()

	if m.isGuest() {
		return m, persistGuestChatCmd(m.archive, chat)
	}
	return m, session.SyncCreateCmd(m.client, chat.ID, chat.Name)
}

func (m *Model) deleteChat(id string) (*Model, tea.Cmd) {
	if !m.session.Delete(id) {
		return m, nil
	}
	m.refreshSidebar()
	m.refreshThread()

	if m.isGuest() {
		return m, deleteGuestChatCmd(m.archive, id)
	}
	return m, session.SyncDeleteCmd(m.client, id)
}

func (m *Model) renameChat(id, name string) (*Model, tea.Cmd) {
	if !m.session.Rename(id, name) {
		return m, nil
	}
	m.refreshSidebar()

	if m.isGuest() {
		return m, persistGuestChatCmd(m.archive, m.session.Get(id))
	}
	return m, session.SyncRenameCmd(m.client, id, strings.TrimSpace(name))
}

func (m *Model) togglePin() (*Model, tea.Cmd) {
	cur := m.currentChat()
	if cur == nil {
		return m, nil
	}
	if _, ok := m.session.TogglePin(cur.ID); !ok {
		return m, nil
	}
	m.refreshSidebar()

	if m.isGuest() {
		return m, persistGuestChatCmd(m.archive, m.session.Get(cur.ID))
	}
	return m, session.SyncPinCmd(m.client, cur.ID)
}

func (m *Model) clearChat(id string) (*Model, tea.Cmd) {
	if !m.session.ClearMessages(id) {
		return m, nil
	}
	m.refreshThread()

	if m.isGuest() {
		return m, persistGuestChatCmd(m.archive, m.session.Get(id))
	}
	return m, session.SyncClearCmd(m.client, id)
}

// =============================================================================
// ATTACHMENTS
// =============================================================================

func (m *Model) stageAttachment(path string) (*Model, tea.Cmd) {
	att, err := preview.Validate(path)
	if err != nil {
		return m, m.banner.Show(components.BannerError, preview.Message(err))
	}

	m.composer.SetAttachment(att)

	pane, err := preview.Render(att)
	if err != nil {
		return m, m.banner.Show(components.BannerError, preview.Message(err))
	}
	m.preview.SetContent(pane)
	m.setSize(m.width, m.height)
	return m, nil
}

func (m *Model) summarize() (*Model, tea.Cmd) {
	if m.composer.Attachment() == nil {
		return m, m.banner.Show(components.BannerWarning, msgSummarizeNoDocument)
	}
	return m.submitQuestion(summarizeQuery)
}

// =============================================================================
// SUBMISSION - single flight, optimistic append
// =============================================================================

func (m *Model) submitQuestion(question string) (*Model, tea.Cmd) {
	if !m.session.BeginSubmit() {
		return m, nil
	}

	cur := m.currentChat()
	if cur == nil {
		// First question with no chat yet: create one implicitly.
		cur = m.session.Create()
	}

	userMsg := cur.AddUserMessage(question)
	req := api.ProcessRequest{
		Query:    question,
		ChatName: cur.Name,
	}
	if !m.isGuest() {
		req.ChatID = cur.ID
	}
	if att := m.composer.Attachment(); att != nil {
		userMsg.FileName = att.Name
		req.FilePath = att.Path
		req.FileName = att.Name
	}

	// The typed text survives until the answer arrives; a failed submission
	// leaves it in place for another try.
	m.clearOnAnswer = strings.TrimSpace(m.composer.Value()) == question
	m.composer.SetLoading(true)
	m.statusbar.Status = components.StatusThinking
	m.refreshSidebar()
	m.refreshThread()

	return m, tea.Batch(
		m.spinner.Start(),
		session.AskCmd(m.client, req),
	)
}

func (m *Model) handleAnswer(msg session.AnswerMsg) (*Model, tea.Cmd) {
	m.session.EndSubmit()
	m.spinner.Stop()
	m.composer.SetLoading(false)
	m.statusbar.Status = components.StatusReady

	chat := m.session.Get(msg.ChatID)
	if chat == nil {
		chat = m.currentChat()
	}
	if chat == nil {
		return m, nil
	}

	chat.AddResponseMessage(msg.Response)

	// Adopt the server-side chat ID so later mutations target the right
	// record.
	if msg.ServerChatID != "" && msg.ServerChatID != chat.ID {
		m.session.AdoptServerID(chat.ID, msg.ServerChatID)
		chat = m.session.Get(msg.ServerChatID)
	}

	// A fresh chat takes the document title as its name.
	if chat != nil && chat.Name == model.DefaultChatName && msg.Title != "" {
		m.session.Rename(chat.ID, msg.Title)
	}

	if m.clearOnAnswer {
		m.composer.Reset()
		m.clearOnAnswer = false
	}

	// The staged document was consumed by this submission.
	m.composer.ClearAttachment()
	m.preview.Clear()
	m.setSize(m.width, m.height)

	m.refreshSidebar()
	m.refreshThread()

	if m.isGuest() {
		return m, persistGuestChatCmd(m.archive, chat)
	}
	// The server now owns this exchange; refresh from its history.
	return m, session.LoadHistoryCmd(m.client)
}

func (m *Model) handleAnswerFailed(msg session.AnswerFailedMsg) (*Model, tea.Cmd) {
	m.session.EndSubmit()
	m.spinner.Stop()
	m.composer.SetLoading(false)
	m.statusbar.Status = components.StatusReady
	m.clearOnAnswer = false

	chat := m.session.Get(msg.ChatID)
	if chat == nil {
		chat = m.currentChat()
	}
	if chat != nil {
		// Inline error entry; never persisted or sent to the server.
		chat.AddErrorMessage(msg.Message)
	}
	m.refreshThread()
	return m, m.banner.Show(components.BannerError, msg.Message)
}

// =============================================================================
// IDENTITY
// =============================================================================

func (m *Model) handleIdentityChanged(msg IdentityChangedMsg) (*Model, tea.Cmd) {
	rearm := waitIdentityCmd(m.watcher)

	// Logged out elsewhere: hand control back to the auth panel.
	if msg.Identity.IsAnonymous() {
		return m, tea.Batch(rearm, func() tea.Msg { return LogoutMsg{} })
	}

	// Same identity, nothing to do.
	if msg.Identity.Token == m.identity.Token && msg.Identity.Guest == m.identity.Guest {
		return m, rearm
	}

	m.identity = msg.Identity
	m.statusbar.SetIdentity(m.identity.Username(), m.identity.IsGuest())
	m.client = api.NewClient(m.client.BaseURL()).WithToken(m.identity.Token)

	if m.isGuest() {
		return m, tea.Batch(rearm, loadGuestChatsCmd(m.archive))
	}
	return m, tea.Batch(rearm, session.LoadHistoryCmd(m.client))
}

func (m *Model) logout() (*Model, tea.Cmd) {
	if err := m.store.Clear(); err != nil {
		return m, m.banner.Show(components.BannerError, "Failed to log out")
	}
	return m, func() tea.Msg { return LogoutMsg{} }
}

// =============================================================================
// THEME
// =============================================================================

func (m *Model) toggleTheme() (*Model, tea.Cmd) {
	m.theme.SetDark(!m.theme.IsDark)

	m.cfg.UI.Theme = "light"
	if m.theme.IsDark {
		m.cfg.UI.Theme = "dark"
	}
	// Persist best-effort; the toggle works either way.
	_ = m.cfg.Save()

	m.refreshThread()
	return m, nil
}
