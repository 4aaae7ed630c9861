// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
)

// =============================================================================
// MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers the account's chats from the server.
type HistoryLoadedMsg struct {
	Chats []api.ChatRecord
}

// HistoryFailedMsg reports that the chat list could not be fetched.
type HistoryFailedMsg struct {
	Err error
}

// ChatCreatedMsg reports the server-assigned ID for a locally created chat.
type ChatCreatedMsg struct {
	LocalID  string
	ServerID string
}

// SyncFailedMsg reports a mutation that applied locally but could not be
// mirrored server-side. Warning is the banner text; the local state stays.
type SyncFailedMsg struct {
	Warning string
	Err     error
}

// AnswerMsg delivers the backend's answer to a submitted question.
type AnswerMsg struct {
	ChatID       string // local chat the question belongs to
	ServerChatID string // server-side chat the answer was recorded under
	Response     string
	Title        string
	Author       string
}

// AnswerFailedMsg reports a failed submission. Message is the inline error
// text for the thread.
type AnswerFailedMsg struct {
	ChatID  string
	Message string
	Err     error
}

// =============================================================================
// COMMANDS
// =============================================================================

// LoadHistoryCmd fetches the chat list for the signed-in account.
func LoadHistoryCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		chats, err := client.ChatHistory(context.Background())
		if err != nil {
			return HistoryFailedMsg{Err: err}
		}
		return HistoryLoadedMsg{Chats: chats}
	}
}

// SyncCreateCmd registers a locally created chat server-side. Failures are
/// silent: the local chat stands on its own and the server copy appears on
// the first submitted question instead.
func SyncCreateCmd(client *api.Client, localID, name string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.CreateChat(context.Background(), name)
		if err != nil {
			return nil
		}
		return ChatCreatedMsg{LocalID: localID, ServerID: resp.ChatID}
	}
}

// SyncDeleteCmd mirrors a local deletion server-side.
func SyncDeleteCmd(client *api.Client, chatID string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteChat(context.Background(), chatID); err != nil {
			return SyncFailedMsg{Warning: WarnDeleteSync, Err: err}
		}
		return nil
	}
}

// SyncRenameCmd mirrors a local rename server-side.
func SyncRenameCmd(client *api.Client, chatID, name string) tea.Cmd {
	return func() tea.Msg {
		if err := client.RenameChat(context.Background(), chatID, name); err != nil {
			return SyncFailedMsg{Warning: WarnRenameSync, Err: err}
		}
		return nil
	}
}

// SyncPinCmd mirrors a local pin toggle server-side.
func SyncPinCmd(client *api.Client, chatID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := client.TogglePin(context.Background(), chatID); err != nil {
			return SyncFailedMsg{Warning: WarnPinSync, Err: err}
		}
		return nil
	}
}

// SyncClearCmd mirrors a local thread clear server-side.
func SyncClearCmd(client *api.Client, chatID string) tea.Cmd {
	return func() tea.Msg {
		if err := client.ClearMessages(context.Background(), chatID); err != nil {
			return SyncFailedMsg{Warning: WarnClearSync, Err: err}
		}
		return nil
	}
}

// AskCmd submits a question (and optional attachment) and returns the
// backend's answer. The fallback message mirrors what the workspace shows
// when the server gives no structured error.
func AskCmd(client *api.Client, req api.ProcessRequest) tea.Cmd {
	chatID := req.ChatID
	return func() tea.Msg {
		resp, err := client.ProcessDocument(context.Background(), req)
		if err != nil {
			return AnswerFailedMsg{
				ChatID:  chatID,
				Message: api.ErrorMessage(err, "An unexpected error occurred"),
				Err:     err,
			}
		}
		return AnswerMsg{
			ChatID:       chatID,
			ServerChatID: resp.ChatID,
			Response:     resp.Response,
			Title:        resp.Title,
			Author:       resp.Author,
		}
	}
}
