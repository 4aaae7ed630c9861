// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/config"
	"github.com/insightpaper/insight-tui/internal/session"
	"github.com/insightpaper/insight-tui/internal/storage"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/util"
)

// =============================================================================
// CHATS COMMAND
// =============================================================================

// HandleChats lists the account's chats, pinned first, newest first.
// Guests see their local archive instead.
func HandleChats(args []string) error {
	st, err := store.New()
	if err != nil {
		return err
	}
	id, err := st.Load()
	if err != nil {
		return err
	}

	mgr := session.NewManager()

	switch {
	case id.IsAuthenticated():
		client := api.NewClient(config.Global().Server.BaseURL).WithToken(id.Token)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		records, err := client.ChatHistory(ctx)
		if err != nil {
			return errors.New(api.ErrorMessage(err, "Failed to load chat history"))
		}
		if len(records) == 0 {
			fmt.Println("No chats yet")
			return nil
		}
		mgr.Hydrate(records)

	case id.IsGuest():
		archive, err := storage.Open()
		if err != nil {
			return err
		}
		defer archive.Close()

		chats, err := archive.LoadChats()
		if err != nil {
			return err
		}
		if len(chats) == 0 {
			fmt.Println("No chats yet")
			return nil
		}
		mgr.HydrateLocal(chats)

	default:
		return errors.New("not logged in; run \"insight-tui login\" first")
	}

	for _, chat := range mgr.Sorted() {
		marker := " "
		if chat.Pinned {
			marker = "*"
		}
		fmt.Printf("%s %-16s %s (%s)\n",
			marker,
			chat.ID,
			util.TruncateRunes(chat.Name, 48),
			util.IntToString(chat.MessageCount())+" messages")
	}
	return nil
}
