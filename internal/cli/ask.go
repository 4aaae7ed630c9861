// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/config"
	"github.com/insightpaper/insight-tui/internal/preview"
	"github.com/insightpaper/insight-tui/internal/store"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders answers for terminal display.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// displayResponse renders markdown only when stdout is a terminal, so piped
// output stays raw.
func displayResponse(response string) {
	if markdownRenderer != nil && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := markdownRenderer.Render(response); err == nil {
			fmt.Print(rendered)
			return
		}
	}
	fmt.Println(response)
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk submits one question (optionally with a document) and prints
// the answer.
func HandleAsk(args []string) error {
	p := NewArgParser(args)

	question := strings.TrimSpace(p.Rest())
	filePath := p.FlagOr("file", p.Flag("f"))
	chatID := p.Flag("chat")

	if question == "" && filePath != "" {
		question = "Summarize the document"
	}
	if question == "" {
		return errors.New("usage: insight-tui ask QUESTION... [--file PATH] [--chat ID]")
	}

	cfg := config.Global()

	st, err := store.New()
	if err != nil {
		return err
	}
	id, err := st.Load()
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.Server.BaseURL)
	if id.IsAuthenticated() {
		client = client.WithToken(id.Token)
	}

	req := api.ProcessRequest{Query: question, ChatID: chatID}
	if filePath != "" {
		att, err := preview.Validate(filePath)
		if err != nil {
			return errors.New(preview.Message(err))
		}
		req.FilePath = att.Path
		req.FileName = att.Name
	}

	timeout := time.Duration(cfg.Server.UploadTimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return errors.New(api.ErrorMessage(err, "An unexpected error occurred"))
	}

	if resp.Title != "" {
		fmt.Fprintf(os.Stderr, "Document: %s", resp.Title)
		if resp.Author != "" {
			fmt.Fprintf(os.Stderr, " (%s)", resp.Author)
		}
		fmt.Fprintln(os.Stderr)
	}
	displayResponse(resp.Response)
	return nil
}
