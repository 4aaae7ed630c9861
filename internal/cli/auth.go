// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/config"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN / LOGOUT / STATUS
// =============================================================================

// HandleLogin prompts for credentials, logs in, and persists the session.
func HandleLogin(args []string) error {
	p := NewArgParser(args)

	username := p.FlagOr("username", p.Flag("u"))
	if username == "" {
		var err error
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}
	if username == "" {
		return errors.New("username is required")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	client := api.NewClient(config.Global().Server.BaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrConnection) {
			return errors.New("Connection error. Please try again later.")
		}
		return errors.New(api.ErrorMessage(err, "Username or password is incorrect"))
	}
	if resp.Token == "" {
		return errors.New("Username or password is incorrect")
	}

	st, err := store.New()
	if err != nil {
		return err
	}
	if err := st.SetLogin(resp.Token, resp.User); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	fmt.Println(styles.RenderSuccess("Login successful!"))
	return nil
}

// HandleLogout clears the persisted session. Other running processes pick
// the change up through the identity watcher.
func HandleLogout(args []string) error {
	st, err := store.New()
	if err != nil {
		return err
	}
	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println(styles.RenderSuccess("Logged out"))
	return nil
}

// HandleStatus prints the current identity.
func HandleStatus(args []string) error {
	st, err := store.New()
	if err != nil {
		return err
	}
	id, err := st.Load()
	if err != nil {
		return err
	}

	switch {
	case id.IsAuthenticated():
		fmt.Printf("Logged in as %s\n", id.Username())
	case id.IsGuest():
		fmt.Println("Browsing as guest (chats are stored locally)")
	default:
		fmt.Println("Not logged in")
	}
	fmt.Printf("Server: %s\n", config.Global().Server.BaseURL)
	return nil
}

// =============================================================================
// PROMPTS
// =============================================================================

// promptLine reads one trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a password from stdin without echoing.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(passBytes)), nil
}
