// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive subcommands: login, logout,
// status, chats, and one-shot ask. Running the binary with no subcommand
// starts the TUI.
package cli

import (
	"fmt"
	"os"
)

// Version information, set at build time from main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies the requested subcommand.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdChats
	CmdAsk
	CmdVersion
	CmdHelp
)

// Parse maps os.Args onto a command and its remaining arguments.
func Parse() (Command, []string) {
	if len(os.Args) < 2 {
		return CmdTUI, nil
	}

	rest := os.Args[2:]
	switch os.Args[1] {
	case "login":
		return CmdLogin, rest
	case "logout":
		return CmdLogout, rest
	case "status":
		return CmdStatus, rest
	case "chats", "sessions":
		return CmdChats, rest
	case "ask":
		return CmdAsk, rest
	case "version", "--version", "-v":
		return CmdVersion, rest
	case "help", "--help", "-h":
		return CmdHelp, rest
	default:
		// Unknown tokens fall through to the TUI so flag-only invocations
		// keep working.
		return CmdTUI, os.Args[1:]
	}
}

// PrintVersion prints the version line.
func PrintVersion() {
	fmt.Printf("insight-tui %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// PrintUsage prints the top-level usage text.
func PrintUsage() {
	fmt.Print(`insight-tui - chat with your documents from the terminal

Usage:
  insight-tui                      Start the interactive workspace
  insight-tui login [--username U] Log in and persist the session
  insight-tui logout               Clear the persisted session
  insight-tui status               Show the current identity
  insight-tui chats                List your chats, pinned first
  insight-tui ask QUESTION...      Ask one question and print the answer
      --file PATH                  Attach a PDF or DOCX document
      --chat ID                    Continue an existing chat
  insight-tui version              Print version information
  insight-tui help                 Show this help

Environment:
  INSIGHT_SERVER_URL               Override the backend URL
  INSIGHT_THEME                    "dark" or "light"
`)
}
