// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - bottom status strip
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusSyncing
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusSyncing:
		return "Syncing..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking, StatusSyncing:
		return "~"
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// shortcut is one key hint in the status bar.
type shortcut struct {
	key  string
	desc string
}

var workspaceShortcuts = []shortcut{
	{"ctrl+n", "new"},
	{"ctrl+u", "upload"},
	{"ctrl+s", "summarize"},
	{"tab", "sidebar"},
	{"ctrl+q", "quit"},
}

// StatusBar is the bottom status strip: identity, status, key hints.
type StatusBar struct {
	Username      string
	Guest         bool
	Status        Status
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetIdentity updates the identity segment.
func (s *StatusBar) SetIdentity(username string, guest bool) {
	s.Username = username
	s.Guest = guest
}

// View renders the status bar.
func (s *StatusBar) View() string {
	var left strings.Builder

	left.WriteString(s.Status.Icon())
	left.WriteString(" ")
	left.WriteString(s.Status.String())
	left.WriteString("  ")

	if s.Guest {
		left.WriteString("guest")
	} else if s.Username != "" {
		left.WriteString(s.Username)
	}

	var right string
	if s.ShowShortcuts && s.Width >= 70 {
		parts := make([]string, 0, len(workspaceShortcuts))
		for _, sc := range workspaceShortcuts {
			parts = append(parts,
				s.theme.ShortcutKey.Render(sc.key)+" "+s.theme.ShortcutDesc.Render(sc.desc))
		}
		right = strings.Join(parts, "  ")
	}

	leftStr := left.String()
	gap := s.Width - lipgloss.Width(leftStr) - lipgloss.Width(right) - 2
	if gap < 1 {
		right = ""
		gap = maxInt(s.Width-lipgloss.Width(leftStr)-2, 1)
	}

	return s.theme.StatusBar.Width(s.Width).Render(
		leftStr + strings.Repeat(" ", gap) + right)
}
