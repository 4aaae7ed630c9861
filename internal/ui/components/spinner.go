// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// =============================================================================
// THINKING SPINNER - shown while an answer is in flight
// =============================================================================

// ThinkingSpinner animates next to the "Thinking..." label while the server
// processes a question.
type ThinkingSpinner struct {
	spinner spinner.Model
	active  bool
	theme   *styles.Theme
}

// NewThinkingSpinner creates the spinner.
func NewThinkingSpinner(theme *styles.Theme) *ThinkingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner
	return &ThinkingSpinner{spinner: s, theme: theme}
}

// Start begins the animation and returns the tick command.
func (t *ThinkingSpinner) Start() tea.Cmd {
	t.active = true
	return t.spinner.Tick
}

// Stop halts the animation.
func (t *ThinkingSpinner) Stop() {
	t.active = false
}

// Active reports whether the spinner is running.
func (t *ThinkingSpinner) Active() bool {
	return t.active
}

// Update advances the animation on spinner ticks.
func (t *ThinkingSpinner) Update(msg tea.Msg) tea.Cmd {
	if !t.active {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// View renders the spinner with its label, or an empty string when idle.
func (t *ThinkingSpinner) View() string {
	if !t.active {
		return ""
	}
	return t.spinner.View() + " " + t.theme.ThinkingText.Render("Thinking...")
}
