// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG - destructive action confirmation
// =============================================================================

// Exact prompts for the destructive chat actions.
const (
	ConfirmDeleteChat    = "Are you sure you want to delete this chat?"
	ConfirmClearMessages = "Clear all messages in this chat?"
)

// ConfirmDialog asks a yes/no question before a destructive action runs.
type ConfirmDialog struct {
	title   string
	body    string
	confirm string
	danger  bool

	// focusConfirm selects the confirm button; cancel is the default.
	focusConfirm bool
	theme        *styles.Theme
}

// NewConfirmDialog creates a confirmation dialog.
func NewConfirmDialog(theme *styles.Theme, title, body, confirmLabel string, danger bool) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		body:    body,
		confirm: confirmLabel,
		danger:  danger,
		theme:   theme,
	}
}

// Toggle moves focus between the cancel and confirm buttons.
func (d *ConfirmDialog) Toggle() {
	d.focusConfirm = !d.focusConfirm
}

// Confirmed reports whether the confirm button has focus.
func (d *ConfirmDialog) Confirmed() bool {
	return d.focusConfirm
}

// View renders the dialog box centered in the given area.
func (d *ConfirmDialog) View(width, height int) string {
	cancelStyle := d.theme.ButtonActive
	confirmStyle := d.theme.Button
	if d.focusConfirm {
		cancelStyle = d.theme.Button
		confirmStyle = d.theme.ButtonActive
		if d.danger {
			confirmStyle = d.theme.ButtonDanger
		}
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Top,
		cancelStyle.Render("Cancel"),
		"  ",
		confirmStyle.Render(d.confirm),
	)

	box := d.theme.OverlayBox.Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			d.theme.OverlayTitle.Render(d.title),
			"",
			d.theme.OverlayBody.Render(d.body),
			"",
			buttons,
		),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// PROMPT DIALOG - single-line text entry (rename)
// =============================================================================

// PromptDialog collects one line of text, pre-filled with the current value.
type PromptDialog struct {
	title string
	input textinput.Model
	theme *styles.Theme
}

// NewPromptDialog creates a prompt pre-filled with an initial value.
func NewPromptDialog(theme *styles.Theme, title, initial string) *PromptDialog {
	input := textinput.New()
	input.CharLimit = 128
	input.Width = 40
	input.Prompt = "> "
	input.SetValue(initial)
	input.CursorEnd()
	input.Focus()

	return &PromptDialog{
		title: title,
		input: input,
		theme: theme,
	}
}

// Value returns the entered text.
func (d *PromptDialog) Value() string {
	return d.input.Value()
}

// Update forwards key events to the text input.
func (d *PromptDialog) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// View renders the prompt box centered in the given area.
func (d *PromptDialog) View(width, height int) string {
	box := d.theme.OverlayBox.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			d.theme.OverlayTitle.Render(d.title),
			"",
			d.input.View(),
			"",
			d.theme.ShortcutDesc.Render("enter save | esc cancel"),
		),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
