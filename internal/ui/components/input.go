// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/model"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
	"github.com/insightpaper/insight-tui/internal/util"
)

// =============================================================================
// COMPOSER COMPONENT - question input with staged attachment
// =============================================================================

// Composer is the single-line question input plus the staged attachment card.
type Composer struct {
	input      textinput.Model
	attachment *model.Attachment
	loading    bool

	width int
	theme *styles.Theme
}

// NewComposer creates the composer.
func NewComposer(theme *styles.Theme) *Composer {
	input := textinput.New()
	input.Placeholder = "Ask about your document..."
	input.CharLimit = 4096
	input.Prompt = "> "

	return &Composer{
		input: input,
		width: 80,
		theme: theme,
	}
}

// Focus focuses the question input.
func (c *Composer) Focus() tea.Cmd {
	return c.input.Focus()
}

// Blur removes focus from the question input.
func (c *Composer) Blur() {
	c.input.Blur()
}

// Focused reports whether the question input has focus.
func (c *Composer) Focused() bool {
	return c.input.Focused()
}

// SetWidth updates the composer width.
func (c *Composer) SetWidth(width int) {
	c.width = width
	c.input.Width = maxInt(width-6, 10)
}

// Value returns the current question text.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the question text.
func (c *Composer) SetValue(value string) {
	c.input.SetValue(value)
}

// Reset clears the question text.
func (c *Composer) Reset() {
	c.input.Reset()
}

// =============================================================================
// ATTACHMENT
// =============================================================================

// SetAttachment stages a validated attachment for the next submission.
func (c *Composer) SetAttachment(att *model.Attachment) {
	c.attachment = att
}

// Attachment returns the staged attachment, or nil.
func (c *Composer) Attachment() *model.Attachment {
	return c.attachment
}

// ClearAttachment drops the staged attachment.
func (c *Composer) ClearAttachment() {
	c.attachment = nil
}

// SetLoading toggles the in-flight state. While loading the composer shows a
// waiting hint instead of accepting another submission.
func (c *Composer) SetLoading(loading bool) {
	c.loading = loading
}

// Loading reports whether a submission is in flight.
func (c *Composer) Loading() bool {
	return c.loading
}

// Update forwards key events to the question input.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the composer: staged attachment card above the input line.
func (c *Composer) View() string {
	var b strings.Builder

	if c.attachment != nil {
		name := util.TruncateWidth(c.attachment.Name, maxInt(c.width-24, 12))
		card := c.theme.AttachmentName.Render(name) +
			"  " +
			c.theme.AttachmentSize.Render(util.FormatByteSize(c.attachment.Size)) +
			"  " +
			c.theme.ShortcutDesc.Render("ctrl+x remove")
		b.WriteString(c.theme.AttachmentCard.Render(card))
		b.WriteString("\n")
	}

	if c.loading {
		b.WriteString(c.theme.ThinkingText.Render("Waiting for answer..."))
		b.WriteString("\n")
	}

	b.WriteString(c.input.View())

	return c.theme.InputContainer.Width(c.width).Render(b.String())
}
