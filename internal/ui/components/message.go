// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/insightpaper/insight-tui/internal/model"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders assistant answers, which arrive as markdown.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails.
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display. Without a
// working glamour renderer it still highlights fenced code via chroma.
func renderMarkdown(content string, width int) string {
	if markdownRenderer == nil {
		return HighlightFences(content, width)
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return HighlightFences(content, width)
	}
	return strings.TrimRight(rendered, "\n")
}

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single conversation entry.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a bubble for a message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Kind: model.KindResponse}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Kind {
	case model.KindUser:
		return b.renderUserBubble()
	case model.KindError:
		return b.renderErrorBubble()
	default:
		return b.renderResponseBubble()
	}
}

// ==========================================================================
// USER BUBBLE - right-aligned question, optional attachment chip
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := maxInt(b.Width-12, 20)
	wrappedContent := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrappedContent)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrappedContent)

	meta := b.theme.MessageSender.Render(b.Message.Kind.DisplayName())
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		meta += " " + b.theme.MessageTime.Render(b.Message.Timestamp.Format("15:04:05"))
	}
	if b.Message.FileName != "" {
		meta += "  " + b.theme.MessageFile.Render("[FILE] "+b.Message.FileName)
	}

	block := lipgloss.JoinVertical(lipgloss.Right, meta, bubble)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

// ==========================================================================
// RESPONSE BUBBLE - left-aligned markdown answer
// ==========================================================================

func (b *MessageBubble) renderResponseBubble() string {
	content := renderMarkdown(b.Message.Content, maxInt(b.Width-8, 20))
	if content == "" {
		content = "..."
	}

	contentWidth := minInt(maxLineWidth(content)+4, b.Width-8)
	contentWidth = maxInt(contentWidth, 20)

	bubble := b.theme.ResponseBubble.Width(contentWidth).Render(content)

	meta := b.theme.MessageSender.Render(b.Message.Kind.DisplayName())
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		meta += " " + b.theme.MessageTime.Render(b.Message.Timestamp.Format("15:04:05"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
}

// ==========================================================================
// ERROR BUBBLE - inline failure notice, never persisted
// ==========================================================================

func (b *MessageBubble) renderErrorBubble() string {
	maxContentWidth := maxInt(b.Width-8, 20)
	wrapped := wordWrap(b.Message.Content, maxContentWidth)

	bubble := b.theme.ErrorBubble.Render(wrapped)
	meta := b.theme.AuthError.Render(b.Message.Kind.DisplayName())

	return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
}
