// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/insightpaper/insight-tui/internal/ui/styles"
	"github.com/insightpaper/insight-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - brand plus current chat name
// =============================================================================

// Header is the single-line top strip.
type Header struct {
	ChatName string
	Pinned   bool
	Width    int
	theme    *styles.Theme
}

// NewHeader creates the header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetChat updates the displayed chat name and pin state.
func (h *Header) SetChat(name string, pinned bool) {
	h.ChatName = name
	h.Pinned = pinned
}

// View renders the header.
func (h *Header) View() string {
	brand := h.theme.HeaderBrand.Render("InsightPaper")

	name := util.TruncateWidth(h.ChatName, maxInt(h.Width-24, 10))
	if h.Pinned {
		name = pinGlyph + " " + name
	}
	title := h.theme.HeaderTitle.Render(name)

	gap := h.Width - lipgloss.Width(brand) - lipgloss.Width(title) - 4
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(h.Width).Render(
		brand + strings.Repeat(" ", gap) + title)
}
