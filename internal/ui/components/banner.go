// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// =============================================================================
// BANNER COMPONENT - transient warning / error strip
// =============================================================================

// BannerLevel selects the banner styling.
type BannerLevel int

const (
	BannerWarning BannerLevel = iota
	BannerError
)

// bannerTimeout is how long a banner stays up before auto-dismissing.
const bannerTimeout = 5 * time.Second

// BannerExpiredMsg dismisses a banner whose timeout elapsed. Seq guards
// against a stale timer clearing a newer banner.
type BannerExpiredMsg struct {
	Seq int
}

// Banner shows a one-line notice above the composer. Sync warnings land
// here; the chat content itself is never rolled back.
type Banner struct {
	level   BannerLevel
	message string
	seq     int
	visible bool

	width int
	theme *styles.Theme
}

// NewBanner creates a hidden banner.
func NewBanner(theme *styles.Theme) *Banner {
	return &Banner{theme: theme, width: 80}
}

// SetWidth updates the banner width.
func (b *Banner) SetWidth(width int) {
	b.width = width
}

// Show displays a message and returns the auto-dismiss timer command.
func (b *Banner) Show(level BannerLevel, message string) tea.Cmd {
	b.level = level
	b.message = message
	b.visible = true
	b.seq++

	seq := b.seq
	return tea.Tick(bannerTimeout, func(time.Time) tea.Msg {
		return BannerExpiredMsg{Seq: seq}
	})
}

// Expire hides the banner if the timer matches the visible one.
func (b *Banner) Expire(msg BannerExpiredMsg) {
	if msg.Seq == b.seq {
		b.visible = false
	}
}

// Dismiss hides the banner immediately.
func (b *Banner) Dismiss() {
	b.visible = false
}

// Visible reports whether the banner is showing.
func (b *Banner) Visible() bool {
	return b.visible
}

// Message returns the current banner text.
func (b *Banner) Message() string {
	return b.message
}

// View renders the banner, or an empty string when hidden.
func (b *Banner) View() string {
	if !b.visible {
		return ""
	}
	style := b.theme.BannerWarning
	indicator := styles.StatusIndicators.Warning
	if b.level == BannerError {
		style = b.theme.BannerError
		indicator = styles.StatusIndicators.Error
	}
	return style.Width(b.width).Render(indicator + " " + b.message)
}
