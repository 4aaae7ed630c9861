// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// View renders the workspace.
func (m *Model) View() string {
	if m.overlay != overlayNone {
		return m.renderOverlay()
	}

	header := m.header.View()

	columns := []string{}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		columns = append(columns, m.sidebar.View(m.focus == focusSidebar))
	}
	columns = append(columns, m.viewport.View())
	if m.theme.GetLayoutMode() == styles.LayoutWide && m.preview.Open() {
		columns = append(columns, m.preview.View())
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	rows := []string{header, body}
	if m.banner.Visible() {
		rows = append(rows, m.banner.View())
	}
	rows = append(rows, m.composer.View(), m.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderOverlay draws the active modal over a dimmed workspace.
func (m *Model) renderOverlay() string {
	switch m.overlay {
	case overlayDeleteConfirm, overlayClearConfirm:
		if m.confirm != nil {
			return m.confirm.View(m.width, m.height)
		}
	case overlayRename, overlayAttach:
		if m.prompt != nil {
			return m.prompt.View(m.width, m.height)
		}
	}
	return ""
}
