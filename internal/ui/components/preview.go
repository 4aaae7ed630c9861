// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/insightpaper/insight-tui/internal/preview"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
	"github.com/insightpaper/insight-tui/internal/util"
)

// =============================================================================
// PREVIEW PANE COMPONENT - staged document preview
// =============================================================================

// PreviewPane shows the staged document: the file name header plus either a
// pointer to the transient PDF copy or the DOCX placeholder lines.
type PreviewPane struct {
	content *preview.Preview

	width  int
	height int
	theme  *styles.Theme
}

// NewPreviewPane creates an empty preview pane.
func NewPreviewPane(theme *styles.Theme) *PreviewPane {
	return &PreviewPane{width: 40, height: 24, theme: theme}
}

// SetSize updates the pane dimensions.
func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetContent replaces the pane content, releasing the previous document's
// transient copy.
func (p *PreviewPane) SetContent(content *preview.Preview) {
	if p.content != nil {
		p.content.Release()
	}
	p.content = content
}

// Clear empties the pane and releases any transient copy.
func (p *PreviewPane) Clear() {
	p.SetContent(nil)
}

// Open reports whether the pane has content to show.
func (p *PreviewPane) Open() bool {
	return p.content != nil
}

// View renders the pane.
func (p *PreviewPane) View() string {
	if p.content == nil {
		return ""
	}

	var b strings.Builder
	header := util.TruncateWidth(p.content.Name, maxInt(p.width-4, 8))
	b.WriteString(p.theme.PreviewHeader.Render(header))
	b.WriteString("\n\n")

	if p.content.IsPDF() {
		b.WriteString(p.theme.PreviewBody.Render(
			wordWrap("PDF copy staged at "+p.content.PDFPath, maxInt(p.width-4, 12))))
		b.WriteString("\n\n")
		b.WriteString(p.theme.ShortcutDesc.Render("open the copy in any PDF viewer"))
	} else {
		for _, line := range p.content.Placeholder {
			b.WriteString(p.theme.PreviewBody.Render(
				wordWrap(line, maxInt(p.width-4, 12))))
			b.WriteString("\n")
		}
	}

	return p.theme.PreviewPane.
		Width(p.width).
		Height(p.height).
		Render(b.String())
}
