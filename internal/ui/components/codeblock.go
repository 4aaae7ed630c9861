// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// =============================================================================
// FENCED CODE HIGHLIGHTING
// =============================================================================

// Answers arrive as markdown and normally go through glamour, which already
// highlights fenced code. When the glamour renderer is unavailable we still
// want readable code, so this path highlights fences directly with chroma.

// CodeBlock is one fenced block pulled out of an answer.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
}

// Render returns the block highlighted and boxed for terminal display.
func (c CodeBlock) Render() string {
	code := strings.TrimSpace(c.Code)

	header := ""
	if c.Language != "" {
		badge := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.Overlay).
			Padding(0, 1).
			Render(c.Language)
		header = badge + "\n"
	}

	maxWidth := maxInt(c.MaxWidth-4, 20)
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(header + highlightCode(code, c.Language))
}

// HighlightFences replaces ``` fenced blocks in text with highlighted
// renditions and leaves everything else untouched.
func HighlightFences(text string, maxWidth int) string {
	lines := strings.Split(text, "\n")

	var out []string
	var codeLines []string
	language := ""
	inFence := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			if inFence {
				cb := CodeBlock{Language: language, Code: strings.Join(codeLines, "\n"), MaxWidth: maxWidth}
				out = append(out, cb.Render())
				codeLines = nil
				language = ""
				inFence = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inFence = true
			}
		case inFence:
			codeLines = append(codeLines, line)
		default:
			out = append(out, line)
		}
	}

	// Unclosed fence: render what we have.
	if inFence && len(codeLines) > 0 {
		cb := CodeBlock{Language: language, Code: strings.Join(codeLines, "\n"), MaxWidth: maxWidth}
		out = append(out, cb.Render())
	}

	return strings.Join(out, "\n")
}

// highlightCode runs code through chroma's terminal formatter. Returns the
// input unchanged when tokenizing or formatting fails.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
