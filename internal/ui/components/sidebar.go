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
// SIDEBAR COMPONENT - chat list with search
// =============================================================================

// pinGlyph marks pinned chats in the list.
const pinGlyph = "*"

// Sidebar lists the chats, pinned first, with an optional search filter.
type Sidebar struct {
	chats     []*model.Chat
	currentID string
	cursor    int
	offset    int

	search    textinput.Model
	searching bool

	width  int
	height int
	theme  *styles.Theme
}

// NewSidebar creates the sidebar component.
func NewSidebar(theme *styles.Theme) *Sidebar {
	search := textinput.New()
	search.Placeholder = "Search chats..."
	search.CharLimit = 64
	search.Prompt = "/ "

	return &Sidebar{
		search: search,
		width:  32,
		height: 24,
		theme:  theme,
	}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.search.Width = maxInt(width-6, 8)
}

// SetChats replaces the visible chat list. The cursor follows the chat that
// was selected before the update when it is still present.
func (s *Sidebar) SetChats(chats []*model.Chat, currentID string) {
	s.chats = chats
	s.currentID = currentID
	s.cursor = 0
	for i, c := range chats {
		if c.ID == currentID {
			s.cursor = i
			break
		}
	}
	s.clampScroll()
}

// Selected returns the chat under the cursor, or nil for an empty list.
func (s *Sidebar) Selected() *model.Chat {
	if s.cursor < 0 || s.cursor >= len(s.chats) {
		return nil
	}
	return s.chats[s.cursor]
}

// MoveUp moves the cursor one row up.
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
		s.clampScroll()
	}
}

// MoveDown moves the cursor one row down.
func (s *Sidebar) MoveDown() {
	if s.cursor < len(s.chats)-1 {
		s.cursor++
		s.clampScroll()
	}
}

// =============================================================================
// SEARCH
// =============================================================================

// StartSearch focuses the search input.
func (s *Sidebar) StartSearch() tea.Cmd {
	s.searching = true
	return s.search.Focus()
}

// StopSearch blurs and clears the search input.
func (s *Sidebar) StopSearch() {
	s.searching = false
	s.search.Blur()
	s.search.Reset()
}

// Searching reports whether the search input has focus.
func (s *Sidebar) Searching() bool {
	return s.searching
}

// Query returns the current search text.
func (s *Sidebar) Query() string {
	return s.search.Value()
}

// Update forwards key events to the search input while it has focus.
func (s *Sidebar) Update(msg tea.Msg) tea.Cmd {
	if !s.searching {
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return cmd
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the sidebar.
func (s *Sidebar) View(focused bool) string {
	var b strings.Builder

	b.WriteString(s.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	if s.searching || s.search.Value() != "" {
		b.WriteString(s.theme.SidebarSearch.Render(s.search.View()))
		b.WriteString("\n")
	}

	rows := s.visibleRows()
	if len(s.chats) == 0 {
		b.WriteString(s.theme.SidebarEmpty.Render("No chats found"))
	} else {
		start := s.offset
		end := minInt(start+rows, len(s.chats))
		for i := start; i < end; i++ {
			b.WriteString(s.renderRow(i))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	frame := s.theme.Sidebar
	if focused {
		frame = s.theme.SidebarFocused
	}
	return frame.
		Width(s.width).
		Height(s.height).
		Render(b.String())
}

func (s *Sidebar) renderRow(i int) string {
	chat := s.chats[i]

	marker := "  "
	if chat.Pinned {
		marker = s.theme.SidebarPin.Render(pinGlyph) + " "
	}

	nameWidth := maxInt(s.width-8, 6)
	name := util.TruncateWidth(chat.Name, nameWidth)

	row := marker + name
	if i == s.cursor {
		return s.theme.SidebarItemSelected.Width(s.width - 4).Render(row)
	}
	return s.theme.SidebarItem.Width(s.width - 4).Render(row)
}

// visibleRows returns how many list rows fit below the title and search box.
func (s *Sidebar) visibleRows() int {
	rows := s.height - 3
	if s.searching || s.search.Value() != "" {
		rows -= 2
	}
	return maxInt(rows, 1)
}

func (s *Sidebar) clampScroll() {
	rows := s.visibleRows()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}
