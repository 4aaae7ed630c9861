// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/config"
	"github.com/insightpaper/insight-tui/internal/model"
	"github.com/insightpaper/insight-tui/internal/session"
	"github.com/insightpaper/insight-tui/internal/storage"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/ui/components"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// focusTarget selects which panel receives key events.
type focusTarget int

const (
	focusComposer focusTarget = iota
	focusSidebar
)

// overlayKind selects the active modal, if any.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayDeleteConfirm
	overlayClearConfirm
	overlayRename
	overlayAttach
)

// Workspace banner texts not covered by the session warnings.
const (
	msgSummarizeNoDocument = "Please upload a document first to summarize"
	msgHistoryLoadFailed   = "Failed to load chat history"
	summarizeQuery         = "Summarize the document"

	welcomeHint = "Ask a question or upload a PDF or DOCX document to get started."
)

// Options carries the workspace dependencies.
type Options struct {
	Client   *api.Client
	Store    *store.Store
	Watcher  *store.Watcher
	Archive  *storage.ChatArchive
	Identity store.Identity
	Theme    *styles.Theme
	Config   *config.Config
}

// Model is the chat workspace.
type Model struct {
	session *session.Manager

	client   *api.Client
	store    *store.Store
	watcher  *store.Watcher
	archive  *storage.ChatArchive
	identity store.Identity
	cfg      *config.Config

	// UI components
	header    *components.Header
	sidebar   *components.Sidebar
	viewport  viewport.Model
	composer  *components.Composer
	banner    *components.Banner
	statusbar *components.StatusBar
	spinner   *components.ThinkingSpinner
	preview   *components.PreviewPane

	// Modal state
	overlay       overlayKind
	confirm       *components.ConfirmDialog
	prompt        *components.PromptDialog
	overlayTarget string

	// clearOnAnswer marks that the in-flight question was consumed from the
	// composer; only then does a successful answer clear the typed text.
	clearOnAnswer bool

	focus  focusTarget
	keyMap KeyMap
	theme  *styles.Theme

	width  int
	height int
}

// New creates the workspace.
func New(opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	vp := viewport.New(80, 20)

	m := &Model{
		session:   session.NewManager(),
		client:    opts.Client,
		store:     opts.Store,
		watcher:   opts.Watcher,
		archive:   opts.Archive,
		identity:  opts.Identity,
		cfg:       cfg,
		header:    components.NewHeader(theme),
		sidebar:   components.NewSidebar(theme),
		viewport:  vp,
		composer:  components.NewComposer(theme),
		banner:    components.NewBanner(theme),
		statusbar: components.NewStatusBar(theme),
		spinner:   components.NewThinkingSpinner(theme),
		preview:   components.NewPreviewPane(theme),
		keyMap:    DefaultKeyMap(),
		theme:     theme,
		width:     80,
		height:    24,
	}

	m.statusbar.SetIdentity(m.identity.Username(), m.identity.IsGuest())
	m.refreshSidebar()
	return m
}

// Init starts history loading and the identity watch.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.composer.Focus(),
		waitIdentityCmd(m.watcher),
	}
	if m.isGuest() {
		cmds = append(cmds, loadGuestChatsCmd(m.archive))
	} else {
		cmds = append(cmds, session.LoadHistoryCmd(m.client))
	}
	return tea.Batch(cmds...)
}

// isGuest reports whether the workspace runs against the local archive.
func (m *Model) isGuest() bool {
	return m.identity.IsGuest()
}

// currentChat returns the selected chat.
func (m *Model) currentChat() *model.Chat {
	return m.session.Current()
}

// refreshSidebar pushes the sorted chat list into the sidebar and header.
func (m *Model) refreshSidebar() {
	m.sidebar.SetChats(m.session.Sorted(), m.session.CurrentID())
	if cur := m.currentChat(); cur != nil {
		m.header.SetChat(cur.Name, cur.Pinned)
	} else {
		m.header.SetChat("", false)
	}
}

// refreshThread rebuilds the viewport content from the selected chat and
// scrolls to the latest message. Without a chat the welcome view shows.
func (m *Model) refreshThread() {
	cur := m.currentChat()
	if cur == nil {
		m.viewport.SetContent(m.theme.ThinkingText.Render(welcomeHint))
		return
	}

	content := renderThread(cur, m.viewport.Width, m.theme)
	if m.spinner.Active() {
		content += "\n" + m.spinner.View()
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// renderThread renders every message bubble for a chat.
func renderThread(chat *model.Chat, width int, theme *styles.Theme) string {
	if chat.IsEmpty() {
		return theme.ThinkingText.Render(welcomeHint)
	}

	out := ""
	for i := range chat.Messages {
		bubble := components.NewMessageBubble(chat.Messages[i], theme)
		bubble.SetWidth(width)
		if i > 0 {
			out += "\n\n"
		}
		out += bubble.View()
	}
	return out
}
