// insight-tui - a terminal workspace for chatting with your documents.
//
// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/cli"
	"github.com/insightpaper/insight-tui/internal/config"
	"github.com/insightpaper/insight-tui/internal/storage"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/ui/auth"
	"github.com/insightpaper/insight-tui/internal/ui/chat"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	closeLog := setupLogging()
	defer closeLog()

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdLogin:
		exitOnError(cli.HandleLogin(args))
	case cli.CmdLogout:
		exitOnError(cli.HandleLogout(args))
	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(args))
	case cli.CmdChats:
		exitOnError(cli.HandleChats(args))
	case cli.CmdAsk:
		exitOnError(cli.HandleAsk(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// setupLogging sends the standard logger to a file so request logs never
// bleed into the TUI or command output. Logging is best-effort: without a
// writable home the logs are discarded.
func setupLogging() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	dir := filepath.Join(home, ".insightpaper")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "insight-tui.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// TUI BOOTSTRAP
// =============================================================================

func runTUI() {
	cfg := config.Global()
	theme := styles.NewThemeWithMode(cfg.UI.Theme == "dark")

	st, err := store.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	identity, err := st.Load()
	if err != nil {
		identity = store.Identity{}
	}

	watcher, err := store.NewWatcher(st)
	if err == nil {
		if err := watcher.Watch(); err != nil {
			watcher.Close()
			watcher = nil
		}
	} else {
		watcher = nil
	}
	if watcher != nil {
		defer watcher.Close()
	}

	archive, err := storage.Open()
	if err != nil {
		// Guest persistence is unavailable; the workspace still runs.
		archive = nil
	} else {
		defer archive.Close()
	}

	app := newApp(cfg, theme, st, watcher, archive, identity)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// ROOT MODEL - auth panel or workspace
// =============================================================================

type appState int

const (
	stateAuth appState = iota
	stateWorkspace
)

type appModel struct {
	state     appState
	auth      *auth.Model
	workspace *chat.Model

	cfg      *config.Config
	theme    *styles.Theme
	store    *store.Store
	watcher  *store.Watcher
	archive  *storage.ChatArchive
	identity store.Identity

	width  int
	height int
}

func newApp(cfg *config.Config, theme *styles.Theme, st *store.Store, watcher *store.Watcher, archive *storage.ChatArchive, identity store.Identity) *appModel {
	app := &appModel{
		cfg:      cfg,
		theme:    theme,
		store:    st,
		watcher:  watcher,
		archive:  archive,
		identity: identity,
	}

	if identity.IsAuthenticated() || identity.IsGuest() {
		app.state = stateWorkspace
		app.workspace = app.newWorkspace(identity)
	} else {
		app.state = stateAuth
		app.auth = auth.New(app.newClient(identity), st, theme)
	}
	return app
}

func (a *appModel) newClient(identity store.Identity) *api.Client {
	client := api.NewClient(a.cfg.Server.BaseURL)
	if identity.IsAuthenticated() {
		client = client.WithToken(identity.Token)
	}
	return client
}

func (a *appModel) newWorkspace(identity store.Identity) *chat.Model {
	return chat.New(chat.Options{
		Client:   a.newClient(identity),
		Store:    a.store,
		Watcher:  a.watcher,
		Archive:  a.archive,
		Identity: identity,
		Theme:    a.theme,
		Config:   a.cfg,
	})
}

func (a *appModel) Init() tea.Cmd {
	if a.state == stateWorkspace {
		return a.workspace.Init()
	}
	return a.auth.Init()
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case auth.DoneMsg:
		a.identity = msg.Identity
		a.workspace = a.newWorkspace(msg.Identity)
		a.state = stateWorkspace
		a.auth = nil

		cmds := []tea.Cmd{a.workspace.Init()}
		if a.width > 0 {
			a.workspace, _ = a.workspace.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		return a, tea.Batch(cmds...)

	case chat.LogoutMsg:
		a.identity = store.Identity{}
		a.auth = auth.New(a.newClient(a.identity), a.store, a.theme)
		a.state = stateAuth
		a.workspace = nil

		a.auth.SetSize(a.width, a.height)
		return a, a.auth.Init()
	}

	if a.state == stateWorkspace {
		var cmd tea.Cmd
		a.workspace, cmd = a.workspace.Update(msg)
		return a, cmd
	}
	var cmd tea.Cmd
	a.auth, cmd = a.auth.Update(msg)
	return a, cmd
}

func (a *appModel) View() string {
	if a.state == stateWorkspace {
		return a.workspace.View()
	}
	return a.auth.View()
}
