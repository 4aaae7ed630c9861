// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the login / register panel shown before the chat
// workspace. Successful logins persist the identity and hand off to the
// workspace after a short success-message delay; guests skip straight
// through.
package auth

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

// Mode selects the visible form.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// navigateDelay keeps the success message on screen before the workspace
// takes over, matching the login flow's one-second pause.
const navigateDelay = time.Second

// Panel messages.
const (
	MsgLoginSuccess    = "Login successful!"
	MsgLoginFailed     = "Username or password is incorrect"
	MsgConnectionError = "Connection error. Please try again later."
	MsgRegisterSuccess = "Registration successful!"
	MsgRegisterFailed  = "Registration failed. Please try again."
)

// DoneMsg tells the parent model that authentication finished and the
// workspace should take over.
type DoneMsg struct {
	Identity store.Identity
}

// statusKind styles the inline status line.
type statusKind int

const (
	statusNone statusKind = iota
	statusSuccess
	statusError
)

// Model is the auth panel.
type Model struct {
	mode  Mode
	focus int

	// loginInputs: username, password.
	// registerInputs: username, email, password.
	loginInputs    []textinput.Model
	registerInputs []textinput.Model

	status     string
	statusKind statusKind
	submitting bool

	client *api.Client
	store  *store.Store
	theme  *styles.Theme

	width  int
	height int
}

// New creates the auth panel.
func New(client *api.Client, st *store.Store, theme *styles.Theme) *Model {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Prompt = "> "

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Prompt = "> "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	regUsername := textinput.New()
	regUsername.Placeholder = "Username"
	regUsername.CharLimit = 64
	regUsername.Prompt = "> "

	regEmail := textinput.New()
	regEmail.Placeholder = "Email"
	regEmail.CharLimit = 128
	regEmail.Prompt = "> "

	regPassword := textinput.New()
	regPassword.Placeholder = "Password"
	regPassword.CharLimit = 128
	regPassword.Prompt = "> "
	regPassword.EchoMode = textinput.EchoPassword
	regPassword.EchoCharacter = '*'

	m := &Model{
		mode:           ModeLogin,
		loginInputs:    []textinput.Model{username, password},
		registerInputs: []textinput.Model{regUsername, regEmail, regPassword},
		client:         client,
		store:          st,
		theme:          theme,
		width:          80,
		height:         24,
	}
	m.loginInputs[0].Focus()
	return m
}

// Init returns the blink command for the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mode returns the visible form.
func (m *Model) Mode() Mode {
	return m.mode
}

// Status returns the inline status line for tests.
func (m *Model) Status() string {
	return m.status
}

// inputs returns the active form's inputs.
func (m *Model) inputs() []textinput.Model {
	if m.mode == ModeRegister {
		return m.registerInputs
	}
	return m.loginInputs
}

// setInputs writes back the active form's inputs.
func (m *Model) setInputs(in []textinput.Model) {
	if m.mode == ModeRegister {
		m.registerInputs = in
	} else {
		m.loginInputs = in
	}
}

// flip switches between login and register, clearing the status line.
func (m *Model) flip() {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.status = ""
	m.statusKind = statusNone
	m.setFocus(0)
}

// setFocus moves input focus to index i of the active form.
func (m *Model) setFocus(i int) {
	in := m.inputs()
	m.focus = i
	for j := range in {
		if j == i {
			in[j].Focus()
		} else {
			in[j].Blur()
		}
	}
	m.setInputs(in)
}
