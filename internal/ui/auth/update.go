// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/store"
)

// Update handles panel events.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case signupResultMsg:
		return m.handleSignupResult(msg)

	case navigateMsg:
		identity := msg.identity
		return m, func() tea.Msg { return DoneMsg{Identity: identity} }
	}

	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.inputs()))
		return m, nil

	case "shift+tab", "up":
		n := len(m.inputs())
		m.setFocus((m.focus + n - 1) % n)
		return m, nil

	case "ctrl+t":
		m.flip()
		return m, nil

	case "ctrl+g":
		return m.continueAsGuest()

	case "enter":
		return m.submit()
	}

	return m, m.updateFocused(msg)
}

// updateFocused forwards an event to the focused text input.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	in := m.inputs()
	if m.focus < 0 || m.focus >= len(in) {
		return nil
	}
	var cmd tea.Cmd
	in[m.focus], cmd = in[m.focus].Update(msg)
	m.setInputs(in)
	return cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

func (m *Model) submit() (*Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	m.status = ""
	m.statusKind = statusNone

	if m.mode == ModeLogin {
		username := strings.TrimSpace(m.loginInputs[0].Value())
		password := m.loginInputs[1].Value()
		if username == "" || password == "" {
			return m, nil
		}
		m.submitting = true
		return m, loginCmd(m.client, username, password)
	}

	username := strings.TrimSpace(m.registerInputs[0].Value())
	email := strings.TrimSpace(m.registerInputs[1].Value())
	password := m.registerInputs[2].Value()
	if username == "" || email == "" || password == "" {
		return m, nil
	}
	m.submitting = true
	return m, signupCmd(m.client, username, email, password)
}

func (m *Model) handleLoginResult(msg loginResultMsg) (*Model, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		m.status = loginErrorMessage(msg.err)
		m.statusKind = statusError
		return m, nil
	}
	if msg.resp == nil || msg.resp.Token == "" {
		m.status = MsgLoginFailed
		if msg.resp != nil && msg.resp.Message != "" {
			m.status = msg.resp.Message
		}
		m.statusKind = statusError
		return m, nil
	}

	m.status = MsgLoginSuccess
	m.statusKind = statusSuccess

	// Persist before navigating so other processes see the change.
	if err := m.store.SetLogin(msg.resp.Token, msg.resp.User); err != nil {
		m.status = err.Error()
		m.statusKind = statusError
		return m, nil
	}

	identity := store.Identity{Token: msg.resp.Token, User: msg.resp.User}
	return m, navigateCmd(identity)
}

func (m *Model) handleSignupResult(msg signupResultMsg) (*Model, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		m.status = signupErrorMessage(msg.err)
		m.statusKind = statusError
		return m, nil
	}

	m.status = MsgRegisterSuccess
	if msg.resp != nil && msg.resp.Message != "" {
		m.status = msg.resp.Message
	}
	m.statusKind = statusSuccess
	return m, nil
}

func (m *Model) continueAsGuest() (*Model, tea.Cmd) {
	if err := m.store.SetGuest(); err != nil {
		m.status = err.Error()
		m.statusKind = statusError
		return m, nil
	}
	identity := store.Identity{Guest: true}
	return m, func() tea.Msg { return DoneMsg{Identity: identity} }
}
