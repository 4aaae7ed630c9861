// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/store"
)

// loginResultMsg carries the login outcome back to Update.
type loginResultMsg struct {
	resp *api.LoginResponse
	err  error
}

// signupResultMsg carries the registration outcome back to Update.
type signupResultMsg struct {
	resp *api.SignupResponse
	err  error
}

// navigateMsg fires after the success-message delay.
type navigateMsg struct {
	identity store.Identity
}

// loginCmd submits the credentials.
func loginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		resp, err := client.Login(ctx, username, password)
		return loginResultMsg{resp: resp, err: err}
	}
}

// signupCmd submits the registration form.
func signupCmd(client *api.Client, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		resp, err := client.Signup(ctx, username, email, password)
		return signupResultMsg{resp: resp, err: err}
	}
}

// navigateCmd hands off to the workspace after the success delay.
func navigateCmd(identity store.Identity) tea.Cmd {
	return tea.Tick(navigateDelay, func(time.Time) tea.Msg {
		return navigateMsg{identity: identity}
	})
}

// loginErrorMessage maps a login failure to the panel status line.
func loginErrorMessage(err error) string {
	if errors.Is(err, api.ErrConnection) {
		return MsgConnectionError
	}
	return api.ErrorMessage(err, MsgLoginFailed)
}

// signupErrorMessage maps a registration failure to the panel status line.
func signupErrorMessage(err error) string {
	if errors.Is(err, api.ErrConnection) {
		return MsgConnectionError
	}
	return api.ErrorMessage(err, MsgRegisterFailed)
}
