// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/store"
	"github.com/insightpaper/insight-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDir failed: %v", err)
	}
	return New(api.NewClient(""), st, styles.NewThemeWithMode(true))
}

func TestFlipSwitchesMode(t *testing.T) {
	m := newTestModel(t)
	if m.Mode() != ModeLogin {
		t.Fatal("initial mode should be login")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Mode() != ModeRegister {
		t.Error("ctrl+t should switch to register")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Mode() != ModeLogin {
		t.Error("ctrl+t should switch back to login")
	}
}

func TestSubmitEmptyFieldsIsNoop(t *testing.T) {
	m := newTestModel(t)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty form should not submit")
	}
	if m.submitting {
		t.Error("submitting flag set without a request")
	}
}

func TestLoginSuccessPersistsAndDelaysNavigation(t *testing.T) {
	m := newTestModel(t)

	user := &api.User{ID: "7", Username: "rivera"}
	m, cmd := m.Update(loginResultMsg{resp: &api.LoginResponse{Token: "tok-1", User: user}})

	if m.Status() != MsgLoginSuccess {
		t.Errorf("status = %q", m.Status())
	}
	if cmd == nil {
		t.Fatal("expected the delayed navigation command")
	}

	id, err := m.store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id.Token != "tok-1" || id.Username() != "rivera" {
		t.Errorf("persisted identity = %+v", id)
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(loginResultMsg{err: &api.APIError{Status: 401, Message: "Invalid credentials"}})
	if m.Status() != "Invalid credentials" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestLoginFallbackMessages(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(loginResultMsg{err: errors.New("boom")})
	if m.Status() != MsgLoginFailed {
		t.Errorf("generic failure status = %q", m.Status())
	}

	m, _ = m.Update(loginResultMsg{err: api.ErrConnection})
	if m.Status() != MsgConnectionError {
		t.Errorf("connection failure status = %q", m.Status())
	}
}

func TestLoginWithoutTokenIsFailure(t *testing.T) {
	m := newTestModel(t)

	m, cmd := m.Update(loginResultMsg{resp: &api.LoginResponse{}})
	if cmd != nil {
		t.Error("tokenless response must not navigate")
	}
	if m.Status() != MsgLoginFailed {
		t.Errorf("status = %q", m.Status())
	}
}

func TestSignupResults(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(signupResultMsg{resp: &api.SignupResponse{Message: "User created successfully"}})
	if m.Status() != "User created successfully" {
		t.Errorf("status = %q", m.Status())
	}

	m, _ = m.Update(signupResultMsg{err: errors.New("boom")})
	if m.Status() != MsgRegisterFailed {
		t.Errorf("failure status = %q", m.Status())
	}
}

func TestGuestEntryEmitsDone(t *testing.T) {
	m := newTestModel(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	done, ok := msg.(DoneMsg)
	if !ok {
		t.Fatalf("got %T, want DoneMsg", msg)
	}
	if !done.Identity.Guest {
		t.Error("guest identity expected")
	}

	id, _ := m.store.Load()
	if !id.Guest {
		t.Error("guest identity should be persisted")
	}
}
