// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the auth panel centered in the window.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.AuthTitle.Width(44).Render("InsightPaper"))
	b.WriteString("\n\n")

	loginTab := m.theme.AuthTab.Render("Login")
	registerTab := m.theme.AuthTab.Render("Register")
	if m.mode == ModeLogin {
		loginTab = m.theme.AuthTabActive.Render("Login")
	} else {
		registerTab = m.theme.AuthTabActive.Render("Register")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, loginTab, " ", registerTab))
	b.WriteString("\n\n")

	labels := []string{"Username", "Password"}
	if m.mode == ModeRegister {
		labels = []string{"Username", "Email", "Password"}
	}
	for i, input := range m.inputs() {
		b.WriteString(m.theme.AuthLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		switch m.statusKind {
		case statusSuccess:
			b.WriteString(m.theme.AuthSuccess.Render(m.status))
		case statusError:
			b.WriteString(m.theme.AuthError.Render(m.status))
		}
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.theme.AuthHint.Render("Submitting..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.AuthHint.Render(
		"enter submit | tab next field | ctrl+t switch | ctrl+g guest | ctrl+c quit"))

	box := m.theme.AuthBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
