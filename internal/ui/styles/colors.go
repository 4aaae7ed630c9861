// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT PALETTE
// =============================================================================

// Primary accents. Light values target white terminals, dark values target
// dark terminals.
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Deep variants for backgrounds behind accent text.
var PurpleDeep = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#2E1065"}
var CyanDeep = lipgloss.AdaptiveColor{Light: "#CFFAFE", Dark: "#083344"}
var RoseDeep = lipgloss.AdaptiveColor{Light: "#FFE4E6", Dark: "#4C0519"}
var AmberDeep = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#451A03"}

// =============================================================================
// SURFACES AND TEXT
// =============================================================================

var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#181825"}
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#313244"}
var Overlay = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#45475A"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#475569", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#6C7086"}
var TextInverse = lipgloss.AdaptiveColor{Light: "#F8FAFC", Dark: "#11111B"}

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

// User questions sit right-aligned on a purple field, assistant answers
// left-aligned on a neutral field, error notices on rose.
var UserBubbleFg = TextInverse
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#6D28D9"}
var UserBubbleBorder = Purple

var ResponseBubbleFg = TextPrimary
var ResponseBubbleBg = SurfaceBright
var ResponseBubbleBorder = Overlay

var ErrorBubbleFg = Rose
var ErrorBubbleBg = RoseDeep
var ErrorBubbleBorder = Rose

// =============================================================================
// CHROME
// =============================================================================

// PinMarker colors the pin glyph next to pinned chats.
var PinMarker = Amber

// SelectionBg highlights the selected sidebar row.
var SelectionBg = lipgloss.AdaptiveColor{Light: "#BFDBFE", Dark: "#1E3A5F"}

// FocusRing marks the focused panel border.
var FocusRing = Cyan

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains ASCII shape indicators shown alongside colored
// status text so states stay distinguishable without color.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// RenderSuccess renders a bold success line with its shape indicator.
func RenderSuccess(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	return style.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders a bold error line with its shape indicator.
func RenderError(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	return style.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a bold warning line with its shape indicator.
func RenderWarning(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	return style.Render(StatusIndicators.Warning + " " + message)
}
