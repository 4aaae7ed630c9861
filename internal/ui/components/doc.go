// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the insight-tui
// chat workspace: sidebar, message bubbles, composer, banners, overlays,
// status bar, and the document preview pane.
package components
