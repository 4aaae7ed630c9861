// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the insight-tui
// application: UTF-8 safe string truncation, numeric conversion, and
// crash-safe file writing.
package util
