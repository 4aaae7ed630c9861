// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, and
// document attachments, plus the ordering and filtering rules the
// sidebar relies on.
package model
