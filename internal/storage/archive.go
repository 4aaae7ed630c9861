// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local chat persistence for guest sessions.
//
// Guest chats never reach the server; they live in a SQLite database under
// the user's data directory so a guest's work survives restarts. Signed-in
// accounts bypass this package entirely, their chats are server-side.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/insightpaper/insight-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrChatNotFound  = errors.New("chat not found")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// CHAT ARCHIVE
// =============================================================================

// ChatArchive stores guest chats in SQLite.
type ChatArchive struct {
	db *sql.DB
}

// Open creates or opens the archive at ~/.insightpaper/guest.db.
func Open() (*ChatArchive, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return OpenPath(filepath.Join(homeDir, ".insightpaper", "guest.db"))
}

// OpenPath creates or opens the archive at a custom path.
func OpenPath(path string) (*ChatArchive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}

	a := &ChatArchive{db: db}
	if err := a.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// initSchema creates the tables if they do not exist.
func (a *ChatArchive) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chats (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		pinned     INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id        TEXT PRIMARY KEY,
		chat_id   TEXT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
		kind      TEXT NOT NULL,
		content   TEXT NOT NULL,
		file_name TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		position  INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, position);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Close releases the database handle.
func (a *ChatArchive) Close() error {
	return a.db.Close()
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// SaveChat upserts a chat and replaces its stored thread. Inline error
// messages are display-only and are not written.
func (a *ChatArchive) SaveChat(chat *model.Chat) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO chats (id, name, pinned, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, pinned=excluded.pinned,
			updated_at=excluded.updated_at
	`, chat.ID, chat.Name, boolToInt(chat.Pinned), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE chat_id = ?`, chat.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO messages (id, chat_id, kind, content, file_name, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer stmt.Close()

	for i, msg := range chat.PersistableMessages() {
		_, err := stmt.Exec(msg.ID, chat.ID, string(msg.Kind), msg.Content,
			msg.FileName, msg.Timestamp.Unix(), i)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}

	return tx.Commit()
}

// DeleteChat removes a chat and its messages.
func (a *ChatArchive) DeleteChat(chatID string) error {
	res, err := a.db.Exec(`DELETE FROM chats WHERE id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrChatNotFound
	}
	return nil
}

// DeleteAll removes every stored chat. Used when a guest signs in, at which
// point the server becomes the source of truth.
func (a *ChatArchive) DeleteAll() error {
	if _, err := a.db.Exec(`DELETE FROM chats`); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// LoadChats returns all stored chats with their threads, unsorted; callers
// apply the sidebar ordering.
func (a *ChatArchive) LoadChats() ([]*model.Chat, error) {
	rows, err := a.db.Query(`SELECT id, name, pinned FROM chats`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var chats []*model.Chat
	for rows.Next() {
		var (
			chat   model.Chat
			pinned int
		)
		if err := rows.Scan(&chat.ID, &chat.Name, &pinned); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		chat.Pinned = pinned != 0
		chat.Messages = make([]*model.Message, 0)
		chats = append(chats, &chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	for _, chat := range chats {
		if err := a.loadMessages(chat); err != nil {
			return nil, err
		}
	}
	return chats, nil
}

// loadMessages fills a chat's thread in stored order.
func (a *ChatArchive) loadMessages(chat *model.Chat) error {
	rows, err := a.db.Query(`
		SELECT id, kind, content, file_name, created_at
		FROM messages WHERE chat_id = ? ORDER BY position
	`, chat.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			msg  model.Message
			kind string
			ts   int64
		)
		if err := rows.Scan(&msg.ID, &kind, &msg.Content, &msg.FileName, &ts); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		msg.Kind = model.Kind(kind)
		msg.Timestamp = time.Unix(ts, 0)
		chat.Messages = append(chat.Messages, &msg)
	}
	return rows.Err()
}

// ChatCount returns the number of stored chats.
func (a *ChatArchive) ChatCount() (int, error) {
	var n int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM chats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
