// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store persists the signed-in identity (token, account, guest
// marker) under the user's home directory and notifies other running
// instances when it changes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/insightpaper/insight-tui/internal/api"
	"github.com/insightpaper/insight-tui/internal/util"
)

// identityFile is the name of the persisted identity inside the base dir.
const identityFile = "identity.json"

// =============================================================================
// IDENTITY TYPE
// =============================================================================

// Identity is the persisted authentication state. Exactly one of Token or
// Guest is meaningful: a guest session carries no token, and signing in
// clears the guest marker.
type Identity struct {
	Token string    `json:"token,omitempty"`
	User  *api.User `json:"user,omitempty"`
	Guest bool      `json:"is_guest,omitempty"`
}

// IsAuthenticated returns true when a bearer token is present.
func (id Identity) IsAuthenticated() bool {
	return id.Token != ""
}

// IsGuest returns true for guest sessions, which keep their chats locally
// and never sync to the server.
func (id Identity) IsGuest() bool {
	return id.Guest
}

// IsAnonymous returns true when neither a token nor a guest marker exists,
// i.e. the auth view should be shown.
func (id Identity) IsAnonymous() bool {
	return id.Token == "" && !id.Guest
}

// Username returns the signed-in account name, or "Guest" for guest
// sessions, or "" when anonymous.
func (id Identity) Username() string {
	if id.User != nil && id.User.Username != "" {
		return id.User.Username
	}
	if id.Guest {
		return "Guest"
	}
	return ""
}

// =============================================================================
// IDENTITY STORE
// =============================================================================

// Store reads and writes the identity file.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a store rooted at ~/.insightpaper.
func New() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return NewWithDir(filepath.Join(homeDir, ".insightpaper"))
}

// NewWithDir creates a store rooted at a custom directory.
func NewWithDir(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.dir
}

// path returns the identity file location.
func (s *Store) path() string {
	return filepath.Join(s.dir, identityFile)
}

// Load reads the persisted identity. A missing file yields the zero
// identity (anonymous), not an error.
func (s *Store) Load() (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf("failed to read identity: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		// A corrupt identity file means signing in again, not a crash.
		return Identity{}, nil
	}
	return id, nil
}

// save writes the identity atomically. Caller holds the lock.
func (s *Store) save(id Identity) error {
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	if err := util.AtomicWriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write identity: %w", err)
	}
	return nil
}

// SetLogin records a successful sign-in. Any guest marker is dropped.
func (s *Store) SetLogin(token string, user *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(Identity{Token: token, User: user})
}

// SetGuest records a guest session. Any previous token is dropped.
func (s *Store) SetGuest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(Identity{Guest: true})
}

// Clear removes the persisted identity entirely (logout).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove identity: %w", err)
	}
	return nil
}
