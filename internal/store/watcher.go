// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces the burst of filesystem events an atomic
// rename produces into a single reload.
const debounceInterval = 200 * time.Millisecond

// =============================================================================
// IDENTITY WATCHER
// =============================================================================

// Watcher observes the identity file and emits the reloaded identity when
// another process changes it. This is how a second running instance notices
// a logout and returns to the auth view.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	changes chan Identity
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	pending bool
	lastAt  time.Time
}

// NewWatcher creates a watcher for the store's identity file.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:   store,
		watcher: fsw,
		changes: make(chan Identity, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	return w, nil
}

// Watch starts observing the store directory. The directory, not the file,
// is watched: atomic writes replace the file by rename, which would detach
// a file-level watch.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(w.store.Dir()); err != nil {
		return err
	}
	go w.processEvents()
	go w.processPending()
	return nil
}

// Changes returns the channel on which reloaded identities are delivered.
// The channel has capacity one; stale notifications are dropped in favor
// of the newest state.
func (w *Watcher) Changes() <-chan Identity {
	return w.changes
}

// processEvents filters filesystem events down to identity-file changes.
func (w *Watcher) processEvents() {
	defer func() {
		if r := recover(); r != nil {
			_ = r
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != identityFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.mu.Lock()
				w.pending = true
				w.lastAt = time.Now()
				w.mu.Unlock()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// processPending reloads and emits the identity once events settle.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			ready := w.pending && time.Since(w.lastAt) >= debounceInterval
			if ready {
				w.pending = false
			}
			w.mu.Unlock()

			if !ready {
				continue
			}

			id, err := w.store.Load()
			if err != nil {
				continue
			}

			// Replace any undelivered notification with the newest state.
			select {
			case <-w.changes:
			default:
			}
			select {
			case w.changes <- id:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
