// Package cache stores generated stylesheet artifacts keyed by every input
// that influenced them. Entries never go stale silently: any input change
// produces a different key, and theme or window invalidation drops whole
// regions at once.
//
// The cache lives on the toolkit's event goroutine and is not safe for
// concurrent use.
package cache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/loomkit/loom/style"
)

// Key identifies one cached artifact.
type Key uint64

// KeyFor hashes a widget's identity together with the theme fingerprint,
// active breakpoint and prop-bag fingerprint. Two calls agree exactly when
// regeneration would produce the same artifact.
func KeyFor(widgetID, window, breakpoint string, themeFP, bagFP uint64) Key {
	h := xxhash.New()
	_, _ = h.WriteString(widgetID)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(window)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(breakpoint)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(strconv.FormatUint(themeFP, 16))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(strconv.FormatUint(bagFP, 16))
	return Key(h.Sum64())
}

// Store is the artifact cache.
type Store struct {
	artifacts map[Key]style.Artifact
	byWindow  map[string]map[Key]struct{}
}

// New creates an empty artifact cache.
func New() *Store {
	return &Store{
		artifacts: make(map[Key]style.Artifact),
		byWindow:  make(map[string]map[Key]struct{}),
	}
}

// Get retrieves the artifact for a key.
func (s *Store) Get(key Key) (style.Artifact, bool) {
	artifact, ok := s.artifacts[key]
	return artifact, ok
}

// Set stores an artifact and indexes it under its window so window-scoped
// invalidation stays cheap.
func (s *Store) Set(key Key, window string, artifact style.Artifact) {
	s.artifacts[key] = artifact
	keys, ok := s.byWindow[window]
	if !ok {
		keys = make(map[Key]struct{})
		s.byWindow[window] = keys
	}
	keys[key] = struct{}{}
}

// Delete removes one entry, as when a widget deregisters.
func (s *Store) Delete(key Key, window string) {
	delete(s.artifacts, key)
	if keys, ok := s.byWindow[window]; ok {
		delete(keys, key)
		if len(keys) == 0 {
			delete(s.byWindow, window)
		}
	}
}

// InvalidateWindow drops every artifact generated for one window.
func (s *Store) InvalidateWindow(window string) int {
	keys, ok := s.byWindow[window]
	if !ok {
		return 0
	}
	for key := range keys {
		delete(s.artifacts, key)
	}
	delete(s.byWindow, window)
	return len(keys)
}

// InvalidateAll drops everything by swapping the maps, so cost does not
// grow with the number of cached artifacts.
func (s *Store) InvalidateAll() {
	s.artifacts = make(map[Key]style.Artifact)
	s.byWindow = make(map[string]map[Key]struct{})
}

// Len reports the number of cached artifacts.
func (s *Store) Len() int {
	return len(s.artifacts)
}
