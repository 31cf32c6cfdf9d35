// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"sync"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

// =============================================================================
// CONNECTIONS STORE
// =============================================================================

// ConnectionsStore holds the user's mutual matches.
type ConnectionsStore struct {
	mu     sync.RWMutex
	list   []model.Profile
	loaded bool
}

// NewConnectionsStore creates an empty connections store.
func NewConnectionsStore() *ConnectionsStore {
	return &ConnectionsStore{}
}

// Populate replaces the connection list with fetched results.
func (s *ConnectionsStore) Populate(profiles []model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = make([]model.Profile, len(profiles))
	copy(s.list, profiles)
	s.loaded = true
}

// List returns a copy of the connections in fetch order.
func (s *ConnectionsStore) List() []model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Profile, len(s.list))
	copy(out, s.list)
	return out
}

// Get resolves a connection by user ID. Chat uses this for the counterpart's
// display metadata.
func (s *ConnectionsStore) Get(userID string) (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.list {
		if p.ID == userID {
			return p, true
		}
	}
	return model.Profile{}, false
}

// Len returns the number of connections.
func (s *ConnectionsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Loaded reports whether connections have been fetched this session.
func (s *ConnectionsStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Clear resets the store.
func (s *ConnectionsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	s.loaded = false
}

// =============================================================================
// REQUESTS STORE
// =============================================================================

// RequestsStore holds pending incoming connection requests.
type RequestsStore struct {
	mu      sync.RWMutex
	list    []model.RequestRecord
	loaded  bool
	fetches int
}

// NewRequestsStore creates an empty requests store.
func NewRequestsStore() *RequestsStore {
	return &RequestsStore{}
}

// Populate replaces the request list with fetched results and counts the
// fetch, so mount-time fetch economy is observable in tests.
func (s *RequestsStore) Populate(requests []model.RequestRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = make([]model.RequestRecord, len(requests))
	copy(s.list, requests)
	s.loaded = true
	s.fetches++
}

// List returns a copy of the pending requests.
func (s *RequestsStore) List() []model.RequestRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RequestRecord, len(s.list))
	copy(out, s.list)
	return out
}

// Remove drops a request by its request ID. Called on accept and reject
// before the review call resolves; the removal is never rolled back.
func (s *RequestsStore) Remove(requestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.list {
		if r.ID == requestID {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of pending requests. The navigation badge renders
// this count.
func (s *RequestsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Loaded reports whether requests have been fetched this session.
func (s *RequestsStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// NeedsFetch reports whether a mounting view should fetch: only when the
// store has never loaded or has been emptied and never refilled.
func (s *RequestsStore) NeedsFetch() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded
}

// FetchCount returns how many times Populate has run. Test hook for the
// fetch-economy invariant.
func (s *RequestsStore) FetchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetches
}

// Clear resets the store.
func (s *RequestsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	s.loaded = false
	s.fetches = 0
}
