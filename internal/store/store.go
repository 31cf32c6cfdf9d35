// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the client's shared state containers.
//
// Each container owns its collection outright and exposes a small set of
// named transitions; views never hold a diverging private copy. Containers
// are handed to views explicitly rather than reached through package-level
// globals, so every mutation point is enumerable and testable.
package store

import (
	"sync"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

// Stores aggregates the per-concern containers for dependency injection.
type Stores struct {
	Session     *SessionStore
	Feed        *FeedStore
	Connections *ConnectionsStore
	Requests    *RequestsStore
}

// NewStores creates empty containers.
func NewStores() *Stores {
	return &Stores{
		Session:     NewSessionStore(),
		Feed:        NewFeedStore(),
		Connections: NewConnectionsStore(),
		Requests:    NewRequestsStore(),
	}
}

// ClearAll resets every container. Called on logout and failed session probe
// so a later login starts from a clean slate (and triggers fresh fetches).
func (s *Stores) ClearAll() {
	s.Session.Clear()
	s.Feed.Clear()
	s.Connections.Clear()
	s.Requests.Clear()
}

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore holds the authenticated user's profile.
type SessionStore struct {
	mu      sync.RWMutex
	profile *model.Profile
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Set installs the authenticated profile.
func (s *SessionStore) Set(p *model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Get returns the current profile, or nil when unauthenticated.
func (s *SessionStore) Get() *model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// UserID returns the authenticated user's ID, or "" when unauthenticated.
func (s *SessionStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return ""
	}
	return s.profile.ID
}

// Authenticated reports whether a session profile is present.
func (s *SessionStore) Authenticated() bool {
	return s.Get() != nil
}

// Clear drops the session.
func (s *SessionStore) Clear() {
	s.Set(nil)
}
