// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"sync"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

// FeedStore is the ordered queue of candidates awaiting a decision.
//
// Invariants: no duplicate IDs; once a decision is committed for an ID it is
// removed and never re-added within the store's lifetime, even if a later
// fetch returns it again.
type FeedStore struct {
	mu      sync.RWMutex
	queue   []model.Profile
	decided map[string]model.Decision
	loaded  bool
}

// NewFeedStore creates an empty feed store.
func NewFeedStore() *FeedStore {
	return &FeedStore{decided: make(map[string]model.Decision)}
}

// Populate appends fetched candidates, dropping duplicates and anything
// already decided this session. Marks the store loaded so later mounts can
// skip the fetch.
func (s *FeedStore) Populate(profiles []model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.queue))
	for _, p := range s.queue {
		seen[p.ID] = true
	}
	for _, p := range profiles {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		if _, done := s.decided[p.ID]; done {
			continue
		}
		seen[p.ID] = true
		s.queue = append(s.queue, p)
	}
	s.loaded = true
}

// SeedDecided preloads decisions recorded in earlier sessions so refetched
// feeds filter out candidates the user already decided on. Existing entries
// are kept; seeding never undoes an in-session decision.
func (s *FeedStore) SeedDecided(decisions map[string]model.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range decisions {
		if _, ok := s.decided[id]; !ok {
			s.decided[id] = d
		}
	}
}

// Front returns the interactive top-of-queue candidate.
func (s *FeedStore) Front() (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.queue) == 0 {
		return model.Profile{}, false
	}
	return s.queue[0], true
}

// Peek returns up to n candidates from the front for stacked rendering.
// Only the first is interactive.
func (s *FeedStore) Peek(n int) []model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.queue) {
		n = len(s.queue)
	}
	out := make([]model.Profile, n)
	copy(out, s.queue[:n])
	return out
}

// CommitFront removes the front candidate and records its decision. The
// removal is unconditional: it happens whether or not the decision request
// later succeeds. Returns the removed profile.
func (s *FeedStore) CommitFront(decision model.Decision) (model.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return model.Profile{}, false
	}
	front := s.queue[0]
	s.queue = s.queue[1:]
	s.decided[front.ID] = decision
	return front, true
}

// Decided reports whether an ID has already been decided this session.
func (s *FeedStore) Decided(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.decided[id]
	return ok
}

// Len returns the number of queued candidates.
func (s *FeedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queue)
}

// Loaded reports whether at least one fetch has populated the store.
// Distinguishes "no more candidates" from "not fetched yet".
func (s *FeedStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// NeedsFetch reports whether a mounting feed view should fetch.
func (s *FeedStore) NeedsFetch() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded && len(s.queue) == 0
}

// Clear resets the store, including the decided set and loaded flag.
func (s *FeedStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
	s.decided = make(map[string]model.Decision)
	s.loaded = false
}
