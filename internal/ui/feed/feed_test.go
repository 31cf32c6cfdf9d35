// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/store"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// decisionRecorder counts decision POSTs by path.
type decisionRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *decisionRecorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *decisionRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func newFeedModel(t *testing.T, rec *decisionRecorder, ids ...string) *Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/request/send/") {
			rec.record(r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	stores := store.NewStores()
	profiles := make([]model.Profile, len(ids))
	for i, id := range ids {
		profiles[i] = model.Profile{ID: id, FirstName: "P" + id}
	}
	stores.Feed.Populate(profiles)

	client := api.NewClient(srv.URL).WithMaxRetries(0)
	m := New(styles.NewTheme(), stores, client, nil)
	m.SetSize(80, 24)
	return m
}

// runCmds executes a command tree synchronously, feeding results back into
// Update. Spinner ticks are dropped so the loop terminates.
func runCmds(m *Model, cmd tea.Cmd) *Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = runCmds(m, c)
		}
		return m
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return m
	}
	var next tea.Cmd
	m, next = m.Update(msg)
	return runCmds(m, next)
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "left" {
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	if s == "right" {
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCommitInterestedEndToEnd(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec, "A", "B", "C")

	m, cmd := m.Update(key("i"))
	m = runCmds(m, cmd)

	if m.stores.Feed.Len() != 2 {
		t.Errorf("feed length = %d, want 2", m.stores.Feed.Len())
	}
	front, _ := m.stores.Feed.Front()
	if front.ID != "B" {
		t.Errorf("front = %q, want B", front.ID)
	}

	paths := rec.recorded()
	if len(paths) != 1 || paths[0] != "/request/send/interested/A" {
		t.Errorf("decision posts = %v, want exactly one interested POST for A", paths)
	}
}

func TestDoubleInvocationSendsOneRequest(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec, "A", "B")

	m, first := m.Update(key("i"))
	// Second press lands before the commit cycle completes.
	m, second := m.Update(key("i"))
	if second != nil {
		t.Error("second press during in-flight commit produced a command")
	}
	m = runCmds(m, first)

	if got := len(rec.recorded()); got != 1 {
		t.Errorf("decision posts = %d, want exactly 1", got)
	}
	if m.stores.Feed.Len() != 1 {
		t.Errorf("feed length = %d, want 1", m.stores.Feed.Len())
	}
}

func TestDragPastThresholdCommits(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec, "A")

	// Six right steps = +150, past the threshold.
	var cmd tea.Cmd
	for i := 0; i < 6; i++ {
		m, cmd = m.Update(key("right"))
	}
	m, cmd = m.Update(key("enter"))
	m = runCmds(m, cmd)

	paths := rec.recorded()
	if len(paths) != 1 || paths[0] != "/request/send/interested/A" {
		t.Errorf("decision posts = %v", paths)
	}
}

func TestDragLeftPastThresholdIgnores(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec, "A")

	var cmd tea.Cmd
	for i := 0; i < 6; i++ {
		m, cmd = m.Update(key("left"))
	}
	m, cmd = m.Update(key("enter"))
	m = runCmds(m, cmd)

	paths := rec.recorded()
	if len(paths) != 1 || paths[0] != "/request/send/ignore/A" {
		t.Errorf("decision posts = %v", paths)
	}
}

func TestBelowThresholdRevertsWithoutRequest(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec, "A")

	// Two right steps = +50, short of the threshold.
	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("right"))
	m, cmd := m.Update(key("enter"))
	m = runCmds(m, cmd)

	if got := len(rec.recorded()); got != 0 {
		t.Errorf("decision posts = %d, want 0", got)
	}
	if m.stores.Feed.Len() != 1 {
		t.Errorf("feed length = %d, want 1 (no removal on revert)", m.stores.Feed.Len())
	}
	if m.engine.OffsetX() != 0 {
		t.Errorf("offset = %v, want snapped back to 0", m.engine.OffsetX())
	}
}

func TestMountSkipsFetchWhenLoaded(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec, "A")
	m.stores.Requests.Populate(nil)

	if cmd := m.Mount(); cmd != nil {
		t.Error("Mount on a loaded store scheduled work")
	}
}

func TestErrorStateRendersRetry(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec, "A")

	m, _ = m.Update(loadedMsg{err: &api.APIError{Status: 500, Message: "upstream down"}})
	view := m.View()
	if !strings.Contains(view, "upstream down") {
		t.Error("error view missing server message")
	}
	if !strings.Contains(view, "Retry") {
		t.Error("error view missing retry hint")
	}
}

func TestEmptyFeedRendersEmptyState(t *testing.T) {
	rec := &decisionRecorder{}
	m := newFeedModel(t, rec)

	if !strings.Contains(m.View(), "No more candidates") {
		t.Error("empty feed missing empty state")
	}
}
