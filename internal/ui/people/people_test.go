// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package people

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/store"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

type reviewRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *reviewRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func newPeopleModel(t *testing.T, rec *reviewRecorder) *Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/request/review/") {
			rec.mu.Lock()
			rec.paths = append(rec.paths, r.URL.Path)
			rec.mu.Unlock()
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	m := New(styles.NewTheme(), store.NewStores(), api.NewClient(srv.URL).WithMaxRetries(0))
	m.SetSize(80, 24)
	return m
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seedRequests(m *Model, ids ...string) {
	records := make([]model.RequestRecord, len(ids))
	for i, id := range ids {
		records[i] = model.RequestRecord{ID: id, From: model.Profile{ID: "u-" + id, FirstName: "From" + id}}
	}
	m.stores.Requests.Populate(records)
}

func TestAcceptRemovesImmediately(t *testing.T) {
	rec := &reviewRecorder{}
	m := newPeopleModel(t, rec)
	m.SetTab(TabRequests)
	seedRequests(m, "r1", "r2")

	m, cmd := m.Update(keyRune("a"))

	// Removal happens before the review command has even run.
	if m.stores.Requests.Len() != 1 {
		t.Errorf("requests length = %d, want 1 before POST resolves", m.stores.Requests.Len())
	}
	if cmd == nil {
		t.Fatal("accept produced no review command")
	}
	msg := cmd()
	m, _ = m.Update(msg)

	paths := rec.recorded()
	if len(paths) != 1 || paths[0] != "/request/review/accepted/r1" {
		t.Errorf("review posts = %v, want accepted path for r1", paths)
	}
}

func TestRejectUsesRejectedPath(t *testing.T) {
	rec := &reviewRecorder{}
	m := newPeopleModel(t, rec)
	m.SetTab(TabRequests)
	seedRequests(m, "r1")

	m, cmd := m.Update(keyRune("r"))
	if cmd == nil {
		t.Fatal("reject produced no review command")
	}
	m, _ = m.Update(cmd())

	paths := rec.recorded()
	if len(paths) != 1 || paths[0] != "/request/review/rejected/r1" {
		t.Errorf("review posts = %v, want rejected path for r1", paths)
	}
	if m.stores.Requests.Len() != 0 {
		t.Errorf("requests length = %d, want 0", m.stores.Requests.Len())
	}
}

func TestReviewFailureKeepsRemoval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"nope"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	m := New(styles.NewTheme(), store.NewStores(), api.NewClient(srv.URL).WithMaxRetries(0))
	m.SetTab(TabRequests)
	seedRequests(m, "r1")

	m, cmd := m.Update(keyRune("a"))
	msg := cmd()
	m, toastCmd := m.Update(msg)

	if m.stores.Requests.Len() != 0 {
		t.Error("failed review restored the request; removal must be optimistic")
	}
	if toastCmd == nil {
		t.Error("failed review produced no visible notification")
	}
}

func TestMountFetchEconomy(t *testing.T) {
	rec := &reviewRecorder{}
	m := newPeopleModel(t, rec)

	if m.Mount() == nil {
		t.Error("first mount with empty stores fetched nothing")
	}

	m.stores.Connections.Populate([]model.Profile{{ID: "c1"}})
	m.stores.Requests.Populate([]model.RequestRecord{{ID: "r1"}})
	if m.Mount() != nil {
		t.Error("second mount with loaded stores fetched again")
	}
}

func TestEnterOpensChatWithSelection(t *testing.T) {
	rec := &reviewRecorder{}
	m := newPeopleModel(t, rec)
	m.stores.Connections.Populate([]model.Profile{
		{ID: "c1", FirstName: "Ada"},
		{ID: "c2", FirstName: "Grace"},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	open, ok := cmd().(OpenChatMsg)
	if !ok {
		t.Fatalf("command produced %T, want OpenChatMsg", cmd())
	}
	if open.Target.ID != "c2" {
		t.Errorf("target = %q, want the selected connection c2", open.Target.ID)
	}
}

func TestCursorClampedAfterRemoval(t *testing.T) {
	rec := &reviewRecorder{}
	m := newPeopleModel(t, rec)
	m.SetTab(TabRequests)
	seedRequests(m, "r1", "r2")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(keyRune("a")) // removes r2 at cursor 1

	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestRequestsBadgeInView(t *testing.T) {
	rec := &reviewRecorder{}
	m := newPeopleModel(t, rec)
	seedRequests(m, "r1", "r2", "r3")

	if !strings.Contains(m.View(), "Requests (3)") {
		t.Error("view missing pending request count")
	}
}
