// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package people implements the connections and requests views.
//
// Both are list views over shared stores. Request review is optimistic: the
// record leaves the store on the key press, the review POST runs after, and
// a failure surfaces as a dismissible toast without restoring the record.
package people

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/store"
	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// Tab selects which list the view shows.
type Tab int

const (
	// TabConnections lists mutual matches.
	TabConnections Tab = iota
	// TabRequests lists pending incoming requests.
	TabRequests
)

// OpenChatMsg asks the app root to open a conversation.
type OpenChatMsg struct {
	Target model.Profile
}

// Model is the people view.
type Model struct {
	theme  *styles.Theme
	stores *store.Stores
	client *api.Client

	tab     Tab
	cursor  int
	loading bool
	errMsg  string

	width  int
	height int
}

// New creates the people view.
func New(theme *styles.Theme, stores *store.Stores, client *api.Client) *Model {
	return &Model{theme: theme, stores: stores, client: client}
}

// SetSize updates the layout bounds.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTab switches the visible list.
func (m *Model) SetTab(tab Tab) {
	m.tab = tab
	m.cursor = 0
}

// Mount returns the fetch commands a visit needs. Loaded stores fetch
// nothing.
func (m *Model) Mount() tea.Cmd {
	var cmds []tea.Cmd
	if !m.stores.Connections.Loaded() {
		m.loading = true
		cmds = append(cmds, m.fetchConnections())
	}
	if m.stores.Requests.NeedsFetch() {
		m.loading = true
		cmds = append(cmds, m.fetchRequests())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// MESSAGES
// =============================================================================

type connectionsMsg struct {
	profiles []model.Profile
	err      error
}

type requestsMsg struct {
	requests []model.RequestRecord
	err      error
}

type reviewSentMsg struct {
	requestID string
	status    model.ReviewStatus
	err       error
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) fetchConnections() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		profiles, err := client.Connections(ctx)
		return connectionsMsg{profiles: profiles, err: err}
	}
}

func (m *Model) fetchRequests() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		requests, err := client.ReceivedRequests(ctx)
		return requestsMsg{requests: requests, err: err}
	}
}

func (m *Model) sendReview(status model.ReviewStatus, requestID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		err := client.ReviewRequest(ctx, status, requestID)
		return reviewSentMsg{requestID: requestID, status: status, err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles people-view messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case connectionsMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = fetchErrMessage(msg.err, "Could not load connections")
			return m, nil
		}
		m.stores.Connections.Populate(msg.profiles)
		return m, nil

	case requestsMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = fetchErrMessage(msg.err, "Could not load requests")
			return m, nil
		}
		m.stores.Requests.Populate(msg.requests)
		return m, nil

	case reviewSentMsg:
		if msg.err != nil {
			// The record is already gone; failure is visible, not rolled back.
			return m, components.ShowErrorWith("Couldn't submit your review", api.ServerMessage(msg.err))
		}
		if msg.status == model.ReviewAccepted {
			// An accepted request becomes a connection server-side; refetch
			// so the connections list reflects it.
			return m, m.fetchConnections()
		}
		return m, nil
	}
	return m, nil
}

func fetchErrMessage(err error, fallback string) string {
	if detail := api.ServerMessage(err); detail != "" {
		return detail
	}
	return fallback
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
	case "tab":
		if m.tab == TabConnections {
			m.SetTab(TabRequests)
		} else {
			m.SetTab(TabConnections)
		}
	case "enter":
		if m.tab == TabConnections {
			list := m.stores.Connections.List()
			if m.cursor < len(list) {
				target := list[m.cursor]
				return m, func() tea.Msg { return OpenChatMsg{Target: target} }
			}
		}
	case "a":
		if m.tab == TabRequests {
			return m.review(model.ReviewAccepted)
		}
	case "r":
		if m.tab == TabRequests {
			return m.review(model.ReviewRejected)
		}
	}
	return m, nil
}

// review resolves the selected request: optimistic removal first, then the
// review POST for the actual chosen status.
func (m *Model) review(status model.ReviewStatus) (*Model, tea.Cmd) {
	list := m.stores.Requests.List()
	if m.cursor >= len(list) {
		return m, nil
	}
	req := list[m.cursor]
	m.stores.Requests.Remove(req.ID)
	if m.cursor >= m.stores.Requests.Len() && m.cursor > 0 {
		m.cursor--
	}
	return m, m.sendReview(status, req.ID)
}

func (m *Model) listLen() int {
	if m.tab == TabConnections {
		return m.stores.Connections.Len()
	}
	return m.stores.Requests.Len()
}
