// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed implements the swipeable candidate feed view.
//
// Arrow keys accumulate a horizontal drag offset on the front card; enter
// releases the gesture. A drag left to decay relaxes back to center on a
// timer, mirroring a pointer that never commits. Direction keys (i / x)
// bypass the drag and commit directly, guarded against double submission
// while a commit is in flight.
package feed

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/journal"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/store"
	"github.com/tinder4devs/devtinder-tui/internal/swipe"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// Timing for the gesture loop.
const (
	// dragStep is the offset added per arrow key press.
	dragStep = 25.0

	// decayInterval drives the relaxation of an abandoned drag.
	decayInterval = 150 * time.Millisecond

	// decayFraction is how much of the offset each decay tick removes.
	decayFraction = 0.15

	// flyFrameInterval drives the commit animation.
	flyFrameInterval = 50 * time.Millisecond

	// stackDepth is how many cards render behind the front card.
	stackDepth = 3
)

// Model is the feed view.
type Model struct {
	theme   *styles.Theme
	stores  *store.Stores
	client  *api.Client
	journal *journal.Journal

	engine  *swipe.Engine
	spinner spinner.Model

	// committing holds the card being flown out; it is still the store
	// front until the animation completes.
	committing  *model.Profile
	decision    model.Decision
	commitStart time.Time

	fetching bool
	errMsg   string

	width  int
	height int
}

// New creates the feed view.
func New(theme *styles.Theme, stores *store.Stores, client *api.Client, j *journal.Journal) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return &Model{
		theme:   theme,
		stores:  stores,
		client:  client,
		journal: j,
		engine:  swipe.NewEngine(),
		spinner: sp,
	}
}

// SetSize updates the layout bounds.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mount returns the commands a fresh visit needs: a candidate fetch when the
// store has never loaded, plus a companion requests fetch so the navigation
// badge stays current. A second visit with a populated store fetches nothing.
func (m *Model) Mount() tea.Cmd {
	var cmds []tea.Cmd

	if m.stores.Feed.NeedsFetch() {
		m.fetching = true
		m.errMsg = ""
		cmds = append(cmds, m.fetchFeed(), m.spinner.Tick)
	}
	if m.stores.Requests.NeedsFetch() {
		cmds = append(cmds, m.fetchRequests())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// MESSAGES
// =============================================================================

// loadedMsg carries the feed fetch result.
type loadedMsg struct {
	profiles []model.Profile
	err      error
}

// requestsLoadedMsg carries the companion requests fetch result.
type requestsLoadedMsg struct {
	requests []model.RequestRecord
	err      error
}

// decisionSentMsg reports the outcome of a decision POST. The card is
// already gone either way.
type decisionSentMsg struct {
	id  string
	err error
}

// flyTickMsg advances the commit animation.
type flyTickMsg struct{}

// decayTickMsg relaxes an abandoned drag.
type decayTickMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) fetchFeed() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		profiles, err := client.Feed(ctx)
		return loadedMsg{profiles: profiles, err: err}
	}
}

func (m *Model) fetchRequests() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		requests, err := client.ReceivedRequests(ctx)
		return requestsLoadedMsg{requests: requests, err: err}
	}
}

// sendDecision issues the POST concurrently with the fly-out. It never
// blocks the animation and its failure never restores the card.
func (m *Model) sendDecision(decision model.Decision, id string) tea.Cmd {
	client := m.client
	j := m.journal
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		if j != nil {
			_ = j.Record(ctx, id, decision)
		}
		err := client.SendDecision(ctx, decision, id)
		return decisionSentMsg{id: id, err: err}
	}
}

func flyTick() tea.Cmd {
	return tea.Tick(flyFrameInterval, func(time.Time) tea.Msg {
		return flyTickMsg{}
	})
}

func decayTick() tea.Cmd {
	return tea.Tick(decayInterval, func(time.Time) tea.Msg {
		return decayTickMsg{}
	})
}
