// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feed

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/swipe"
	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
)

// Update handles feed messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loadedMsg:
		m.fetching = false
		if msg.err != nil {
			// Distinguishable error state: server wording when available.
			if detail := api.ServerMessage(msg.err); detail != "" {
				m.errMsg = detail
			} else {
				m.errMsg = "Could not load your feed"
			}
			return m, nil
		}
		m.stores.Feed.Populate(msg.profiles)
		return m, nil

	case requestsLoadedMsg:
		if msg.err == nil {
			m.stores.Requests.Populate(msg.requests)
		}
		return m, nil

	case decisionSentMsg:
		if msg.err != nil {
			// Optimistic: the card stays gone. The failure is visible but
			// not recoverable from here.
			return m, components.ShowErrorWith("Couldn't record your swipe", api.ServerMessage(msg.err))
		}
		return m, nil

	case flyTickMsg:
		return m.advanceFlyOut()

	case decayTickMsg:
		if m.engine.State() == swipe.StateDragging {
			m.engine.Decay(decayFraction)
			if m.engine.State() == swipe.StateDragging {
				return m, decayTick()
			}
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// handleKey maps keys onto the gesture state machine.
func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.fetching || m.errMsg != "" {
		if msg.String() == "R" && m.errMsg != "" {
			m.errMsg = ""
			m.fetching = true
			return m, tea.Batch(m.fetchFeed(), m.spinner.Tick)
		}
		return m, nil
	}
	if _, ok := m.stores.Feed.Front(); !ok {
		return m, nil
	}

	switch msg.String() {
	case "right":
		return m.drag(dragStep)
	case "left":
		return m.drag(-dragStep)
	case "enter", " ":
		// Release: resolve the accumulated offset.
		if dir := m.engine.Release(); dir != swipe.DirectionNone {
			return m.beginCommit(dir)
		}
		return m, nil
	case "i":
		// Button path: direct commit, same animation.
		if m.engine.Commit(swipe.DirectionInterested) {
			return m.beginCommit(swipe.DirectionInterested)
		}
		return m, nil
	case "x":
		if m.engine.Commit(swipe.DirectionIgnore) {
			return m.beginCommit(swipe.DirectionIgnore)
		}
		return m, nil
	case "esc":
		// Abandon the drag outright.
		if m.engine.State() == swipe.StateDragging {
			m.engine.Finish()
		}
		return m, nil
	}
	return m, nil
}

// drag accumulates offset on the front card. Ignored while a commit is in
// flight so the animating card cannot be steered.
func (m *Model) drag(dx float64) (*Model, tea.Cmd) {
	if m.engine.InFlight() {
		return m, nil
	}
	started := m.engine.State() != swipe.StateDragging
	m.engine.Begin()
	m.engine.Drag(dx, 0)
	if started {
		return m, decayTick()
	}
	return m, nil
}

// beginCommit captures the front card, fires the decision request, and
// starts the fly-out. The store mutation waits for the animation; the
// request does not.
func (m *Model) beginCommit(dir swipe.Direction) (*Model, tea.Cmd) {
	front, ok := m.stores.Feed.Front()
	if !ok {
		m.engine.Finish()
		return m, nil
	}
	m.committing = &front
	m.decision = dir.Decision()
	m.commitStart = time.Now()
	return m, tea.Batch(m.sendDecision(m.decision, front.ID), flyTick())
}

// advanceFlyOut steps the commit animation and finalizes the swipe when it
// completes: exactly one removal from the queue per commit.
func (m *Model) advanceFlyOut() (*Model, tea.Cmd) {
	if m.committing == nil {
		return m, nil
	}
	elapsed := time.Since(m.commitStart)
	if !m.engine.FlyOutDone(elapsed) {
		return m, flyTick()
	}

	m.stores.Feed.CommitFront(m.decision)
	m.committing = nil
	m.engine.Finish()
	return m, nil
}
