// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/realtime"
	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
)

// Update handles conversation messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}

	case historyMsg:
		m.loading = false
		if msg.err != nil {
			return m, components.ShowErrorWith("Couldn't load history", api.ServerMessage(msg.err))
		}
		// History replaces the transcript; live messages append after it.
		m.messages = append(msg.messages, m.messages...)
		m.refreshViewport()
		return m, nil

	case connectionsMsg:
		if msg.err == nil {
			m.stores.Connections.Populate(msg.profiles)
			if p, ok := m.stores.Connections.Get(m.target.ID); ok {
				m.target = p
			}
		}
		return m, nil

	case IncomingMsg:
		return m.receive(msg.Event)

	case joinFailedMsg:
		return m, components.ShowWarning("Chat room join failed, retrying in background")

	case sendFailedMsg:
		return m, components.ShowErrorWith("Message not delivered", msg.err.Error())
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit sends the drafted message: local append first, channel emit second,
// no acknowledgement awaited.
func (m *Model) submit() (*Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	self := m.stores.Session.Get()
	if self == nil {
		return m, nil
	}

	out := model.NewOutgoingMessage(self.ID, m.target.ID, text, self.FirstName)
	m.messages = append(m.messages, out)
	m.input.Reset()
	m.refreshViewport()
	return m, m.sendMessage(out)
}

// receive appends a channel delivery. Deliveries from a replaced
// subscription carry an older generation and are dropped, which is what
// keeps a re-entered conversation from double-appending.
func (m *Model) receive(ev realtime.Event) (*Model, tea.Cmd) {
	if ev.Kind != realtime.KindMessage {
		return m, nil
	}
	if ev.Generation != m.generation {
		return m, nil
	}
	// Own messages echoed by the server are already in the list.
	if self := m.stores.Session.Get(); self != nil && ev.Message.IsFrom(self.ID) {
		return m, nil
	}
	m.messages = append(m.messages, ev.Message)
	m.refreshViewport()
	return m, nil
}

// refreshViewport re-renders the transcript and auto-scrolls to the newest
// message.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}
