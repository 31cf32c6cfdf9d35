// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the per-conversation message view.
//
// Entering a conversation fetches its history, resolves counterpart metadata
// from the connections store (fetching it when empty), and joins the channel
// room for the pair. Leaving tears the subscription down before any new join,
// so a re-entered conversation never sees deliveries addressed to its prior
// subscription.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/realtime"
	"github.com/tinder4devs/devtinder-tui/internal/store"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// Model is one mounted conversation.
type Model struct {
	theme   *styles.Theme
	stores  *store.Stores
	client  *api.Client
	channel *realtime.Channel

	target   model.Profile
	messages []model.ChatMessage

	// generation identifies this mount's channel subscription. Deliveries
	// tagged with any other generation are discarded.
	generation int64

	viewport viewport.Model
	input    textinput.Model

	loading bool
	width   int
	height  int
}

// New creates an unmounted chat view.
func New(theme *styles.Theme, stores *store.Stores, client *api.Client, channel *realtime.Channel) *Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 500
	input.Prompt = "> "

	return &Model{
		theme:    theme,
		stores:   stores,
		client:   client,
		channel:  channel,
		input:    input,
		viewport: viewport.New(0, 0),
	}
}

// SetSize updates the layout bounds.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 7
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.input.Width = width - 8
}

// Target returns the conversation counterpart.
func (m *Model) Target() model.Profile {
	return m.target
}

// Messages returns the current transcript. Test hook for the append-only
// property.
func (m *Model) Messages() []model.ChatMessage {
	return m.messages
}

// Mount enters the conversation with the given counterpart: history fetch,
// connections fetch when the store is empty, and a fresh channel join.
func (m *Model) Mount(target model.Profile) tea.Cmd {
	m.target = target
	m.messages = nil
	m.loading = true
	m.input.Reset()
	m.input.Focus()

	self := m.stores.Session.Get()
	firstName := ""
	userID := ""
	if self != nil {
		firstName = self.FirstName
		userID = self.ID
	}
	gen, err := m.channel.Join(userID, target.ID, firstName)
	m.generation = gen

	cmds := []tea.Cmd{m.fetchHistory(target.ID), textinput.Blink}
	if err != nil {
		cmds = append(cmds, func() tea.Msg {
			return joinFailedMsg{err: err}
		})
	}
	if !m.stores.Connections.Loaded() {
		cmds = append(cmds, m.fetchConnections())
	}
	return tea.Batch(cmds...)
}

// Unmount leaves the conversation, invalidating the subscription before any
// later join.
func (m *Model) Unmount() {
	m.channel.Leave()
	m.input.Blur()
}

// =============================================================================
// MESSAGES
// =============================================================================

// IncomingMsg wraps a channel delivery routed to this view by the app root.
type IncomingMsg struct {
	Event realtime.Event
}

type historyMsg struct {
	messages []model.ChatMessage
	err      error
}

type connectionsMsg struct {
	profiles []model.Profile
	err      error
}

type joinFailedMsg struct {
	err error
}

type sendFailedMsg struct {
	err error
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) fetchHistory(targetID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		messages, err := client.ChatHistory(ctx, targetID)
		return historyMsg{messages: messages, err: err}
	}
}

func (m *Model) fetchConnections() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		profiles, err := client.Connections(ctx)
		return connectionsMsg{profiles: profiles, err: err}
	}
}

func (m *Model) sendMessage(msg model.ChatMessage) tea.Cmd {
	channel := m.channel
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		if err := channel.Send(ctx, msg); err != nil {
			return sendFailedMsg{err: err}
		}
		return nil
	}
}
