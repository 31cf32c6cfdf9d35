// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/realtime"
	"github.com/tinder4devs/devtinder-tui/internal/session"
	"github.com/tinder4devs/devtinder-tui/internal/ui/account"
	"github.com/tinder4devs/devtinder-tui/internal/ui/auth"
	"github.com/tinder4devs/devtinder-tui/internal/ui/chat"
	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
	"github.com/tinder4devs/devtinder-tui/internal/ui/people"
)

// Update routes messages to the owning view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case bootstrapMsg:
		if msg.err != nil {
			// No valid cookie (or no server). Either way the user logs in.
			m.view = ViewAuth
			if !errors.Is(msg.err, api.ErrNoSession) {
				return m, components.ShowErrorWith(
					"Can't reach the server",
					"Check that the API is running, then log in.",
				)
			}
			return m, nil
		}
		return m.enterAuthenticated(msg.profile)

	case auth.SuccessMsg:
		return m.enterAuthenticated(msg.Profile)

	case account.LogoutMsg:
		return m, m.logout()

	case loggedOutMsg:
		m.teardownSession()
		return m, components.ShowInfo("Logged out")

	case ConfigReloadedMsg:
		m.cfg = msg.Config
		return m, components.ShowInfo("Configuration reloaded")

	case session.TickMsg:
		return m, m.tracker.HandleTick()

	case session.ProbeDueMsg:
		if m.authenticated() {
			return m, m.probeSession()
		}
		return m, nil

	case probeResultMsg:
		if errors.Is(msg.err, api.ErrNoSession) {
			m.teardownSession()
			return m, components.ShowWarning("Session expired. Log in again.")
		}
		return m, nil

	case channelReadyMsg:
		if msg.err != nil {
			return m, components.ShowErrorWith(
				"Chat is offline",
				"Live messages are unavailable. History still loads.",
			)
		}
		return m, nil

	case channelEventMsg:
		var cmds []tea.Cmd
		if msg.event.Kind == realtime.KindMessage && m.chatMounted {
			var cmd tea.Cmd
			m.chatView, cmd = m.chatView.Update(chat.IncomingMsg{Event: msg.event})
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.waitForEvent())
		return m, tea.Batch(cmds...)

	case people.OpenChatMsg:
		if m.chatMounted {
			m.chatView.Unmount()
		}
		m.view = ViewChat
		m.chatMounted = true
		return m, m.chatView.Mount(msg.Target)

	case components.ShowToastMsg:
		m.toasts.Add(msg.Toast)
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()
	}

	return m.broadcast(msg)
}

// broadcast delivers a non-key message to every view. Results of fetches
// started before a view switch still land this way.
func (m *Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.authView, cmd = m.authView.Update(msg)
	cmds = append(cmds, cmd)
	m.feedView, cmd = m.feedView.Update(msg)
	cmds = append(cmds, cmd)
	m.peopleView, cmd = m.peopleView.Update(msg)
	cmds = append(cmds, cmd)
	m.accountView, cmd = m.accountView.Update(msg)
	cmds = append(cmds, cmd)
	if m.chatMounted {
		m.chatView, cmd = m.chatView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - statusBarHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.authView.SetSize(msg.Width, msg.Height)
	m.feedView.SetSize(msg.Width, contentHeight)
	m.peopleView.SetSize(msg.Width, contentHeight)
	m.chatView.SetSize(msg.Width, contentHeight)
	m.accountView.SetSize(msg.Width, contentHeight)
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.tracker.RecordActivity()

	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.authenticated() {
		switch msg.String() {
		case "f1":
			return m.switchTo(ViewFeed)
		case "f2":
			return m.switchTo(ViewPeople)
		case "f3":
			if m.chatMounted {
				return m.switchTo(ViewChat)
			}
			// No conversation open yet; pick one first.
			return m.switchTo(ViewPeople)
		case "f4":
			return m.switchTo(ViewAccount)
		}

		// Plain letters are global only on views without a text input.
		if m.view == ViewFeed || m.view == ViewPeople {
			switch msg.String() {
			case "q":
				return m.quit()
			case "x":
				m.toasts.DismissNewest()
				return m, nil
			}
		}
	}

	return m.routeKey(msg)
}

// routeKey sends a key to the active view only.
func (m *Model) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewFeed:
		m.feedView, cmd = m.feedView.Update(msg)
	case ViewPeople:
		m.peopleView, cmd = m.peopleView.Update(msg)
	case ViewChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewAccount:
		m.accountView, cmd = m.accountView.Update(msg)
	}
	return m, cmd
}

// switchTo changes the active view, mounting it and tearing down a left chat.
func (m *Model) switchTo(view View) (tea.Model, tea.Cmd) {
	if m.view == view {
		return m, nil
	}
	if m.view == ViewChat && view != ViewChat {
		m.chatView.Unmount()
		m.chatMounted = false
	}
	m.view = view

	switch view {
	case ViewFeed:
		return m, m.feedView.Mount()
	case ViewPeople:
		return m, m.peopleView.Mount()
	case ViewAccount:
		return m, m.accountView.Mount()
	}
	return m, nil
}

// enterAuthenticated stores the profile, seeds persisted decisions, dials the
// channel, and lands on the feed.
func (m *Model) enterAuthenticated(profile *model.Profile) (tea.Model, tea.Cmd) {
	m.stores.Session.Set(profile)

	if m.journal != nil {
		// Local sqlite read; cheap enough to do inline so the first feed
		// fetch is already filtered.
		if decided, err := m.journal.DecidedSet(context.Background()); err == nil {
			m.stores.Feed.SeedDecided(decided)
		}
	}

	m.view = ViewFeed
	return m, tea.Batch(
		m.connectChannel(),
		m.waitForEvent(),
		m.feedView.Mount(),
	)
}

// teardownSession clears every store and replaces the channel. Close is
// terminal, so the next login gets a fresh one.
func (m *Model) teardownSession() {
	if m.chatMounted {
		m.chatView.Unmount()
		m.chatMounted = false
	}
	m.channel.Close()
	m.channel = newChannel(m.cfg)
	m.chatView = chat.New(m.theme, m.stores, m.client, m.channel)
	// Resize only flows through handleResize; the replacement view starts
	// unsized and must inherit the current bounds.
	if m.width > 0 {
		m.chatView.SetSize(m.width, m.height-statusBarHeight)
	}

	m.stores.ClearAll()
	m.toasts.Clear()
	m.view = ViewAuth
	m.authView.SetMode(auth.ModeLogin)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.channel.Close()
	return m, tea.Quit
}

func (m *Model) authenticated() bool {
	return m.stores.Session.Authenticated()
}
