// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model: view routing, session bootstrap,
// channel ownership, and the toast manager.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/config"
	"github.com/tinder4devs/devtinder-tui/internal/journal"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/realtime"
	"github.com/tinder4devs/devtinder-tui/internal/session"
	"github.com/tinder4devs/devtinder-tui/internal/store"
	"github.com/tinder4devs/devtinder-tui/internal/ui/account"
	"github.com/tinder4devs/devtinder-tui/internal/ui/auth"
	"github.com/tinder4devs/devtinder-tui/internal/ui/chat"
	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
	"github.com/tinder4devs/devtinder-tui/internal/ui/feed"
	"github.com/tinder4devs/devtinder-tui/internal/ui/people"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// View identifies the active screen.
type View int

const (
	// ViewLaunch is the initial screen while the session probe runs.
	ViewLaunch View = iota
	// ViewAuth is the login / signup / forgot-password screen.
	ViewAuth
	// ViewFeed is the swipe deck.
	ViewFeed
	// ViewPeople lists connections and incoming requests.
	ViewPeople
	// ViewChat is a conversation with one connection.
	ViewChat
	// ViewAccount is profile edit and premium.
	ViewAccount
)

// statusBarHeight is the vertical space reserved below view content.
const statusBarHeight = 2

// Model is the application root. It owns the stores, the realtime channel,
// and the toast manager; child view models own their own transient state.
type Model struct {
	theme   *styles.Theme
	cfg     *config.Config
	stores  *store.Stores
	client  *api.Client
	journal *journal.Journal
	channel *realtime.Channel
	tracker *session.Manager
	toasts  *components.ToastManager

	view View

	authView    *auth.Model
	feedView    *feed.Model
	peopleView  *people.Model
	chatView    *chat.Model
	accountView *account.Model

	// chatMounted records whether the chat view has a target; switching to
	// chat without one routes through the people view instead.
	chatMounted bool

	width  int
	height int
}

// New wires the full application. The caller owns the client so a session
// persisted by the CLI can be loaded into it first. The journal may be nil
// when the decision history could not be opened; the feed degrades to
// session-only dedup.
func New(cfg *config.Config, client *api.Client, j *journal.Journal) *Model {
	theme := styles.NewTheme()
	stores := store.NewStores()
	channel := newChannel(cfg)

	m := &Model{
		theme:   theme,
		cfg:     cfg,
		stores:  stores,
		client:  client,
		journal: j,
		channel: channel,
		tracker: session.NewManager(session.DefaultConfig()),
		toasts:  components.NewToastManager(),
		view:    ViewLaunch,
	}

	m.authView = auth.New(theme, client)
	m.feedView = feed.New(theme, stores, client, j)
	m.peopleView = people.New(theme, stores, client)
	m.chatView = chat.New(theme, stores, client, channel)
	m.accountView = account.New(theme, stores, client)
	return m
}

func newChannel(cfg *config.Config) *realtime.Channel {
	return realtime.NewChannel(cfg.Channel.SocketURL).
		WithSendRate(cfg.Channel.SendsPerSecond).
		WithReconnectMax(time.Duration(cfg.Channel.ReconnectMaxSecs) * time.Second)
}

// Init starts the session probe and the background tickers.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.bootstrap(),
		session.TickCmd(),
		components.ToastTickCmd(),
	)
}

// =============================================================================
// MESSAGES AND COMMANDS
// =============================================================================

type bootstrapMsg struct {
	profile *model.Profile
	err     error
}

type probeResultMsg struct {
	err error
}

type channelEventMsg struct {
	event realtime.Event
}

type channelReadyMsg struct {
	err error
}

type loggedOutMsg struct{}

// ConfigReloadedMsg carries a config freshly reloaded from disk. Settings
// that bind at construction time (socket URL, reconnect pacing) take effect
// on the next channel rebuild.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// bootstrap probes the stored session cookie. Success skips the login form.
func (m *Model) bootstrap() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		profile, err := client.ProfileView(ctx)
		return bootstrapMsg{profile: profile, err: err}
	}
}

// probeSession re-verifies the cookie after an idle period.
func (m *Model) probeSession() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		_, err := client.ProfileView(ctx)
		return probeResultMsg{err: err}
	}
}

// connectChannel dials the websocket. The channel reconnects on its own
// afterwards; this only reports the first dial.
func (m *Model) connectChannel() tea.Cmd {
	channel := m.channel
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return channelReadyMsg{err: channel.Connect(ctx)}
	}
}

// waitForEvent blocks on the channel's event stream and delivers exactly one
// event. The handler re-arms it, forming the pump.
func (m *Model) waitForEvent() tea.Cmd {
	events := m.channel.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return channelEventMsg{event: ev}
	}
}

// logout ends the server session. Local teardown happens on loggedOutMsg
// regardless of the result: a failed logout still clears this client.
func (m *Model) logout() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		_ = client.Logout(ctx)
		return loggedOutMsg{}
	}
}
