// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
)

// View renders the active screen with the status bar and any toasts.
func (m *Model) View() string {
	switch m.view {
	case ViewLaunch:
		return m.renderLaunch()
	case ViewAuth:
		return m.overlayToasts(m.authView.View())
	}

	var content string
	switch m.view {
	case ViewFeed:
		content = m.feedView.View()
	case ViewPeople:
		content = m.peopleView.View()
	case ViewChat:
		content = m.chatView.View()
	case ViewAccount:
		content = m.accountView.View()
	}

	bar := components.RenderStatusBar(m.theme, components.StatusBarData{
		Items:    m.navItems(),
		Channel:  m.channel.Status(),
		UserName: m.userName(),
		Width:    m.width,
	})

	contentHeight := m.height - statusBarHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	body := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, content)

	return m.overlayToasts(body + "\n" + bar)
}

func (m *Model) navItems() []components.NavItem {
	return []components.NavItem{
		{Key: "f1", Label: "Feed", Active: m.view == ViewFeed},
		{Key: "f2", Label: "People", Active: m.view == ViewPeople, Badge: m.stores.Requests.Len()},
		{Key: "f3", Label: "Chat", Active: m.view == ViewChat},
		{Key: "f4", Label: "Account", Active: m.view == ViewAccount},
	}
}

func (m *Model) userName() string {
	if profile := m.stores.Session.Get(); profile != nil {
		return profile.FirstName
	}
	return ""
}

// overlayToasts appends the toast stack below the screen content. Toasts
// render last so they sit visually on top.
func (m *Model) overlayToasts(screen string) string {
	if !m.toasts.HasToasts() {
		return screen
	}
	stack := components.RenderToastStack(m.toasts.Toasts(), m.width, 0)
	return screen + "\n" + stack
}

func (m *Model) renderLaunch() string {
	var b strings.Builder
	b.WriteString(m.theme.CardTitle.Render("Tinder4Devs"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.ShortcutDesc.Render("Checking your session..."))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}
