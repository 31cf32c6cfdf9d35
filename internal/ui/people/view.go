// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package people

import (
	"strings"

	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// View renders the active list.
func (m *Model) View() string {
	var b strings.Builder

	connLabel := "Connections"
	reqLabel := "Requests"
	if n := m.stores.Requests.Len(); n > 0 {
		reqLabel += " (" + util.IntToString(n) + ")"
	}
	if m.tab == TabConnections {
		b.WriteString(m.theme.ShortcutKey.Render(connLabel) + "  " + m.theme.ShortcutDesc.Render(reqLabel))
	} else {
		b.WriteString(m.theme.ShortcutDesc.Render(connLabel) + "  " + m.theme.ShortcutKey.Render(reqLabel))
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.theme.EmptyState.Render("Loading..."))
	case m.errMsg != "":
		b.WriteString(m.theme.ErrorState.Render(m.errMsg))
	case m.tab == TabConnections:
		b.WriteString(m.renderConnections())
	default:
		b.WriteString(m.renderRequests())
	}

	b.WriteString("\n\n")
	if m.tab == TabConnections {
		b.WriteString(m.theme.ShortcutDesc.Render("enter chat  ·  tab requests  ·  ↑/↓ move"))
	} else {
		b.WriteString(m.theme.ShortcutDesc.Render("[a] accept  ·  [r] reject  ·  tab connections  ·  ↑/↓ move"))
	}
	return b.String()
}

func (m *Model) renderConnections() string {
	list := m.stores.Connections.List()
	if len(list) == 0 {
		return m.theme.EmptyState.Render("No connections yet. Keep swiping!")
	}

	var lines []string
	for i, p := range list {
		lines = append(lines, m.renderRow(i, p, ""))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRequests() string {
	list := m.stores.Requests.List()
	if len(list) == 0 {
		return m.theme.EmptyState.Render("No pending requests.")
	}

	var lines []string
	for i, req := range list {
		lines = append(lines, m.renderRow(i, req.From, "wants to connect"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(i int, p model.Profile, note string) string {
	width := m.width - 6
	if width < 24 {
		width = 24
	}

	name := m.theme.RowName.Render(p.FullName())
	detail := p.About
	if note != "" {
		detail = note
	}
	line := name
	if detail != "" {
		line += "  " + m.theme.RowDetail.Render(util.TruncateWidth(detail, width/2))
	}

	if i == m.cursor {
		return m.theme.RowSelected.Width(width).Render(line)
	}
	return m.theme.Row.Width(width).Render(line)
}
