// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/realtime"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// View renders the conversation.
func (m *Model) View() string {
	var b strings.Builder

	header := m.target.FullName()
	if header == "" {
		header = "Conversation"
	}
	if m.channel.Status() == realtime.StatusStale {
		header += "  " + m.theme.StatusStale.Render(styles.StatusIndicators.Warning+" connection stale")
	}
	b.WriteString(m.theme.ChatHeader.Render(header))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.theme.EmptyState.Render("Loading history..."))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render("enter send  ·  esc back"))
	return b.String()
}

// renderMessages renders the transcript as chat bubbles, own messages on the
// right.
func (m *Model) renderMessages() string {
	if len(m.messages) == 0 {
		return m.theme.EmptyState.Render("No messages yet. Say hi!")
	}

	selfID := m.stores.Session.UserID()
	bubbleWidth := m.viewport.Width * 2 / 3
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	var lines []string
	for _, msg := range m.messages {
		own := msg.IsFrom(selfID)

		body := util.WrapWords(msg.Text, bubbleWidth-4)
		meta := msg.FirstName
		if msg.Timestamp != "" {
			if meta != "" {
				meta += " · "
			}
			meta += msg.Timestamp
		}

		var bubble string
		if own {
			bubble = m.theme.OwnBubble.MaxWidth(bubbleWidth).Render(body)
		} else {
			bubble = m.theme.PeerBubble.MaxWidth(bubbleWidth).Render(body)
		}
		if meta != "" {
			bubble += "\n" + m.theme.ChatTime.Render(meta)
		}

		if own {
			bubble = lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, bubble)
		}
		lines = append(lines, bubble)
	}
	return strings.Join(lines, "\n")
}
