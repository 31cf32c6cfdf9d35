// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feed

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// View renders the feed.
func (m *Model) View() string {
	if m.fetching {
		return m.center(m.spinner.View() + " Finding developers near you...")
	}
	if m.errMsg != "" {
		body := m.theme.ErrorState.Render(m.errMsg) + "\n\n" +
			m.theme.ShortcutDesc.Render("[R] Retry")
		return m.center(body)
	}

	stack := m.stores.Feed.Peek(stackDepth)
	if len(stack) == 0 {
		return m.center(m.theme.EmptyState.Render("No more candidates.\nCheck back later."))
	}

	cardWidth := 48
	if m.width > 0 && m.width-10 < cardWidth {
		cardWidth = m.width - 10
	}

	// Back cards render as a static stack behind the front card; they never
	// receive input.
	var b strings.Builder
	for i := len(stack) - 1; i >= 1; i-- {
		peek := util.TruncateWidth(stack[i].FullName(), cardWidth-6)
		b.WriteString(m.theme.CardBack.Width(cardWidth - 2*i).Render(peek))
		b.WriteString("\n")
	}

	offset := m.engine.OffsetX()
	front := stack[0]
	if m.committing != nil {
		front = *m.committing
		offset = m.engine.FlyOutOffset(time.Since(m.commitStart))
	}
	b.WriteString(components.RenderCard(m.theme, front, components.CardOptions{
		Width:   cardWidth,
		Front:   true,
		OffsetX: offset,
	}))

	b.WriteString("\n\n")
	b.WriteString(m.theme.ShortcutDesc.Render(
		"←/→ drag  ·  enter release  ·  [i] interested  ·  [x] ignore"))

	return b.String()
}

func (m *Model) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
}
