// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/realtime"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// NavItem is one entry in the status bar's navigation strip.
type NavItem struct {
	Key    string
	Label  string
	Active bool
	// Badge renders a count next to the label when positive. The requests
	// tab uses this for pending incoming requests.
	Badge int
}

// StatusBarData is everything the status bar renders.
type StatusBarData struct {
	Items    []NavItem
	Channel  realtime.Status
	UserName string
	Width    int
}

// RenderStatusBar renders the one-line bar shown at the bottom of every
// authenticated view: navigation tabs, the channel indicator, and the user.
func RenderStatusBar(theme *styles.Theme, data StatusBarData) string {
	var tabs []string
	for _, item := range data.Items {
		label := "[" + item.Key + "] " + item.Label
		if item.Badge > 0 {
			label += " " + theme.Badge.Render(util.IntToString(item.Badge))
		}
		if item.Active {
			tabs = append(tabs, theme.ShortcutKey.Render(label))
		} else {
			tabs = append(tabs, theme.ShortcutDesc.Render(label))
		}
	}
	left := strings.Join(tabs, "  ")

	right := renderChannelIndicator(theme, data.Channel)
	if data.UserName != "" {
		right = theme.ShortcutDesc.Render(data.UserName) + "  " + right
	}

	gap := data.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return theme.StatusBar.Width(data.Width).Render(line)
}

// renderChannelIndicator shows the realtime connection state. Stale gets the
// loudest treatment: displayed chat state may be missing messages.
func renderChannelIndicator(theme *styles.Theme, status realtime.Status) string {
	switch status {
	case realtime.StatusOnline:
		return theme.StatusOnline.Render(styles.StatusIndicators.Active + " live")
	case realtime.StatusStale:
		return theme.StatusStale.Render(styles.StatusIndicators.Warning + " stale")
	case realtime.StatusReconnecting:
		return theme.StatusStale.Render(styles.PulseSpinner.Frame(time.Now()) + " reconnecting")
	case realtime.StatusClosed:
		return theme.ShortcutDesc.Render(styles.StatusIndicators.Error + " offline")
	default:
		return theme.ShortcutDesc.Render(styles.StatusIndicators.Pending + " connecting")
	}
}
