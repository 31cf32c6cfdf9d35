// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ShowToastMsg asks the app root to queue a toast. Views emit this instead
// of touching the manager directly, so every notification flows through one
// place.
type ShowToastMsg struct {
	Toast Toast
}

// ShowError returns a command that queues an error toast.
func ShowError(message string) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Toast: NewToast(ToastError, message)}
	}
}

// ShowErrorWith returns a command that queues an error toast with detail.
func ShowErrorWith(message, description string) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Toast: NewToast(ToastError, message).WithDescription(description)}
	}
}

// ShowSuccess returns a command that queues a success toast.
func ShowSuccess(message string) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Toast: NewToast(ToastSuccess, message)}
	}
}

// ShowInfo returns a command that queues an informational toast.
func ShowInfo(message string) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Toast: NewToast(ToastInfo, message)}
	}
}

// ShowWarning returns a command that queues a warning toast.
func ShowWarning(message string) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Toast: NewToast(ToastWarning, message)}
	}
}
