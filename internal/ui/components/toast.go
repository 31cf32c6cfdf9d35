// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI pieces for the devtinder TUI.
//
// This file implements the notification channel: non-blocking toasts in the
// bottom-right corner with auto-dismiss. Failures of optimistic actions
// (swipe decisions, request reviews) surface here without interrupting the
// current view.
package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind classifies a toast notification.
type ToastKind int

const (
	// ToastInfo is an informational toast (cyan).
	ToastInfo ToastKind = iota
	// ToastError is an error toast (rose).
	ToastError
	// ToastWarning is a warning toast (amber).
	ToastWarning
	// ToastSuccess is a success toast (emerald).
	ToastSuccess
)

// Auto-dismiss durations per kind. Errors linger longer so they can be read.
const (
	InfoToastDuration    = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second
	WarningToastDuration = 6 * time.Second
	SuccessToastDuration = 4 * time.Second
)

// Toast is one queued user-facing notification.
type Toast struct {
	ID          int
	Message     string
	Description string
	Kind        ToastKind
	CreatedAt   time.Time
	Duration    time.Duration
	Dismissible bool
}

// durationFor returns the default lifetime for a kind.
func durationFor(kind ToastKind) time.Duration {
	switch kind {
	case ToastError:
		return ErrorToastDuration
	case ToastWarning:
		return WarningToastDuration
	case ToastSuccess:
		return SuccessToastDuration
	default:
		return InfoToastDuration
	}
}

// NewToast creates a toast with the default duration for its kind.
func NewToast(kind ToastKind, message string) Toast {
	return Toast{
		ID:          nextToastID(),
		Message:     message,
		Kind:        kind,
		CreatedAt:   time.Now(),
		Duration:    durationFor(kind),
		Dismissible: true,
	}
}

// WithDescription attaches a secondary detail line.
func (t Toast) WithDescription(description string) Toast {
	t.Description = description
	return t
}

// IsExpired returns true once the toast should be dismissed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns the time left before auto-dismiss.
func (t *Toast) TimeRemaining() time.Duration {
	remaining := t.Duration - time.Since(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager owns the toast queue.
type ToastManager struct {
	toasts    []Toast
	maxToasts int
	mutex     sync.Mutex
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		maxToasts: 5,
	}
}

// Add queues a toast, newest first, trimming past the visible maximum.
func (m *ToastManager) Add(toast Toast) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if toast.ID == 0 {
		toast.ID = nextToastID()
	}
	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return toast.ID
}

// Error queues an error toast.
func (m *ToastManager) Error(message string) int {
	return m.Add(NewToast(ToastError, message))
}

// Warning queues a warning toast.
func (m *ToastManager) Warning(message string) int {
	return m.Add(NewToast(ToastWarning, message))
}

// Info queues an informational toast.
func (m *ToastManager) Info(message string) int {
	return m.Add(NewToast(ToastInfo, message))
}

// Success queues a success toast.
func (m *ToastManager) Success(message string) int {
	return m.Add(NewToast(ToastSuccess, message))
}

// Remove dismisses a toast by ID.
func (m *ToastManager) Remove(id int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissNewest removes the most recent dismissible toast. Bound to a key
// so stacked toasts can be cleared one press at a time.
func (m *ToastManager) DismissNewest() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, toast := range m.toasts {
		if toast.Dismissible {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick drops expired toasts and returns what is left. Called on every toast
// tick message.
func (m *ToastManager) Tick() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.IsExpired() {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return append([]Toast(nil), m.toasts...)
}

// Toasts returns a copy of the current queue.
func (m *ToastManager) Toasts() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// HasToasts reports whether any toast is active.
func (m *ToastManager) HasToasts() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.toasts) > 0
}

// Clear drops every toast.
func (m *ToastManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks toasts every 100ms while any are visible.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast box.
func RenderToast(toast Toast, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	var accent lipgloss.AdaptiveColor
	var icon string
	switch toast.Kind {
	case ToastError:
		accent = styles.Rose
		icon = styles.StatusIndicators.Error
	case ToastWarning:
		accent = styles.Amber
		icon = styles.StatusIndicators.Warning
	case ToastSuccess:
		accent = styles.Emerald
		icon = styles.StatusIndicators.Success
	default:
		accent = styles.Cyan
		icon = styles.StatusIndicators.Info
	}

	iconStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	message := util.WrapWords(toast.Message, maxWidth-10)
	content := iconStyle.Render(icon+" ") + messageStyle.Render(message)

	if toast.Description != "" {
		descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		content += "\n" + descStyle.Render(util.WrapWords(toast.Description, maxWidth-10))
	}

	if toast.Dismissible {
		hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
		hints := []string{"[x] Dismiss"}
		if secs := int(toast.TimeRemaining().Seconds()); secs > 0 {
			hints = append(hints, util.IntToString(secs)+"s")
		}
		content += "\n" + hintStyle.Render(strings.Join(hints, "  "))
	}

	boxStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 2).
		MaxWidth(maxWidth)

	return boxStyle.Render(content)
}

// RenderToastStack renders the queue stacked in the bottom-right corner,
// newest at the bottom.
func RenderToastStack(toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(toast, width))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	positioned := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, positioned)
	}
	return positioned
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

var (
	toastIDMutex   sync.Mutex
	toastIDCounter int
)

func nextToastID() int {
	toastIDMutex.Lock()
	defer toastIDMutex.Unlock()
	toastIDCounter++
	return toastIDCounter
}
