// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the lifetime of the authenticated client session.
//
// The server owns the session cookie; this package only observes it. After a
// stretch of idle time the manager asks the app to re-probe the profile
// endpoint, so an expired cookie is discovered before the next user action
// fails mid-gesture.
package session

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager tracks activity and decides when the session cookie needs a
// liveness probe.
type Manager struct {
	mu sync.Mutex

	sessionID    string
	startTime    time.Time
	lastActivity time.Time

	// idleProbeAfter is how long the user may be idle before the next tick
	// schedules a profile probe.
	idleProbeAfter time.Duration

	// minProbeGap keeps an idle session from probing on every tick.
	minProbeGap time.Duration
	lastProbe   time.Time
}

// Config holds configuration for the session manager.
type Config struct {
	// IdleProbeAfter is the idle duration before a session probe (default: 5 minutes).
	IdleProbeAfter time.Duration

	// MinProbeGap is the minimum spacing between probes (default: 1 minute).
	MinProbeGap time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		IdleProbeAfter: 5 * time.Minute,
		MinProbeGap:    time.Minute,
	}
}

// NewManager creates a new session manager.
func NewManager(cfg Config) *Manager {
	now := time.Now()
	return &Manager{
		sessionID:      "sess_" + now.Format("20060102_150405"),
		startTime:      now,
		lastActivity:   now,
		lastProbe:      now,
		idleProbeAfter: cfg.IdleProbeAfter,
		minProbeGap:    cfg.MinProbeGap,
	}
}

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Duration returns how long the session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.startTime)
}

// IdleTime returns how long since last activity.
func (m *Manager) IdleTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.lastActivity)
}

// RecordActivity updates the last activity timestamp. Called on every key
// press routed through the app.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = time.Now()
}

// RecordProbe marks that a session probe was issued.
func (m *Manager) RecordProbe() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastProbe = time.Now()
}

// ShouldProbe reports whether an idle probe is due.
func (m *Manager) ShouldProbe() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if time.Since(m.lastActivity) < m.idleProbeAfter {
		return false
	}
	return time.Since(m.lastProbe) >= m.minProbeGap
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to evaluate session state.
type TickMsg struct {
	Time time.Time
}

// ProbeDueMsg tells the app to verify the session cookie is still valid.
type ProbeDueMsg struct{}

// TickCmd returns a command that ticks periodically.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick processes a tick, scheduling a probe when one is due and
// always re-arming the ticker.
func (m *Manager) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	if m.ShouldProbe() {
		m.RecordProbe()
		cmds = append(cmds, func() tea.Msg {
			return ProbeDueMsg{}
		})
	}

	cmds = append(cmds, TickCmd())
	return tea.Batch(cmds...)
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status is a snapshot for the status bar.
type Status struct {
	SessionID string
	StartTime time.Time
	Duration  time.Duration
	IdleTime  time.Duration
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	return Status{
		SessionID: m.sessionID,
		StartTime: m.startTime,
		Duration:  now.Sub(m.startTime),
		IdleTime:  now.Sub(m.lastActivity),
	}
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return util.IntToString(secs) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return util.IntToString(mins) + "m"
	}
	return util.IntToString(mins) + "m " + util.IntToString(secs) + "s"
}
