// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"
	"time"
)

func TestActivityResetsIdle(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.mu.Lock()
	m.lastActivity = time.Now().Add(-10 * time.Minute)
	m.mu.Unlock()

	if m.IdleTime() < 9*time.Minute {
		t.Fatalf("IdleTime() = %v, want about 10m", m.IdleTime())
	}
	m.RecordActivity()
	if m.IdleTime() > time.Second {
		t.Errorf("IdleTime() = %v after activity, want ~0", m.IdleTime())
	}
}

func TestShouldProbeOnlyWhenIdle(t *testing.T) {
	m := NewManager(Config{IdleProbeAfter: 5 * time.Minute, MinProbeGap: time.Minute})

	if m.ShouldProbe() {
		t.Error("fresh session should not probe")
	}

	m.mu.Lock()
	m.lastActivity = time.Now().Add(-6 * time.Minute)
	m.lastProbe = time.Now().Add(-2 * time.Minute)
	m.mu.Unlock()

	if !m.ShouldProbe() {
		t.Error("idle session past threshold should probe")
	}

	m.RecordProbe()
	if m.ShouldProbe() {
		t.Error("probe gap not honored")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestStatusSnapshot(t *testing.T) {
	m := NewManager(DefaultConfig())
	status := m.GetStatus()

	if status.SessionID == "" {
		t.Error("empty session ID")
	}
	if status.Duration < 0 || status.IdleTime < 0 {
		t.Errorf("negative durations: %+v", status)
	}
}
