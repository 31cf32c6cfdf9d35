// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for profiles, connections,
// requests, and chat messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CHAT MESSAGE TYPE
// =============================================================================

// ChatMessage represents a single message in a conversation.
//
// Messages are append-only for the lifetime of a conversation view: they are
// added locally on send (optimistic) and on receipt from the channel, never
// edited or deleted, and are re-fetched from the history endpoint the next
// time the conversation opens.
type ChatMessage struct {
	// ID is a client-generated identifier for optimistic messages; history
	// messages keep whatever the server assigned.
	ID string `json:"id,omitempty"`

	SenderID  string `json:"senderId"`
	TargetID  string `json:"targetUserId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	Text      string `json:"text"`

	// Timestamp is display-formatted at send time on the sending client.
	Timestamp string `json:"timestamp,omitempty"`
}

// NewOutgoingMessage creates an optimistic message stamped with the current
// local time in display format.
func NewOutgoingMessage(senderID, targetID, text, firstName string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		TargetID:  targetID,
		FirstName: firstName,
		Text:      text,
		Timestamp: time.Now().Format("3:04:05 PM"),
	}
}

// IsFrom reports whether the message was sent by the given user.
func (m *ChatMessage) IsFrom(userID string) bool {
	return m.SenderID == userID
}

// IsEmpty returns true if the message has no text.
func (m *ChatMessage) IsEmpty() bool {
	return len(m.Text) == 0
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *ChatMessage) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
