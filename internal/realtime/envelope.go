// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package realtime

import (
	"encoding/json"
	"fmt"
)

// Wire event names. These match the server's socket event registry exactly.
const (
	EventJoinChat       = "joinChat"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
)

// Envelope is the JSON frame exchanged over the websocket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinPayload subscribes the session to a two-party conversation room.
type JoinPayload struct {
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
	FirstName    string `json:"firstName"`
}

// MessagePayload is the body of sendMessage and receiveMessage events.
type MessagePayload struct {
	FirstName    string `json:"firstName"`
	UserID       string `json:"userId,omitempty"`
	SenderID     string `json:"senderId,omitempty"`
	TargetUserID string `json:"targetUserId"`
	Text         string `json:"text"`
	Timestamp    string `json:"timestamp"`
}

// Sender returns the originating user ID regardless of which field the
// server populated. Outbound frames carry userId; inbound carry senderId.
func (p MessagePayload) Sender() string {
	if p.SenderID != "" {
		return p.SenderID
	}
	return p.UserID
}

// encodeEnvelope marshals an event with its payload into a wire frame.
func encodeEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", event, err)
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s envelope: %w", event, err)
	}
	return frame, nil
}
