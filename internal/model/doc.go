// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for profiles, connections,
// requests, and chat messages.
//
// This package defines the core domain types used throughout the client for
// representing candidates in the feed, accepted connections, pending incoming
// requests, and the per-conversation message stream.
//
// # Key Types
//
//   - Profile: a user profile as returned by the API (immutable once fetched)
//   - RequestRecord: a pending incoming connection request
//   - ChatMessage: one message in a conversation, client-stamped at send time
//   - Decision: the binary swipe outcome ("interested" or "ignore")
//
// # Usage
//
// Create an outgoing chat message:
//
//	msg := model.NewOutgoingMessage(selfID, peerID, "hello", "Ada")
//
// Resolve a profile's display name:
//
//	name := profile.FullName()
package model
