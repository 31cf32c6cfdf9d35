// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package realtime maintains the websocket channel used for chat delivery.
//
// A single Channel is shared for the lifetime of the TUI. Conversations
// subscribe by calling Join, which advances a generation counter: inbound
// messages are tagged with the generation current at arrival, so a view that
// re-joined can discard deliveries addressed to its previous subscription.
// The channel reconnects on its own with exponential backoff and reports
// connection state transitions alongside messages on the same event stream.
package realtime
