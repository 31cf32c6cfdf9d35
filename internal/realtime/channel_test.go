// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

var upgrader = websocket.Upgrader{}

// testServer runs a websocket endpoint that records inbound envelopes and
// exposes the live connection for scripted replies.
type testServer struct {
	srv     *httptest.Server
	inbound chan Envelope
	conns   chan *websocket.Conn
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		inbound: make(chan Envelope, 32),
		conns:   make(chan *websocket.Conn, 4),
	}
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ts.conns <- conn
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				t.Errorf("server got malformed frame: %v", err)
				continue
			}
			ts.inbound <- env
		}
	}))
	t.Cleanup(ts.srv.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.srv.URL, "http")
}

func (ts *testServer) waitEnvelope(t *testing.T) Envelope {
	t.Helper()
	select {
	case env := <-ts.inbound:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for envelope")
		return Envelope{}
	}
}

func (ts *testServer) waitConn(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-ts.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection")
		return nil
	}
}

func waitEvent(t *testing.T, ch *Channel, kind EventKind) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch.Events():
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event kind %d", kind)
			return Event{}
		}
	}
}

func TestJoinSendsEnvelope(t *testing.T) {
	ts := newTestServer(t)
	ch := NewChannel(ts.wsURL())
	defer ch.Close()

	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	gen, err := ch.Join("me", "them", "Ada")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if gen != 1 {
		t.Errorf("generation = %d, want 1", gen)
	}

	env := ts.waitEnvelope(t)
	if env.Event != EventJoinChat {
		t.Fatalf("event = %q, want joinChat", env.Event)
	}
	var payload JoinPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.UserID != "me" || payload.TargetUserID != "them" || payload.FirstName != "Ada" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestSendCarriesMessageFields(t *testing.T) {
	ts := newTestServer(t)
	ch := NewChannel(ts.wsURL())
	defer ch.Close()

	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	msg := model.NewOutgoingMessage("me", "them", "hello world", "Ada")
	if err := ch.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	env := ts.waitEnvelope(t)
	if env.Event != EventSendMessage {
		t.Fatalf("event = %q, want sendMessage", env.Event)
	}
	var payload MessagePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Text != "hello world" || payload.UserID != "me" || payload.TargetUserID != "them" {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestReceiveMessageDelivered(t *testing.T) {
	ts := newTestServer(t)
	ch := NewChannel(ts.wsURL())
	defer ch.Close()

	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	gen, _ := ch.Join("me", "them", "Ada")
	ts.waitEnvelope(t) // drain the join

	conn := ts.waitConn(t)
	frame, _ := encodeEnvelope(EventReceiveMessage, MessagePayload{
		SenderID: "them", TargetUserID: "me", Text: "hey", FirstName: "Bob", Timestamp: "1:02:03 PM",
	})
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("server write: %v", err)
	}

	ev := waitEvent(t, ch, KindMessage)
	if ev.Generation != gen {
		t.Errorf("generation = %d, want %d", ev.Generation, gen)
	}
	if ev.Message.SenderID != "them" || ev.Message.Text != "hey" {
		t.Errorf("message = %+v", ev.Message)
	}
	if ev.Message.ID == "" {
		t.Error("inbound message missing generated ID")
	}
}

func TestRejoinAdvancesGeneration(t *testing.T) {
	ts := newTestServer(t)
	ch := NewChannel(ts.wsURL())
	defer ch.Close()

	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	first, _ := ch.Join("me", "alice", "Ada")
	second, _ := ch.Join("me", "bob", "Ada")
	if second <= first {
		t.Errorf("rejoin generation %d not after %d", second, first)
	}
	if ch.Generation() != second {
		t.Errorf("Generation() = %d, want %d", ch.Generation(), second)
	}
}

func TestLeaveInvalidatesSubscription(t *testing.T) {
	ts := newTestServer(t)
	ch := NewChannel(ts.wsURL())
	defer ch.Close()

	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	gen, _ := ch.Join("me", "them", "Ada")
	ch.Leave()
	if ch.Generation() == gen {
		t.Error("Leave() did not advance generation")
	}
}

func TestReconnectReplaysJoin(t *testing.T) {
	ts := newTestServer(t)
	ch := NewChannel(ts.wsURL()).WithReconnectMax(2 * time.Second)
	defer ch.Close()

	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	ch.Join("me", "them", "Ada")
	ts.waitEnvelope(t)

	// Kill the server side; the channel should redial and re-issue the join.
	ts.waitConn(t).Close()

	env := ts.waitEnvelope(t)
	if env.Event != EventJoinChat {
		t.Fatalf("replayed event = %q, want joinChat", env.Event)
	}
	if ch.Status() != StatusOnline {
		t.Errorf("status = %v, want online", ch.Status())
	}
}

func TestCloseIsTerminal(t *testing.T) {
	ts := newTestServer(t)
	ch := NewChannel(ts.wsURL())

	if err := ch.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	ch.Close()
	ch.Close() // idempotent

	if _, err := ch.Join("me", "them", "Ada"); err != ErrChannelClosed {
		t.Errorf("Join after close = %v, want ErrChannelClosed", err)
	}
	if err := ch.Send(context.Background(), model.ChatMessage{}); err != ErrChannelClosed {
		t.Errorf("Send after close = %v, want ErrChannelClosed", err)
	}
	if ch.Status() != StatusClosed {
		t.Errorf("status = %v, want closed", ch.Status())
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusConnecting, "connecting"},
		{StatusOnline, "online"},
		{StatusReconnecting, "reconnecting"},
		{StatusStale, "stale"},
		{StatusClosed, "closed"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
