// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

// Channel timing constants.
const (
	// sendQueueSize bounds the outbound frame queue.
	sendQueueSize = 64

	// eventQueueSize bounds the inbound event queue consumed by the UI.
	eventQueueSize = 256

	// writeWait is the deadline for a single websocket write.
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong before declaring the
	// connection dead. pingPeriod must be shorter.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// reconnectBaseDelay is the first reconnect backoff step.
	reconnectBaseDelay = 1 * time.Second

	// staleAfter is how long the channel may stay disconnected before the
	// UI is told to show the stale indicator.
	staleAfter = 15 * time.Second

	// maxFrameSize bounds inbound frames.
	// SECURITY: Frame size limit prevents memory exhaustion.
	maxFrameSize = 64 * 1024
)

// ErrChannelClosed is returned by operations on a closed channel.
var ErrChannelClosed = errors.New("channel closed")

// Status describes the channel's connection state.
type Status int

const (
	// StatusConnecting is the initial state before the first dial completes.
	StatusConnecting Status = iota
	// StatusOnline means the websocket is up and delivering.
	StatusOnline
	// StatusReconnecting means the connection dropped and redial is in progress.
	StatusReconnecting
	// StatusStale means the channel has been down long enough that displayed
	// conversation state may be missing messages.
	StatusStale
	// StatusClosed means Close was called; the channel will not recover.
	StatusClosed
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOnline:
		return "online"
	case StatusReconnecting:
		return "reconnecting"
	case StatusStale:
		return "stale"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// EventKind discriminates entries on the channel's event stream.
type EventKind int

const (
	// KindMessage carries an inbound chat message.
	KindMessage EventKind = iota
	// KindStatus carries a connection state transition.
	KindStatus
)

// Event is a single delivery from the channel to the UI.
type Event struct {
	Kind       EventKind
	Generation int64
	Message    model.ChatMessage
	Status     Status
}

// =============================================================================
// CHANNEL
// =============================================================================

// Channel is a self-healing websocket connection to the chat server.
//
// All exported methods are safe for concurrent use. The read and write loops
// run on their own goroutines; the UI consumes deliveries via Events().
type Channel struct {
	url    string
	dialer *websocket.Dialer

	mu        sync.Mutex
	conn      *websocket.Conn
	quit      chan struct{} // closed when conn is superseded
	lastJoin  *JoinPayload
	connGen   int64 // bumped per physical connection, gates loop teardown
	reconnMax time.Duration

	sendQueue chan []byte
	events    chan Event
	done      chan struct{}
	closed    atomic.Bool

	// generation advances on every Join/Leave. Inbound messages are tagged
	// with the value current at arrival so re-joined views can drop
	// deliveries meant for their prior subscription.
	generation atomic.Int64

	status  atomic.Int64
	limiter *rate.Limiter
}

// NewChannel creates a channel for the given websocket URL. The channel does
// not connect until Connect is called.
func NewChannel(socketURL string) *Channel {
	c := &Channel{
		url: socketURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		sendQueue: make(chan []byte, sendQueueSize),
		events:    make(chan Event, eventQueueSize),
		done:      make(chan struct{}),
		reconnMax: 30 * time.Second,
		limiter:   rate.NewLimiter(rate.Limit(5), 5),
	}
	c.status.Store(int64(StatusConnecting))
	return c
}

// WithSendRate caps outbound messages per second.
func (c *Channel) WithSendRate(perSecond float64) *Channel {
	if perSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), int(perSecond)+1)
	}
	return c
}

// WithReconnectMax caps the reconnect backoff delay.
func (c *Channel) WithReconnectMax(max time.Duration) *Channel {
	if max > 0 {
		c.reconnMax = max
	}
	return c
}

// Events returns the stream of inbound messages and status transitions.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Status returns the current connection state.
func (c *Channel) Status() Status {
	return Status(c.status.Load())
}

// Generation returns the current subscription generation.
func (c *Channel) Generation() int64 {
	return c.generation.Load()
}

// Connect dials the server and starts the read/write loops. On failure the
// reconnect loop takes over, so a Connect error still leaves a channel that
// will keep trying in the background.
func (c *Channel) Connect(ctx context.Context) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		go c.reconnectLoop()
		return err
	}

	c.adopt(conn)
	return nil
}

// adopt installs a freshly dialed connection and starts its loops.
func (c *Channel) adopt(conn *websocket.Conn) {
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.mu.Lock()
	// The previous connection's write loop must not survive the swap: it
	// shares sendQueue and would consume frames meant for this connection.
	if c.quit != nil {
		close(c.quit)
	}
	quit := make(chan struct{})
	c.quit = quit
	c.connGen++
	gen := c.connGen
	c.conn = conn
	rejoin := c.lastJoin
	c.mu.Unlock()

	c.setStatus(StatusOnline)

	go c.readLoop(conn, gen)
	go c.writeLoop(conn, gen, quit)

	// A subscription survives reconnects: replay the last join so the
	// server puts this session back in its room.
	if rejoin != nil {
		if frame, err := encodeEnvelope(EventJoinChat, rejoin); err == nil {
			c.enqueue(frame)
		}
	}
}

// setStatus records and publishes a state transition.
func (c *Channel) setStatus(s Status) {
	if Status(c.status.Swap(int64(s))) == s {
		return
	}
	c.publish(Event{Kind: KindStatus, Status: s})
}

// publish delivers an event to the UI queue, dropping on overflow rather
// than blocking the read loop.
func (c *Channel) publish(ev Event) {
	select {
	case c.events <- ev:
	default:
		log.Printf("realtime: event queue full, dropping %v", ev.Kind)
	}
}

// =============================================================================
// SUBSCRIPTION
// =============================================================================

// Join subscribes to the conversation with targetUserID, replacing any prior
// subscription. Returns the new generation; deliveries tagged with an older
// generation belong to the replaced subscription and must be discarded.
func (c *Channel) Join(userID, targetUserID, firstName string) (int64, error) {
	if c.closed.Load() {
		return 0, ErrChannelClosed
	}

	payload := &JoinPayload{UserID: userID, TargetUserID: targetUserID, FirstName: firstName}

	c.mu.Lock()
	c.lastJoin = payload
	c.mu.Unlock()

	gen := c.generation.Add(1)

	frame, err := encodeEnvelope(EventJoinChat, payload)
	if err != nil {
		return gen, err
	}
	c.enqueue(frame)
	return gen, nil
}

// Leave drops the current subscription. Any in-flight deliveries for it
// arrive with a stale generation and are discarded by the consumer.
func (c *Channel) Leave() {
	c.mu.Lock()
	c.lastJoin = nil
	c.mu.Unlock()
	c.generation.Add(1)
}

// Send transmits a chat message, pacing to the configured rate. The message
// is enqueued optimistically: a delivery failure surfaces as a reconnect,
// never as a send error, matching the optimistic UI contract.
func (c *Channel) Send(ctx context.Context, msg model.ChatMessage) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	frame, err := encodeEnvelope(EventSendMessage, MessagePayload{
		FirstName:    msg.FirstName,
		UserID:       msg.SenderID,
		TargetUserID: msg.TargetID,
		Text:         msg.Text,
		Timestamp:    msg.Timestamp,
	})
	if err != nil {
		return err
	}
	c.enqueue(frame)
	return nil
}

// enqueue queues a frame for the write loop, dropping the oldest pending
// frame on overflow so joins are never wedged behind a backlog.
func (c *Channel) enqueue(frame []byte) {
	select {
	case c.sendQueue <- frame:
	default:
		select {
		case <-c.sendQueue:
		default:
		}
		select {
		case c.sendQueue <- frame:
		default:
		}
		log.Printf("realtime: send queue overflow, dropped oldest frame")
	}
}

// =============================================================================
// LOOPS
// =============================================================================

// currentConnGen reports whether gen still identifies the live connection.
func (c *Channel) currentConnGen(gen int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connGen == gen
}

func (c *Channel) readLoop(conn *websocket.Conn, gen int64) {
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.closed.Load() || !c.currentConnGen(gen) {
				return
			}
			log.Printf("realtime: read error: %v", err)
			go c.reconnectLoop()
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("realtime: malformed frame: %v", err)
			continue
		}
		if env.Event != EventReceiveMessage {
			continue
		}

		var payload MessagePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("realtime: malformed receiveMessage payload: %v", err)
			continue
		}

		c.publish(Event{
			Kind:       KindMessage,
			Generation: c.generation.Load(),
			Message: model.ChatMessage{
				ID:        uuid.NewString(),
				SenderID:  payload.Sender(),
				TargetID:  payload.TargetUserID,
				FirstName: payload.FirstName,
				Text:      payload.Text,
				Timestamp: payload.Timestamp,
			},
		})
	}
}

func (c *Channel) writeLoop(conn *websocket.Conn, gen int64, quit <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame := <-c.sendQueue:
			// A frame pulled off the shared queue after this connection
			// was superseded belongs to the replacement; hand it back
			// instead of burning it on a dead socket.
			if c.closed.Load() || !c.currentConnGen(gen) {
				c.enqueue(frame)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Printf("realtime: write error: %v", err)
				return
			}
		case <-ticker.C:
			if c.closed.Load() || !c.currentConnGen(gen) {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-quit:
			return
		case <-c.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client closing"))
			return
		}
	}
}

// reconnectLoop redials with exponential backoff until it succeeds or the
// channel is closed. After staleAfter without a connection the stale
// indicator is raised; it clears on the next successful dial.
func (c *Channel) reconnectLoop() {
	c.setStatus(StatusReconnecting)
	start := time.Now()
	delay := reconnectBaseDelay

	for {
		select {
		case <-c.done:
			return
		case <-time.After(delay):
		}

		conn, _, err := c.dialer.Dial(c.url, nil)
		if err == nil {
			c.adopt(conn)
			return
		}

		if time.Since(start) >= staleAfter && c.Status() != StatusStale {
			c.setStatus(StatusStale)
		}

		delay *= 2
		if delay > c.reconnMax {
			delay = c.reconnMax
		}
	}
}

// Close tears the channel down permanently.
func (c *Channel) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	close(c.done)
	c.setStatus(StatusClosed)

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
}
