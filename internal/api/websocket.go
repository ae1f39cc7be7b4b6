// Package api serves the read-only operator surface: HTTP endpoints
// plus a push-only WebSocket stream of events and alerts. No endpoint
// or message here ever reaches an adapter or mutates governance state.
package api

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/alert"
	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType is the closed set of server-to-client push message kinds.
// There is no client-to-server command type; the stream is read-only.
type MessageType string

const (
	MsgTypeEvent     MessageType = "event"
	MsgTypeAlert     MessageType = "alert"
	MsgTypeHeartbeat MessageType = "heartbeat"
)

// WSMessage is one push over the operator WebSocket stream.
type WSMessage struct {
	Type      MessageType     `json:"type"`
	Channel   string          `json:"channel,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Client is one connected operator WebSocket client.
type Client struct {
	id            string
	hub           *Hub
	conn          *websocket.Conn
	send          chan []byte
	subscriptions map[string]bool
	mu            sync.RWMutex
}

// Hub fans events and alerts out to the connected operator clients that
// subscribed to the "events" or "alerts" channel.
// It never reads from clients beyond subscribe/unsubscribe requests.
type Hub struct {
	logger     *zap.Logger
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	channels   map[string]map[*Client]bool
	mu         sync.RWMutex
}

// NewHub creates an operator push hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger.Named("ws-hub"),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		channels:   make(map[string]map[*Client]bool),
	}
}

// Run drives the hub's registration and fan-out loop. Call it once in
// its own goroutine.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered", zap.String("id", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				for channel := range client.subscriptions {
					if clients, ok := h.channels[channel]; ok {
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.channels, channel)
						}
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered", zap.String("id", client.id))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()

		case <-ticker.C:
			h.sendHeartbeat()
		}
	}
}

func (h *Hub) sendHeartbeat() {
	msg := WSMessage{Type: MsgTypeHeartbeat, Timestamp: time.Now().UnixMilli()}
	data, _ := json.Marshal(msg)

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
		}
	}
	h.mu.RUnlock()
}

// Subscribe adds client to channel's fan-out set.
func (h *Hub) Subscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true

	client.mu.Lock()
	client.subscriptions[channel] = true
	client.mu.Unlock()
}

// Unsubscribe removes client from channel's fan-out set.
func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	client.mu.Lock()
	delete(client.subscriptions, channel)
	client.mu.Unlock()
}

func (h *Hub) publishToChannel(channel string, msgType MessageType, data interface{}) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("failed to marshal push payload", zap.Error(err))
		return
	}
	msg := WSMessage{Type: msgType, Channel: channel, Data: dataBytes, Timestamp: time.Now().UnixMilli()}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal push message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.channels[channel]; ok {
		for client := range clients {
			select {
			case client.send <- msgBytes:
			default:
			}
		}
	}
}

// OnEvent satisfies eventlog.Sink, pushing every appended event to the
// "events" channel.
func (h *Hub) OnEvent(e eventlog.Event) {
	h.publishToChannel("events", MsgTypeEvent, e)
}

// OnAlert satisfies alert.Sink, pushing every raised alert to the
// "alerts" channel.
func (h *Hub) OnAlert(a alert.Alert) {
	h.publishToChannel("alerts", MsgTypeAlert, a)
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewClient wraps an upgraded connection for the hub.
func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:            id,
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, 256),
		subscriptions: make(map[string]bool),
	}
}

// ReadPump only accepts subscribe/unsubscribe control frames; any other
// message type is ignored, since the stream never accepts commands.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var req struct {
			Action  string `json:"action"`
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}
		switch req.Action {
		case "subscribe":
			c.hub.Subscribe(c, req.Channel)
		case "unsubscribe":
			c.hub.Unsubscribe(c, req.Channel)
		}
	}
}

// WritePump drains the client's send channel to the socket and keeps
// the connection alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(20 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
