// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package socket

import (
	"context"
	"sort"
	"sync"

	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/metrics"
)

// RoomInventoryAdmin is the single room this deployment uses: every
// admin dashboard joins it to receive order events.
const RoomInventoryAdmin = "inventory_admin"

// Message types for the socket channel.
const (
	// Client -> server
	MessageTypeJoinRoom  = "join_room"
	MessageTypeLeaveRoom = "leave_room"

	// Server -> room members
	MessageTypeNewOrder          = "new_order"
	MessageTypeOrderStatusUpdate = "order_status_update"
	MessageTypeOrderSync         = "order_sync"
)

// Message is a socket channel frame. Room is only set on join_room and
// leave_room requests.
type Message struct {
	Type string      `json:"type"`
	Room string      `json:"room,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// emitRequest pairs a message with its target room for the hub loop.
type emitRequest struct {
	room    string
	message Message
}

// Hub maintains the set of active socket clients and their room
// memberships, and delivers room-targeted events.
type Hub struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	emit       chan emitRequest
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	// OnJoin, when set, runs after a client joins a room. Used to send
	// the order_sync catch-up snapshot to a freshly (re)joined admin.
	OnJoin func(c *Client, room string)
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		emit:       make(chan emitRequest, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// RunWithContext runs the hub loop until the context is canceled. It is
// designed for suture supervision: on cancellation all clients are
// closed and ctx.Err() is returned so the supervisor can restart or
// stop the service.
//
// Lifecycle events take priority over pending emits so membership is
// consistent before any delivery pass.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case req := <-h.emit:
			h.deliver(req.room, req.message)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	logging.Info().Int("total_clients", total).Msg("socket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		for room, members := range h.rooms {
			if members[client] {
				delete(members, client)
				metrics.SocketRoomMembers.WithLabelValues(room).Set(float64(len(members)))
			}
		}
	}
	total := len(h.clients)
	h.mu.Unlock()
	logging.Info().Int("total_clients", total).Msg("socket client disconnected")
}

// Join adds the client to a room. Membership is additive and takes
// effect synchronously, so a following emit already sees the member.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	members[client] = true
	size := len(members)
	h.mu.Unlock()

	metrics.SocketRoomMembers.WithLabelValues(room).Set(float64(size))
	logging.Info().
		Uint64("client_id", client.ID()).
		Str("room", room).
		Int("members", size).
		Msg("client joined room")

	if h.OnJoin != nil {
		h.OnJoin(client, room)
	}
}

// Leave removes the client from a room; leaving a room the client is
// not in is a no-op.
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(members, client)
	size := len(members)
	h.mu.Unlock()

	metrics.SocketRoomMembers.WithLabelValues(room).Set(float64(size))
	logging.Info().
		Uint64("client_id", client.ID()).
		Str("room", room).
		Int("members", size).
		Msg("client left room")
}

// EmitToRoom queues an event for delivery to every member of the room.
// The hub loop performs the actual delivery; if the queue is full the
// event is dropped with a warning rather than blocking the caller.
func (h *Hub) EmitToRoom(room, eventType string, payload interface{}) {
	req := emitRequest{room: room, message: Message{Type: eventType, Data: payload}}
	select {
	case h.emit <- req:
	default:
		logging.Warn().
			Str("room", room).
			Str("event_type", eventType).
			Msg("emit queue full, dropping event")
	}
}

// SendTo delivers a message to a single client, bypassing rooms. Used
// for the order_sync catch-up on join. A full send buffer evicts the
// client, same as a room delivery would.
//
// The send happens under the read lock while the client is still
// registered. Send channels are only closed under the write lock after
// the client leaves the map, so the send can never hit a closed
// channel even though evictions run on other goroutines.
func (h *Hub) SendTo(client *Client, eventType string, payload interface{}) {
	h.mu.RLock()
	if !h.clients[client] {
		h.mu.RUnlock()
		return
	}
	select {
	case client.send <- Message{Type: eventType, Data: payload}:
		h.mu.RUnlock()
		return
	default:
	}
	h.mu.RUnlock()

	h.evict(client)
}

// deliver writes the message to every room member in id order, evicting
// members whose send buffer is full within the same pass. Sends stay
// under the read lock for the same reason as in SendTo.
func (h *Hub) deliver(room string, message Message) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for client := range h.rooms[room] {
		members = append(members, client)
	}

	// Stable order eliminates map-iteration nondeterminism in delivery.
	sort.Slice(members, func(i, j int) bool {
		return members[i].id < members[j].id
	})

	delivered := 0
	var stalled []*Client
	for _, client := range members {
		select {
		case client.send <- message:
			delivered++
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.evict(client)
	}

	metrics.SocketDeliveries.WithLabelValues(room, message.Type).Add(float64(delivered))
	logging.Debug().
		Str("room", room).
		Str("event_type", message.Type).
		Int("delivered", delivered).
		Msg("room event delivered")
}

// evict removes a failed client from the hub and all rooms.
func (h *Hub) evict(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
		for room, members := range h.rooms {
			if members[client] {
				delete(members, client)
				metrics.SocketRoomMembers.WithLabelValues(room).Set(float64(len(members)))
			}
		}
	}
	h.mu.Unlock()

	if ok {
		metrics.SocketEvictions.Inc()
		logging.Warn().Uint64("client_id", client.ID()).Msg("socket client evicted after stalled send")
	}
}

// shutdown closes all clients during graceful shutdown.
func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.rooms = make(map[string]map[*Client]bool)
	h.mu.Unlock()

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "socket-hub").
		Str("reason", reason).
		Int("clients_closed", len(clients)).
		Msg("socket hub stopped")
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the number of members in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
