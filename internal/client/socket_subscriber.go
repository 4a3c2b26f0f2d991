// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/stockpit/stockpit/internal/config"
	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/models"
	"github.com/stockpit/stockpit/internal/socket"
)

const (
	socketReadWait  = 60 * time.Second
	socketSendWait  = 10 * time.Second
	dialHandshakeTO = 10 * time.Second
)

// socketFrame mirrors the socket channel wire shape with the payload
// left raw so each event type can decode it into its own struct.
type socketFrame struct {
	Type string          `json:"type"`
	Room string          `json:"room,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// SocketSubscriber maintains the admin-room connection and keeps an
// OrderCache in sync from new_order, order_status_update and
// order_sync events. It implements Transport and is normally driven by
// a Subscription.
type SocketSubscriber struct {
	url      string
	orders   *OrderCache
	notifier Notifier

	subscription *Subscription
}

// NewSocketSubscriber builds the subscriber with the reconnection
// policy from cfg. The returned subscriber is idle until Start.
func NewSocketSubscriber(cfg config.SubscriberConfig, notifier Notifier) (*SocketSubscriber, error) {
	wsURL, err := socketURL(cfg.EndpointURL)
	if err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	s := &SocketSubscriber{
		url:      wsURL,
		orders:   NewOrderCache(),
		notifier: notifier,
	}
	s.subscription = NewSubscription(SubscriptionConfig{
		Name:              "order-socket",
		MaxAttempts:       cfg.SocketMaxAttempts,
		ReconnectInterval: cfg.SocketReconnectInterval,
	}, s)
	return s, nil
}

// socketURL rewrites the HTTP endpoint base into the ws scheme and
// appends the socket path.
func socketURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("parsing endpoint url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	u.Path += "/api/v1/ws"
	return u.String(), nil
}

// Start begins consuming in the background.
func (s *SocketSubscriber) Start(ctx context.Context) { s.subscription.Start(ctx) }

// Close stops consuming and waits for the loop to exit.
func (s *SocketSubscriber) Close() { s.subscription.Close() }

// Run consumes in the foreground until ctx is cancelled or the retry
// budget runs out. For supervised use.
func (s *SocketSubscriber) Run(ctx context.Context) error { return s.subscription.Run(ctx) }

// State reports the subscription lifecycle state.
func (s *SocketSubscriber) State() State { return s.subscription.State() }

// Orders exposes the synchronized order cache.
func (s *SocketSubscriber) Orders() *OrderCache { return s.orders }

// Connect dials the socket, joins the admin room and consumes events
// until the connection drops or ctx is cancelled. Implements Transport.
func (s *SocketSubscriber) Connect(ctx context.Context, ready func()) error {
	dialer := websocket.Dialer{HandshakeTimeout: dialHandshakeTO}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dialing socket: %w", err)
	}
	defer conn.Close()

	// Joining before ready() means a successful session always implies
	// room membership; the server answers with an order_sync snapshot.
	join := socketFrame{Type: socket.MessageTypeJoinRoom, Room: socket.RoomInventoryAdmin}
	_ = conn.SetWriteDeadline(time.Now().Add(socketSendWait))
	if err := conn.WriteJSON(join); err != nil {
		return fmt.Errorf("joining room: %w", err)
	}
	ready()

	_ = conn.SetReadDeadline(time.Now().Add(socketReadWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(socketReadWait))
	})
	conn.SetPingHandler(func(payload string) error {
		_ = conn.SetReadDeadline(time.Now().Add(socketReadWait))
		return conn.WriteControl(websocket.PongMessage, []byte(payload), time.Now().Add(socketSendWait))
	})

	// Unblock the read loop when ctx is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(socketSendWait),
			)
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading socket: %w", err)
		}
		s.handle(raw)
	}
}

func (s *SocketSubscriber) handle(raw []byte) {
	var frame socketFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		logging.Warn().Err(err).Msg("dropping undecodable socket frame")
		return
	}

	switch frame.Type {
	case socket.MessageTypeNewOrder:
		var order models.Order
		if err := json.Unmarshal(frame.Data, &order); err != nil {
			logging.Warn().Err(err).Msg("dropping malformed new_order payload")
			return
		}
		if s.orders.Upsert(order) {
			s.notifier.NewOrder(order)
		}

	case socket.MessageTypeOrderStatusUpdate:
		var order models.Order
		if err := json.Unmarshal(frame.Data, &order); err != nil {
			logging.Warn().Err(err).Msg("dropping malformed order_status_update payload")
			return
		}
		if !s.orders.ApplyStatus(order) {
			logging.Debug().
				Str("order_id", order.OrderID).
				Msg("status update for unknown order dropped")
		}

	case socket.MessageTypeOrderSync:
		var orders []models.Order
		if err := json.Unmarshal(frame.Data, &orders); err != nil {
			logging.Warn().Err(err).Msg("dropping malformed order_sync payload")
			return
		}
		s.orders.Replace(orders)
		logging.Info().Int("orders", len(orders)).Msg("order list synchronized")

	default:
		logging.Warn().
			Str("type", frame.Type).
			Msg("dropping socket frame with unrecognized type")
	}
}
