// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package models

import "time"

// EventType discriminates notification payloads on the wire. The set is
// closed: anything outside it is handled as EventUnknown by subscribers,
// never as a silent default branch.
type EventType string

const (
	// EventConnected is emitted once per push-stream connection, carrying
	// the connection id assigned by the server.
	EventConnected EventType = "connected"

	// EventHeartbeat keeps long-lived connections from being treated as
	// idle by intermediaries. Subscribers absorb it silently.
	EventHeartbeat EventType = "heartbeat"

	// EventNewOrder announces an order ingested from the external order
	// system.
	EventNewOrder EventType = "NEW_ORDER"

	// EventOrderStatusUpdate announces a status change for an existing
	// order.
	EventOrderStatusUpdate EventType = "ORDER_STATUS_UPDATE"

	// EventOrderSync carries a full order-list replacement, used for
	// catch-up when a socket client (re)joins the admin room.
	EventOrderSync EventType = "order_sync"

	// EventUnknown is the explicit variant for unrecognized types.
	EventUnknown EventType = ""
)

// ParseEventType maps a wire string onto the closed EventType set.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventConnected, EventHeartbeat, EventNewOrder,
		EventOrderStatusUpdate, EventOrderSync:
		return EventType(s)
	default:
		return EventUnknown
	}
}

// OrderStatusPending is the default status filled in when the order
// source omits one.
const OrderStatusPending = "pending"

// LineItem is a single purchased item within an order.
type LineItem struct {
	SKU      string  `json:"sku,omitempty"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Notification is the immutable event fanned out to every live
// subscriber. Timestamp defaults to ingestion time when the source
// omits it.
type Notification struct {
	Type            EventType  `json:"type"`
	OrderID         string     `json:"orderId,omitempty"`
	CustomerName    string     `json:"customerName,omitempty"`
	CustomerEmail   string     `json:"customerEmail,omitempty"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	Total           float64    `json:"total,omitempty"`
	Status          string     `json:"status,omitempty"`
	TrackingNumber  string     `json:"trackingNumber,omitempty"`
	Items           []LineItem `json:"items,omitempty"`
	ShippingAddress string     `json:"shippingAddress,omitempty"`
	PaymentMethod   string     `json:"paymentMethod,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`

	// Connected-frame fields.
	Message      string `json:"message,omitempty"`
	ConnectionID string `json:"connectionId,omitempty"`
}

// ConnectedNotification builds the frame emitted when a push-stream
// connection is registered.
func ConnectedNotification(connectionID string) Notification {
	return Notification{
		Type:         EventConnected,
		Message:      "order notification stream established",
		ConnectionID: connectionID,
		Timestamp:    time.Now().UTC(),
	}
}

// HeartbeatNotification builds a keep-alive frame.
func HeartbeatNotification(now time.Time) Notification {
	return Notification{
		Type:      EventHeartbeat,
		Timestamp: now.UTC(),
	}
}
