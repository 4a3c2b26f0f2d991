// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package sse

import (
	"sync"

	"github.com/goccy/go-json"

	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/metrics"
	"github.com/stockpit/stockpit/internal/models"
)

// Broadcaster fans a notification out to every live connection in the
// registry. Broadcasts execute sequentially: an internal lock preserves
// call order across concurrent callers, so every connection observes
// notifications in the order Broadcast was invoked.
type Broadcaster struct {
	registry *Registry
	mu       sync.Mutex
}

// NewBroadcaster creates a broadcaster over the given registry.
func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// Broadcast serializes the notification once and writes it to every
// registered connection. A connection whose write fails is evicted
// within the same pass and never retried; the count of successful
// deliveries is returned. Serialization failure is the only error.
func (b *Broadcaster) Broadcast(n models.Notification) (int, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, conn := range b.registry.Snapshot() {
		if err := conn.Send(data); err != nil {
			logging.Warn().
				Err(err).
				Str("connection_id", conn.ID()).
				Str("event_type", string(n.Type)).
				Msg("delivery failed, evicting connection")
			b.registry.Remove(conn.ID())
			metrics.BroadcastEvictions.Inc()
			continue
		}
		delivered++
	}

	metrics.BroadcastDeliveries.Add(float64(delivered))
	logging.Debug().
		Str("event_type", string(n.Type)).
		Str("order_id", n.OrderID).
		Int("delivered", delivered).
		Msg("notification broadcast")
	return delivered, nil
}
