// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package client

import (
	"sort"
	"sync"

	"github.com/stockpit/stockpit/internal/metrics"
	"github.com/stockpit/stockpit/internal/models"
)

// OrderCache is the subscriber-side view of the order list, kept in
// sync by socket events. Safe for concurrent use.
type OrderCache struct {
	mu     sync.Mutex
	orders map[string]models.Order
	alerts []string // order ids awaiting acknowledgement, oldest first
}

// NewOrderCache creates an empty cache.
func NewOrderCache() *OrderCache {
	return &OrderCache{orders: make(map[string]models.Order)}
}

// Upsert records an order. A repeated id replaces the cached entry and
// does not raise a second alert, so webhook redeliveries stay quiet.
// It reports whether the order was new.
func (c *OrderCache) Upsert(order models.Order) bool {
	if order.OrderID == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, seen := c.orders[order.OrderID]
	c.orders[order.OrderID] = order
	if !seen {
		c.alerts = append(c.alerts, order.OrderID)
	}
	return !seen
}

// ApplyStatus merges a status update into the cached order. Updates
// for ids the cache has never seen are dropped: there is nothing to
// merge onto, and inventing a placeholder row would show admins an
// order with no customer or items.
func (c *OrderCache) ApplyStatus(update models.Order) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.orders[update.OrderID]
	if !ok {
		metrics.SubscriberStatusUpdatesDropped.Inc()
		return false
	}
	existing.Merge(update)
	c.orders[update.OrderID] = existing
	return true
}

// Replace swaps the whole cache for the given list. Used for the
// order_sync catch-up after (re)joining the admin room. Alerts are
// preserved for ids still present and dropped for ids that are gone.
func (c *OrderCache) Replace(orders []models.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.orders = make(map[string]models.Order, len(orders))
	for _, o := range orders {
		if o.OrderID == "" {
			continue
		}
		c.orders[o.OrderID] = o
	}

	kept := c.alerts[:0]
	for _, id := range c.alerts {
		if _, ok := c.orders[id]; ok {
			kept = append(kept, id)
		}
	}
	c.alerts = kept
}

// Get returns a cached order by id.
func (c *OrderCache) Get(orderID string) (models.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.orders[orderID]
	return o, ok
}

// Snapshot returns the cached orders, most recent first with id as
// tie-break, matching the server-side log ordering.
func (c *OrderCache) Snapshot() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Order, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].OrderID > out[j].OrderID
	})
	return out
}

// Alerts returns the unacknowledged order ids, oldest first.
func (c *OrderCache) Alerts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// ClearAlert acknowledges a single order id.
func (c *OrderCache) ClearAlert(orderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, id := range c.alerts {
		if id == orderID {
			c.alerts = append(c.alerts[:i], c.alerts[i+1:]...)
			return
		}
	}
}

// ClearAllAlerts acknowledges everything at once.
func (c *OrderCache) ClearAllAlerts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = nil
}

// Len returns the number of cached orders.
func (c *OrderCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.orders)
}
