// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"sort"
	"sync"

	"github.com/stockpit/stockpit/internal/models"
)

// OrderLog is the server-side record of orders seen since startup. It
// backs the order_sync catch-up snapshot and the dashboard's initial
// order list. It is not durable: notifications missed across a restart
// are gone, which is a stated limitation of the design.
type OrderLog struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewOrderLog creates an empty order log.
func NewOrderLog() *OrderLog {
	return &OrderLog{orders: make(map[string]models.Order)}
}

// Record upserts an order keyed by its id.
func (l *OrderLog) Record(o models.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders[o.OrderID] = o
}

// UpdateStatus field-merges the update into the stored order. It
// reports whether the order was present; merging over an absent key is
// a no-op.
func (l *OrderLog) UpdateStatus(orderID string, update models.Order) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	existing, ok := l.orders[orderID]
	if !ok {
		return false
	}
	existing.Merge(update)
	l.orders[orderID] = existing
	return true
}

// Get returns the order for an id.
func (l *OrderLog) Get(orderID string) (models.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	o, ok := l.orders[orderID]
	return o, ok
}

// Snapshot returns all orders, most recent first.
func (l *OrderLog) Snapshot() []models.Order {
	l.mu.RLock()
	out := make([]models.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o)
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].OrderID > out[j].OrderID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Len returns the number of recorded orders.
func (l *OrderLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}
