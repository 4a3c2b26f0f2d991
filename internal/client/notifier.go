// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package client

import (
	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/models"
)

// Notifier is the side-effect port for attention-grabbing alerts
// (sound, desktop notification, whatever the host tooling does).
// Implementations must not block: they run on the subscriber's read
// loop.
type Notifier interface {
	NewOrder(order models.Order)
}

// LogNotifier is the default Notifier, announcing orders in the log.
type LogNotifier struct{}

func (LogNotifier) NewOrder(order models.Order) {
	logging.Info().
		Str("order_id", order.OrderID).
		Str("customer", order.CustomerName).
		Float64("total", order.Total).
		Msg("new order received")
}

// NopNotifier discards alerts; useful in tests.
type NopNotifier struct{}

func (NopNotifier) NewOrder(models.Order) {}
