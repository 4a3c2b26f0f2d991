// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderWebhook is the inbound payload posted by the external order
// system. Only OrderID inside Data is strictly required; everything
// else is echoed through to subscribers.
type OrderWebhook struct {
	Event     string           `json:"event"`
	Timestamp *time.Time       `json:"timestamp,omitempty"`
	Data      OrderWebhookData `json:"data" validate:"required"`
}

// OrderWebhookData carries the order fields of a webhook event.
type OrderWebhookData struct {
	OrderID         string     `json:"orderId"`
	CustomerName    string     `json:"customerName" validate:"required"`
	CustomerEmail   string     `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string     `json:"customerPhone"`
	Total           float64    `json:"total" validate:"gte=0"`
	Status          string     `json:"status"`
	Items           []LineItem `json:"items"`
	ShippingAddress string     `json:"shippingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
}

// Normalize converts the webhook into the canonical NEW_ORDER
// notification, filling the defaults the source is allowed to omit:
// timestamp (ingestion time), status (pending) and order id (generated).
func (w *OrderWebhook) Normalize(now time.Time) Notification {
	ts := now.UTC()
	if w.Timestamp != nil && !w.Timestamp.IsZero() {
		ts = w.Timestamp.UTC()
	}

	status := w.Data.Status
	if status == "" {
		status = OrderStatusPending
	}

	orderID := w.Data.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	return Notification{
		Type:            EventNewOrder,
		OrderID:         orderID,
		CustomerName:    w.Data.CustomerName,
		CustomerEmail:   w.Data.CustomerEmail,
		CustomerPhone:   w.Data.CustomerPhone,
		Total:           w.Data.Total,
		Status:          status,
		Items:           w.Data.Items,
		ShippingAddress: w.Data.ShippingAddress,
		PaymentMethod:   w.Data.PaymentMethod,
		Timestamp:       ts,
	}
}
