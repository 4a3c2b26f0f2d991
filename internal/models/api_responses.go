// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package models

import "time"

// APIResponse is the standardized envelope used by all HTTP endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries a machine-readable code plus a human-readable message.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WebhookAccepted is the success payload returned by the order webhook:
// how many live connections received the broadcast and the canonical id
// assigned to the order.
type WebhookAccepted struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ActiveConnections int    `json:"activeConnections"`
	OrderID           string `json:"orderId"`
}

// Product is an inventory item backed by the spreadsheet store.
type Product struct {
	SKU      string    `json:"sku" validate:"required"`
	Name     string    `json:"name" validate:"required"`
	Category string    `json:"category,omitempty"`
	Price    float64   `json:"price" validate:"gte=0"`
	Quantity int       `json:"quantity" validate:"gte=0"`
	Updated  time.Time `json:"updated,omitempty"`
}
