// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package api provides the HTTP surface of Stockpit: webhook ingestion,
// the push-stream and socket endpoints, order status updates and the
// inventory CRUD boundary.
//
// errors.go - sentinel errors shared by the handlers.
package api

import "errors"

var (
	// ErrSignatureMismatch indicates the webhook signature did not match
	// the HMAC of the raw body.
	ErrSignatureMismatch = errors.New("webhook signature verification failed")

	// ErrOrderUnknown indicates a status update referenced an order id
	// the server has never seen.
	ErrOrderUnknown = errors.New("unknown order id")
)
