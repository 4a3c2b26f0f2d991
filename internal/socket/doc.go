// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package socket implements the bidirectional notification channel: a
// websocket hub with named rooms. Admin dashboards join the
// "inventory_admin" room and receive targeted order events
// (new_order, order_status_update, order_sync).
//
// The hub is independent from the push-stream registry in package sse;
// the two channels share no state and fail independently.
//
// Delivery follows the same evict-on-failure policy as the push-stream
// broadcaster: a member whose send buffer is full or whose connection
// has failed is unregistered during the emit pass and its socket closed.
package socket
