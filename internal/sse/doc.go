// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package sse implements the push-stream half of the order-notification
// layer: a registry of open Server-Sent-Events connections and a
// broadcaster that fans a notification out to every registered sink.
//
// The registry is an injectable object, not a package global, and it is
// the single fan-out point for the process. It is safe for concurrent
// use; mutations from the stream endpoint and reads from the webhook
// ingestion path are serialized by an internal mutex. The table is
// process-local: running more than one server process requires an
// external pub/sub layer in front of it.
//
// Delivery policy: a failing write immediately evicts that connection
// within the same broadcast pass. There is no retry; re-establishing
// delivery is the subscribing client's job.
package sse
