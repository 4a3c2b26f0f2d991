// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the order-notification layer:
// - Webhook ingestion outcomes
// - Push-stream (SSE) fan-out and connection lifecycle
// - Socket room membership and deliveries
// - API endpoint latency and throughput

var (
	// Webhook Ingestion Metrics
	WebhookReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_received_total",
			Help: "Total number of webhook events received",
		},
	)

	WebhookRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_rejected_total",
			Help: "Total number of webhook events rejected before broadcast",
		},
		[]string{"reason"}, // "bad_signature", "missing_signature", "malformed_payload"
	)

	WebhookUnsigned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_unsigned_total",
			Help: "Webhook events accepted without a signature while a secret is configured",
		},
	)

	// Push-Stream Metrics
	SSEActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_active_connections",
			Help: "Current number of open push-stream connections",
		},
	)

	BroadcastDeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sse_broadcast_deliveries_total",
			Help: "Total number of successful per-connection deliveries",
		},
	)

	BroadcastEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sse_broadcast_evictions_total",
			Help: "Connections evicted from the registry after a failed write",
		},
	)

	SSEHeartbeatsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sse_heartbeats_sent_total",
			Help: "Total number of heartbeat frames written to push-stream connections",
		},
	)

	// Socket Channel Metrics
	SocketRoomMembers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socket_room_members",
			Help: "Current number of socket connections per room",
		},
		[]string{"room"},
	)

	SocketDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socket_deliveries_total",
			Help: "Total number of events delivered to socket room members",
		},
		[]string{"room", "event_type"},
	)

	SocketEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socket_evictions_total",
			Help: "Socket clients evicted after a stalled or failed send",
		},
	)

	// Subscriber-side Metrics (exported by embedded admin tooling)
	SubscriberStatusUpdatesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriber_status_updates_dropped_total",
			Help: "Status updates dropped because the order was not in the local cache",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAPIRequest records a completed API request with its outcome.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
