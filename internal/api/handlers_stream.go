// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/metrics"
	"github.com/stockpit/stockpit/internal/models"
	"github.com/stockpit/stockpit/internal/sse"
)

// OrderEventStream is the push-stream endpoint.
// GET /api/v1/orders/events
//
// The response is held open as a text/event-stream. Lifecycle per
// client: register a connection, emit a connected frame carrying the
// connection id, then heartbeat on a fixed interval until either a
// write fails (dead peer: deregister) or the client aborts (deregister
// and return). Broadcast traffic is written to the same sink by the
// broadcaster; the per-connection lock in sse.Connection keeps frames
// from interleaving with heartbeats.
func (h *Handler) OrderEventStream(w http.ResponseWriter, r *http.Request) {
	sink, err := sse.NewStreamSink(w)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "Response writer does not support streaming", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	id := uuid.NewString()
	conn := sse.NewConnection(id, sink)
	h.registry.Add(conn)
	defer h.registry.Remove(id)

	connected, err := json.Marshal(models.ConnectedNotification(id))
	if err != nil {
		return
	}
	if err := conn.Send(connected); err != nil {
		logging.Warn().Err(err).Str("connection_id", id).Msg("failed to write connected frame")
		return
	}

	ticker := time.NewTicker(h.config.Stream.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			// Client-initiated abort; the deferred Remove deregisters.
			return
		case now := <-ticker.C:
			heartbeat, err := json.Marshal(models.HeartbeatNotification(now))
			if err != nil {
				return
			}
			if err := conn.Send(heartbeat); err != nil {
				// The only cleanup path for a dead peer that no
				// broadcast has tripped over yet.
				logging.Info().Str("connection_id", id).Msg("heartbeat write failed, closing stream")
				return
			}
			metrics.SSEHeartbeatsSent.Inc()
		}
	}
}
