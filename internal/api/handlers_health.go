// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"net/http"
	"time"

	"github.com/stockpit/stockpit/internal/models"
	"github.com/stockpit/stockpit/internal/socket"
)

// HealthStatus is the payload returned by the health endpoint.
type HealthStatus struct {
	Status            string `json:"status"`
	UptimeSeconds     int64  `json:"uptime_seconds"`
	StreamConnections int    `json:"stream_connections"`
	SocketClients     int    `json:"socket_clients"`
	AdminRoomMembers  int    `json:"admin_room_members"`
	OrdersTracked     int    `json:"orders_tracked"`
}

// Health reports process health and live connection counts.
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: HealthStatus{
			Status:            "healthy",
			UptimeSeconds:     int64(time.Since(h.startTime).Seconds()),
			StreamConnections: h.registry.Len(),
			SocketClients:     h.hub.ClientCount(),
			AdminRoomMembers:  h.hub.RoomSize(socket.RoomInventoryAdmin),
			OrdersTracked:     h.orders.Len(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Live is the liveness probe.
// GET /livez
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready is the readiness probe. The process is ready once the product
// store answers.
// GET /readyz
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.List(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Product store unavailable", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
