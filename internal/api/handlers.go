// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stockpit/stockpit/internal/config"
	"github.com/stockpit/stockpit/internal/inventory"
	"github.com/stockpit/stockpit/internal/socket"
	"github.com/stockpit/stockpit/internal/sse"
)

// Handler owns the HTTP handlers and their collaborators.
type Handler struct {
	config      *config.Config
	registry    *sse.Registry
	broadcaster *sse.Broadcaster
	hub         *socket.Hub
	store       inventory.Store
	orders      *OrderLog
	startTime   time.Time
}

// NewHandler wires the handlers to their collaborators and installs the
// order_sync catch-up hook on the socket hub.
func NewHandler(cfg *config.Config, registry *sse.Registry, broadcaster *sse.Broadcaster, hub *socket.Hub, store inventory.Store) *Handler {
	h := &Handler{
		config:      cfg,
		registry:    registry,
		broadcaster: broadcaster,
		hub:         hub,
		store:       store,
		orders:      NewOrderLog(),
		startTime:   time.Now(),
	}

	// A freshly (re)joined admin gets the full order list so its local
	// cache catches up on anything missed while disconnected.
	hub.OnJoin = func(c *socket.Client, room string) {
		if room != socket.RoomInventoryAdmin {
			return
		}
		hub.SendTo(c, socket.MessageTypeOrderSync, h.orders.Snapshot())
	}

	return h
}

// getUpgrader builds the websocket upgrader honoring configured origins.
// With no configured origins the upgrader keeps gorilla's default
// same-origin check.
func (h *Handler) getUpgrader() websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	allowed := h.config.Socket.AllowedOrigins
	if len(allowed) > 0 {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, o := range allowed {
				if o == "*" || o == origin {
					return true
				}
			}
			return false
		}
	}
	return upgrader
}
