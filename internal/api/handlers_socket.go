// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"net/http"

	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/socket"
)

// SocketConnect upgrades the request to a websocket and hands the
// connection to the room hub.
// GET /api/v1/ws
func (h *Handler) SocketConnect(w http.ResponseWriter, r *http.Request) {
	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logging.Warn().Err(err).
			Str("remote_addr", sanitizeLogValue(r.RemoteAddr)).
			Msg("websocket upgrade failed")
		return
	}

	client := socket.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
