// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/models"
	"github.com/stockpit/stockpit/internal/socket"
)

// orderStatusRequest is the body for order status updates.
type orderStatusRequest struct {
	Status         string `json:"status" validate:"required,min=1,max=64"`
	TrackingNumber string `json:"trackingNumber" validate:"omitempty,max=128"`
}

// ListOrders returns the in-memory order log, most recent first.
// GET /api/v1/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.orders.Snapshot(),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// UpdateOrderStatus records a status change for a known order and fans
// it out to both notification surfaces.
// POST /api/v1/orders/{orderID}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "MISSING_ORDER_ID", "Order id is required", nil)
		return
	}

	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	update := models.Order{
		OrderID:        orderID,
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Timestamp:      time.Now().UTC(),
	}
	if !h.orders.UpdateStatus(orderID, update) {
		respondError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "No order with that id", ErrOrderUnknown)
		return
	}
	order, _ := h.orders.Get(orderID)

	notification := models.Notification{
		Type:           models.EventOrderStatusUpdate,
		OrderID:        orderID,
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Timestamp:      update.Timestamp,
	}
	delivered, err := h.broadcaster.Broadcast(notification)
	if err != nil {
		logging.Error().Err(err).Str("order_id", sanitizeLogValue(orderID)).
			Msg("status update broadcast failed")
	}
	h.hub.EmitToRoom(socket.RoomInventoryAdmin, socket.MessageTypeOrderStatusUpdate, order)

	logging.Info().
		Str("order_id", sanitizeLogValue(orderID)).
		Str("status", sanitizeLogValue(req.Status)).
		Int("delivered", delivered).
		Msg("order status updated")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     order,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
