// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/metrics"
	"github.com/stockpit/stockpit/internal/models"
	"github.com/stockpit/stockpit/internal/socket"
)

// signatureHeader carries the webhook HMAC: "sha256=<hex hmac>".
const signatureHeader = "X-Webhook-Signature"

// OrderWebhook ingests order events pushed by the external order system.
// POST /api/v1/orders/webhook
//
// Security: when WEBHOOK_SECRET is configured and the request carries a
// signature, the HMAC-SHA256 of the exact raw body must match or the
// request is rejected with 401. A configured secret with a missing
// signature is accepted but flagged - the order system's legacy sender
// omits the header, and dropping those events would lose orders. The
// asymmetry is intentional pass-through behavior and must be preserved.
//
// A valid event is normalized into a NEW_ORDER notification, fanned out
// to every push-stream connection, relayed to the inventory_admin
// socket room, and recorded for order_sync catch-up. The response
// reports how many connections received the broadcast and the canonical
// order id.
func (h *Handler) OrderWebhook(w http.ResponseWriter, r *http.Request) {
	metrics.WebhookReceived.Inc()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read request body", err)
		return
	}
	defer r.Body.Close()

	if secret := h.config.Webhook.Secret; secret != "" {
		signature := r.Header.Get(signatureHeader)
		if signature == "" {
			metrics.WebhookUnsigned.Inc()
			logging.Warn().Msg("webhook accepted without signature while secret is configured")
		} else if !verifyWebhookSignature(body, signature, secret) {
			metrics.WebhookRejected.WithLabelValues("bad_signature").Inc()
			respondError(w, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature verification failed", ErrSignatureMismatch)
			return
		}
	}

	var webhook models.OrderWebhook
	if err := json.Unmarshal(body, &webhook); err != nil {
		metrics.WebhookRejected.WithLabelValues("malformed_payload").Inc()
		respondError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Failed to parse webhook JSON", err)
		return
	}
	if apiErr := validateRequest(&webhook); apiErr != nil {
		metrics.WebhookRejected.WithLabelValues("malformed_payload").Inc()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	notification := webhook.Normalize(time.Now())
	reqLogger := logging.Ctx(r.Context())
	reqLogger.Info().
		Str("event", sanitizeLogValue(webhook.Event)).
		Str("order_id", sanitizeLogValue(notification.OrderID)).
		Str("customer", sanitizeLogValue(notification.CustomerName)).
		Msg("order webhook received")

	delivered, err := h.broadcaster.Broadcast(notification)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BROADCAST_FAILED", "Failed to serialize notification", err)
		return
	}

	order := models.OrderFromNotification(notification)
	h.orders.Record(order)
	h.hub.EmitToRoom(socket.RoomInventoryAdmin, socket.MessageTypeNewOrder, order)

	respondRaw(w, http.StatusOK, &models.WebhookAccepted{
		Success:           true,
		Message:           "order notification broadcast",
		ActiveConnections: delivered,
		OrderID:           notification.OrderID,
	})
}

// verifyWebhookSignature checks the HMAC-SHA256 signature of the raw
// payload in constant time. The header value may carry a "sha256="
// prefix.
func verifyWebhookSignature(body []byte, signature, secret string) bool {
	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
