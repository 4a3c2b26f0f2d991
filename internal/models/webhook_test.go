// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package models

import (
	"testing"
	"time"
)

func TestOrderWebhook_NormalizeDefaults(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	w := OrderWebhook{
		Event: "order.created",
		Data:  OrderWebhookData{CustomerName: "Ada"},
	}

	n := w.Normalize(now)

	if n.Type != EventNewOrder {
		t.Errorf("Type = %q, want NEW_ORDER", n.Type)
	}
	if n.OrderID == "" {
		t.Error("missing order id should be generated")
	}
	if n.Status != OrderStatusPending {
		t.Errorf("Status = %q, want pending", n.Status)
	}
	if !n.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want ingestion time %v", n.Timestamp, now)
	}
}

func TestOrderWebhook_NormalizeKeepsSourceValues(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	src := time.Date(2026, 8, 26, 9, 30, 0, 0, time.UTC)
	w := OrderWebhook{
		Event:     "order.created",
		Timestamp: &src,
		Data: OrderWebhookData{
			OrderID:      "ord-9",
			CustomerName: "Bob",
			Status:       "paid",
			Total:        33,
			Items:        []LineItem{{Name: "Nut", Quantity: 10, Price: 3.3}},
		},
	}

	n := w.Normalize(now)

	if n.OrderID != "ord-9" || n.Status != "paid" {
		t.Errorf("source values rewritten: %+v", n)
	}
	if !n.Timestamp.Equal(src) {
		t.Errorf("Timestamp = %v, want source time %v", n.Timestamp, src)
	}
	if len(n.Items) != 1 || n.Items[0].Name != "Nut" {
		t.Errorf("items lost: %+v", n.Items)
	}
}

func TestParseEventType(t *testing.T) {
	tests := []struct {
		in   string
		want EventType
	}{
		{"connected", EventConnected},
		{"heartbeat", EventHeartbeat},
		{"NEW_ORDER", EventNewOrder},
		{"ORDER_STATUS_UPDATE", EventOrderStatusUpdate},
		{"order_sync", EventOrderSync},
		{"new_order", EventUnknown}, // case matters on the wire
		{"", EventUnknown},
		{"banana", EventUnknown},
	}

	for _, tc := range tests {
		if got := ParseEventType(tc.in); got != tc.want {
			t.Errorf("ParseEventType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOrderMerge_ZeroFieldsLeaveExisting(t *testing.T) {
	o := Order{
		OrderID:      "ord-1",
		CustomerName: "Ada",
		Status:       "pending",
		Total:        50,
	}

	o.Merge(Order{OrderID: "ord-1", Status: "shipped", TrackingNumber: "T1"})

	if o.Status != "shipped" || o.TrackingNumber != "T1" {
		t.Errorf("merge missed updates: %+v", o)
	}
	if o.CustomerName != "Ada" || o.Total != 50 {
		t.Errorf("zero fields clobbered existing values: %+v", o)
	}
}
