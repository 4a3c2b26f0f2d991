// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package client

import (
	"testing"
	"time"

	"github.com/stockpit/stockpit/internal/models"
)

func TestOrderCache_UpsertDeduplicates(t *testing.T) {
	c := NewOrderCache()

	if !c.Upsert(models.Order{OrderID: "ord-1", Status: "pending"}) {
		t.Fatal("first upsert should report new")
	}
	if c.Upsert(models.Order{OrderID: "ord-1", Status: "paid"}) {
		t.Fatal("repeated id should not report new")
	}

	order, _ := c.Get("ord-1")
	if order.Status != "paid" {
		t.Errorf("redelivery should replace the entry: status = %q", order.Status)
	}
	if got := len(c.Alerts()); got != 1 {
		t.Errorf("alerts = %d, want 1 (no duplicate alert)", got)
	}
}

func TestOrderCache_ApplyStatusMerges(t *testing.T) {
	c := NewOrderCache()
	c.Upsert(models.Order{OrderID: "ord-1", CustomerName: "Ada", Status: "pending", Total: 10})

	ok := c.ApplyStatus(models.Order{OrderID: "ord-1", Status: "shipped", TrackingNumber: "TRK1"})
	if !ok {
		t.Fatal("ApplyStatus on known order should succeed")
	}

	order, _ := c.Get("ord-1")
	if order.Status != "shipped" || order.TrackingNumber != "TRK1" {
		t.Errorf("merge result: %+v", order)
	}
	if order.CustomerName != "Ada" || order.Total != 10 {
		t.Errorf("merge clobbered unrelated fields: %+v", order)
	}
}

func TestOrderCache_ApplyStatusUnknownIDDropped(t *testing.T) {
	c := NewOrderCache()

	if c.ApplyStatus(models.Order{OrderID: "ghost", Status: "shipped"}) {
		t.Fatal("unknown id should be dropped")
	}
	if c.Len() != 0 {
		t.Error("dropped update must not create a placeholder entry")
	}
}

func TestOrderCache_ReplaceSyncsList(t *testing.T) {
	c := NewOrderCache()
	c.Upsert(models.Order{OrderID: "stale"})
	c.Upsert(models.Order{OrderID: "kept"})

	c.Replace([]models.Order{
		{OrderID: "kept", Status: "paid"},
		{OrderID: "fresh"},
	})

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Get("stale"); ok {
		t.Error("stale entry survived Replace")
	}
	if order, _ := c.Get("kept"); order.Status != "paid" {
		t.Errorf("kept entry not updated: %+v", order)
	}

	alerts := c.Alerts()
	if len(alerts) != 1 || alerts[0] != "kept" {
		t.Errorf("alerts after Replace = %v, want [kept]", alerts)
	}
}

func TestOrderCache_AlertLifecycle(t *testing.T) {
	c := NewOrderCache()
	c.Upsert(models.Order{OrderID: "a"})
	c.Upsert(models.Order{OrderID: "b"})
	c.Upsert(models.Order{OrderID: "c"})

	c.ClearAlert("b")
	alerts := c.Alerts()
	if len(alerts) != 2 || alerts[0] != "a" || alerts[1] != "c" {
		t.Errorf("alerts = %v, want [a c]", alerts)
	}

	c.ClearAllAlerts()
	if len(c.Alerts()) != 0 {
		t.Errorf("alerts after ClearAllAlerts = %v", c.Alerts())
	}
}

func TestOrderCache_SnapshotOrdering(t *testing.T) {
	c := NewOrderCache()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	c.Upsert(models.Order{OrderID: "old", Timestamp: base})
	c.Upsert(models.Order{OrderID: "new", Timestamp: base.Add(time.Hour)})

	snap := c.Snapshot()
	if snap[0].OrderID != "new" || snap[1].OrderID != "old" {
		t.Errorf("ordering: %q, %q; want most recent first", snap[0].OrderID, snap[1].OrderID)
	}
}
