// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package sse

import (
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/stockpit/stockpit/internal/models"
)

func testNotification() models.Notification {
	return models.Notification{
		Type:         models.EventNewOrder,
		OrderID:      "ord-1",
		CustomerName: "Ada",
		Total:        42.5,
		Status:       models.OrderStatusPending,
		Timestamp:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBroadcaster_DeliversToAllConnections(t *testing.T) {
	r := NewRegistry()
	sinks := map[string]*recordingSink{
		"a": {}, "b": {}, "c": {},
	}
	for id, sink := range sinks {
		r.Add(NewConnection(id, sink))
	}

	b := NewBroadcaster(r)
	delivered, err := b.Broadcast(testNotification())
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if delivered != 3 {
		t.Fatalf("delivered = %d, want 3", delivered)
	}

	for id, sink := range sinks {
		if sink.count() != 1 {
			t.Errorf("connection %q received %d frames, want 1", id, sink.count())
		}
	}
}

func TestBroadcaster_IdenticalPayloadPerConnection(t *testing.T) {
	r := NewRegistry()
	first := &recordingSink{}
	second := &recordingSink{}
	r.Add(NewConnection("a", first))
	r.Add(NewConnection("b", second))

	b := NewBroadcaster(r)
	if _, err := b.Broadcast(testNotification()); err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	if string(first.last()) != string(second.last()) {
		t.Errorf("payloads differ:\n%s\n%s", first.last(), second.last())
	}

	var decoded models.Notification
	if err := json.Unmarshal(first.last(), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.OrderID != "ord-1" || decoded.Type != models.EventNewOrder {
		t.Errorf("round-tripped notification mismatch: %+v", decoded)
	}
}

func TestBroadcaster_EvictsFailedConnectionSamePass(t *testing.T) {
	r := NewRegistry()
	healthy := &recordingSink{}
	dead := &recordingSink{}
	dead.fail(errors.New("broken pipe"))

	r.Add(NewConnection("dead", dead))
	r.Add(NewConnection("ok", healthy))

	b := NewBroadcaster(r)
	delivered, err := b.Broadcast(testNotification())
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	if delivered != 1 {
		t.Errorf("delivered = %d, want 1", delivered)
	}
	if r.Len() != 1 {
		t.Errorf("failed connection not evicted: registry has %d entries", r.Len())
	}
	if healthy.count() != 1 {
		t.Errorf("healthy connection should still receive the event, got %d frames", healthy.count())
	}

	// The evicted connection is gone: the next broadcast skips it.
	if _, err := b.Broadcast(testNotification()); err != nil {
		t.Fatalf("second broadcast failed: %v", err)
	}
	if healthy.count() != 2 {
		t.Errorf("healthy connection frames = %d, want 2", healthy.count())
	}
}

func TestBroadcaster_EmptyRegistry(t *testing.T) {
	b := NewBroadcaster(NewRegistry())

	delivered, err := b.Broadcast(testNotification())
	if err != nil {
		t.Fatalf("broadcast over empty registry failed: %v", err)
	}
	if delivered != 0 {
		t.Errorf("delivered = %d, want 0", delivered)
	}
}
