// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package client

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockpit/stockpit/internal/models"
)

// defaultInboxCapacity bounds the inbox; the oldest records fall off
// once it fills.
const defaultInboxCapacity = 200

// InboxRecord is one received notification. Each arrival gets its own
// id even when the server redelivers the same event, so two records
// never share one. Only read transitions and explicit clears mutate a
// record after arrival.
type InboxRecord struct {
	ID           string              `json:"id"`
	Notification models.Notification `json:"notification"`
	ReceivedAt   time.Time           `json:"receivedAt"`
	Read         bool                `json:"read"`
}

// Inbox is a newest-first list of notification records. Safe for
// concurrent use.
type Inbox struct {
	mu       sync.Mutex
	records  []InboxRecord
	capacity int
}

// NewInbox creates an inbox with the given capacity; zero or negative
// uses the default.
func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = defaultInboxCapacity
	}
	return &Inbox{capacity: capacity}
}

// Add prepends an unread record for the notification and returns the
// record id.
func (i *Inbox) Add(n models.Notification) string {
	record := InboxRecord{
		ID:           uuid.NewString(),
		Notification: n,
		ReceivedAt:   time.Now().UTC(),
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.records = append([]InboxRecord{record}, i.records...)
	if len(i.records) > i.capacity {
		i.records = i.records[:i.capacity]
	}
	return record.ID
}

// Unread returns the count of records not yet marked read.
func (i *Inbox) Unread() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	count := 0
	for _, r := range i.records {
		if !r.Read {
			count++
		}
	}
	return count
}

// MarkRead marks a single record read. Returns false when no record
// has the id.
func (i *Inbox) MarkRead(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx := range i.records {
		if i.records[idx].ID == id {
			i.records[idx].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead marks every record read without dropping any.
func (i *Inbox) MarkAllRead() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx := range i.records {
		i.records[idx].Read = true
	}
}

// Clear removes a single record. Returns false when no record has the
// id.
func (i *Inbox) Clear(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx := range i.records {
		if i.records[idx].ID == id {
			i.records = append(i.records[:idx], i.records[idx+1:]...)
			return true
		}
	}
	return false
}

// ClearAll removes every record.
func (i *Inbox) ClearAll() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.records = nil
}

// Snapshot returns a copy of the records, newest first.
func (i *Inbox) Snapshot() []InboxRecord {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]InboxRecord, len(i.records))
	copy(out, i.records)
	return out
}

// Len returns the number of stored records.
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.records)
}
