// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package sse

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stockpit/stockpit/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// recordingSink captures written frames and can be told to fail.
type recordingSink struct {
	mu     sync.Mutex
	frames [][]byte
	err    error
}

func (s *recordingSink) WriteEvent(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	s.frames = append(s.frames, frame)
	return nil
}

func (s *recordingSink) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *recordingSink) last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func TestRegistry_AddRemoveLen(t *testing.T) {
	r := NewRegistry()

	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}

	r.Add(NewConnection("a", &recordingSink{}))
	r.Add(NewConnection("b", &recordingSink{}))

	if r.Len() != 2 {
		t.Fatalf("expected 2 connections, got %d", r.Len())
	}

	r.Remove("a")
	if r.Len() != 1 {
		t.Fatalf("expected 1 connection after remove, got %d", r.Len())
	}
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Add(NewConnection("a", &recordingSink{}))

	r.Remove("never-registered")

	if r.Len() != 1 {
		t.Fatalf("removing unknown id changed registry size: %d", r.Len())
	}
}

func TestRegistry_DuplicateIDLastWriterWins(t *testing.T) {
	r := NewRegistry()
	first := &recordingSink{}
	second := &recordingSink{}

	r.Add(NewConnection("dup", first))
	r.Add(NewConnection("dup", second))

	if r.Len() != 1 {
		t.Fatalf("duplicate id produced %d entries, want 1", r.Len())
	}

	conns := r.Snapshot()
	if err := conns[0].Send([]byte("x")); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if first.count() != 0 || second.count() != 1 {
		t.Errorf("expected the later connection to win: first=%d second=%d",
			first.count(), second.count())
	}
}

func TestRegistry_SnapshotSortedByID(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		r.Add(NewConnection(id, &recordingSink{}))
	}

	conns := r.Snapshot()
	want := []string{"a", "b", "c"}
	for i, conn := range conns {
		if conn.ID() != want[i] {
			t.Errorf("snapshot[%d] = %q, want %q", i, conn.ID(), want[i])
		}
	}
}

func TestRegistry_ConcurrentAddRemove(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			r.Add(NewConnection(id, &recordingSink{}))
			r.Remove(id)
		}(i)
	}
	wg.Wait()

	// Every add was paired with a remove of the same id; stragglers can
	// only be re-adds that lost the race, never phantom entries.
	if got := r.Len(); got > 26 {
		t.Errorf("registry grew beyond the id space: %d", got)
	}
}

func TestConnection_SendPropagatesSinkError(t *testing.T) {
	sink := &recordingSink{}
	conn := NewConnection("x", sink)

	sink.fail(errors.New("peer gone"))
	if err := conn.Send([]byte("data")); err == nil {
		t.Fatal("expected error from failing sink")
	}
}
