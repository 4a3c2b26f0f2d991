// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package sse

import (
	"sort"
	"sync"

	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/metrics"
)

// Registry is the process-wide table of currently open push-stream
// connections. It owns connection lifecycle (add/remove) and never
// holds two entries with the same id.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Connection)}
}

// Add stores the connection unconditionally; a prior entry with the
// same id is overwritten (last writer wins).
func (r *Registry) Add(conn *Connection) {
	r.mu.Lock()
	r.conns[conn.ID()] = conn
	size := len(r.conns)
	r.mu.Unlock()

	metrics.SSEActiveConnections.Set(float64(size))
	logging.Info().
		Str("connection_id", conn.ID()).
		Int("active_connections", size).
		Msg("push-stream connection registered")
}

// Remove deletes the entry if present; removing an unknown id is a
// no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	_, ok := r.conns[id]
	if ok {
		delete(r.conns, id)
	}
	size := len(r.conns)
	r.mu.Unlock()

	if !ok {
		return
	}
	metrics.SSEActiveConnections.Set(float64(size))
	logging.Info().
		Str("connection_id", id).
		Int("active_connections", size).
		Msg("push-stream connection deregistered")
}

// Len reports the current number of open connections, observable for
// diagnostics and echoed in the webhook response.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Snapshot returns the current connections sorted by id. Iteration over
// a stable slice keeps delivery order deterministic and lets the
// broadcaster evict entries while walking the set.
func (r *Registry) Snapshot() []*Connection {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	sort.Slice(conns, func(i, j int) bool {
		return conns[i].ID() < conns[j].ID()
	})
	return conns
}
