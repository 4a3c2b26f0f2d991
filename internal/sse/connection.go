// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package sse

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// ErrStreamingUnsupported is returned when the underlying ResponseWriter
// cannot flush, which makes it unusable as an event stream.
var ErrStreamingUnsupported = errors.New("response writer does not support streaming")

// Sink is a write-capable handle to an open response stream. WriteEvent
// writes one complete wire frame and reports failure synchronously so
// the caller can evict the connection.
type Sink interface {
	WriteEvent(data []byte) error
}

// Connection pairs an opaque id with its sink. The registry owns a
// connection for its lifetime: created on subscribe, destroyed on
// disconnect or write failure.
//
// Send serializes concurrent writers (heartbeat ticker vs. broadcast
// pass) under a per-connection lock so wire frames never interleave.
type Connection struct {
	id   string
	sink Sink
	mu   sync.Mutex
}

// NewConnection creates a connection around the given sink.
func NewConnection(id string, sink Sink) *Connection {
	return &Connection{id: id, sink: sink}
}

// ID returns the connection's opaque identifier.
func (c *Connection) ID() string {
	return c.id
}

// Send writes one event frame to the sink under the connection's write
// lock.
func (c *Connection) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink.WriteEvent(data)
}

// streamSink adapts an http.ResponseWriter into a Sink emitting
// text/event-stream frames: "data: <JSON>\n\n", flushed per event.
type streamSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewStreamSink wraps an http.ResponseWriter as an SSE sink. The caller
// is expected to have set the event-stream headers already.
func NewStreamSink(w http.ResponseWriter) (Sink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}
	return &streamSink{w: w, flusher: flusher}, nil
}

// WriteEvent frames and flushes a single event.
func (s *streamSink) WriteEvent(data []byte) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
