// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package client

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/stockpit/stockpit/internal/config"
	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/models"
)

// StreamSubscriber consumes the push-stream endpoint. Frames land in
// an Inbox; new orders additionally fire the Notifier. It implements
// Transport and is normally driven by a Subscription.
type StreamSubscriber struct {
	url        string
	httpClient *http.Client
	inbox      *Inbox
	notifier   Notifier

	mu           sync.Mutex
	connectionID string

	subscription *Subscription
}

// NewStreamSubscriber builds the subscriber with the reconnection
// policy from cfg. The returned subscriber is idle until Start.
func NewStreamSubscriber(cfg config.SubscriberConfig, notifier Notifier) *StreamSubscriber {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	s := &StreamSubscriber{
		url: strings.TrimRight(cfg.EndpointURL, "/") + "/api/v1/orders/events",
		// Timeout stays zero: the response body is an endless stream.
		httpClient: &http.Client{},
		inbox:      NewInbox(0),
		notifier:   notifier,
	}
	s.subscription = NewSubscription(SubscriptionConfig{
		Name:              "order-stream",
		MaxAttempts:       cfg.StreamMaxAttempts,
		ReconnectInterval: cfg.StreamReconnectInterval,
	}, s)
	return s
}

// Start begins consuming in the background.
func (s *StreamSubscriber) Start(ctx context.Context) { s.subscription.Start(ctx) }

// Close stops consuming and waits for the loop to exit.
func (s *StreamSubscriber) Close() { s.subscription.Close() }

// Run consumes in the foreground until ctx is cancelled or the retry
// budget runs out. For supervised use.
func (s *StreamSubscriber) Run(ctx context.Context) error { return s.subscription.Run(ctx) }

// State reports the subscription lifecycle state.
func (s *StreamSubscriber) State() State { return s.subscription.State() }

// Inbox exposes the received notifications.
func (s *StreamSubscriber) Inbox() *Inbox { return s.inbox }

// ConnectionID returns the id the server assigned in the connected
// frame, empty while disconnected.
func (s *StreamSubscriber) ConnectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connectionID
}

// Connect dials the stream and consumes frames until the connection
// drops or ctx is cancelled. Implements Transport.
func (s *StreamSubscriber) Connect(ctx context.Context, ready func()) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("building stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dialing stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream endpoint returned %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		return fmt.Errorf("unexpected content type %q", ct)
	}
	ready()

	// Wire format: one or more "data:" lines per event, terminated by a
	// blank line. Other SSE fields (event:, id:, retry:) are not used
	// by the server and are skipped here.
	reader := bufio.NewReader(resp.Body)
	var data bytes.Buffer
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading stream: %w", err)
		}
		line = bytes.TrimRight(line, "\r\n")

		if len(line) == 0 {
			if data.Len() > 0 {
				s.dispatch(data.Bytes())
				data.Reset()
			}
			continue
		}
		if payload, ok := bytes.CutPrefix(line, []byte("data:")); ok {
			data.Write(bytes.TrimPrefix(payload, []byte(" ")))
		}
	}
}

func (s *StreamSubscriber) dispatch(frame []byte) {
	var n models.Notification
	if err := json.Unmarshal(frame, &n); err != nil {
		logging.Warn().Err(err).Msg("dropping undecodable stream frame")
		return
	}

	switch models.ParseEventType(string(n.Type)) {
	case models.EventConnected:
		s.mu.Lock()
		s.connectionID = n.ConnectionID
		s.mu.Unlock()
		logging.Info().
			Str("connection_id", n.ConnectionID).
			Msg("order stream established")

	case models.EventHeartbeat:
		// Keep-alive only.

	case models.EventNewOrder:
		s.inbox.Add(n)
		s.notifier.NewOrder(models.OrderFromNotification(n))

	case models.EventOrderStatusUpdate:
		s.inbox.Add(n)

	default:
		logging.Warn().
			Str("type", string(n.Type)).
			Msg("dropping stream frame with unrecognized type")
	}
}
