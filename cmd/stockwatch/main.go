// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package main is the entry point for stockwatch, a headless admin
// watcher that follows a Stockpit server from the terminal.
//
// It attaches both client-side controllers to the configured endpoint:
// the push-stream subscriber feeds a notification inbox, and the socket
// subscriber joins the admin room and keeps a synced order cache. Both
// run under a small supervisor tree; when either retry budget runs out
// the controller stops for good instead of hammering a dead endpoint.
//
// On shutdown it prints a summary of what it saw, which makes it handy
// for smoke-testing a deployment:
//
//	SUBSCRIBER_ENDPOINT_URL=http://localhost:8090 stockwatch
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/stockpit/stockpit/internal/client"
	"github.com/stockpit/stockpit/internal/config"
	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/supervisor"
	"github.com/stockpit/stockpit/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("endpoint", cfg.Subscriber.EndpointURL).
		Int("stream_max_attempts", cfg.Subscriber.StreamMaxAttempts).
		Int("socket_max_attempts", cfg.Subscriber.SocketMaxAttempts).
		Msg("Starting stockwatch")

	stream := client.NewStreamSubscriber(cfg.Subscriber, client.LogNotifier{})
	socket, err := client.NewSocketSubscriber(cfg.Subscriber, client.LogNotifier{})
	if err != nil {
		logging.Fatal().Err(err).
			Str("endpoint", cfg.Subscriber.EndpointURL).
			Msg("Failed to build socket subscriber")
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewSubscriberService("order-stream", stream))
	tree.AddMessagingService(services.NewSubscriberService("order-socket", socket))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Watcher stopped with error")
	}

	logging.Info().
		Int("notifications", stream.Inbox().Len()).
		Int("unread", stream.Inbox().Unread()).
		Int("orders_cached", socket.Orders().Len()).
		Int("alerts", len(socket.Orders().Alerts())).
		Msg("stockwatch stopped")
}
