// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package main is the entry point for the Stockpit server.
//
// Stockpit is a self-hosted inventory management service with real-time
// order notifications. Orders arrive from an external order system via
// a signed webhook and fan out to two live surfaces: a push stream
// (Server-Sent Events) for lightweight notification feeds, and a
// room-based websocket channel for admin dashboards that keep a local
// order list in sync.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML, env)
//  2. Logging: zerolog with structured JSON or console output
//  3. Product store: CSV spreadsheet-backed inventory
//  4. Notification plumbing: connection registry, broadcaster, room hub
//  5. Supervisor tree: suture-managed messaging and API layers
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP listener
// drains in-flight requests, the hub closes every socket client, and
// the supervisor reports anything that refused to stop in time.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/stockpit/stockpit/internal/api"
	"github.com/stockpit/stockpit/internal/config"
	"github.com/stockpit/stockpit/internal/inventory"
	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/socket"
	"github.com/stockpit/stockpit/internal/sse"
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
		Str("environment", cfg.Server.Environment).
		Int("port", cfg.Server.Port).
		Bool("webhook_signing", cfg.Webhook.Secret != "").
		Msg("Starting Stockpit")

	store, err := inventory.OpenCSV(cfg.Inventory.SpreadsheetPath)
	if err != nil {
		logging.Fatal().Err(err).
			Str("path", cfg.Inventory.SpreadsheetPath).
			Msg("Failed to open product spreadsheet")
	}
	logging.Info().Str("path", cfg.Inventory.SpreadsheetPath).Msg("Product store ready")

	registry := sse.NewRegistry()
	broadcaster := sse.NewBroadcaster(registry)
	hub := socket.NewHub()

	handler := api.NewHandler(cfg, registry, broadcaster, hub, store)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     router.Setup(),
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
		// WriteTimeout stays unset so the push stream is never severed
		// between heartbeats.
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, supervisor.DefaultTreeConfig().ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Supervisor tree starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop before timeout")
		}
	}

	logging.Info().Msg("Stockpit stopped")
}
