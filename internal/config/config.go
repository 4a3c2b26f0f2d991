// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package config loads and validates Stockpit configuration with Koanf
// v2 layered sources: struct defaults, optional YAML file, environment
// variables (highest priority).
package config

import "time"

// Config is the application configuration root.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Webhook    WebhookConfig    `koanf:"webhook"`
	Stream     StreamConfig     `koanf:"stream"`
	Socket     SocketConfig     `koanf:"socket"`
	Subscriber SubscriberConfig `koanf:"subscriber"`
	Security   SecurityConfig   `koanf:"security"`
	Inventory  InventoryConfig  `koanf:"inventory"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	ReadTimeout time.Duration `koanf:"read_timeout"`
	// WriteTimeout must stay zero: the push-stream endpoint keeps a
	// response open indefinitely and a server-level write timeout would
	// sever it between heartbeats.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	Environment string        `koanf:"environment"`
}

// WebhookConfig holds order-webhook ingestion settings.
type WebhookConfig struct {
	// Secret is the shared HMAC-SHA256 secret. Empty disables signature
	// verification entirely; non-empty verifies any supplied signature
	// and accepts-but-flags requests that carry none.
	Secret string `koanf:"secret"`
}

// StreamConfig holds push-stream (SSE) endpoint settings.
type StreamConfig struct {
	// HeartbeatInterval is the period between keep-alive frames.
	HeartbeatInterval time.Duration `koanf:"heartbeat_interval"`
}

// SocketConfig holds the websocket channel settings.
type SocketConfig struct {
	// AllowedOrigins restricts websocket upgrades; empty allows only
	// same-origin requests (gorilla's default check).
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// SubscriberConfig holds the reconnection policy for the embedded
// subscriber controllers (admin tooling connecting back to the server).
type SubscriberConfig struct {
	// EndpointURL is the base URL the subscribers connect to, an opaque
	// deployment-supplied value.
	EndpointURL string `koanf:"endpoint_url"`

	StreamMaxAttempts       int           `koanf:"stream_max_attempts"`
	StreamReconnectInterval time.Duration `koanf:"stream_reconnect_interval"`
	SocketMaxAttempts       int           `koanf:"socket_max_attempts"`
	SocketReconnectInterval time.Duration `koanf:"socket_reconnect_interval"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// InventoryConfig holds the spreadsheet-backed product store settings.
type InventoryConfig struct {
	// SpreadsheetPath is the CSV file backing the product store.
	SpreadsheetPath string `koanf:"spreadsheet_path"`
	// UploadDir receives product image uploads.
	UploadDir string `koanf:"upload_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
