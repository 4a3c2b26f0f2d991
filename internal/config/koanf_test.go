// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Stream.HeartbeatInterval != 30*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 30s", cfg.Stream.HeartbeatInterval)
	}
	if cfg.Subscriber.StreamMaxAttempts != 5 || cfg.Subscriber.SocketMaxAttempts != 5 {
		t.Errorf("subscriber attempts = %d/%d, want 5/5",
			cfg.Subscriber.StreamMaxAttempts, cfg.Subscriber.SocketMaxAttempts)
	}
	if cfg.Subscriber.StreamReconnectInterval != 5*time.Second {
		t.Errorf("StreamReconnectInterval = %v, want 5s", cfg.Subscriber.StreamReconnectInterval)
	}
	if cfg.Subscriber.SocketReconnectInterval != 3*time.Second {
		t.Errorf("SocketReconnectInterval = %v, want 3s", cfg.Subscriber.SocketReconnectInterval)
	}
	if cfg.Webhook.Secret != "" {
		t.Errorf("Webhook.Secret should default to empty, got %q", cfg.Webhook.Secret)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("WEBHOOK_SECRET", "hunter2")
	t.Setenv("STREAM_HEARTBEAT_INTERVAL", "10s")
	t.Setenv("SUBSCRIBER_STREAM_MAX_ATTEMPTS", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Webhook.Secret != "hunter2" {
		t.Errorf("Webhook.Secret = %q", cfg.Webhook.Secret)
	}
	if cfg.Stream.HeartbeatInterval != 10*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 10s", cfg.Stream.HeartbeatInterval)
	}
	if cfg.Subscriber.StreamMaxAttempts != 7 {
		t.Errorf("StreamMaxAttempts = %d, want 7", cfg.Subscriber.StreamMaxAttempts)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_SliceFieldsFromEnv(t *testing.T) {
	t.Setenv("SECURITY_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SOCKET_ALLOWED_ORIGINS", "https://admin.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if len(cfg.Socket.AllowedOrigins) != 1 || cfg.Socket.AllowedOrigins[0] != "https://admin.example" {
		t.Errorf("AllowedOrigins = %v", cfg.Socket.AllowedOrigins)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8181\nstream:\n  heartbeat_interval: 15s\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8181 {
		t.Errorf("Server.Port = %d, want 8181 from file", cfg.Server.Port)
	}
	if cfg.Stream.HeartbeatInterval != 15*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 15s from file", cfg.Stream.HeartbeatInterval)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8181\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SERVER_PORT", "8282")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8282 {
		t.Errorf("Server.Port = %d, want env to win over file", cfg.Server.Port)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging-ish" }},
		{"bad subscriber url", func(c *Config) { c.Subscriber.EndpointURL = "not a url" }},
		{"zero stream attempts", func(c *Config) { c.Subscriber.StreamMaxAttempts = 0 }},
		{"negative socket interval", func(c *Config) { c.Subscriber.SocketReconnectInterval = -time.Second }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate accepted %s", tc.name)
			}
		})
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
