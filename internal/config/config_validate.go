// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSubscriber(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("SERVER_ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSubscriber() error {
	if c.Subscriber.EndpointURL == "" {
		return fmt.Errorf("SUBSCRIBER_ENDPOINT_URL is required")
	}
	if err := validateHTTPURL(c.Subscriber.EndpointURL, "SUBSCRIBER_ENDPOINT_URL"); err != nil {
		return err
	}
	if c.Subscriber.StreamMaxAttempts < 1 {
		return fmt.Errorf("SUBSCRIBER_STREAM_MAX_ATTEMPTS must be at least 1")
	}
	if c.Subscriber.SocketMaxAttempts < 1 {
		return fmt.Errorf("SUBSCRIBER_SOCKET_MAX_ATTEMPTS must be at least 1")
	}
	if c.Subscriber.StreamReconnectInterval <= 0 {
		return fmt.Errorf("SUBSCRIBER_STREAM_RECONNECT_INTERVAL must be positive")
	}
	if c.Subscriber.SocketReconnectInterval <= 0 {
		return fmt.Errorf("SUBSCRIBER_SOCKET_RECONNECT_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("SECURITY_RATE_LIMIT_REQS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("SECURITY_RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that a value parses as an absolute http(s) URL.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
