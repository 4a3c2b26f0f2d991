// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package services

import (
	"context"
)

// ContextHub matches *socket.Hub's RunWithContext method without
// importing the socket package.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// SocketHubService wraps the room hub as a supervised service. The
// hub's RunWithContext already follows the suture pattern; this adds
// only a name for logging.
type SocketHubService struct {
	hub  ContextHub
	name string
}

// NewSocketHubService creates the wrapper.
func NewSocketHubService(hub ContextHub) *SocketHubService {
	return &SocketHubService{
		hub:  hub,
		name: "socket-hub",
	}
}

// Serve implements suture.Service.
func (s *SocketHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String identifies the service in supervisor logs.
func (s *SocketHubService) String() string {
	return s.name
}
