// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package services

import (
	"context"
	"errors"

	"github.com/thejerf/suture/v4"

	"github.com/stockpit/stockpit/internal/client"
)

// SubscriberRunner matches the client subscription's Run method.
type SubscriberRunner interface {
	Run(ctx context.Context) error
}

// SubscriberService runs a subscriber controller under supervision.
// The controller already retries internally on a bounded budget, so an
// exhausted budget is reported as a terminal condition rather than
// letting the supervisor restart it into the same dead endpoint.
type SubscriberService struct {
	runner SubscriberRunner
	name   string
}

// NewSubscriberService creates the wrapper.
func NewSubscriberService(name string, runner SubscriberRunner) *SubscriberService {
	return &SubscriberService{
		runner: runner,
		name:   name,
	}
}

// Serve implements suture.Service.
func (s *SubscriberService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if errors.Is(err, client.ErrRetriesExhausted) {
		return suture.ErrDoNotRestart
	}
	return err
}

// String identifies the service in supervisor logs.
func (s *SubscriberService) String() string {
	return s.name
}
