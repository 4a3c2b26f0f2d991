// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package client contains the embedded subscriber controllers used by
// admin tooling: a push-stream (SSE) subscriber and a room-socket
// subscriber, both driven by the same bounded fixed-interval
// reconnection loop.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stockpit/stockpit/internal/logging"
)

// State is the lifecycle state of a subscription.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	// StateFailed is terminal: the retry budget is exhausted and the
	// subscription will not try again until restarted.
	StateFailed State = "failed"
)

// ErrRetriesExhausted is returned by Run when the consecutive failure
// count reaches the configured maximum.
var ErrRetriesExhausted = errors.New("reconnection attempts exhausted")

// Transport is a single connection attempt. Connect dials, signals
// readiness through the ready callback once the connection is live,
// then blocks serving the connection until it drops or ctx is
// cancelled. Returning nil means clean shutdown; any error counts as a
// connection failure.
type Transport interface {
	Connect(ctx context.Context, ready func()) error
}

// SubscriptionConfig bounds the retry loop.
type SubscriptionConfig struct {
	// Name identifies the subscription in logs and state callbacks.
	Name string

	// MaxAttempts is the retry budget: after a failed dial, up to
	// MaxAttempts further attempts are made before giving up. A
	// connection that reached ready resets the count, so a flaky link
	// gets the full budget after every successful session.
	MaxAttempts int

	// ReconnectInterval is the fixed delay between attempts. No
	// backoff: the interval is the interval.
	ReconnectInterval time.Duration

	// OnStateChange, when set, observes every state transition,
	// including one reconnecting event per retry attempt.
	OnStateChange func(State)
}

// DefaultMaxAttempts applies when SubscriptionConfig leaves
// MaxAttempts unset.
const DefaultMaxAttempts = 5

// Subscription drives a Transport through connect, serve and bounded
// reconnect. A single goroutine owns the loop, so two reconnection
// timers can never be in flight for the same subscription.
type Subscription struct {
	config    SubscriptionConfig
	transport Transport

	mu    sync.Mutex
	state State

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSubscription builds a subscription around the transport. Zero
// config fields get defaults.
func NewSubscription(cfg SubscriptionConfig, transport Transport) *Subscription {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = 5 * time.Second
	}
	return &Subscription{
		config:    cfg,
		transport: transport,
		state:     StateDisconnected,
		done:      make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// setState records the state and notifies the observer. Re-entering
// the same state still fires: each reconnecting event marks a fresh
// retry attempt.
func (s *Subscription) setState(next State) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	logging.Debug().
		Str("subscription", s.config.Name).
		Str("state", string(next)).
		Msg("subscription state changed")
	if s.config.OnStateChange != nil {
		s.config.OnStateChange(next)
	}
}

// Start runs the subscription loop in the background. Use Close to
// stop it. For supervised use call Run directly instead.
func (s *Subscription) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Warn().Err(err).
				Str("subscription", s.config.Name).
				Msg("subscription stopped")
		}
	}()
}

// Close stops a Start-ed subscription and waits for the loop to exit.
// It is safe to call more than once; every call returns only after the
// loop is gone, so no timer or dial survives it.
func (s *Subscription) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	<-s.done
}

// Run executes the connect/serve/reconnect loop until ctx is cancelled
// or the retry budget runs out. It returns ErrRetriesExhausted in the
// latter case, ctx.Err() in the former.
func (s *Subscription) Run(ctx context.Context) error {
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			s.setState(StateDisconnected)
			return err
		}

		if attempts == 0 {
			s.setState(StateConnecting)
		} else {
			s.setState(StateReconnecting)
		}

		reached := false
		err := s.transport.Connect(ctx, func() {
			reached = true
			attempts = 0
			s.setState(StateConnected)
		})
		if err == nil {
			// Clean shutdown requested by the transport.
			s.setState(StateDisconnected)
			return nil
		}
		if ctx.Err() != nil {
			s.setState(StateDisconnected)
			return ctx.Err()
		}

		if !reached {
			attempts++
		} else {
			// The session was live and then dropped; this drop is the
			// first strike of the next failure streak.
			attempts = 1
		}

		// The budget bounds retries, not dials: give up only once the
		// streak exceeds MaxAttempts, so an always-failing endpoint is
		// dialed MaxAttempts+1 times in total.
		if attempts > s.config.MaxAttempts {
			logging.Error().
				Str("subscription", s.config.Name).
				Int("attempts", attempts).
				Msg("giving up after repeated connection failures")
			s.setState(StateFailed)
			return ErrRetriesExhausted
		}

		logging.Info().Err(err).
			Str("subscription", s.config.Name).
			Int("attempt", attempts).
			Int("max_attempts", s.config.MaxAttempts).
			Dur("retry_in", s.config.ReconnectInterval).
			Msg("connection lost, scheduling reconnect")

		select {
		case <-ctx.Done():
			s.setState(StateDisconnected)
			return ctx.Err()
		case <-time.After(s.config.ReconnectInterval):
		}
	}
}
