// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package client

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stockpit/stockpit/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// scriptedTransport plays back a sequence of connection outcomes.
type scriptedTransport struct {
	mu       sync.Mutex
	attempts int

	// connect is invoked per attempt with the 1-based attempt number.
	connect func(ctx context.Context, attempt int, ready func()) error
}

func (t *scriptedTransport) Connect(ctx context.Context, ready func()) error {
	t.mu.Lock()
	t.attempts++
	n := t.attempts
	t.mu.Unlock()
	return t.connect(ctx, n, ready)
}

func (t *scriptedTransport) attemptCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts
}

func TestSubscription_GivesUpAfterMaxAttempts(t *testing.T) {
	var mu sync.Mutex
	var seen []State

	transport := &scriptedTransport{
		connect: func(_ context.Context, _ int, _ func()) error {
			return errors.New("refused")
		},
	}
	sub := NewSubscription(SubscriptionConfig{
		Name:              "test",
		MaxAttempts:       3,
		ReconnectInterval: time.Millisecond,
		OnStateChange: func(s State) {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		},
	}, transport)

	err := sub.Run(context.Background())

	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("err = %v, want ErrRetriesExhausted", err)
	}
	// The budget of 3 covers retries, so the endpoint is dialed four
	// times: the initial attempt plus three retries, never a fourth.
	if got := transport.attemptCount(); got != 4 {
		t.Errorf("attempts = %d, want 4", got)
	}
	if sub.State() != StateFailed {
		t.Errorf("state = %q, want failed", sub.State())
	}

	mu.Lock()
	defer mu.Unlock()
	want := []State{StateConnecting, StateReconnecting, StateReconnecting, StateReconnecting, StateFailed}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestSubscription_DefaultMaxAttempts(t *testing.T) {
	transport := &scriptedTransport{
		connect: func(_ context.Context, _ int, _ func()) error {
			return errors.New("refused")
		},
	}
	sub := NewSubscription(SubscriptionConfig{
		Name:              "test",
		ReconnectInterval: time.Millisecond,
	}, transport)

	_ = sub.Run(context.Background())

	if got := transport.attemptCount(); got != DefaultMaxAttempts+1 {
		t.Errorf("attempts = %d, want %d", got, DefaultMaxAttempts+1)
	}
}

func TestSubscription_SuccessfulSessionResetsBudget(t *testing.T) {
	// Fail twice, connect once, then fail until exhaustion. With the
	// budget reset by the successful session, total attempts exceed a
	// single budget.
	transport := &scriptedTransport{
		connect: func(_ context.Context, attempt int, ready func()) error {
			if attempt == 3 {
				ready()
			}
			return errors.New("dropped")
		},
	}
	sub := NewSubscription(SubscriptionConfig{
		Name:              "test",
		MaxAttempts:       3,
		ReconnectInterval: time.Millisecond,
	}, transport)

	err := sub.Run(context.Background())
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("err = %v, want ErrRetriesExhausted", err)
	}

	// Attempts 1 and 2 fail outright, leaving retries in the first
	// budget. Attempt 3 reaches ready and its drop is strike one of a
	// fresh streak, so attempts 4 through 6 run before the new streak
	// exceeds the budget.
	if got := transport.attemptCount(); got != 6 {
		t.Errorf("attempts = %d, want 6", got)
	}
}

func TestSubscription_FixedIntervalBetweenRetries(t *testing.T) {
	var stamps []time.Time
	var mu sync.Mutex
	transport := &scriptedTransport{
		connect: func(_ context.Context, _ int, _ func()) error {
			mu.Lock()
			stamps = append(stamps, time.Now())
			mu.Unlock()
			return errors.New("refused")
		},
	}
	interval := 50 * time.Millisecond
	sub := NewSubscription(SubscriptionConfig{
		Name:              "test",
		MaxAttempts:       3,
		ReconnectInterval: interval,
	}, transport)

	_ = sub.Run(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(stamps) != 4 {
		t.Fatalf("attempts = %d, want 4", len(stamps))
	}
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		if gap < interval {
			t.Errorf("gap %d = %v, want >= %v", i, gap, interval)
		}
		if gap > 10*interval {
			t.Errorf("gap %d = %v, far above the fixed interval", i, gap)
		}
	}
}

func TestSubscription_CancelStopsRetrying(t *testing.T) {
	transport := &scriptedTransport{
		connect: func(_ context.Context, _ int, _ func()) error {
			return errors.New("refused")
		},
	}
	sub := NewSubscription(SubscriptionConfig{
		Name:              "test",
		MaxAttempts:       100,
		ReconnectInterval: 10 * time.Millisecond,
	}, transport)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx) }()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if sub.State() != StateDisconnected {
		t.Errorf("state = %q, want disconnected", sub.State())
	}
}

func TestSubscription_CloseIsDeterministic(t *testing.T) {
	block := make(chan struct{})
	transport := &scriptedTransport{
		connect: func(ctx context.Context, _ int, ready func()) error {
			ready()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-block:
				return errors.New("dropped")
			}
		},
	}
	sub := NewSubscription(SubscriptionConfig{
		Name:              "test",
		MaxAttempts:       5,
		ReconnectInterval: time.Hour, // would hang forever if Close leaked a timer wait
	}, transport)

	sub.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	if sub.State() != StateConnected {
		t.Fatalf("state = %q, want connected", sub.State())
	}

	finished := make(chan struct{})
	go func() {
		sub.Close()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
	if got := transport.attemptCount(); got != 1 {
		t.Errorf("attempts after Close = %d, want 1 (no reconnect)", got)
	}
}

func TestSubscription_StateTransitions(t *testing.T) {
	var mu sync.Mutex
	var seen []State

	transport := &scriptedTransport{
		connect: func(_ context.Context, attempt int, ready func()) error {
			if attempt == 2 {
				ready()
			}
			return errors.New("dropped")
		},
	}
	sub := NewSubscription(SubscriptionConfig{
		Name:              "test",
		MaxAttempts:       2,
		ReconnectInterval: time.Millisecond,
		OnStateChange: func(s State) {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		},
	}, transport)

	_ = sub.Run(context.Background())

	mu.Lock()
	defer mu.Unlock()
	want := []State{StateConnecting, StateReconnecting, StateConnected, StateReconnecting, StateReconnecting, StateFailed}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d = %q, want %q", i, seen[i], want[i])
		}
	}
}
