package testutil

import (
	"context"
	"testing"
	"time"
)

type hasDeadline interface {
	Deadline() (deadline time.Time, ok bool)
}

// TestRunContext returns a context bounded by the test deadline (or 10s fallback).
// Leaves 1s margin before the deadline for cleanup.
func TestRunContext(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()
	if dl, ok := t.(hasDeadline); ok {
		if deadline, hasIt := dl.Deadline(); hasIt {
			return context.WithDeadline(context.Background(), deadline.Add(-1*time.Second))
		}
	}
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// Receive waits for one value on ch and fails the test after timeout.
func Receive[T any](t testing.TB, ch <-chan T, timeout time.Duration, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %s waiting for %s", timeout, what)
	}
	var zero T
	return zero
}

// NotReceived fails the test if ch yields a value within wait.
func NotReceived[T any](t testing.TB, ch <-chan T, wait time.Duration, what string) {
	t.Helper()
	select {
	case <-ch:
		t.Fatalf("%s happened within %s, want it to block", what, wait)
	case <-time.After(wait):
	}
}
