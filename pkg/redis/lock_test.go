package redis

import (
	"context"
	"testing"
	"time"
)

func TestLockAcquireRelease(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	first, err := NewLock(client, client.SessionLockKey("s-1"), time.Second)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	second, _ := NewLock(client, client.SessionLockKey("s-1"), time.Second)

	ok, err := first.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("expected first acquire, ok=%v err=%v", ok, err)
	}
	ok, err = second.Acquire(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("second owner must not acquire a held lock")
	}

	if err := second.Release(ctx); err != nil {
		t.Fatalf("release by non-owner should be a no-op: %v", err)
	}
	if err := first.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = second.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("expected acquire after release, ok=%v err=%v", ok, err)
	}
}

func TestLockAcquireWaitTimesOut(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	holder, _ := NewLock(client, "k", time.Second)
	if ok, _ := holder.Acquire(ctx); !ok {
		t.Fatalf("expected holder to acquire")
	}
	waiter, _ := NewLock(client, "k", time.Second)
	if err := waiter.AcquireWait(ctx, 20*time.Millisecond, 5*time.Millisecond); err != ErrLockNotAcquired {
		t.Fatalf("expected ErrLockNotAcquired, got %v", err)
	}
}

func TestNewLockValidation(t *testing.T) {
	if _, err := NewLock(nil, "k", time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
	if _, err := NewLock(&Client{}, "", time.Second); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
