package ratelimiter

import (
	"testing"
	"time"
)

// TestLimiter_AllowsUpToLimit は上限までの試行が受け付けられ、超過分が拒否されることを検証します。
func TestLimiter_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	l := NewLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("attempt over the limit should be rejected")
	}
	if l.Allow("1.2.3.4") {
		t.Error("repeated attempts over the limit should stay rejected")
	}
}

// TestLimiter_KeysAreIndependent はキーごとにカウントが独立していることを検証します。
func TestLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, time.Hour)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first attempt for key A should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Error("second attempt for key A should be rejected")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("first attempt for key B should be allowed")
	}
}

// TestLimiter_WindowReset はウィンドウ経過後にカウントがリセットされることを検証します。
func TestLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, 20*time.Millisecond)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Error("second attempt within the window should be rejected")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("1.2.3.4") {
		t.Error("attempt after the window elapsed should be allowed")
	}
}

// TestLimiter_PruneEvictsExpiredWindows は期限切れウィンドウが破棄されることを検証します。
func TestLimiter_PruneEvictsExpiredWindows(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, 20*time.Millisecond)

	l.Allow("1.2.3.4")
	l.Allow("5.6.7.8")

	time.Sleep(30 * time.Millisecond)

	// Any Allow call prunes expired windows for all keys.
	l.Allow("9.9.9.9")

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.windows["1.2.3.4"]; ok {
		t.Error("expected expired window for 1.2.3.4 to be pruned")
	}
	if len(l.windows) != 1 {
		t.Errorf("expected 1 live window, got %d", len(l.windows))
	}
}
