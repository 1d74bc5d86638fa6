package middleware

import (
	"testing"
	"time"
)

func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	l := NewLimiter(limit, window)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Second)

	for i := 0; i < 3; i++ {
		if !l.Allow(1) {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if l.Allow(1) {
		t.Error("fourth call inside the window should be denied")
	}
}

func TestLimiterWindowExpiry(t *testing.T) {
	l, now := newTestLimiter(3, time.Second)

	for i := 0; i < 3; i++ {
		if !l.Allow(7) {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if l.Allow(7) {
		t.Fatal("limit should be reached")
	}

	*now = now.Add(1100 * time.Millisecond)
	if !l.Allow(7) {
		t.Error("call after the window slid past should be allowed")
	}
}

func TestLimiterUsersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Second)

	if !l.Allow(1) {
		t.Fatal("first user should pass")
	}
	if l.Allow(1) {
		t.Error("first user should now be limited")
	}
	if !l.Allow(2) {
		t.Error("second user must not be affected by the first")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0, time.Second)
	for i := 0; i < 100; i++ {
		if !l.Allow(1) {
			t.Fatal("disabled limiter must always allow")
		}
	}

	var nilLimiter *Limiter
	if !nilLimiter.Allow(1) {
		t.Error("nil limiter must always allow")
	}
}
