package ratelimit

import (
	"testing"
	"time"
)

func TestKeyedRateLimiterAllow(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rate:     1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rate:     1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rate, time.Minute, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("user:1") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiterIndependentKeys(t *testing.T) {
	rl := PerMinute(1)

	if !rl.Allow("user:1") {
		t.Fatal("first event for user:1 should pass")
	}
	if rl.Allow("user:1") {
		t.Fatal("second event for user:1 should be limited")
	}
	if !rl.Allow("user:2") {
		t.Fatal("user:2 should have its own bucket")
	}
}
