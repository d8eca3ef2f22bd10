package model

import "testing"

func TestSessionStateIsTerminal(t *testing.T) {
	tests := []struct {
		state    SessionState
		terminal bool
	}{
		{StateIdle, false},
		{StateValidating, false},
		{StateRunning, false},
		{StateRetrying, false},
		{StateSucceeded, true},
		{StateFailed, true},
	}

	for _, test := range tests {
		if got := test.state.IsTerminal(); got != test.terminal {
			t.Errorf("IsTerminal() for %s = %v, expected %v", test.state, got, test.terminal)
		}
	}
}

func TestSessionStateIsActive(t *testing.T) {
	tests := []struct {
		state  SessionState
		active bool
	}{
		{StateIdle, false},
		{StateValidating, true},
		{StateRunning, true},
		{StateRetrying, true},
		{StateSucceeded, false},
		{StateFailed, false},
	}

	for _, test := range tests {
		if got := test.state.IsActive(); got != test.active {
			t.Errorf("IsActive() for %s = %v, expected %v", test.state, got, test.active)
		}
	}
}

func TestRetryStateExhausted(t *testing.T) {
	tests := []struct {
		attempt   int
		max       int
		exhausted bool
	}{
		{0, 3, false},
		{2, 3, false},
		{3, 3, true},
		{4, 3, true},
	}

	for _, test := range tests {
		r := RetryState{Attempt: test.attempt, MaxAttempts: test.max}
		if got := r.Exhausted(); got != test.exhausted {
			t.Errorf("Exhausted() with attempt=%d max=%d = %v, expected %v", test.attempt, test.max, got, test.exhausted)
		}
	}
}

func TestResolutionLabel(t *testing.T) {
	if got := ResolutionLabel(1080); got != "1080p" {
		t.Errorf("ResolutionLabel(1080) = %s, expected 1080p", got)
	}
	if got := ResolutionLabel(720); got != "720p" {
		t.Errorf("ResolutionLabel(720) = %s, expected 720p", got)
	}
}
