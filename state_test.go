package speech

import "testing"

// TestStateString tests state string representations.
func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateReady, "ready"},
		{StateSpeaking, "speaking"},
		{StatePaused, "paused"},
		{StateError, "error"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

// TestStatePredicates tests the transition helper methods.
func TestStatePredicates(t *testing.T) {
	if StateReady.Active() || StateError.Active() {
		t.Error("Ready and Error should not be active")
	}
	if !StateSpeaking.Active() || !StatePaused.Active() {
		t.Error("Speaking and Paused should be active")
	}

	if !StateSpeaking.CanPause() {
		t.Error("Speaking should allow pause")
	}
	if StatePaused.CanPause() || StateReady.CanPause() {
		t.Error("Only Speaking should allow pause")
	}

	if !StatePaused.CanResume() {
		t.Error("Paused should allow resume")
	}
	if StateSpeaking.CanResume() {
		t.Error("Speaking should not allow resume")
	}

	if !StateSpeaking.CanStop() || !StatePaused.CanStop() {
		t.Error("Active states should allow stop")
	}
	if StateReady.CanStop() || StateError.CanStop() {
		t.Error("Ready and Error should make stop a no-op")
	}

	if StateError.CanSay() {
		t.Error("Error state should reject Say")
	}
	if !StateReady.CanSay() || !StateSpeaking.CanSay() {
		t.Error("Say should be accepted outside the error state")
	}
}
