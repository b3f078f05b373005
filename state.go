package speech

// State represents the playback state of a speech engine.
type State int

const (
	// StateReady indicates the engine is idle and can accept an utterance.
	StateReady State = iota
	// StateSpeaking indicates an utterance is in flight.
	StateSpeaking
	// StatePaused indicates a pause took effect at a word boundary.
	StatePaused
	// StateError indicates the backend reported a failure.
	StateError
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateSpeaking:
		return "speaking"
	case StatePaused:
		return "paused"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Active returns true if an utterance is in flight, paused or not.
func (s State) Active() bool {
	return s == StateSpeaking || s == StatePaused
}

// CanSay returns true if Say would start speaking rather than be rejected.
// Say is always accepted outside the error state; a new utterance wins over
// anything in flight.
func (s State) CanSay() bool {
	return s != StateError
}

// CanPause returns true if a pause request would be honored.
func (s State) CanPause() bool {
	return s == StateSpeaking
}

// CanResume returns true if Resume would continue playback.
func (s State) CanResume() bool {
	return s == StatePaused
}

// CanStop returns true if Stop would do anything.
func (s State) CanStop() bool {
	return s == StateSpeaking || s == StatePaused
}
