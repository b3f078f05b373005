package speech

import "time"

// Boundary identifies one spoken word within the current utterance.
// Offsets are in runes, not bytes.
type Boundary struct {
	Start  int // Offset of the word's first rune
	Length int // Word length in runes
}

// End returns the offset one past the word's last rune.
func (b Boundary) End() int {
	return b.Start + b.Length
}

// BoundaryHint is the requested granularity for where a stop or pause
// should take effect. Backends treat it as advisory.
type BoundaryHint int

const (
	// BoundaryDefault lets the backend choose.
	BoundaryDefault BoundaryHint = iota
	// BoundaryImmediate requests the operation take effect right away.
	BoundaryImmediate
	// BoundaryWord requests the operation wait for the end of the word.
	BoundaryWord
	// BoundarySentence requests the operation wait for the end of the sentence.
	BoundarySentence
	// BoundaryUtterance requests the operation wait for the end of the utterance.
	BoundaryUtterance
)

// String returns the string representation of the hint.
func (h BoundaryHint) String() string {
	switch h {
	case BoundaryDefault:
		return "default"
	case BoundaryImmediate:
		return "immediate"
	case BoundaryWord:
		return "word"
	case BoundarySentence:
		return "sentence"
	case BoundaryUtterance:
		return "utterance"
	default:
		return "unknown"
	}
}

// EventKind identifies the type of an outbound engine event.
type EventKind int

const (
	// EventStateChanged reports a playback state transition.
	EventStateChanged EventKind = iota
	// EventWordBoundary reports one spoken word.
	EventWordBoundary
	// EventEngineError reports a backend failure.
	EventEngineError
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventWordBoundary:
		return "word_boundary"
	case EventEngineError:
		return "engine_error"
	default:
		return "unknown"
	}
}

// Event is one outbound engine notification as a value, for consumers that
// prefer draining a queue over registering callbacks. Events carry the
// fields relevant to their kind; the rest are zero.
type Event struct {
	Kind     EventKind
	State    State        // EventStateChanged
	Boundary Boundary     // EventWordBoundary
	Err      *EngineError // EventEngineError
	At       time.Time
}

// StateEvent builds a state-change event.
func StateEvent(s State) Event {
	return Event{Kind: EventStateChanged, State: s, At: time.Now()}
}

// BoundaryEvent builds a word-boundary event.
func BoundaryEvent(b Boundary) Event {
	return Event{Kind: EventWordBoundary, Boundary: b, At: time.Now()}
}

// ErrorEvent builds an engine-error event.
func ErrorEvent(err *EngineError) Event {
	return Event{Kind: EventEngineError, Err: err, At: time.Now()}
}
