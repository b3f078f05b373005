package speech

import "sync"

// Notifier implements the notification-registration half of Engine.
// Backends embed it and call the Emit methods after their state has
// settled; callbacks run in registration order on the emitting goroutine.
type Notifier struct {
	mu      sync.Mutex
	onState []func(State)
	onWord  []func(Boundary)
	onError []func(*EngineError)
}

// OnStateChange registers a state-change callback.
func (n *Notifier) OnStateChange(fn func(State)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onState = append(n.onState, fn)
}

// OnWordBoundary registers a word-boundary callback.
func (n *Notifier) OnWordBoundary(fn func(Boundary)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onWord = append(n.onWord, fn)
}

// OnError registers an error callback.
func (n *Notifier) OnError(fn func(*EngineError)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onError = append(n.onError, fn)
}

// EmitState delivers a state-change notification.
func (n *Notifier) EmitState(s State) {
	n.mu.Lock()
	callbacks := n.onState
	n.mu.Unlock()
	for _, fn := range callbacks {
		fn(s)
	}
}

// EmitBoundary delivers a word-boundary notification.
func (n *Notifier) EmitBoundary(b Boundary) {
	n.mu.Lock()
	callbacks := n.onWord
	n.mu.Unlock()
	for _, fn := range callbacks {
		fn(b)
	}
}

// EmitError delivers an error notification.
func (n *Notifier) EmitError(err *EngineError) {
	n.mu.Lock()
	callbacks := n.onError
	n.mu.Unlock()
	for _, fn := range callbacks {
		fn(err)
	}
}
