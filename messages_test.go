package speech

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
)

// fakeSender collects Bubble Tea messages in delivery order.
type fakeSender struct {
	msgs []tea.Msg
}

func (s *fakeSender) Send(msg tea.Msg) {
	s.msgs = append(s.msgs, msg)
}

// notifyEngine is a minimal Engine for testing notification plumbing.
type notifyEngine struct {
	Notifier
}

func (e *notifyEngine) Say(string)                      {}
func (e *notifyEngine) Stop(BoundaryHint)               {}
func (e *notifyEngine) Pause(BoundaryHint)              {}
func (e *notifyEngine) Resume()                         {}
func (e *notifyEngine) Rate() float64                   { return 0 }
func (e *notifyEngine) SetRate(float64) error           { return nil }
func (e *notifyEngine) Pitch() float64                  { return 0 }
func (e *notifyEngine) SetPitch(float64) error          { return nil }
func (e *notifyEngine) Volume() float64                 { return 1 }
func (e *notifyEngine) SetVolume(float64) error         { return nil }
func (e *notifyEngine) Locale() language.Tag            { return language.Und }
func (e *notifyEngine) SetLocale(language.Tag) error    { return nil }
func (e *notifyEngine) Voice() Voice                    { return Voice{} }
func (e *notifyEngine) SetVoice(Voice) error            { return nil }
func (e *notifyEngine) State() State                    { return StateReady }
func (e *notifyEngine) ErrorReason() ErrorKind          { return KindNoError }
func (e *notifyEngine) ErrorString() string             { return "" }
func (e *notifyEngine) AvailableLocales() []language.Tag { return nil }
func (e *notifyEngine) AvailableVoices() []Voice        { return nil }

// TestForward tests that notifications become Bubble Tea messages in order.
func TestForward(t *testing.T) {
	engine := &notifyEngine{}
	sender := &fakeSender{}
	Forward(engine, sender)

	engine.EmitState(StateSpeaking)
	engine.EmitBoundary(Boundary{Start: 0, Length: 5})
	engine.EmitError(NewEngineError(KindPlayback, "speak", errors.New("device lost")))
	engine.EmitState(StateReady)

	if len(sender.msgs) != 4 {
		t.Fatalf("Expected 4 messages, got %d", len(sender.msgs))
	}

	sm, ok := sender.msgs[0].(StateChangedMsg)
	if !ok || sm.State != StateSpeaking {
		t.Errorf("Message 0: expected speaking state change, got %#v", sender.msgs[0])
	}
	wm, ok := sender.msgs[1].(WordBoundaryMsg)
	if !ok || wm.Boundary.Start != 0 || wm.Boundary.Length != 5 {
		t.Errorf("Message 1: expected word boundary (0, 5), got %#v", sender.msgs[1])
	}
	em, ok := sender.msgs[2].(EngineErrorMsg)
	if !ok || em.Err.Kind != KindPlayback {
		t.Errorf("Message 2: expected playback error, got %#v", sender.msgs[2])
	}
	sm, ok = sender.msgs[3].(StateChangedMsg)
	if !ok || sm.State != StateReady {
		t.Errorf("Message 3: expected ready state change, got %#v", sender.msgs[3])
	}
}

// TestNotifierCallbackOrder tests registration-order delivery.
func TestNotifierCallbackOrder(t *testing.T) {
	var n Notifier
	var order []int
	n.OnStateChange(func(State) { order = append(order, 1) })
	n.OnStateChange(func(State) { order = append(order, 2) })

	n.EmitState(StateSpeaking)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected callbacks in registration order, got %v", order)
	}
}

// TestEventConstructors tests the event helpers stamp kind and payload.
func TestEventConstructors(t *testing.T) {
	se := StateEvent(StatePaused)
	if se.Kind != EventStateChanged || se.State != StatePaused {
		t.Errorf("Unexpected state event: %#v", se)
	}

	be := BoundaryEvent(Boundary{Start: 7, Length: 5})
	if be.Kind != EventWordBoundary || be.Boundary.End() != 12 {
		t.Errorf("Unexpected boundary event: %#v", be)
	}

	ee := ErrorEvent(NewEngineError(KindInput, "say", nil))
	if ee.Kind != EventEngineError || ee.Err == nil {
		t.Errorf("Unexpected error event: %#v", ee)
	}
}
