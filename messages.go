package speech

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages for Bubble Tea communication between a speech engine and a UI.

// StateChangedMsg indicates the engine's playback state has changed.
type StateChangedMsg struct {
	State State
	At    time.Time // When the transition occurred
}

// WordBoundaryMsg indicates the engine reached the next word.
type WordBoundaryMsg struct {
	Boundary Boundary
	At       time.Time
}

// EngineErrorMsg indicates a backend failure.
type EngineErrorMsg struct {
	Err *EngineError
	At  time.Time
}

// Sender delivers messages to a Bubble Tea program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Forward registers engine callbacks that re-emit every notification as a
// Bubble Tea message on p. Message order matches notification order.
func Forward(e Engine, p Sender) {
	e.OnStateChange(func(s State) {
		p.Send(StateChangedMsg{State: s, At: time.Now()})
	})
	e.OnWordBoundary(func(b Boundary) {
		p.Send(WordBoundaryMsg{Boundary: b, At: time.Now()})
	})
	e.OnError(func(err *EngineError) {
		p.Send(EngineErrorMsg{Err: err, At: time.Now()})
	})
}
