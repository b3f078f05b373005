// Package track follows an engine's word-boundary notifications and keeps
// the current word position, so a UI can highlight the word being spoken.
package track

import (
	"sync"

	"github.com/spektralhq/speech"
)

// Tracker consumes engine notifications and maintains the index and
// offsets of the word currently being spoken.
type Tracker struct {
	mu sync.RWMutex

	text    []rune
	current speech.Boundary
	index   int // 0-based word counter, -1 before the first boundary
	words   int // boundaries seen for the current utterance
	state   speech.State

	onWordChange []func(index int, b speech.Boundary)
}

// New creates an idle tracker.
func New() *Tracker {
	return &Tracker{index: -1, state: speech.StateReady}
}

// Mark begins tracking an utterance. Call it alongside Engine.Say with the
// same text so Word can slice the spoken word out of it.
func (t *Tracker) Mark(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text = []rune(text)
	t.current = speech.Boundary{}
	t.index = -1
	t.words = 0
}

// Attach registers tracker callbacks on the engine.
func (t *Tracker) Attach(e speech.Engine) {
	e.OnWordBoundary(t.observeBoundary)
	e.OnStateChange(t.observeState)
}

func (t *Tracker) observeBoundary(b speech.Boundary) {
	t.mu.Lock()
	t.current = b
	t.index++
	t.words++
	index := t.index
	callbacks := t.onWordChange
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn(index, b)
	}
}

func (t *Tracker) observeState(s speech.State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s
	if s == speech.StateReady {
		// Utterance finished or was stopped; keep the word count for
		// inspection but clear the position.
		t.current = speech.Boundary{}
		t.index = -1
	}
}

// OnWordChange registers a callback invoked for every boundary with the
// 0-based word index. Callbacks run in notification order.
func (t *Tracker) OnWordChange(fn func(index int, b speech.Boundary)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onWordChange = append(t.onWordChange, fn)
}

// Current returns the boundary of the word being spoken and its 0-based
// index, or index -1 when nothing is in flight.
func (t *Tracker) Current() (speech.Boundary, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.index
}

// Word returns the text of the word being spoken, or "" when idle or when
// no utterance was marked.
func (t *Tracker) Word() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.index < 0 || t.current.End() > len(t.text) {
		return ""
	}
	return string(t.text[t.current.Start:t.current.End()])
}

// Words returns the number of boundaries seen for the current utterance.
func (t *Tracker) Words() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.words
}

// State returns the last observed engine state.
func (t *Tracker) State() speech.State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Progress reports how far speaking has advanced through the marked text,
// from 0 to 1, based on the end offset of the current word.
func (t *Tracker) Progress() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.text) == 0 || t.index < 0 {
		return 0
	}
	p := float64(t.current.End()) / float64(len(t.text))
	if p > 1 {
		p = 1
	}
	return p
}
