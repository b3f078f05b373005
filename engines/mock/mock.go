// Package mock provides a simulated speech engine for testing. It
// reproduces the externally observable behavior of a real backend —
// word-by-word timer-driven progression, pause at word boundaries, resume,
// rate-dependent intervals — without producing audio.
package mock

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/spektralhq/speech"
	"github.com/spektralhq/speech/internal/clock"
)

// inactiveIndex marks that no utterance is in flight.
const inactiveIndex = -1

// Engine simulates asynchronous speech playback. All state changes happen
// under one mutex, in the public operations or in the timer callback;
// notifications are delivered after the state has fully settled, in the
// order the transitions occurred.
type Engine struct {
	mu     sync.Mutex
	clk    clock.Clock
	logger *log.Logger

	wordTimeBase  time.Duration
	wordTimeFloor time.Duration
	rateSlope     time.Duration

	text  []rune
	index int // rune offset of the next word start, inactiveIndex when idle

	timer          clock.Timer
	gen            uint64 // arm generation, stale wakeups are dropped
	pauseRequested bool

	state  speech.State
	rate   float64
	pitch  float64
	volume float64
	locale language.Tag
	voice  speech.Voice

	onState []func(speech.State)
	onWord  []func(speech.Boundary)
	onError []func(*speech.EngineError)
}

var _ speech.Engine = (*Engine)(nil)

// New creates a mock engine with default timing.
func New() *Engine {
	return NewWithConfig(speech.DefaultConfig().Mock)
}

// NewWithConfig creates a mock engine with the given timing parameters.
func NewWithConfig(cfg speech.MockConfig) *Engine {
	return newEngine(cfg, clock.New())
}

func newEngine(cfg speech.MockConfig, clk clock.Clock) *Engine {
	e := &Engine{
		clk:           clk,
		logger:        log.Default().WithPrefix("speech.mock"),
		wordTimeBase:  cfg.WordTime,
		wordTimeFloor: cfg.WordTimeFloor,
		rateSlope:     cfg.RateSlope,
		index:         inactiveIndex,
		volume:        1.0,
		state:         speech.StateReady,
	}
	e.locale = catalogLocales[0]
	e.voice = voicesFor(e.locale)[0]
	return e
}

// Say starts speaking text, replacing any utterance already in flight.
// The first word boundary fires one interval later.
func (e *Engine) Say(text string) {
	e.mu.Lock()
	var evs []speech.Event
	e.disarm()
	e.text = []rune(text)
	e.index = 0
	e.pauseRequested = false
	e.arm(e.wordTime())
	e.setState(speech.StateSpeaking, &evs)
	e.logger.Debug("say", "runes", len(e.text), "interval", e.wordTime())
	cbs := e.callbacks()
	e.mu.Unlock()
	dispatch(cbs, evs)
}

// Stop ends speaking immediately. The hint is accepted but not honored;
// calling Stop while already Ready or in the error state is a no-op.
func (e *Engine) Stop(hint speech.BoundaryHint) {
	e.mu.Lock()
	if e.state == speech.StateReady || e.state == speech.StateError {
		e.mu.Unlock()
		return
	}
	if e.state != speech.StatePaused && e.timer == nil {
		e.logger.Error("stop: speaking with no armed timer")
	}
	var evs []speech.Event
	e.text = nil
	e.index = inactiveIndex
	e.pauseRequested = false
	e.disarm()
	e.setState(speech.StateReady, &evs)
	e.logger.Debug("stop", "hint", hint)
	cbs := e.callbacks()
	e.mu.Unlock()
	dispatch(cbs, evs)
}

// Pause requests a pause. The transition to Paused is deferred until the
// in-flight word's boundary fires; real engines cannot pause mid-phoneme
// and the simulator reproduces that. No-op unless speaking.
func (e *Engine) Pause(hint speech.BoundaryHint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != speech.StateSpeaking {
		return
	}
	e.pauseRequested = true
	e.logger.Debug("pause requested", "hint", hint)
}

// Resume continues a paused utterance from the word where it paused.
// No-op unless paused.
func (e *Engine) Resume() {
	e.mu.Lock()
	if e.state != speech.StatePaused {
		e.mu.Unlock()
		return
	}
	var evs []speech.Event
	e.arm(e.wordTime())
	e.setState(speech.StateSpeaking, &evs)
	e.logger.Debug("resume", "offset", e.index)
	cbs := e.callbacks()
	e.mu.Unlock()
	dispatch(cbs, evs)
}

// speakNext is the timer callback: it emits the next word's boundary and
// decides whether to finish, pause, or re-arm. It runs to completion with
// the state fully settled before notifications are delivered.
func (e *Engine) speakNext(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.state != speech.StateSpeaking {
		// stale wakeup, the utterance was stopped or rescheduled
		e.mu.Unlock()
		return
	}
	e.timer = nil
	var evs []speech.Event

	for e.index < len(e.text) && !isWordRune(e.text[e.index]) {
		e.index++
	}
	if e.index >= len(e.text) {
		e.finish(&evs)
	} else {
		start := e.index
		for e.index < len(e.text) && isWordRune(e.text[e.index]) {
			e.index++
		}
		evs = append(evs, speech.BoundaryEvent(speech.Boundary{
			Start:  start,
			Length: e.index - start,
		}))
		// Skip the separator run so a later resume continues exactly at
		// the next word.
		for e.index < len(e.text) && !isWordRune(e.text[e.index]) {
			e.index++
		}
		switch {
		case e.index >= len(e.text):
			e.finish(&evs)
		case e.pauseRequested:
			e.setState(speech.StatePaused, &evs)
		default:
			e.arm(e.wordTime())
		}
	}
	e.pauseRequested = false
	cbs := e.callbacks()
	e.mu.Unlock()
	dispatch(cbs, evs)
}

// finish ends the utterance and returns to Ready. Caller holds the lock.
func (e *Engine) finish(evs *[]speech.Event) {
	e.text = nil
	e.index = inactiveIndex
	e.setState(speech.StateReady, evs)
}

// Rate returns the playback rate.
func (e *Engine) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// SetRate stores the new rate. If the timer is armed it restarts with the
// new interval, so the next boundary reflects the updated speed; the
// in-flight interval restarts from zero rather than being prorated.
func (e *Engine) SetRate(rate float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rate = rate
	if e.timer != nil {
		e.disarm()
		e.arm(e.wordTime())
	}
	return nil
}

// Pitch returns the voice pitch.
func (e *Engine) Pitch() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pitch
}

// SetPitch stores the new pitch. Pitch does not affect simulated timing.
func (e *Engine) SetPitch(pitch float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pitch = pitch
	return nil
}

// Volume returns the playback volume.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume rejects volumes outside [0, 1] and leaves the prior value in
// place on failure.
func (e *Engine) SetVolume(volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if volume < 0 || volume > 1 {
		return speech.NewEngineError(speech.KindInvalidParameter, "set_volume",
			fmt.Errorf("%.2f: %w", volume, speech.ErrVolumeOutOfRange))
	}
	e.volume = volume
	return nil
}

// Locale returns the current locale.
func (e *Engine) Locale() language.Tag {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.locale
}

// SetLocale switches to a locale from the catalog. If the current voice
// does not exist in the new locale, the locale's first voice is selected.
func (e *Engine) SetLocale(locale language.Tag) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !catalogHasLocale(locale) {
		return speech.NewEngineError(speech.KindInvalidParameter, "set_locale",
			fmt.Errorf("%s: %w", locale, speech.ErrLocaleNotSupported))
	}
	e.locale = locale
	voices := voicesFor(locale)
	if !containsVoice(voices, e.voice) {
		e.voice = voices[0]
	}
	return nil
}

// Voice returns the current voice.
func (e *Engine) Voice() speech.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voice
}

// SetVoice selects a voice by its catalog identity. The voice's locale is
// derived from its ID and becomes the current locale.
func (e *Engine) SetVoice(voice speech.Voice) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	sep := strings.LastIndex(voice.ID, "-")
	if sep <= 0 {
		return speech.NewEngineError(speech.KindInvalidParameter, "set_voice",
			fmt.Errorf("%q: %w", voice.ID, speech.ErrVoiceNotFound))
	}
	locale, err := language.Parse(voice.ID[:sep])
	if err != nil || !catalogHasLocale(locale) {
		e.logger.Warn("voice locale not supported", "voice", voice.Name, "id", voice.ID)
		return speech.NewEngineError(speech.KindInvalidParameter, "set_voice",
			fmt.Errorf("%q: %w", voice.ID[:sep], speech.ErrLocaleNotSupported))
	}
	if !containsVoice(voicesFor(locale), voice) {
		e.logger.Warn("voice not in locale", "voice", voice.Name, "locale", locale)
		return speech.NewEngineError(speech.KindInvalidParameter, "set_voice",
			fmt.Errorf("%q: %w", voice.Name, speech.ErrVoiceNotFound))
	}
	e.locale = locale
	e.voice = voice
	return nil
}

// State returns the current playback state.
func (e *Engine) State() speech.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ErrorReason always reports no error: the simulator has no external
// dependency that can fail and never enters the error state on its own.
func (e *Engine) ErrorReason() speech.ErrorKind {
	return speech.KindNoError
}

// ErrorString always returns the empty string.
func (e *Engine) ErrorString() string {
	return ""
}

// OnStateChange registers a state-change callback.
func (e *Engine) OnStateChange(fn func(speech.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onState = append(e.onState, fn)
}

// OnWordBoundary registers a word-boundary callback.
func (e *Engine) OnWordBoundary(fn func(speech.Boundary)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onWord = append(e.onWord, fn)
}

// OnError registers an error callback. The simulator never invokes it.
func (e *Engine) OnError(fn func(*speech.EngineError)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onError = append(e.onError, fn)
}

// wordTime derives the per-word interval from the rate: the base interval
// shortened by rate*slope, clamped to a strictly positive floor so the
// timer can neither disarm nor run away. Rate 0 yields the base interval;
// higher rates yield shorter ones. The curve is a fixed implementation
// choice, only its monotonicity and positivity are observable.
func (e *Engine) wordTime() time.Duration {
	d := e.wordTimeBase - time.Duration(e.rate*float64(e.rateSlope))
	if d < e.wordTimeFloor {
		d = e.wordTimeFloor
	}
	return d
}

// arm schedules the next wakeup. Caller holds the lock.
func (e *Engine) arm(d time.Duration) {
	e.gen++
	gen := e.gen
	e.timer = e.clk.AfterFunc(d, func() { e.speakNext(gen) })
}

// disarm cancels any pending wakeup. Caller holds the lock.
func (e *Engine) disarm() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
}

// setState transitions the state and records a notification when the state
// actually changes. Caller holds the lock.
func (e *Engine) setState(s speech.State, evs *[]speech.Event) {
	if e.state == s {
		return
	}
	e.state = s
	*evs = append(*evs, speech.StateEvent(s))
}

// callbackSet is a snapshot of the registered callbacks, taken under the
// lock so dispatch can run outside it.
type callbackSet struct {
	onState []func(speech.State)
	onWord  []func(speech.Boundary)
}

func (e *Engine) callbacks() callbackSet {
	return callbackSet{onState: e.onState, onWord: e.onWord}
}

// dispatch delivers notifications in the order the transitions occurred,
// after the engine's state has settled. Callbacks may safely call back
// into the engine.
func dispatch(cbs callbackSet, evs []speech.Event) {
	for _, ev := range evs {
		switch ev.Kind {
		case speech.EventWordBoundary:
			for _, fn := range cbs.onWord {
				fn(ev.Boundary)
			}
		case speech.EventStateChanged:
			for _, fn := range cbs.onState {
				fn(ev.State)
			}
		}
	}
}

// isWordRune reports whether r belongs to a word. A word is a maximal run
// of letters, digits, and underscores; anything else separates words. Good
// enough for simulation, not locale-aware.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
