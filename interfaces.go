// Package speech defines a cross-platform text-to-speech engine contract.
//
// An Engine adapts a native platform speech API (Android's TTS service,
// Microsoft SAPI) or a simulated timer-driven backend to a single set of
// operations: say/stop/pause/resume, accessors for rate, pitch, volume,
// locale and voice, plus outbound state-change and word-boundary
// notifications. Backends live under engines/.
package speech

import (
	"golang.org/x/text/language"
)

// Engine is the contract every speech backend implements.
//
// Say, Stop, Pause and Resume never block: speaking happens asynchronously
// and progress is reported through the registered notification callbacks.
// Invalid transitions (pausing while not speaking, stopping while idle) are
// no-ops. Setters return an error on invalid parameters and leave the
// engine's state unchanged.
type Engine interface {
	// Say starts speaking text, replacing any utterance already in flight.
	// Empty text is legal and finishes immediately with no word boundaries.
	Say(text string)

	// Stop ends speaking immediately. The boundary hint is advisory;
	// backends may ignore it.
	Stop(hint BoundaryHint)

	// Pause requests a pause. Backends that cannot pause mid-word defer
	// the transition until the next word boundary.
	Pause(hint BoundaryHint)

	// Resume continues a paused utterance from where it paused.
	Resume()

	Rate() float64
	SetRate(rate float64) error
	Pitch() float64
	SetPitch(pitch float64) error
	Volume() float64
	SetVolume(volume float64) error
	Locale() language.Tag
	SetLocale(locale language.Tag) error
	Voice() Voice
	SetVoice(voice Voice) error

	// State returns the current playback state.
	State() State

	// ErrorReason and ErrorString report the last backend failure.
	// Backends that cannot fail report KindNoError and "".
	ErrorReason() ErrorKind
	ErrorString() string

	// AvailableLocales lists the locales the backend can speak.
	AvailableLocales() []language.Tag

	// AvailableVoices lists the voices for the current locale.
	AvailableVoices() []Voice

	// OnStateChange registers a callback invoked whenever the playback
	// state actually changes. Callbacks run in registration order, after
	// the state transition has fully settled.
	OnStateChange(fn func(State))

	// OnWordBoundary registers a callback invoked once per spoken word
	// with the word's start offset and length (in runes).
	OnWordBoundary(fn func(Boundary))

	// OnError registers a callback for backend failures.
	OnError(fn func(*EngineError))
}
