// Package android adapts the speech engine contract to the Android
// TextToSpeech service. The JNI side is not here: the platform glue (a
// gomobile binding) injects a Bridge, and this shim maps contract calls
// onto it and bridge callbacks onto contract notifications.
package android

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/spektralhq/speech"
)

// Bridge is the platform half of the backend, implemented over JNI by the
// embedding application. Calls mirror android.speech.tts.TextToSpeech.
type Bridge interface {
	// Speak enqueues an utterance; flush replaces the platform queue.
	Speak(text string, flush bool) error
	// Stop discards the current utterance and the queue.
	Stop() error
	// SetRate sets the speech rate multiplier (1.0 is the normal rate).
	SetRate(multiplier float64) error
	// SetPitch sets the pitch multiplier (1.0 is the normal pitch).
	SetPitch(multiplier float64) error
	// SetLanguage selects a language by BCP 47 tag.
	SetLanguage(tag string) error
	// Languages lists the installed language tags.
	Languages() ([]string, error)
	// Voices lists the installed voices.
	Voices() ([]speech.Voice, error)
	// SetVoice selects a voice by its platform identifier.
	SetVoice(id string) error
	// Shutdown releases the platform engine.
	Shutdown() error
}

// Engine is the contract shim over a Bridge. The bridge reports progress
// through the Notify methods, which the JNI glue wires to the platform
// UtteranceProgressListener.
type Engine struct {
	speech.Notifier

	mu     sync.Mutex
	bridge Bridge
	cfg    speech.AndroidConfig
	logger *log.Logger

	state     speech.State
	errReason speech.ErrorKind
	errString string

	rate   float64
	pitch  float64
	volume float64
	locale language.Tag
	voice  speech.Voice
}

var _ speech.Engine = (*Engine)(nil)

// New wraps a platform bridge in the engine contract.
func New(bridge Bridge, cfg speech.Config) (*Engine, error) {
	if bridge == nil {
		return nil, speech.NewEngineError(speech.KindInitialization, "android",
			fmt.Errorf("no platform bridge installed"))
	}
	e := &Engine{
		bridge: bridge,
		cfg:    cfg.Android,
		logger: log.Default().WithPrefix("speech.android"),
		state:  speech.StateReady,
		rate:   cfg.Rate,
		pitch:  cfg.Pitch,
		volume: cfg.Volume,
		locale: language.AmericanEnglish,
	}
	return e, nil
}

// Say hands the utterance to the platform queue. State moves to speaking
// when the platform reports synthesis started (NotifyStarted).
func (e *Engine) Say(text string) {
	e.mu.Lock()
	flush := e.cfg.FlushQueue
	e.mu.Unlock()
	if err := e.bridge.Speak(text, flush); err != nil {
		e.fail(speech.KindInput, "say", err)
	}
}

// Stop discards the utterance immediately; the hint is advisory.
func (e *Engine) Stop(hint speech.BoundaryHint) {
	e.mu.Lock()
	if e.state == speech.StateReady || e.state == speech.StateError {
		e.mu.Unlock()
		return
	}
	e.state = speech.StateReady
	e.mu.Unlock()
	if err := e.bridge.Stop(); err != nil {
		e.fail(speech.KindPlayback, "stop", err)
		return
	}
	e.EmitState(speech.StateReady)
}

// Pause is not supported by the platform service; the call is accepted
// and ignored, matching the platform behavior.
func (e *Engine) Pause(hint speech.BoundaryHint) {
	e.logger.Debug("pause ignored, platform cannot pause", "hint", hint)
}

// Resume is not supported by the platform service.
func (e *Engine) Resume() {
	e.logger.Debug("resume ignored, platform cannot pause")
}

// Rate returns the playback rate.
func (e *Engine) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// SetRate maps the contract rate to the platform multiplier: rate 0 is
// the normal multiplier 1.0, the [-1, 1] range spans [0.5, 2.0].
func (e *Engine) SetRate(rate float64) error {
	if err := e.bridge.SetRate(multiplier(rate)); err != nil {
		return speech.NewEngineError(speech.KindConfiguration, "set_rate", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rate = rate
	return nil
}

// Pitch returns the voice pitch.
func (e *Engine) Pitch() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pitch
}

// SetPitch maps the contract pitch to the platform multiplier the same
// way as the rate.
func (e *Engine) SetPitch(pitch float64) error {
	if err := e.bridge.SetPitch(multiplier(pitch)); err != nil {
		return speech.NewEngineError(speech.KindConfiguration, "set_pitch", err)
	}
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

// SetVolume rejects volumes outside [0, 1]. The platform applies volume
// per utterance, so the value is passed when speaking.
func (e *Engine) SetVolume(volume float64) error {
	if volume < 0 || volume > 1 {
		return speech.NewEngineError(speech.KindInvalidParameter, "set_volume",
			fmt.Errorf("%.2f: %w", volume, speech.ErrVolumeOutOfRange))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = volume
	return nil
}

// Locale returns the current locale.
func (e *Engine) Locale() language.Tag {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.locale
}

// SetLocale asks the platform for the language and records it on success.
func (e *Engine) SetLocale(locale language.Tag) error {
	if err := e.bridge.SetLanguage(locale.String()); err != nil {
		return speech.NewEngineError(speech.KindInvalidParameter, "set_locale",
			fmt.Errorf("%s: %w", locale, speech.ErrLocaleNotSupported))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.locale = locale
	return nil
}

// Voice returns the current voice.
func (e *Engine) Voice() speech.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voice
}

// SetVoice selects a platform voice by identifier.
func (e *Engine) SetVoice(voice speech.Voice) error {
	if err := e.bridge.SetVoice(voice.ID); err != nil {
		return speech.NewEngineError(speech.KindInvalidParameter, "set_voice",
			fmt.Errorf("%q: %w", voice.Name, speech.ErrVoiceNotFound))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.voice = voice
	e.locale = voice.Locale
	return nil
}

// State returns the current playback state.
func (e *Engine) State() speech.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ErrorReason reports the kind of the last platform failure.
func (e *Engine) ErrorReason() speech.ErrorKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errReason
}

// ErrorString reports the message of the last platform failure.
func (e *Engine) ErrorString() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errString
}

// AvailableLocales lists the platform's installed languages.
func (e *Engine) AvailableLocales() []language.Tag {
	tags, err := e.bridge.Languages()
	if err != nil {
		e.logger.Warn("language enumeration failed", "err", err)
		return nil
	}
	locales := make([]language.Tag, 0, len(tags))
	for _, raw := range tags {
		tag, err := language.Parse(raw)
		if err != nil {
			continue
		}
		locales = append(locales, tag)
	}
	return locales
}

// AvailableVoices lists the platform's voices for the current locale.
func (e *Engine) AvailableVoices() []speech.Voice {
	voices, err := e.bridge.Voices()
	if err != nil {
		e.logger.Warn("voice enumeration failed", "err", err)
		return nil
	}
	e.mu.Lock()
	locale := e.locale
	e.mu.Unlock()
	matching := voices[:0:0]
	for _, v := range voices {
		if v.Locale.String() == locale.String() {
			matching = append(matching, v)
		}
	}
	return matching
}

// Close shuts the platform engine down.
func (e *Engine) Close() error {
	return e.bridge.Shutdown()
}

// NotifyStarted is called by the platform glue when synthesis begins.
func (e *Engine) NotifyStarted() {
	e.mu.Lock()
	changed := e.state != speech.StateSpeaking
	e.state = speech.StateSpeaking
	e.mu.Unlock()
	if changed {
		e.EmitState(speech.StateSpeaking)
	}
}

// NotifyRange is called by the platform glue for each spoken range
// (the UtteranceProgressListener onRangeStart callback).
func (e *Engine) NotifyRange(start, length int) {
	e.EmitBoundary(speech.Boundary{Start: start, Length: length})
}

// NotifyFinished is called by the platform glue when the utterance ends.
func (e *Engine) NotifyFinished() {
	e.mu.Lock()
	changed := e.state != speech.StateReady
	e.state = speech.StateReady
	e.mu.Unlock()
	if changed {
		e.EmitState(speech.StateReady)
	}
}

// NotifyError is called by the platform glue on synthesis failure.
func (e *Engine) NotifyError(msg string) {
	e.fail(speech.KindPlayback, "synthesis", fmt.Errorf("%s", msg))
}

// fail records a platform failure, enters the error state, and notifies.
func (e *Engine) fail(kind speech.ErrorKind, op string, err error) {
	ee := speech.NewEngineError(kind, op, err)
	e.mu.Lock()
	e.errReason = kind
	e.errString = err.Error()
	e.state = speech.StateError
	e.mu.Unlock()
	e.logger.Error("platform failure", "op", op, "err", err)
	e.EmitError(ee)
	e.EmitState(speech.StateError)
}

// multiplier maps a [-1, 1] contract value to the platform's [0.5, 2.0]
// multiplier scale, 0 mapping to 1.0.
func multiplier(v float64) float64 {
	switch {
	case v <= -1:
		return 0.5
	case v >= 1:
		return 2.0
	case v < 0:
		return 1.0 + v*0.5
	default:
		return 1.0 + v
	}
}
