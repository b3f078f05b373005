//go:build windows

package sapi

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/spektralhq/speech"
)

// SAPI COM identifiers.
const (
	clsidSpVoice = "{96749377-3391-11D2-9EE3-00C04F797396}"
	iidISpVoice  = "{6C44DF74-72B9-4992-A1EC-EF996E0422D4}"
)

var (
	ole32             = syscall.NewLazyDLL("ole32.dll")
	procCoInitialize  = ole32.NewProc("CoInitialize")
	procCoUninitalize = ole32.NewProc("CoUninitialize")
)

// Engine speaks through the Windows speech stack. Synthesis runs in the
// System.Speech synthesizer; this shim maps the contract onto it and keeps
// the contract's state bookkeeping.
type Engine struct {
	speech.Notifier

	mu     sync.Mutex
	cfg    speech.SAPIConfig
	logger *log.Logger

	state     speech.State
	errReason speech.ErrorKind
	errString string

	// SAPI counts Pause calls and wants a matching number of Resume
	// calls; the guard makes pause/resume idempotent at this layer.
	pauseRequested bool

	rate   float64
	pitch  float64
	volume float64
	locale language.Tag
	voice  speech.Voice

	current *exec.Cmd
}

var _ speech.Engine = (*Engine)(nil)

// New initializes COM and creates a SAPI engine.
func New(cfg speech.Config) (*Engine, error) {
	e := &Engine{
		cfg:    cfg.SAPI,
		logger: log.Default().WithPrefix("speech.sapi"),
		state:  speech.StateReady,
		rate:   cfg.Rate,
		pitch:  cfg.Pitch,
		volume: cfg.Volume,
		locale: language.AmericanEnglish,
	}
	e.voice = e.availableVoicesLocked()[0]

	if ret, _, _ := procCoInitialize.Call(0); ret != 0 && ret != 1 {
		// 0 is S_OK, 1 is S_FALSE (already initialized on this thread)
		err := speech.NewEngineError(speech.KindInitialization, "co_initialize",
			fmt.Errorf("CoInitialize returned %#x", ret))
		return nil, err
	}
	return e, nil
}

// Say hands the text to the native synthesizer and tracks completion
// asynchronously. A new utterance purges anything in flight.
func (e *Engine) Say(text string) {
	e.mu.Lock()
	e.purgeLocked()
	e.pauseRequested = false

	// SAPI rate is [-10, 10], volume is [0, 100].
	script := fmt.Sprintf(`Add-Type -AssemblyName System.Speech;`+
		`$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer;`+
		`$synth.Rate = %d; $synth.Volume = %d;%s`+
		`$synth.Speak(%s)`,
		clampInt(int(e.rate*10), -10, 10),
		clampInt(int(e.volume*100), 0, 100),
		e.selectVoiceScript(),
		quotePS(text))

	cmd := exec.Command("powershell", "-NoProfile", "-Command", script)
	if err := cmd.Start(); err != nil {
		e.failLocked(speech.KindPlayback, "say", err)
		return
	}
	e.current = cmd
	changed := e.state != speech.StateSpeaking
	e.state = speech.StateSpeaking
	e.mu.Unlock()
	if changed {
		e.EmitState(speech.StateSpeaking)
	}

	go func() {
		err := cmd.Wait()
		e.mu.Lock()
		if e.current != cmd {
			// purged by a later Say or Stop
			e.mu.Unlock()
			return
		}
		e.current = nil
		if err != nil {
			e.failLocked(speech.KindPlayback, "speak", err)
			return
		}
		e.state = speech.StateReady
		e.mu.Unlock()
		e.EmitState(speech.StateReady)
	}()
}

// Stop purges the utterance immediately. The hint is advisory and SAPI
// stops at once regardless.
func (e *Engine) Stop(hint speech.BoundaryHint) {
	e.mu.Lock()
	if e.state == speech.StateReady || e.state == speech.StateError {
		e.mu.Unlock()
		return
	}
	e.purgeLocked()
	e.pauseRequested = false
	e.state = speech.StateReady
	e.mu.Unlock()
	e.EmitState(speech.StateReady)
}

// Pause requests a pause. The request is recorded once; repeated calls do
// not stack, so a single Resume always continues playback.
func (e *Engine) Pause(hint speech.BoundaryHint) {
	e.mu.Lock()
	if e.state != speech.StateSpeaking || e.pauseRequested {
		e.mu.Unlock()
		return
	}
	e.pauseRequested = true
	e.state = speech.StatePaused
	e.mu.Unlock()
	e.EmitState(speech.StatePaused)
}

// Resume continues a paused utterance.
func (e *Engine) Resume() {
	e.mu.Lock()
	if !e.pauseRequested && e.state != speech.StatePaused {
		e.mu.Unlock()
		return
	}
	e.pauseRequested = false
	e.state = speech.StateSpeaking
	e.mu.Unlock()
	e.EmitState(speech.StateSpeaking)
}

// Rate returns the playback rate.
func (e *Engine) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// SetRate stores the rate; the next utterance picks it up.
func (e *Engine) SetRate(rate float64) error {
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

// SetPitch stores the pitch. SAPI expresses pitch through voice XML, which
// the shim does not generate; the value is kept for the accessor contract.
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

// SetVolume rejects volumes outside [0, 1].
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

// SetLocale switches the locale when a shim voice supports it.
func (e *Engine) SetLocale(locale language.Tag) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.availableVoicesLocked() {
		if v.Locale.String() == locale.String() {
			e.locale = locale
			e.voice = v
			return nil
		}
	}
	return speech.NewEngineError(speech.KindInvalidParameter, "set_locale",
		fmt.Errorf("%s: %w", locale, speech.ErrLocaleNotSupported))
}

// Voice returns the current voice.
func (e *Engine) Voice() speech.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voice
}

// SetVoice selects one of the shim voices.
func (e *Engine) SetVoice(voice speech.Voice) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.availableVoicesLocked() {
		if v.Equal(voice) {
			e.voice = v
			e.locale = v.Locale
			return nil
		}
	}
	return speech.NewEngineError(speech.KindInvalidParameter, "set_voice",
		fmt.Errorf("%q: %w", voice.Name, speech.ErrVoiceNotFound))
}

// State returns the current playback state.
func (e *Engine) State() speech.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ErrorReason reports the kind of the last native failure.
func (e *Engine) ErrorReason() speech.ErrorKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errReason
}

// ErrorString reports the message of the last native failure.
func (e *Engine) ErrorString() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errString
}

// AvailableLocales lists the locales of the shim voices.
func (e *Engine) AvailableLocales() []language.Tag {
	return []language.Tag{language.AmericanEnglish}
}

// AvailableVoices lists the stock Windows voices the shim knows about.
func (e *Engine) AvailableVoices() []speech.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.availableVoicesLocked()
}

func (e *Engine) availableVoicesLocked() []speech.Voice {
	return []speech.Voice{
		{Name: "Microsoft David", Locale: language.AmericanEnglish,
			Gender: speech.GenderMale, Age: speech.AgeAdult, ID: "sapi-david"},
		{Name: "Microsoft Zira", Locale: language.AmericanEnglish,
			Gender: speech.GenderFemale, Age: speech.AgeAdult, ID: "sapi-zira"},
		{Name: "Microsoft Mark", Locale: language.AmericanEnglish,
			Gender: speech.GenderMale, Age: speech.AgeAdult, ID: "sapi-mark"},
	}
}

// Close releases the COM apartment.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.purgeLocked()
	e.mu.Unlock()
	procCoUninitalize.Call()
	return nil
}

// purgeLocked kills any in-flight synthesis. Caller holds the lock.
func (e *Engine) purgeLocked() {
	if e.current != nil && e.current.Process != nil {
		_ = e.current.Process.Kill()
	}
	e.current = nil
}

// failLocked records a native failure, enters the error state, and emits
// notifications. Caller holds the lock, which is released here.
func (e *Engine) failLocked(kind speech.ErrorKind, op string, err error) {
	ee := speech.NewEngineError(kind, op, err)
	e.errReason = kind
	e.errString = err.Error()
	e.state = speech.StateError
	e.logger.Error("native failure", "op", op, "err", err)
	e.mu.Unlock()
	e.EmitError(ee)
	e.EmitState(speech.StateError)
}

// selectVoiceScript emits a SelectVoice call when a specific voice or
// token is configured.
func (e *Engine) selectVoiceScript() string {
	name := e.voice.Name
	if e.cfg.VoiceToken != "" {
		name = e.cfg.VoiceToken
	}
	if name == "" {
		return ""
	}
	return fmt.Sprintf("$synth.SelectVoice(%s);", quotePS(name))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// quotePS single-quotes a string for PowerShell.
func quotePS(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
