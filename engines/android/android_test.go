package android

import (
	"errors"
	"testing"

	"github.com/spektralhq/speech"
	"golang.org/x/text/language"
)

// fakeBridge records calls and returns canned data, standing in for the
// JNI-side implementation.
type fakeBridge struct {
	spoken    []string
	flushes   []bool
	stopped   int
	rate      float64
	pitch     float64
	lang      string
	voiceID   string
	speakErr  error
	langErr   error
	voiceErr  error
	languages []string
	voices    []speech.Voice
}

func (b *fakeBridge) Speak(text string, flush bool) error {
	if b.speakErr != nil {
		return b.speakErr
	}
	b.spoken = append(b.spoken, text)
	b.flushes = append(b.flushes, flush)
	return nil
}

func (b *fakeBridge) Stop() error                       { b.stopped++; return nil }
func (b *fakeBridge) SetRate(m float64) error           { b.rate = m; return nil }
func (b *fakeBridge) SetPitch(m float64) error          { b.pitch = m; return nil }
func (b *fakeBridge) SetLanguage(tag string) error      { b.lang = tag; return b.langErr }
func (b *fakeBridge) Languages() ([]string, error)      { return b.languages, nil }
func (b *fakeBridge) Voices() ([]speech.Voice, error)   { return b.voices, nil }
func (b *fakeBridge) SetVoice(id string) error          { b.voiceID = id; return b.voiceErr }
func (b *fakeBridge) Shutdown() error                   { return nil }

func newTestEngine(t *testing.T, bridge *fakeBridge) *Engine {
	t.Helper()
	e, err := New(bridge, speech.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

// TestNewRequiresBridge tests the nil-bridge guard.
func TestNewRequiresBridge(t *testing.T) {
	_, err := New(nil, speech.DefaultConfig())
	if err == nil {
		t.Fatal("Expected error for nil bridge")
	}
	var ee *speech.EngineError
	if !errors.As(err, &ee) || ee.Kind != speech.KindInitialization {
		t.Errorf("Expected initialization error, got %v", err)
	}
}

// TestSayForwardsToBridge tests utterance delivery and queue flushing.
func TestSayForwardsToBridge(t *testing.T) {
	bridge := &fakeBridge{}
	e := newTestEngine(t, bridge)

	e.Say("hello")

	if len(bridge.spoken) != 1 || bridge.spoken[0] != "hello" {
		t.Errorf("Expected one spoken utterance, got %v", bridge.spoken)
	}
	if !bridge.flushes[0] {
		t.Error("Expected default config to flush the platform queue")
	}
}

// TestPlatformProgressNotifications tests the Notify path the JNI glue uses.
func TestPlatformProgressNotifications(t *testing.T) {
	bridge := &fakeBridge{}
	e := newTestEngine(t, bridge)

	var states []speech.State
	var words []speech.Boundary
	e.OnStateChange(func(s speech.State) { states = append(states, s) })
	e.OnWordBoundary(func(b speech.Boundary) { words = append(words, b) })

	e.Say("hello world")
	e.NotifyStarted()
	e.NotifyRange(0, 5)
	e.NotifyRange(6, 5)
	e.NotifyFinished()

	if e.State() != speech.StateReady {
		t.Errorf("Expected ready after finish, got %s", e.State())
	}
	if len(states) != 2 || states[0] != speech.StateSpeaking || states[1] != speech.StateReady {
		t.Errorf("Expected speaking then ready, got %v", states)
	}
	if len(words) != 2 || words[1].Start != 6 {
		t.Errorf("Expected boundaries at 0 and 6, got %v", words)
	}
}

// TestStopDiscardsUtterance tests immediate stop.
func TestStopDiscardsUtterance(t *testing.T) {
	bridge := &fakeBridge{}
	e := newTestEngine(t, bridge)

	e.Say("hello")
	e.NotifyStarted()
	e.Stop(speech.BoundaryDefault)

	if bridge.stopped != 1 {
		t.Errorf("Expected one bridge stop, got %d", bridge.stopped)
	}
	if e.State() != speech.StateReady {
		t.Errorf("Expected ready after stop, got %s", e.State())
	}

	// Stop while idle does not touch the bridge.
	e.Stop(speech.BoundaryDefault)
	if bridge.stopped != 1 {
		t.Errorf("Expected idle stop to be a no-op, got %d bridge stops", bridge.stopped)
	}
}

// TestNotifyErrorMovesToErrorState tests platform failure reporting.
func TestNotifyErrorMovesToErrorState(t *testing.T) {
	bridge := &fakeBridge{}
	e := newTestEngine(t, bridge)

	var reported *speech.EngineError
	e.OnError(func(err *speech.EngineError) { reported = err })

	e.NotifyError("network synthesis failed")

	if e.State() != speech.StateError {
		t.Errorf("Expected error state, got %s", e.State())
	}
	if e.ErrorReason() != speech.KindPlayback {
		t.Errorf("Expected playback reason, got %s", e.ErrorReason())
	}
	if e.ErrorString() == "" {
		t.Error("Expected a non-empty error string")
	}
	if reported == nil || reported.Kind != speech.KindPlayback {
		t.Errorf("Expected playback error callback, got %v", reported)
	}
}

// TestRateAndPitchMultipliers tests the [-1, 1] to multiplier mapping.
func TestRateAndPitchMultipliers(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{-1.0, 0.5},
		{0, 1.0},
		{1.0, 2.0},
		{-3.0, 0.5}, // clamped
		{5.0, 2.0},  // clamped
	}
	for _, tt := range tests {
		if got := multiplier(tt.value); got != tt.want {
			t.Errorf("multiplier(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}

	bridge := &fakeBridge{}
	e := newTestEngine(t, bridge)
	if err := e.SetRate(1.0); err != nil {
		t.Fatalf("SetRate failed: %v", err)
	}
	if bridge.rate != 2.0 {
		t.Errorf("Expected bridge rate 2.0, got %v", bridge.rate)
	}
	if e.Rate() != 1.0 {
		t.Errorf("Expected stored rate 1.0, got %v", e.Rate())
	}
}

// TestSetVolumeValidation tests the volume range check.
func TestSetVolumeValidation(t *testing.T) {
	e := newTestEngine(t, &fakeBridge{})

	if err := e.SetVolume(1.5); !errors.Is(err, speech.ErrVolumeOutOfRange) {
		t.Errorf("Expected ErrVolumeOutOfRange, got %v", err)
	}
	if err := e.SetVolume(0.5); err != nil {
		t.Errorf("Expected valid volume to be accepted, got %v", err)
	}
	if e.Volume() != 0.5 {
		t.Errorf("Expected volume 0.5, got %v", e.Volume())
	}
}

// TestSetLocaleRejection tests locale errors from the platform.
func TestSetLocaleRejection(t *testing.T) {
	bridge := &fakeBridge{langErr: errors.New("missing language pack")}
	e := newTestEngine(t, bridge)

	err := e.SetLocale(language.Norwegian)
	if !errors.Is(err, speech.ErrLocaleNotSupported) {
		t.Errorf("Expected ErrLocaleNotSupported, got %v", err)
	}
}

// TestAvailableLocalesParsesTags tests tag parsing with bad entries skipped.
func TestAvailableLocalesParsesTags(t *testing.T) {
	bridge := &fakeBridge{languages: []string{"en-US", "nb-NO", "not a tag!!"}}
	e := newTestEngine(t, bridge)

	tags := e.AvailableLocales()
	if len(tags) != 2 {
		t.Fatalf("Expected 2 parseable tags, got %v", tags)
	}
	if tags[0].String() != "en-US" || tags[1].String() != "nb-NO" {
		t.Errorf("Unexpected tags: %v", tags)
	}
}

// TestPauseResumeIgnored tests that pause/resume do not disturb state.
func TestPauseResumeIgnored(t *testing.T) {
	e := newTestEngine(t, &fakeBridge{})

	e.Say("hello")
	e.NotifyStarted()
	e.Pause(speech.BoundaryDefault)
	if e.State() != speech.StateSpeaking {
		t.Errorf("Expected pause to be ignored, got %s", e.State())
	}
	e.Resume()
	if e.State() != speech.StateSpeaking {
		t.Errorf("Expected resume to be ignored, got %s", e.State())
	}
}
