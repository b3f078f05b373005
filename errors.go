package speech

import (
	"errors"
	"fmt"
)

// Common errors for the speech system.
var (
	// ErrVolumeOutOfRange is returned for volumes outside [0, 1].
	ErrVolumeOutOfRange = errors.New("volume out of range [0, 1]")
	// ErrLocaleNotSupported is returned when a locale is not in the backend's catalog.
	ErrLocaleNotSupported = errors.New("locale not supported by this backend")
	// ErrVoiceNotFound is returned when a voice is not in the backend's catalog.
	ErrVoiceNotFound = errors.New("voice not found in this backend")
	// ErrBackendUnavailable is returned when a backend cannot run on this platform.
	ErrBackendUnavailable = errors.New("backend not available on this platform")
	// ErrNotSupported is returned for operations a backend cannot perform.
	ErrNotSupported = errors.New("operation not supported by this backend")
)

// ErrorKind classifies backend failures reported through the error channel.
type ErrorKind int

const (
	// KindNoError means no failure has been reported.
	KindNoError ErrorKind = iota
	// KindInitialization covers failures bringing up the native engine.
	KindInitialization
	// KindConfiguration covers invalid backend configuration.
	KindConfiguration
	// KindInput covers failures processing the utterance text.
	KindInput
	// KindPlayback covers native playback failures.
	KindPlayback
	// KindInvalidParameter covers rejected setter values.
	KindInvalidParameter
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNoError:
		return "no error"
	case KindInitialization:
		return "initialization"
	case KindConfiguration:
		return "configuration"
	case KindInput:
		return "input"
	case KindPlayback:
		return "playback"
	case KindInvalidParameter:
		return "invalid parameter"
	default:
		return "unknown"
	}
}

// EngineError is a backend failure with its classification and the
// operation that produced it.
type EngineError struct {
	Kind ErrorKind
	Op   string // Operation being performed, e.g. "set_volume"
	Err  error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("speech: %s error in %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("speech: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a classified engine error.
func NewEngineError(kind ErrorKind, op string, err error) *EngineError {
	return &EngineError{Kind: kind, Op: op, Err: err}
}

// IsRecoverable reports whether the engine can keep operating after err.
// Parameter rejections leave state untouched; initialization failures
// require tearing the backend down.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind != KindInitialization
	}
	return !errors.Is(err, ErrBackendUnavailable)
}
