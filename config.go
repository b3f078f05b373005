package speech

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all speech configuration options.
type Config struct {
	// Backend selects the engine implementation.
	Backend string `yaml:"backend" env:"SPEECH_BACKEND" envDefault:"mock"`

	// Prosody defaults applied when an engine is created.
	Rate   float64 `yaml:"rate" env:"SPEECH_RATE" envDefault:"0"`
	Pitch  float64 `yaml:"pitch" env:"SPEECH_PITCH" envDefault:"0"`
	Volume float64 `yaml:"volume" env:"SPEECH_VOLUME" envDefault:"1.0"`

	// Locale is a BCP 47 tag; empty selects the backend's first locale.
	Locale string `yaml:"locale" env:"SPEECH_LOCALE"`
	// Voice is a backend voice name; empty selects the locale's first voice.
	Voice string `yaml:"voice" env:"SPEECH_VOICE"`

	// Engine-specific configurations
	Mock    MockConfig    `yaml:"mock" envPrefix:"SPEECH_MOCK_"`
	SAPI    SAPIConfig    `yaml:"sapi" envPrefix:"SPEECH_SAPI_"`
	Android AndroidConfig `yaml:"android" envPrefix:"SPEECH_ANDROID_"`
}

// MockConfig contains settings for the simulated engine.
type MockConfig struct {
	// WordTime is the per-word interval at rate 0.
	WordTime time.Duration `yaml:"word_time" env:"WORD_TIME" envDefault:"250ms"`
	// WordTimeFloor caps how short the interval can get at high rates.
	WordTimeFloor time.Duration `yaml:"word_time_floor" env:"WORD_TIME_FLOOR" envDefault:"50ms"`
	// RateSlope is how much one unit of rate shortens the interval.
	RateSlope time.Duration `yaml:"rate_slope" env:"RATE_SLOPE" envDefault:"200ms"`
}

// SAPIConfig contains Windows SAPI backend settings.
type SAPIConfig struct {
	// VoiceToken is a SAPI voice token ID; empty uses the system default.
	VoiceToken string `yaml:"voice_token" env:"VOICE_TOKEN"`
	// SpeakTimeout bounds a single synthesis call.
	SpeakTimeout time.Duration `yaml:"speak_timeout" env:"SPEAK_TIMEOUT" envDefault:"30s"`
}

// AndroidConfig contains Android backend settings.
type AndroidConfig struct {
	// FlushQueue makes Say flush the platform utterance queue.
	FlushQueue bool `yaml:"flush_queue" env:"FLUSH_QUEUE" envDefault:"true"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: "mock",
		Rate:    0,
		Pitch:   0,
		Volume:  1.0,

		Mock: MockConfig{
			WordTime:      250 * time.Millisecond,
			WordTimeFloor: 50 * time.Millisecond,
			RateSlope:     200 * time.Millisecond,
		},
		SAPI: SAPIConfig{
			SpeakTimeout: 30 * time.Second,
		},
		Android: AndroidConfig{
			FlushQueue: true,
		},
	}
}

// ConfigFromEnv returns the default configuration overlaid with SPEECH_*
// environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if c.Backend == "" {
		return fmt.Errorf("backend must not be empty")
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %.2f: %w", c.Volume, ErrVolumeOutOfRange)
	}
	if c.Mock.WordTime <= 0 {
		return fmt.Errorf("mock word_time must be positive, got %v", c.Mock.WordTime)
	}
	if c.Mock.WordTimeFloor <= 0 {
		return fmt.Errorf("mock word_time_floor must be positive, got %v", c.Mock.WordTimeFloor)
	}
	if c.Mock.WordTimeFloor > c.Mock.WordTime {
		return fmt.Errorf("mock word_time_floor %v exceeds word_time %v",
			c.Mock.WordTimeFloor, c.Mock.WordTime)
	}
	if c.Mock.RateSlope < 0 {
		return fmt.Errorf("mock rate_slope must not be negative, got %v", c.Mock.RateSlope)
	}
	return nil
}
