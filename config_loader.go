package speech

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LoadConfigFromViper loads speech configuration from Viper.
// Values not present in Viper keep their defaults.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet("speech.backend") {
		cfg.Backend = viper.GetString("speech.backend")
	}
	if viper.IsSet("speech.rate") {
		cfg.Rate = viper.GetFloat64("speech.rate")
	}
	if viper.IsSet("speech.pitch") {
		cfg.Pitch = viper.GetFloat64("speech.pitch")
	}
	if viper.IsSet("speech.volume") {
		cfg.Volume = viper.GetFloat64("speech.volume")
	}
	if viper.IsSet("speech.locale") {
		cfg.Locale = viper.GetString("speech.locale")
	}
	if viper.IsSet("speech.voice") {
		cfg.Voice = viper.GetString("speech.voice")
	}

	if viper.IsSet("speech.mock.word_time") {
		d, err := parseViperDuration("speech.mock.word_time")
		if err != nil {
			return cfg, err
		}
		cfg.Mock.WordTime = d
	}
	if viper.IsSet("speech.mock.word_time_floor") {
		d, err := parseViperDuration("speech.mock.word_time_floor")
		if err != nil {
			return cfg, err
		}
		cfg.Mock.WordTimeFloor = d
	}
	if viper.IsSet("speech.mock.rate_slope") {
		d, err := parseViperDuration("speech.mock.rate_slope")
		if err != nil {
			return cfg, err
		}
		cfg.Mock.RateSlope = d
	}

	if viper.IsSet("speech.sapi.voice_token") {
		cfg.SAPI.VoiceToken = viper.GetString("speech.sapi.voice_token")
	}
	if viper.IsSet("speech.sapi.speak_timeout") {
		d, err := parseViperDuration("speech.sapi.speak_timeout")
		if err != nil {
			return cfg, err
		}
		cfg.SAPI.SpeakTimeout = d
	}

	if viper.IsSet("speech.android.flush_queue") {
		cfg.Android.FlushQueue = viper.GetBool("speech.android.flush_queue")
	}

	return cfg, cfg.Validate()
}

// LoadConfigFile reads a YAML configuration file over the defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, cfg.Validate()
}

// SaveConfigFile writes cfg as YAML, creating parent directories as needed.
func SaveConfigFile(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ExampleConfig returns a commented starting-point configuration in YAML.
func ExampleConfig() string {
	cfg := DefaultConfig()
	cfg.Locale = "en-GB"
	data, _ := yaml.Marshal(cfg)
	return "# Speech configuration\n" + string(data)
}

func parseViperDuration(key string) (time.Duration, error) {
	d := viper.GetDuration(key)
	if d == 0 {
		// GetDuration swallows parse failures; surface them.
		if s := viper.GetString(key); s != "" && s != "0" {
			if parsed, err := time.ParseDuration(s); err == nil {
				return parsed, nil
			}
			return 0, fmt.Errorf("invalid duration for %s: %q", key, s)
		}
	}
	return d, nil
}
