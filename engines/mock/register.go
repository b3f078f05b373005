package mock

import (
	"golang.org/x/text/language"

	"github.com/spektralhq/speech"
	"github.com/spektralhq/speech/engines"
)

func init() {
	engines.Register("mock", func(cfg speech.Config) (speech.Engine, error) {
		e := NewWithConfig(cfg.Mock)
		if err := applyDefaults(e, cfg); err != nil {
			return nil, err
		}
		return e, nil
	})
}

// applyDefaults configures an engine from the shared prosody and
// locale/voice settings.
func applyDefaults(e *Engine, cfg speech.Config) error {
	if err := e.SetRate(cfg.Rate); err != nil {
		return err
	}
	if err := e.SetPitch(cfg.Pitch); err != nil {
		return err
	}
	if err := e.SetVolume(cfg.Volume); err != nil {
		return err
	}
	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return speech.NewEngineError(speech.KindConfiguration, "locale", err)
		}
		if err := e.SetLocale(tag); err != nil {
			return err
		}
	}
	if cfg.Voice != "" {
		var found bool
		for _, v := range e.AvailableVoices() {
			if v.Name == cfg.Voice {
				if err := e.SetVoice(v); err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			return speech.NewEngineError(speech.KindConfiguration, "voice",
				speech.ErrVoiceNotFound)
		}
	}
	return nil
}
