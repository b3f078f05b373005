//go:build !windows

package sapi

import (
	"github.com/spektralhq/speech"
	"github.com/spektralhq/speech/engines"
)

func init() {
	engines.Register("sapi", func(cfg speech.Config) (speech.Engine, error) {
		return nil, speech.NewEngineError(speech.KindConfiguration, "sapi",
			speech.ErrBackendUnavailable)
	})
}
