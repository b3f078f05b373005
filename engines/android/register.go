package android

import (
	"sync"

	"github.com/spektralhq/speech"
	"github.com/spektralhq/speech/engines"
)

var (
	bridgeMu      sync.Mutex
	bridgeFactory func() (Bridge, error)
)

// SetBridgeFactory installs the platform bridge constructor. The gomobile
// glue calls this before any engine is built; without it the backend
// refuses to construct.
func SetBridgeFactory(factory func() (Bridge, error)) {
	bridgeMu.Lock()
	defer bridgeMu.Unlock()
	bridgeFactory = factory
}

func init() {
	engines.Register("android", func(cfg speech.Config) (speech.Engine, error) {
		bridgeMu.Lock()
		factory := bridgeFactory
		bridgeMu.Unlock()
		if factory == nil {
			return nil, speech.NewEngineError(speech.KindConfiguration, "android",
				speech.ErrBackendUnavailable)
		}
		bridge, err := factory()
		if err != nil {
			return nil, speech.NewEngineError(speech.KindInitialization, "android", err)
		}
		return New(bridge, cfg)
	})
}
