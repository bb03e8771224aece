package provider

import (
	"github.com/entropyd/entropyd/src/config"
)

// PolicyConfigProvider is the interface for jitter policy configuration providers.
type PolicyConfigProvider interface {
	// ConfigUpdateEvent returns a receive-only channel for retrieving configuration updates.
	// The provider implementer should send a config update to this channel when it detects
	// a config update. The config receiver waits for configuration updates.
	ConfigUpdateEvent() <-chan ConfigUpdateEvent

	// Stop stops the configuration provider watch for configurations.
	Stop()
}

type ConfigUpdateEvent interface {
	GetConfig() (config config.JitterPolicyConfig, err any)
}

type ConfigUpdateEventImpl struct {
	config config.JitterPolicyConfig
	err    any
}

func (e *ConfigUpdateEventImpl) GetConfig() (config config.JitterPolicyConfig, err any) {
	return e.config, e.err
}
