package config

import (
	"time"

	"github.com/entropyd/entropyd/src/stats"
)

// Errors that may be raised during config parsing.
type JitterPolicyConfigError string

func (e JitterPolicyConfigError) Error() string {
	return string(e)
}

// Wrapper for an individual jitter policy which includes the configured
// parameters and stats.
type JitterPolicy struct {
	Name       string
	Expiration time.Duration
	Ratio      uint8
	Stats      stats.PolicyStats
}

// Interface for interacting with a loaded jitter policy config.
type JitterPolicyConfig interface {
	// Dump the configuration into string form for debugging.
	Dump() string

	// Get the policy configured under the given name.
	// @param name supplies the policy name to look up.
	// @return the policy or nil if none is configured under the name.
	GetPolicy(name string) *JitterPolicy

	// Check if the policy set is empty which corresponds to no config loaded.
	IsEmptyPolicies() bool
}

// Information for a config file to load into the aggregate config.
type PolicyConfigToLoad struct {
	Name       string
	ConfigYaml *YamlRoot
}

// Interface for loading a configuration from a list of YAML files.
type PolicyConfigLoader interface {
	// Load a new configuration from a list of YAML files.
	// @param configs supplies a list of full YAML files in string form.
	// @param statsManager supplies the statsManager to initialize stats during loading.
	// @return a new configuration.
	// @throws JitterPolicyConfigError if the configuration could not be created.
	Load(configs []PolicyConfigToLoad, statsManager stats.Manager) JitterPolicyConfig
}
