package config

import (
	"fmt"
	"math"
	"sort"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/entropyd/entropyd/src/stats"
	"github.com/entropyd/entropyd/src/utils"
)

type YamlPolicy struct {
	Name       string
	Expiration string
	Ratio      uint32
}

type YamlRoot struct {
	Policies []YamlPolicy
}

type jitterPolicyConfigImpl struct {
	policies     map[string]*JitterPolicy
	statsManager stats.Manager
}

func newJitterPolicyError(config string, err string) JitterPolicyConfigError {
	return JitterPolicyConfigError(fmt.Sprintf("%s: %s", config, err))
}

// Load a single policy config file into the aggregate policy set.
// @param config supplies the config file that owns the policies.
func (this *jitterPolicyConfigImpl) loadConfig(config PolicyConfigToLoad) {
	root := config.ConfigYaml
	for _, yamlPolicy := range root.Policies {
		if yamlPolicy.Name == "" {
			panic(newJitterPolicyError(config.Name, "policy name cannot be empty"))
		}
		if _, present := this.policies[yamlPolicy.Name]; present {
			panic(newJitterPolicyError(config.Name, fmt.Sprintf("duplicate policy '%s'", yamlPolicy.Name)))
		}
		if yamlPolicy.Ratio > math.MaxUint8 {
			panic(newJitterPolicyError(
				config.Name, fmt.Sprintf("policy '%s' ratio must be in [0, 255]", yamlPolicy.Name)))
		}

		expiration, err := time.ParseDuration(yamlPolicy.Expiration)
		if err != nil {
			panic(newJitterPolicyError(
				config.Name, fmt.Sprintf("policy '%s' has invalid expiration '%s'", yamlPolicy.Name, yamlPolicy.Expiration)))
		}
		if expiration < 0 {
			panic(newJitterPolicyError(
				config.Name, fmt.Sprintf("policy '%s' expiration cannot be negative", yamlPolicy.Name)))
		}

		logger.Debugf(
			"loading policy: name=%s expiration=%s ratio=%d", yamlPolicy.Name, expiration, yamlPolicy.Ratio)

		this.policies[yamlPolicy.Name] = &JitterPolicy{
			Name:       yamlPolicy.Name,
			Expiration: expiration,
			Ratio:      uint8(yamlPolicy.Ratio),
			Stats:      this.statsManager.NewPolicyStats(utils.SanitizeStatName(yamlPolicy.Name)),
		}
	}
}

func (this *jitterPolicyConfigImpl) Dump() string {
	ret := ""
	names := make([]string, 0, len(this.policies))
	for name := range this.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		policy := this.policies[name]
		ret += fmt.Sprintf("%s: expiration=%s ratio=%d\n", policy.Name, policy.Expiration, policy.Ratio)
	}
	return ret
}

func (this *jitterPolicyConfigImpl) GetPolicy(name string) *JitterPolicy {
	return this.policies[name]
}

func (this *jitterPolicyConfigImpl) IsEmptyPolicies() bool {
	return len(this.policies) == 0
}

// ConfigFileContentToYaml parses a single config file's content.
// @param fileName supplies the name of the file, for error reporting.
// @param content supplies the file content in string form.
func ConfigFileContentToYaml(fileName string, content string) *YamlRoot {
	// validate keys in config with generic map
	any := map[interface{}]interface{}{}
	err := yaml.Unmarshal([]byte(content), &any)
	if err != nil {
		errorText := fmt.Sprintf("error loading config file: %s", err.Error())
		logger.Debugf(errorText)
		panic(JitterPolicyConfigError(errorText))
	}
	validateYamlKeys(fileName, any)

	var root YamlRoot
	err = yaml.Unmarshal([]byte(content), &root)
	if err != nil {
		errorText := fmt.Sprintf("error loading config file: %s", err.Error())
		logger.Debugf(errorText)
		panic(JitterPolicyConfigError(errorText))
	}

	return &root
}

var validKeys = map[string]bool{
	"policies":   true,
	"name":       true,
	"expiration": true,
	"ratio":      true,
}

func validateYamlKeys(fileName string, config_map map[interface{}]interface{}) {
	for k, v := range config_map {
		if _, ok := k.(string); !ok {
			errorText := fmt.Sprintf("config error, key is not of type string: %v", k)
			logger.Debugf(errorText)
			panic(JitterPolicyConfigError(errorText))
		}
		if _, ok := validKeys[k.(string)]; !ok {
			errorText := fmt.Sprintf("config error, unknown key '%s' in config file %s", k, fileName)
			logger.Debugf(errorText)
			panic(JitterPolicyConfigError(errorText))
		}
		switch v := v.(type) {
		case []interface{}:
			for _, e := range v {
				if m, ok := e.(map[interface{}]interface{}); ok {
					validateYamlKeys(fileName, m)
				}
			}
		case map[interface{}]interface{}:
			validateYamlKeys(fileName, v)
		}
	}
}

// Create a policy config from a list of YAML files.
// @param configs specifies a list of policy config files to load.
// @param statsManager supplies the stats manager for per-policy stats.
func NewJitterPolicyConfigImpl(configs []PolicyConfigToLoad, statsManager stats.Manager) JitterPolicyConfig {
	ret := &jitterPolicyConfigImpl{map[string]*JitterPolicy{}, statsManager}
	for _, config := range configs {
		ret.loadConfig(config)
	}

	return ret
}

type jitterPolicyConfigLoaderImpl struct{}

func (this *jitterPolicyConfigLoaderImpl) Load(
	configs []PolicyConfigToLoad, statsManager stats.Manager) JitterPolicyConfig {

	return NewJitterPolicyConfigImpl(configs, statsManager)
}

func NewJitterPolicyConfigLoaderImpl() PolicyConfigLoader {
	return &jitterPolicyConfigLoaderImpl{}
}
