package main

import "github.com/goccy/go-yaml"

// GeneratorConfig holds settings read from an optional --config file,
// layered underneath (and overridden by) the command-line flags.
type GeneratorConfig struct {
	Verbose    bool `yaml:"verbose"`
	JSONErrors bool `yaml:"jsonErrors"`
}

// loadConfig parses a YAML config file. A missing --config flag is not an
// error at this layer; callers only invoke loadConfig when path != "".
func loadConfig(data []byte) (*GeneratorConfig, error) {
	config := &GeneratorConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}
