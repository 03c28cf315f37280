package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a Config from path, starting from Default() so a
// fixture only needs to override the fields it cares about.
func LoadYAML(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
