// Package config loads pdepend's optional project-level settings from a
// .pdependrc.yaml file, the way a small Go CLI typically layers config
// over flag defaults: yaml.v3 unmarshal into a struct with sane zero
// values, missing file is not an error.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file pdepend looks for in the current
// directory when no --config flag is given.
const DefaultFileName = ".pdependrc.yaml"

// Config holds every setting pdepend's CLI and LSP server read from file.
type Config struct {
	IgnoreAnnotations bool   `yaml:"ignoreAnnotations"`
	CacheDir          string `yaml:"cacheDir"`
	LSPAddress        string `yaml:"lspAddress"`
}

// Default returns the settings pdepend uses when no config file is present.
func Default() Config {
	return Config{
		IgnoreAnnotations: false,
		CacheDir:          ".pdepend-cache",
		LSPAddress:        "stdio",
	}
}

// Load reads and parses path, starting from Default() so a partial file
// only overrides the keys it sets. A missing file is not an error: Load
// returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
