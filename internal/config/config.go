// Package config loads parsekit configuration from YAML and the
// environment.
//
// Loading only gathers raw values. The boundary parses, ConfigDirs and
// AttributeMap, are where the raw lists are refined into types that
// carry their own validity, so callers past this package never re-check
// emptiness or key uniqueness.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"parsekit/pkg/nonempty"
	"parsekit/pkg/uniquemap"
)

// Config holds all parsekit configuration.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// CacheConfig configures the cache bootstrap.
type CacheConfig struct {
	// Candidate configuration directories, in preference order. The
	// first entry becomes the cache root. May be empty here; emptiness
	// is rejected once, in ConfigDirs.
	Directories []string `yaml:"directories"`

	// Ordered name/value pairs recorded in the cache manifest. Names
	// must be unique; duplicates are rejected once, in AttributeMap.
	Attributes []Attribute `yaml:"attributes"`
}

// Attribute is a single named manifest entry.
type Attribute struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given YAML file, falling back to
// defaults when the file does not exist, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// CONFIG_DIRS replaces the directory list wholesale. Comma
	// separated; blank entries from stray commas are dropped.
	if dirs := os.Getenv("CONFIG_DIRS"); dirs != "" {
		var list []string
		for _, d := range strings.Split(dirs, ",") {
			if d = strings.TrimSpace(d); d != "" {
				list = append(list, d)
			}
		}
		c.Cache.Directories = list
	}

	if level := os.Getenv("CACHE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// ConfigDirs parses the raw directory list into a non-empty sequence.
// This is the single place the emptiness check runs; everything that
// needs a primary directory takes the returned NonEmpty.
func (c *Config) ConfigDirs() (nonempty.NonEmpty[string], error) {
	dirs, err := nonempty.Parse(c.Cache.Directories)
	if err != nil {
		return nonempty.NonEmpty[string]{}, fmt.Errorf("no configuration directories set (populate cache.directories or CONFIG_DIRS): %w", err)
	}
	return dirs, nil
}

// AttributeMap parses the ordered attribute list into a key-unique
// mapping, rejecting duplicate names.
func (c *Config) AttributeMap() (uniquemap.Map[string, string], error) {
	pairs := make([]uniquemap.Pair[string, string], 0, len(c.Cache.Attributes))
	for _, a := range c.Cache.Attributes {
		pairs = append(pairs, uniquemap.Pair[string, string]{Key: a.Name, Value: a.Value})
	}

	attrs, err := uniquemap.Parse(pairs)
	if err != nil {
		return uniquemap.Map[string, string]{}, fmt.Errorf("invalid cache.attributes: %w", err)
	}
	return attrs, nil
}
