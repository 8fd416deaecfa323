package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default execution bounds applied when a config omits them.
const (
	// DefaultMaxTurns bounds agent turns per episode.
	DefaultMaxTurns = 200
	// DefaultMaxToolErrors aborts an episode after this many failed tool calls.
	DefaultMaxToolErrors = 10
	// DefaultMaxConcurrency bounds episodes running simultaneously.
	DefaultMaxConcurrency = 10
)

// Config declares one benchmark run: which strategies to exercise, how many
// episodes each, and the per-episode execution bounds. Configs are typically
// loaded from a YAML file checked in next to the experiment.
type Config struct {
	// Domain names the policy domain under test. Recorded in the report.
	Domain string `yaml:"domain"`

	// Strategies lists the coordination strategies to run, by registry name.
	Strategies []string `yaml:"strategies"`

	// Episodes is the number of episodes to run per strategy.
	Episodes int `yaml:"episodes"`

	// MaxTurns bounds the number of agent turns within one episode.
	MaxTurns int `yaml:"max_turns"`

	// MaxToolErrors ends an episode once this many tool calls have failed.
	MaxToolErrors int `yaml:"max_tool_errors"`

	// MaxConcurrency bounds how many episodes execute at the same time.
	MaxConcurrency int `yaml:"max_concurrency"`

	// Seed, when set, pins the sampling seed on every driver before its
	// episode starts.
	Seed *int `yaml:"seed"`

	// Temperature, when set, is the sampling temperature episode setups
	// should apply to their drivers.
	Temperature *float64 `yaml:"temperature"`

	// SaveTo is the archive key prefix for this run's artifacts. Empty means
	// a generated run id.
	SaveTo string `yaml:"save_to"`
}

// DefaultConfig returns a config with the standard execution bounds and a
// single episode per strategy.
func DefaultConfig() *Config {
	return &Config{
		Episodes:       1,
		MaxTurns:       DefaultMaxTurns,
		MaxToolErrors:  DefaultMaxToolErrors,
		MaxConcurrency: DefaultMaxConcurrency,
	}
}

// LoadConfig reads and parses a YAML run config from disk.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses a YAML run config. Omitted bounds fall back to the
// defaults; the result is validated.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if len(c.Strategies) == 0 {
		return fmt.Errorf("config: at least one strategy is required")
	}

	if c.Episodes < 1 {
		return fmt.Errorf("config: episodes must be positive, got %d", c.Episodes)
	}

	if c.MaxTurns < 1 {
		return fmt.Errorf("config: max_turns must be positive, got %d", c.MaxTurns)
	}

	if c.MaxToolErrors < 1 {
		return fmt.Errorf("config: max_tool_errors must be positive, got %d", c.MaxToolErrors)
	}

	if c.MaxConcurrency < 1 {
		return fmt.Errorf("config: max_concurrency must be positive, got %d", c.MaxConcurrency)
	}

	return nil
}
