// Package config holds the tool configuration: the commit-pinned
// schema document URLs, the artifact output path, and the fetch
// timeout. Defaults match the checked-in pins; a YAML file and a few
// environment variables can override them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Pinned upstream revisions. Bump deliberately: the artifact is only
// meaningful for the pair of revisions it was generated from.
const (
	// TOSA specification v1.0
	TOSASpecSHA = "99c932000e54f0eb68e03129752a11e300e07695"
	// SPIR-V TOSA extended-instruction grammar
	SPIRVGrammarSHA = "7919b00b5f71bb3e6245c38c926501c009060602"
)

const (
	defaultSpecURL = "https://raw.githubusercontent.com/arm/tosa-specification/" +
		TOSASpecSHA + "/tosa.xml"
	defaultGrammarURL = "https://raw.githubusercontent.com/KhronosGroup/SPIRV-Headers/" +
		SPIRVGrammarSHA + "/include/spirv/unified1/extinst.tosa.001000.1.grammar.json"
	defaultOutput       = "src/vgf_adapter_model_explorer/resources/tosa_1_0_operand_info.json"
	defaultFetchTimeout = "60s"
)

// Config is the tool configuration.
type Config struct {
	// SpecURL is the pinned TOSA specification XML.
	SpecURL string `yaml:"spec_url"`
	// GrammarURL is the pinned SPIR-V TOSA extinst grammar JSON.
	GrammarURL string `yaml:"grammar_url"`
	// Output is the artifact path, relative to the repository root.
	Output string `yaml:"output"`
	// FetchTimeout bounds each schema fetch, as a Go duration string.
	FetchTimeout string `yaml:"fetch_timeout"`
}

// DefaultConfig returns the built-in pins and paths.
func DefaultConfig() *Config {
	return &Config{
		SpecURL:      defaultSpecURL,
		GrammarURL:   defaultGrammarURL,
		Output:       defaultOutput,
		FetchTimeout: defaultFetchTimeout,
	}
}

// Load reads a YAML config file over the defaults and applies
// environment overrides. An empty path loads defaults plus overrides
// only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TOSA_META_SPEC_URL"); v != "" {
		c.SpecURL = v
	}
	if v := os.Getenv("TOSA_META_GRAMMAR_URL"); v != "" {
		c.GrammarURL = v
	}
	if v := os.Getenv("TOSA_META_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("TOSA_META_FETCH_TIMEOUT"); v != "" {
		c.FetchTimeout = v
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.SpecURL == "" {
		return fmt.Errorf("config: spec_url must not be empty")
	}
	if c.GrammarURL == "" {
		return fmt.Errorf("config: grammar_url must not be empty")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output must not be empty")
	}
	if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
		return fmt.Errorf("config: invalid fetch_timeout %q: %w", c.FetchTimeout, err)
	}
	return nil
}

// FetchTimeoutDuration returns the parsed fetch timeout. Validate
// guarantees the string parses.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}
