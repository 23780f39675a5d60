// Package config loads the optional glox.yaml / .gloxrc.yaml project
// file. Grounded on go-dws's "zero-config works" posture: absence of a
// config file is not an error, only a malformed one is.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Names are tried in order in the current working directory.
var candidateNames = []string{"glox.yaml", ".gloxrc.yaml"}

// Config holds the subset of interpreter behavior a project can tune
// without recompiling (§5 "Recursion", the glossary's optional
// natives, and the REPL prompt).
type Config struct {
	// MaxCallDepth overrides the recursion guard. Zero means "use the
	// interpreter's default".
	MaxCallDepth int `yaml:"maxCallDepth"`

	// Natives restricts which glossary natives are installed into
	// globals. A nil slice means "install all of them"; an empty,
	// explicitly-set slice installs none.
	Natives []string `yaml:"natives"`

	// ReplPrompt overrides the REPL's `> ` prompt.
	ReplPrompt string `yaml:"replPrompt"`

	// Source is the config file Load read from, or "" when no file was
	// found and Default() behavior applies. Not read from YAML.
	Source string `yaml:"-"`
}

// Default returns the zero-config behavior: no recursion override, all
// natives installed, the standard prompt.
func Default() *Config {
	return &Config{ReplPrompt: "> "}
}

// Load searches the current directory for glox.yaml then .gloxrc.yaml
// and parses the first one found. A missing file is not an error and
// yields Default(); a malformed file is.
func Load() (*Config, error) {
	for _, name := range candidateNames {
		data, err := os.ReadFile(name)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("config: reading %s: %w", name, err)
		}
		return parse(data, name)
	}
	return Default(), nil
}

func parse(data []byte, name string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", name, err)
	}
	if cfg.ReplPrompt == "" {
		cfg.ReplPrompt = "> "
	}
	cfg.Source = name
	return cfg, nil
}

// NativesAllowed reports whether name may be installed into globals.
// A nil Natives list allows everything.
func (c *Config) NativesAllowed(name string) bool {
	if c == nil || c.Natives == nil {
		return true
	}
	for _, allowed := range c.Natives {
		if allowed == name {
			return true
		}
	}
	return false
}
