package fieldgen

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the generator configuration is unusable.
var ErrInvalidConfig = errors.New("fieldgen: invalid config")

// DefaultOutput is the file written when no output is configured.
const DefaultOutput = "fields_gen.go"

// Config selects the package to scan, the target types and the output file.
type Config struct {
	Dir    string   `yaml:"dir"`
	Types  []string `yaml:"types"`
	Output string   `yaml:"output"`
}

// DefaultConfig scans the current directory.
func DefaultConfig() *Config {
	return &Config{
		Dir:    ".",
		Output: DefaultOutput,
	}
}

// LoadFromFile reads a YAML config on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Validate trims the config and checks that it names at least one type.
func (c *Config) Validate() error {
	c.Dir = strings.TrimSpace(c.Dir)
	c.Output = strings.TrimSpace(c.Output)
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if !strings.HasSuffix(c.Output, ".go") {
		return fmt.Errorf("%w: output %q is not a .go file", ErrInvalidConfig, c.Output)
	}

	seen := make(map[string]struct{}, len(c.Types))
	types := make([]string, 0, len(c.Types))
	for _, name := range c.Types {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		types = append(types, name)
	}
	if len(types) == 0 {
		return fmt.Errorf("%w: no target types", ErrInvalidConfig)
	}
	c.Types = types
	return nil
}
