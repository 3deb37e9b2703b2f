package expand

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/tmplfill/internal"
	"github.com/gnolang/tmplfill/internal/resolver"
)

const (
	DefaultSuffix     = ".template"
	DefaultConfigFile = ".tmplfill.yaml"
)

// Config describes one run. It is built once and not modified afterwards.
type Config struct {
	Dir       string   `yaml:"dir,omitempty"`
	Suffix    string   `yaml:"suffix"`
	Resolvers []string `yaml:"resolvers"`
	Exclude   []string `yaml:"exclude,omitempty"`
	Jobs      int      `yaml:"jobs,omitempty"`
	KeepGoing bool     `yaml:"keep_going,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
// Dir is left empty and defaults to the working directory on Normalize.
func DefaultConfig() Config {
	return Config{
		Suffix:    DefaultSuffix,
		Resolvers: resolver.DefaultNames(),
		Jobs:      1,
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// Normalize fills unset fields with defaults and validates the result.
func (c *Config) Normalize() error {
	if c.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		c.Dir = wd
	}
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if len(c.Resolvers) == 0 {
		c.Resolvers = resolver.DefaultNames()
	}
	if c.Jobs <= 0 {
		c.Jobs = 1
	}
	return c.Validate()
}

// Validate reports configuration errors that would otherwise surface midway
// through a run.
func (c Config) Validate() error {
	var errs []error
	if _, err := resolver.FromNames(c.Resolvers); err != nil {
		errs = append(errs, err)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid exclude pattern %q", pattern))
		}
	}
	if strings.ContainsAny(c.Suffix, `/\`) {
		errs = append(errs, fmt.Errorf("suffix %q must not contain a path separator", c.Suffix))
	}
	return errors.Join(errs...)
}

// New builds the substitution engine described by config.
func New(config Config) (*internal.Engine, error) {
	resolvers, err := resolver.FromNames(config.Resolvers)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config.Dir, resolvers...), nil
}
