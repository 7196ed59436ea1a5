// Package config loads generator settings from a YAML file and merges them
// with command-line arguments.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/descriptor"
	"github.com/FabricCore/yarn-wrapper-gen/wrapper"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultNamespace is the readable prefix of the classes that get wrapped.
const DefaultNamespace = "net/minecraft"

var ErrOddRepackageArgs = errors.New("repackaging arguments must come in <from> <to> pairs")

var packagePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

type Rule struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to"`
}

type Config struct {
	Source           string `yaml:"source" validate:"required,dir"`
	Output           string `yaml:"output" validate:"required"`
	Package          string `yaml:"package" validate:"required"`
	Namespace        string `yaml:"namespace"`
	Repackage        []Rule `yaml:"repackage" validate:"dive"`
	SegmentRepackage bool   `yaml:"segmentRepackage"`
	Jobs             int    `yaml:"jobs" validate:"gte=0"`
	Javadoc          *bool  `yaml:"javadoc"`
}

func Default() *Config {
	return &Config{Namespace: DefaultNamespace}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// ApplyArgs overlays the positional form
// <source-dir> <output-dir> <package> [<from> <to>]... onto c. Repackaging
// pairs from the command line follow the ones from the file.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("expected <source-dir> <output-dir> <package>, got %d arguments", len(args))
	}
	pairs := args[3:]
	if len(pairs)%2 != 0 {
		return ErrOddRepackageArgs
	}
	c.Source, c.Output, c.Package = args[0], args[1], args[2]
	for i := 0; i < len(pairs); i += 2 {
		c.Repackage = append(c.Repackage, Rule{From: pairs[i], To: pairs[i+1]})
	}
	return nil
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !packagePattern.MatchString(c.Package) {
		return fmt.Errorf("invalid configuration: package %q is not a dotted Java name", c.Package)
	}
	return nil
}

// NamespaceSegments accepts both slash and dot separated namespaces.
func (c *Config) NamespaceSegments() []string {
	ns := strings.Trim(descriptor.SourceToInternalName(c.Namespace), "/")
	if ns == "" {
		return nil
	}
	return strings.Split(ns, "/")
}

func (c *Config) JavadocEnabled() bool {
	return c.Javadoc == nil || *c.Javadoc
}

func (c *Config) Options() wrapper.Options {
	rules := make([]wrapper.Rule, len(c.Repackage))
	for i, r := range c.Repackage {
		rules[i] = wrapper.Rule{From: r.From, To: r.To}
	}
	return wrapper.Options{
		Package:          c.Package,
		Namespace:        c.NamespaceSegments(),
		Repackage:        rules,
		SegmentRepackage: c.SegmentRepackage,
		Javadoc:          c.JavadocEnabled(),
	}
}

func (c *Config) RunOptions() wrapper.RunOptions {
	return wrapper.RunOptions{
		Options: c.Options(),
		Source:  c.Source,
		Output:  c.Output,
		Jobs:    c.Jobs,
	}
}
