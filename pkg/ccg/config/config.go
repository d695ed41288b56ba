// Package config loads the parser's grammar resources and search
// options from files. The core consumes parsed in-memory tables; this
// package is the bridge from the on-disk formats.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/poetaster-org/depccg/pkg/ccg/cat"
	"github.com/poetaster-org/depccg/pkg/ccg/parse"
)

// Options is the YAML-facing search configuration.
type Options struct {
	Beta             float64  `yaml:"beta"`
	UseBeta          *bool    `yaml:"use_beta"`
	PruningSize      int      `yaml:"pruning_size"`
	NBest            int      `yaml:"nbest"`
	UseCategoryDict  bool     `yaml:"use_category_dict"`
	UseSeenRules     bool     `yaml:"use_seen_rules"`
	PossibleRootCats []string `yaml:"possible_root_cats"`
	MaxLength        int      `yaml:"max_length"`
	MaxSteps         int      `yaml:"max_steps"`
}

// LoadOptions loads search options from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// ParseConfig converts the loaded options into a search Config,
// filling unset fields from the defaults.
func (o *Options) ParseConfig() parse.Config {
	cfg := parse.DefaultConfig()
	if o.Beta > 0 {
		cfg.Beta = o.Beta
	}
	if o.UseBeta != nil {
		cfg.UseBeta = *o.UseBeta
	}
	if o.PruningSize > 0 {
		cfg.PruningSize = o.PruningSize
	}
	if o.NBest > 0 {
		cfg.NBest = o.NBest
	}
	if o.MaxLength > 0 {
		cfg.MaxLength = o.MaxLength
	}
	if o.MaxSteps > 0 {
		cfg.MaxSteps = o.MaxSteps
	}
	cfg.UseCategoryDict = o.UseCategoryDict
	cfg.UseSeenRules = o.UseSeenRules
	return cfg
}

// RootCats parses the possible_root_cats list.
func (o *Options) RootCats() ([]*cat.Category, error) {
	var roots []*cat.Category
	for _, s := range o.PossibleRootCats {
		c, err := cat.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("root category %q: %w", s, err)
		}
		roots = append(roots, c)
	}
	return roots, nil
}
