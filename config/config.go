// Package config holds the tuning parameters of the extraction heuristics.
//
// A Config is loaded once from YAML, overlaid on the embedded defaults and then
// treated as immutable. Compile turns the three substring lists into the
// case-insensitive patterns used by the scorer and the cleaner.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

// ErrInvalidConfig is returned by Validate and wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var tagNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Config maps one to one onto the keys of the YAML configuration file.
type Config struct {
	UnlikelyCandidates []string `yaml:"unlikely_candidates" json:"unlikely_candidates"`
	Positive           []string `yaml:"positive" json:"positive"`
	Negative           []string `yaml:"negative" json:"negative"`

	// ContentTags are the text-bearing tags whose parents become candidates.
	ContentTags []string `yaml:"content_tags" json:"content_tags"`
	// TitleTags are searched in order; the first tag present in the document wins.
	TitleTags []string `yaml:"title_tags" json:"title_tags"`

	MinTextLength  int     `yaml:"min_text_length" json:"min_text_length"`
	PositiveWeight float64 `yaml:"positive_weight" json:"positive_weight"`
	NegativeWeight float64 `yaml:"negative_weight" json:"negative_weight"`
	MinLinkDensity float64 `yaml:"min_link_density" json:"min_link_density"`
	MaxLinkDensity float64 `yaml:"max_link_density" json:"max_link_density"`
	MaxLineLength  int     `yaml:"max_line_length" json:"max_line_length"`

	// LegacyTagWeights keeps only the div bonus when a candidate is created,
	// matching the output of the original reader byte for byte.
	LegacyTagWeights bool `yaml:"legacy_tag_weights" json:"legacy_tag_weights"`
}

// Default returns a fresh copy of the embedded default configuration.
func Default() *Config {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return &c
}

// Parse overlays YAML data on top of the defaults. Keys missing from data keep
// their default values, unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) normalize() {
	c.ContentTags = lowerAll(c.ContentTags)
	c.TitleTags = lowerAll(c.TitleTags)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate reports the first problem found in c, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if len(c.ContentTags) == 0 {
		return fmt.Errorf("%w: content_tags must not be empty", ErrInvalidConfig)
	}
	for _, tags := range [][]string{c.ContentTags, c.TitleTags} {
		for _, t := range tags {
			if !tagNamePattern.MatchString(t) {
				return fmt.Errorf("%w: %q is not a tag name", ErrInvalidConfig, t)
			}
		}
	}
	switch {
	case c.MinTextLength < 0:
		return fmt.Errorf("%w: min_text_length must be >= 0", ErrInvalidConfig)
	case c.PositiveWeight < 0 || c.NegativeWeight < 0:
		return fmt.Errorf("%w: weights must be >= 0", ErrInvalidConfig)
	case c.MinLinkDensity < 0 || c.MinLinkDensity > 1:
		return fmt.Errorf("%w: min_link_density must be within [0, 1]", ErrInvalidConfig)
	case c.MaxLinkDensity < 0 || c.MaxLinkDensity > 1:
		return fmt.Errorf("%w: max_link_density must be within [0, 1]", ErrInvalidConfig)
	case c.MaxLineLength < 0:
		return fmt.Errorf("%w: max_line_length must be >= 0", ErrInvalidConfig)
	}
	return nil
}
