package config

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// BucketRule defines one semantic bucket: the signals that vote a document
// into it.
type BucketRule struct {
	Name          string   `yaml:"-"`
	Exts          []string `yaml:"exts"`
	NameKeywords  []string `yaml:"name_keywords"`
	DirKeywords   []string `yaml:"dir_keywords"`
	CodeHints     []string `yaml:"code_hints"`
	Imports       []string `yaml:"imports"`
	TitleKeywords []string `yaml:"title_keywords"`
}

// RuleConfig is the classifier's external input: an ordered bucket list, a
// weight per signal category, and the clusterer's project hint tokens.
// Bucket order matters: ties between equal scores keep the earlier bucket,
// so the slice preserves the order buckets appear in the config file.
type RuleConfig struct {
	Buckets      []BucketRule
	Weights      map[string]int
	ProjectHints []string
}

// rawRuleConfig matches the on-disk document. Buckets is decoded as a
// yaml.Node to recover mapping order, which map[string]BucketRule would lose.
type rawRuleConfig struct {
	Buckets      yaml.Node      `yaml:"buckets"`
	Weights      map[string]int `yaml:"weights"`
	ProjectHints []string       `yaml:"project_hints"`
}

// LoadRuleConfig reads and validates a rule configuration file. Any
// malformed document is a fatal configuration error.
func LoadRuleConfig(path string) (*RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule config: %w", err)
	}

	var raw rawRuleConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rule config %s: %w", path, err)
	}

	cfg := &RuleConfig{
		Weights:      raw.Weights,
		ProjectHints: raw.ProjectHints,
	}

	if raw.Buckets.Kind != 0 {
		if raw.Buckets.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parse rule config %s: buckets must be a mapping", path)
		}
		// Mapping nodes store keys and values as alternating children.
		for i := 0; i+1 < len(raw.Buckets.Content); i += 2 {
			keyNode := raw.Buckets.Content[i]
			valueNode := raw.Buckets.Content[i+1]

			var rule BucketRule
			if err := valueNode.Decode(&rule); err != nil {
				return nil, fmt.Errorf("parse bucket %q: %w", keyNode.Value, err)
			}
			rule.Name = keyNode.Value
			for j, ext := range rule.Exts {
				rule.Exts[j] = strings.ToLower(ext)
			}
			cfg.Buckets = append(cfg.Buckets, rule)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects rule configurations the classifier cannot score against.
func (c *RuleConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Buckets, validation.Required),
	); err != nil {
		return err
	}
	for _, rule := range c.Buckets {
		if rule.Name == "" {
			return fmt.Errorf("bucket with empty name")
		}
	}
	for category, weight := range c.Weights {
		if weight < 0 {
			return fmt.Errorf("weight %q must not be negative", category)
		}
	}
	return nil
}

// Weight returns the weight of a signal category, defaulting to 1 when the
// config does not name it.
func (c *RuleConfig) Weight(category string) int {
	if w, ok := c.Weights[category]; ok {
		return w
	}
	return 1
}
