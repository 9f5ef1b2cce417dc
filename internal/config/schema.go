package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/harrison/archivist/internal/models"
)

// ConflictPolicyHashSuffix is the only supported conflict policy:
// deterministic digest-derived suffixing of colliding filenames.
const ConflictPolicyHashSuffix = "hash_suffix"

// SchemaConfig describes the target layout: where organized projects live,
// which structural subdirectories to pre-create, and how execution behaves.
type SchemaConfig struct {
	TargetRoot     string
	Structure      []string
	ConflictPolicy string
	Mode           models.Mode
}

// rawSchemaConfig matches the on-disk document; mode and policy are parsed
// and validated before the core ever sees them.
type rawSchemaConfig struct {
	TargetRoot     string   `yaml:"target_root"`
	Structure      []string `yaml:"structure"`
	ConflictPolicy string   `yaml:"conflict_policy"`
	Mode           string   `yaml:"mode"`
}

// LoadSchemaConfig reads and validates a schema configuration file.
func LoadSchemaConfig(path string) (*SchemaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema config: %w", err)
	}

	var raw rawSchemaConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse schema config %s: %w", path, err)
	}

	if raw.ConflictPolicy == "" {
		raw.ConflictPolicy = ConflictPolicyHashSuffix
	}
	if raw.Mode == "" {
		raw.Mode = models.ModeMove.String()
	}

	mode, err := models.ParseMode(raw.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid schema config %s: %w", path, err)
	}

	cfg := &SchemaConfig{
		TargetRoot:     raw.TargetRoot,
		Structure:      raw.Structure,
		ConflictPolicy: raw.ConflictPolicy,
		Mode:           mode,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects schema configurations the planner cannot honor.
func (c *SchemaConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TargetRoot, validation.Required),
		validation.Field(&c.ConflictPolicy, validation.Required,
			validation.In(ConflictPolicyHashSuffix)),
	)
}
