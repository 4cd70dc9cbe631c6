// Package engine ties the pipeline together: configuration, stage RNG
// derivation, enumeration, example generation, and the dataset artifact.
package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lucasem/list-routines/pkg/enumerate"
)

// Config specifies all dataset generation parameters.
// It supports YAML parsing and includes comprehensive validation.
type Config struct {
	// Seed is the master seed for deterministic generation.
	// Use 0 to auto-generate from current time.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Enumeration controls the routine enumerator.
	Enumeration EnumerationCfg `yaml:"enumeration" json:"enumeration"`

	// Examples controls per-routine example generation.
	Examples ExamplesCfg `yaml:"examples" json:"examples"`
}

// EnumerationCfg controls the routine enumerator.
type EnumerationCfg struct {
	// Bound is the target number of behaviorally distinct routines (1-10000).
	Bound int `yaml:"bound" json:"bound"`

	// MaxSize is the largest routine to build (1-7).
	MaxSize int `yaml:"maxSize" json:"maxSize"`

	// RandLimit bounds the magnitude of sampled static values (1-100).
	RandLimit int `yaml:"randLimit" json:"randLimit"`
}

// ExamplesCfg controls per-routine example generation.
type ExamplesCfg struct {
	// Count is the number of input/output pairs per routine (1-100).
	Count int `yaml:"count" json:"count"`

	// Retries bounds proposal rounds when candidates are rejected (1-20).
	Retries int `yaml:"retries" json:"retries"`
}

// DefaultConfig returns a config with sensible defaults and no seed.
func DefaultConfig() *Config {
	return &Config{
		Enumeration: EnumerationCfg{Bound: 50, MaxSize: enumerate.HardSizeCap, RandLimit: 10},
		Examples:    ExamplesCfg{Count: 4, Retries: 5},
	}
}

// LoadConfig reads and validates a YAML configuration file.
// Returns a validated Config or an error if parsing or validation fails.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice.
// Useful for testing and programmatic config generation.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks all configuration constraints.
// Returns an error describing the first validation failure, or nil if valid.
func (c *Config) Validate() error {
	if err := c.Enumeration.Validate(); err != nil {
		return fmt.Errorf("enumeration: %w", err)
	}
	if err := c.Examples.Validate(); err != nil {
		return fmt.Errorf("examples: %w", err)
	}
	return nil
}

// Validate checks EnumerationCfg constraints.
func (e *EnumerationCfg) Validate() error {
	if e.Bound < 1 || e.Bound > 10000 {
		return fmt.Errorf("bound must be in range [1, 10000], got %d", e.Bound)
	}
	if e.MaxSize < 1 || e.MaxSize > enumerate.HardSizeCap {
		return fmt.Errorf("maxSize must be in range [1, %d], got %d", enumerate.HardSizeCap, e.MaxSize)
	}
	if e.RandLimit < 1 || e.RandLimit > 100 {
		return fmt.Errorf("randLimit must be in range [1, 100], got %d", e.RandLimit)
	}
	return nil
}

// Validate checks ExamplesCfg constraints.
func (x *ExamplesCfg) Validate() error {
	if x.Count < 1 || x.Count > 100 {
		return fmt.Errorf("count must be in range [1, 100], got %d", x.Count)
	}
	if x.Retries < 1 || x.Retries > 20 {
		return fmt.Errorf("retries must be in range [1, 20], got %d", x.Retries)
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration.
// Used for deriving per-stage RNG seeds.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}

	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// generateSeed creates a seed from the current time.
// Uses nanosecond precision for better uniqueness.
func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}
