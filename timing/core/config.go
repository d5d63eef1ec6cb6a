package core

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/bhtsim/timing/bht"
)

// Config holds the predictor and run configuration.
type Config struct {
	// BHT is the shape of the Branch History Table.
	BHT bht.Config `json:"bht"`

	// BTBSize is the number of Branch Target Buffer slots. 0 disables the
	// buffer; otherwise it must be a power of 2. Default: 0.
	BTBSize int `json:"btb_size"`

	// MaxInstructions bounds a run. 0 means no limit. Default: 0.
	MaxInstructions uint64 `json:"max_instructions"`
}

// DefaultConfig returns a Config with the default table shape.
func DefaultConfig() *Config {
	return &Config{
		BHT:             bht.DefaultConfig(),
		BTBSize:         0,
		MaxInstructions: 0,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the table shape and BTB size.
func (c *Config) Validate() error {
	if err := c.BHT.Validate(); err != nil {
		return err
	}
	if c.BTBSize < 0 || c.BTBSize&(c.BTBSize-1) != 0 {
		return fmt.Errorf("%w: btb_size %d must be 0 or a power of two",
			bht.ErrConfiguration, c.BTBSize)
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
