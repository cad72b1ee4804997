package balancing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk balancing document: tuning values plus the damage
// table. Omitted fields fall back to the compiled-in defaults.
type File struct {
	Config Config      `yaml:"config"`
	Table  DamageTable `yaml:"damage_table"`
}

// Load reads and validates a balancing YAML file. An empty path returns the
// defaults.
func Load(path string) (Config, DamageTable, error) {
	cfg := Default()
	table := DefaultTable()

	if path == "" {
		return cfg, table, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read balancing file: %w", err)
	}

	file := File{Config: cfg}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, nil, fmt.Errorf("parse balancing file: %w", err)
	}
	cfg = file.Config
	if len(file.Table) > 0 {
		table = file.Table
	}

	if err := table.Validate(cfg.MaxRollValue); err != nil {
		return Config{}, nil, fmt.Errorf("validate damage table: %w", err)
	}
	return cfg, table, nil
}
