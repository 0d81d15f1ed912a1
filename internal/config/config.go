// Package config loads a run's Settings from a YAML file on disk.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lorule/randomizer/internal/settings"
)

// Load reads and parses path into a Settings value. A missing file is
// not an error: it returns settings.Default(), matching the original
// implementation's #[serde(default)] behavior of falling back to
// defaults field-by-field.
func Load(path string) (*settings.Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s := settings.Default()
		return &s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	s := settings.Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &s, nil
}

// Save writes s to path as YAML, creating or truncating the file.
func Save(path string, s *settings.Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
