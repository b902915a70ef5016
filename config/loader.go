// Package config loads wizard configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that check themselves
// after decoding.
type Validator interface {
	Validate() error
}

// LoadYAML decodes the YAML file at path into target and validates it when
// target implements Validator.
func LoadYAML[T any](path string, target *T) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("configuration file does not exist: %s", absPath)
		}
		return fmt.Errorf("failed to read configuration file %q: %w", absPath, err)
	}

	return decode(data, target)
}

// LoadYAMLFromString is LoadYAML for in-memory content.
func LoadYAMLFromString[T any](yamlContent string, target *T) error {
	return decode([]byte(yamlContent), target)
}

func decode[T any](data []byte, target *T) error {
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return nil
}
