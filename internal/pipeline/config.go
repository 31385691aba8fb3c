package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions reads Options from a YAML file. Fields absent from the file
// keep their DefaultOptions value, so a partial file overrides only what
// it names.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("pipeline: read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("pipeline: parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// SaveOptions writes Options to a YAML file.
func SaveOptions(opts Options, path string) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("pipeline: encode options: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
