// Package tuning loads gameplay constants from YAML and watches the file for edits.
package tuning

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fingershooter/game"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults decodes the embedded stock tuning
func Defaults() (game.Config, error) {
	var cfg game.Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return game.Config{}, fmt.Errorf("tuning: unmarshal defaults.yaml: %w", err)
	}
	return cfg, nil
}

// Load returns the stock tuning overlaid with the file at path. Keys missing
// from the file keep their default. An empty path returns the defaults.
func Load(path string) (game.Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return game.Config{}, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return game.Config{}, fmt.Errorf("tuning: load %s: %w", path, err)
	}
	return Parse(data, cfg, path)
}

// Parse overlays data onto base and validates the result. name is only used in errors.
func Parse(data []byte, base game.Config, name string) (game.Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return game.Config{}, fmt.Errorf("tuning: unmarshal %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, fmt.Errorf("tuning: invalid %s: %w", name, err)
	}
	return cfg, nil
}
