// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/skim/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	WPM     *int        `toml:"wpm"`
	WPMStep *int        `toml:"wpm-step"`
	Model   *string     `toml:"model"`
	Keys    KeysSection `toml:"keys"`
}

// KeysSection maps the key-binding settings. Values are single-rune strings.
type KeysSection struct {
	Quit        *string `toml:"quit"`
	Pause       *string `toml:"pause"`
	IncreaseWPM *string `toml:"increase-wpm"`
	DecreaseWPM *string `toml:"decrease-wpm"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ParseKey converts a config value into a single key rune.
func ParseKey(name, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("key %q must be a single character, got %q", name, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

// ValidateKeys rejects binding sets with duplicate keys. A duplicate
// would make dispatch ambiguous (e.g. quit unreachable while paused).
func ValidateKeys(keys model.KeyBindings) error {
	names := []struct {
		name string
		key  rune
	}{
		{"quit", keys.Quit},
		{"pause", keys.Pause},
		{"increase-wpm", keys.IncreaseWPM},
		{"decrease-wpm", keys.DecreaseWPM},
	}
	seen := map[rune]string{}
	for _, binding := range names {
		if prev, ok := seen[binding.key]; ok {
			return fmt.Errorf("keys %q and %q are both bound to %q", prev, binding.name, string(binding.key))
		}
		seen[binding.key] = binding.name
	}
	return nil
}
