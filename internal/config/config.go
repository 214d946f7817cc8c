// Package config loads optional user settings from a YAML file under
// the tnm config directory. A missing file yields defaults; settings
// never fail the operation that needed them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds user-tunable behavior. Everything is optional.
type Settings struct {
	// Color controls colored output: "auto" (default), "always" or
	// "never". The resolved value is threaded into the presentation
	// layer explicitly; nothing here mutates global state.
	Color string `yaml:"color"`

	// Shell overrides $SHELL for the history query.
	Shell string `yaml:"shell"`

	// HistFile overrides history file discovery, tried before the
	// shell-specific default.
	HistFile string `yaml:"histfile"`

	// NotesDir overrides the default directory for auto-created group
	// files.
	NotesDir string `yaml:"notes_dir"`

	// LogLevel controls diagnostic logging verbosity: debug, info,
	// warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the settings used when no settings file exists.
func Default() Settings {
	return Settings{
		Color:    "auto",
		LogLevel: "info",
	}
}

// Load reads settings from path. An absent file returns defaults with
// no error; a malformed file returns defaults plus the parse error so
// the caller can mention it and continue.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), fmt.Errorf("failed to parse settings file: %w", err)
	}

	if settings.Color == "" {
		settings.Color = "auto"
	}
	if settings.LogLevel == "" {
		settings.LogLevel = "info"
	}

	return settings, nil
}
