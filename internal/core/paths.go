package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir      string
	ConfigDir    string
	GroupsFile   string
	SettingsFile string
	LogFile      string
	NotesDir     string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = filepath.Join(homeDir, ".config")
		}
		configDir := filepath.Join(configHome, "tnm")

		defaultPaths = &Paths{
			HomeDir:      homeDir,
			ConfigDir:    configDir,
			GroupsFile:   filepath.Join(configDir, "groups.json"),
			SettingsFile: filepath.Join(configDir, "settings.yaml"),
			LogFile:      filepath.Join(configDir, "tnm.log"),
			NotesDir:     filepath.Join(homeDir, "tnm"),
		}

		err = os.MkdirAll(defaultPaths.ConfigDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func ConfigDir() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigDir
}

func GroupsFile() string {
	ensureDefaultPaths()
	return defaultPaths.GroupsFile
}

func SettingsFile() string {
	ensureDefaultPaths()
	return defaultPaths.SettingsFile
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// NotesDir is the default location for group files that were never
// explicitly mapped to a path.
func NotesDir() string {
	ensureDefaultPaths()
	return defaultPaths.NotesDir
}

// ExpandUser replaces a leading "~" with the user's home directory.
// Paths stored in the group registry are always expanded.
func ExpandUser(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if len(path) >= 2 && path[0] == '~' && path[1] == filepath.Separator {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
