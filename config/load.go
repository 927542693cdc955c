package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/teranos/gridmap/errors"
)

// EnvPrefix is the prefix for environment overrides (GRIDMAP_BASE_DIR, GRIDMAP_MAP_ZOOM_START, ...)
const EnvPrefix = "GRIDMAP"

// Load reads the tool settings: defaults, then the nearest gridmap.toml found by
// walking up from the working directory, then GRIDMAP_* environment variables.
func Load() (*Settings, error) {
	v, err := NewViper(findSettingsFile())
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadFromFile loads settings from a specific file path
func LoadFromFile(path string) (*Settings, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViper builds a Viper instance with defaults, environment binding and,
// when settingsPath is not empty, the given settings file.
func NewViper(settingsPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if settingsPath != "" {
		v.SetConfigFile(settingsPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read settings file %s", settingsPath)
		}
	}
	return v, nil
}

// LoadWithViper loads settings using a provided Viper instance and resolves BaseDir
// to an absolute path.
func LoadWithViper(v *viper.Viper) (*Settings, error) {
	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}

	base, err := filepath.Abs(settings.BaseDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve base_dir %q", settings.BaseDir)
	}
	settings.BaseDir = base

	return &settings, nil
}

// SettingsFile returns the settings file Load would read, or "" when none exists
func SettingsFile() string {
	return findSettingsFile()
}

// findSettingsFile searches for gridmap.toml by walking up the directory tree
func findSettingsFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, SettingsFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// ResolvePath joins path onto BaseDir unless it is already absolute
func (s *Settings) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.BaseDir, path)
}

// OutputPath returns the deterministic document path for a report id:
// <base>/<output_dir>/<report-id>/network_map.html
func (s *Settings) OutputPath(reportID string) string {
	return filepath.Join(s.ResolvePath(s.OutputDir), reportID, OutputFileName)
}

// CachePath returns the directory remote network models for a report id are fetched into
func (s *Settings) CachePath(reportID string) string {
	return filepath.Join(s.ResolvePath(s.CacheDir), reportID)
}
