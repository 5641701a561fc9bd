// Package config handles the XDG configuration directory, credential paths
// and the optional config.toml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "taskmenu"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Settings are the user-editable options read from config.toml.
type Settings struct {
	// SeedExamples adds Seed to the store before the menu starts.
	SeedExamples bool `toml:"seed_examples"`

	// Seed holds the descriptions added at startup.
	Seed []string `toml:"seed"`

	// SeedCompleted lists seeded task IDs to mark complete.
	SeedCompleted []int `toml:"seed_completed"`

	// ExportList is the Google Tasks list to export to.
	// Empty means the default list.
	ExportList string `toml:"export_list"`
}

// DefaultSettings returns the settings used when config.toml is absent.
// They reproduce the reference run: three example tasks, the first completed.
func DefaultSettings() Settings {
	return Settings{
		SeedExamples: true,
		Seed: []string{
			"Study functional programming",
			"Do the Go exercises",
			"Review closures",
		},
		SeedCompleted: []int{1},
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are loaded from config.toml, or defaulted.
	Settings Settings
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskmenu or $HOME/.config/taskmenu.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// Load is New followed by reading config.toml from the directory.
// A missing file is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSettings decodes config.toml over the current settings.
// Keys absent from the file keep their current values.
func (c *Config) LoadSettings() error {
	path := c.SettingsPath()
	md, err := toml.DecodeFile(path, &c.Settings)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("invalid %s: unknown key %q", SettingsFile, undecoded[0].String())
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
