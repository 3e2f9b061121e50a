// Package config handles the global rtend configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/rtend/internal/atomicfile"
)

// DefaultProfile is the profile used when nothing else names one.
const DefaultProfile = "notes"

// Config represents the global rtend configuration.
type Config struct {
	// DefaultProfile names the database used when --profile and
	// RTEND_PROFILE are both absent.
	DefaultProfile string `toml:"default_profile"`

	// DataDir overrides the directory holding the profile databases.
	DataDir string `toml:"data_dir"`

	// Editor is the command used by `rtend edit` (defaults to $VISUAL, $EDITOR, vi).
	Editor string `toml:"editor"`

	// Picker is the fzf-compatible selector used by `rtend skim`.
	Picker string `toml:"picker"`

	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Load reads the config at path. A missing file yields the zero Config.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// DefaultPath returns the config file path.
// Checks ~/.config/rtend/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "rtend", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "rtend", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

const defaultConfig = `# rtend configuration

# Profile used when --profile and RTEND_PROFILE are not set.
# Each profile is a separate database file.
# default_profile = "notes"

# Directory holding the profile databases
# (defaults to $XDG_DATA_HOME/rtend or ~/.local/share/rtend).
# data_dir = "/path/to/rtend"

# Editor for 'rtend edit' (defaults to $VISUAL, then $EDITOR, then vi).
# editor = "vim"

# Interactive selector for 'rtend skim'.
# picker = "fzf"

# Optional accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault writes the commented default config to path unless a file
// is already there. It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// GetEditor returns the editor command, falling back to $VISUAL, $EDITOR and vi.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return "vi"
}

// GetProfile returns the configured default profile or DefaultProfile.
func (c *Config) GetProfile() string {
	if p := strings.TrimSpace(c.DefaultProfile); p != "" {
		return p
	}
	return DefaultProfile
}
