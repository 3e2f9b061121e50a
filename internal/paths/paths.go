// Package paths resolves a profile name to its database file.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goslug "github.com/gosimple/slug"
)

// ErrInvalidProfile indicates a profile name that slugs to nothing.
var ErrInvalidProfile = errors.New("invalid profile name")

// AppName names the data directory.
const AppName = "rtend"

// DBExt is the extension of profile database files.
const DBExt = ".db"

// DataDir returns the default data directory: $XDG_DATA_HOME/rtend, or
// ~/.local/share/rtend.
func DataDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// ProfileFile returns the file name of a profile ("Work Notes" becomes
// "work-notes.db").
func ProfileFile(profile string) (string, error) {
	s := goslug.Make(strings.TrimSpace(profile))
	if s == "" {
		return "", fmt.Errorf("%q: %w", profile, ErrInvalidProfile)
	}
	return s + DBExt, nil
}

// Resolver maps profiles onto database files under Dir.
type Resolver struct {
	Dir string
}

// NewResolver uses dir, or DataDir when dir is empty.
func NewResolver(dir string) (*Resolver, error) {
	if strings.TrimSpace(dir) == "" {
		d, err := DataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Resolver{Dir: dir}, nil
}

// Path returns the database path of the profile without touching disk.
func (r *Resolver) Path(profile string) (string, error) {
	name, err := ProfileFile(profile)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.Dir, name), nil
}

// Ensure creates the data directory and returns the profile's database path.
func (r *Resolver) Ensure(profile string) (string, error) {
	path, err := r.Path(profile)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return path, nil
}

// Profiles lists the profiles that have a database file, sorted by name.
func (r *Resolver) Profiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.Dir, "*"+DBExt))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSuffix(filepath.Base(m), DBExt))
	}
	return out, nil
}
