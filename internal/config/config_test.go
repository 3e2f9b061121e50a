package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GetProfile() != DefaultProfile {
			t.Errorf("expected %q, got %q", DefaultProfile, cfg.GetProfile())
		}
	})

	t.Run("reads keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `default_profile = "work"
data_dir = "/tmp/rtend"
editor = "nano"
picker = "sk"

[ui]
accent = "#ff8800"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GetProfile() != "work" || cfg.DataDir != "/tmp/rtend" || cfg.Picker != "sk" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.GetEditor() != "nano" {
			t.Errorf("expected editor nano, got %q", cfg.GetEditor())
		}
		if cfg.UI.Accent != "#ff8800" {
			t.Errorf("expected accent, got %q", cfg.UI.Accent)
		}
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("default_vault = \"x\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "default_vault") {
			t.Fatalf("expected unknown key error, got %v", err)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("default_profile = \n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestGetEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	cfg := &Config{}
	if got := cfg.GetEditor(); got != "vi" {
		t.Errorf("expected vi fallback, got %q", got)
	}

	t.Setenv("EDITOR", "nano")
	if got := cfg.GetEditor(); got != "nano" {
		t.Errorf("expected $EDITOR, got %q", got)
	}

	t.Setenv("VISUAL", "code --wait")
	if got := cfg.GetEditor(); got != "code --wait" {
		t.Errorf("expected $VISUAL, got %q", got)
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	written, err := CreateDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !written {
		t.Fatal("expected file to be written")
	}

	// The template is all comments and must load as the zero config.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if cfg.DefaultProfile != "" {
		t.Errorf("expected empty default_profile, got %q", cfg.DefaultProfile)
	}

	if err := os.WriteFile(path, []byte("editor = \"nano\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	written, err = CreateDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written {
		t.Fatal("existing file must not be overwritten")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "editor = \"nano\"\n" {
		t.Errorf("file was modified: %q", data)
	}
}
