// Package testutil provides reusable test utilities for rtend integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/rtend/internal/store"
)

// TestProfile is a temporary data directory holding one profile database.
type TestProfile struct {
	Name       string
	DataDir    string
	ConfigPath string
	t          *testing.T
	config     string
	skipInit   bool
}

// NewTestProfile creates a new test profile builder.
// Call Build() to create the data directory and database.
func NewTestProfile(t *testing.T) *TestProfile {
	t.Helper()
	return &TestProfile{Name: "test", t: t}
}

// WithName sets the profile name.
func (p *TestProfile) WithName(name string) *TestProfile {
	p.Name = name
	return p
}

// WithConfig sets the config.toml content.
func (p *TestProfile) WithConfig(toml string) *TestProfile {
	p.config = toml
	return p
}

// Uninitialized leaves the database uncreated, as before `rtend init`.
func (p *TestProfile) Uninitialized() *TestProfile {
	p.skipInit = true
	return p
}

// Build creates the directories, the config file and the database.
// Returns the TestProfile for method chaining.
func (p *TestProfile) Build() *TestProfile {
	p.t.Helper()

	root := p.t.TempDir()
	p.DataDir = filepath.Join(root, "data")
	p.ConfigPath = filepath.Join(root, "config.toml")

	if err := os.MkdirAll(p.DataDir, 0o755); err != nil {
		p.t.Fatalf("failed to create data directory: %v", err)
	}
	if err := os.WriteFile(p.ConfigPath, []byte(p.config), 0o644); err != nil {
		p.t.Fatalf("failed to write config: %v", err)
	}
	if p.skipInit {
		return p
	}

	db, err := store.Create(p.DBPath())
	if err != nil {
		p.t.Fatalf("failed to create database: %v", err)
	}
	if err := db.Close(); err != nil {
		p.t.Fatalf("failed to close database: %v", err)
	}
	return p
}

// DBPath returns the database file of the profile.
func (p *TestProfile) DBPath() string {
	return filepath.Join(p.DataDir, p.Name+".db")
}

// Open opens the profile database directly; it is closed with the test.
func (p *TestProfile) Open() *store.Database {
	p.t.Helper()
	db, err := store.Open(p.DBPath())
	if err != nil {
		p.t.Fatalf("failed to open database: %v", err)
	}
	p.t.Cleanup(func() { db.Close() })
	return db
}
