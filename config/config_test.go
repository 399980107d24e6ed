package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Cargo.Binary != "cargo" {
		t.Errorf("Cargo.Binary = %q, want cargo", cfg.Cargo.Binary)
	}
	if cfg.Git.AuthorName != "Rust Backend Scaffolder" {
		t.Errorf("Git.AuthorName = %q", cfg.Git.AuthorName)
	}
	if cfg.Git.AuthorEmail != "scaffolder@example.com" {
		t.Errorf("Git.AuthorEmail = %q", cfg.Git.AuthorEmail)
	}
	if cfg.Git.CommitMessage != "Initial commit: Scaffolded project" {
		t.Errorf("Git.CommitMessage = %q", cfg.Git.CommitMessage)
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled = true, want false")
	}
	if cfg.I18n.Language != "en" {
		t.Errorf("I18n.Language = %q, want en", cfg.I18n.Language)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsbackend.yaml")
	content := `cargo:
  binary: /opt/cargo/bin/cargo
git:
  author_name: Release Bot
logger:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RSBACKEND_GIT_AUTHOR_NAME", "Env Bot")
	t.Setenv("RSBACKEND_I18N_LANGUAGE", "ru")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Cargo.Binary != "/opt/cargo/bin/cargo" {
		t.Errorf("Cargo.Binary = %q, want file value", cfg.Cargo.Binary)
	}
	if cfg.Git.AuthorName != "Env Bot" {
		t.Errorf("Git.AuthorName = %q, want env override", cfg.Git.AuthorName)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q, want debug", cfg.Logger.Level)
	}
	if cfg.I18n.Language != "ru" {
		t.Errorf("I18n.Language = %q, want ru", cfg.I18n.Language)
	}
	if cfg.Git.AuthorEmail != "scaffolder@example.com" {
		t.Errorf("Git.AuthorEmail = %q, want default", cfg.Git.AuthorEmail)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing file should fail")
	}
}
