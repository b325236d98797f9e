package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.FetchLimit != 20 {
		t.Errorf("FetchLimit = %d, want 20", cfg.FetchLimit)
	}
	if cfg.AutoCheck.IntervalMin != 5 {
		t.Errorf("AutoCheck.IntervalMin = %d, want 5", cfg.AutoCheck.IntervalMin)
	}
	if cfg.AutoCheck.FetchLimit != 10 {
		t.Errorf("AutoCheck.FetchLimit = %d, want 10", cfg.AutoCheck.FetchLimit)
	}
	if !cfg.Account.TLS {
		t.Error("Account.TLS default = false, want true")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Account.Address = "me@example.com"
	cfg.Account.IMAPHost = "imap.example.com"
	cfg.FetchLimit = 7

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Account.Address != "me@example.com" {
		t.Errorf("Address = %q, want round-tripped", loaded.Account.Address)
	}
	if loaded.FetchLimit != 7 {
		t.Errorf("FetchLimit = %d, want 7", loaded.FetchLimit)
	}
}

func TestLoadConfigClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "fetch_limit: -2\nauto_check:\n  interval_min: 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.FetchLimit != 20 {
		t.Errorf("FetchLimit = %d, want fallback 20", cfg.FetchLimit)
	}
	if cfg.AutoCheck.IntervalMin != 5 {
		t.Errorf("IntervalMin = %d, want fallback 5", cfg.AutoCheck.IntervalMin)
	}
}
