package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  listen_addr: ":9090"
storage:
  data_dir: /var/lib/hexastore
query:
  default_page_size: 50
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("expected listen_addr :9090, got %s", cfg.Server.ListenAddr)
	}
	if cfg.Storage.DataDir != "/var/lib/hexastore" {
		t.Errorf("expected data_dir /var/lib/hexastore, got %s", cfg.Storage.DataDir)
	}
	if cfg.Query.DefaultPageSize != 50 {
		t.Errorf("expected default_page_size 50, got %d", cfg.Query.DefaultPageSize)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: {}\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := Default()
	if cfg.Server.ListenAddr != want.Server.ListenAddr {
		t.Errorf("expected default listen_addr, got %s", cfg.Server.ListenAddr)
	}
	if cfg.Query.DefaultPageSize != want.Query.DefaultPageSize {
		t.Errorf("expected default page size, got %d", cfg.Query.DefaultPageSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
