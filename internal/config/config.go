// Package config provides the YAML configuration schema and loader for the
// hexastore daemon.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure, loaded from a YAML file
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Query   QueryConfig   `yaml:"query"`
}

// ServerConfig holds network settings for the HTTP endpoint
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080")
	ListenAddr string `yaml:"listen_addr"`
}

// StorageConfig holds the embedded store settings
type StorageConfig struct {
	// DataDir is the directory BadgerDB keeps its files in
	DataDir string `yaml:"data_dir"`
}

// QueryConfig holds executor settings
type QueryConfig struct {
	// DefaultPageSize is used for queries that request page size 0
	DefaultPageSize int `yaml:"default_page_size"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server:  ServerConfig{ListenAddr: "localhost:8080"},
		Storage: StorageConfig{DataDir: "./hexastore_data"},
		Query:   QueryConfig{DefaultPageSize: 100},
	}
}

// Load reads and validates a YAML configuration file, filling omitted fields
// from Default
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = Default().Server.ListenAddr
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = Default().Storage.DataDir
	}
	if cfg.Query.DefaultPageSize <= 0 {
		cfg.Query.DefaultPageSize = Default().Query.DefaultPageSize
	}

	return cfg, nil
}
