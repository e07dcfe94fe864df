package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied by NewConfig.
const (
	DefaultCall        = "data:extend"
	DefaultExtension   = ".lua"
	DefaultStripPrefix = "cube-"
	DefaultServerPort  = 8003
)

// Config represents the complete configuration for protodex.
type Config struct {
	Call      string        `yaml:"call"`
	Extension string        `yaml:"extension"`
	Naming    NamingConfig  `yaml:"naming"`
	Catalog   CatalogConfig `yaml:"catalog"`
	Server    ServerConfig  `yaml:"server"`
	Dev       DevConfig     `yaml:"dev"`
}

// NamingConfig controls the cosmetic name cleaner.
type NamingConfig struct {
	StripPrefix   string            `yaml:"strip_prefix"`
	Abbreviations map[string]string `yaml:"abbreviations"`
}

// CatalogConfig controls record aggregation.
type CatalogConfig struct {
	// BaseDir points at the base game's prototype directory; when set,
	// items referenced by recipes but missing from the scanned mod are
	// backfilled from it.
	BaseDir string `yaml:"base_dir"`
}

// ServerConfig controls the local inspection server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DevConfig contains development/debug options.
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Call:      DefaultCall,
		Extension: DefaultExtension,
		Naming: NamingConfig{
			StripPrefix:   DefaultStripPrefix,
			Abbreviations: make(map[string]string),
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
	}
}

// LoadConfig loads configuration from a YAML file, layered over the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its
// parents, returning "" when none exists.
func FindConfigFile() string {
	configNames := []string{".protodex.yml", ".protodex.yaml", "protodex.yml", "protodex.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads configuration with CLI argument precedence: the
// config file (when present) layers over the defaults, and CLI values that
// differ from their flag defaults layer over the file.
func LoadConfigWithCLI(configPath, cliCall, cliExt, cliBaseDir string, cliPort int, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliCall != "" && cliCall != DefaultCall {
		cfg.Call = cliCall
	}
	if cliExt != "" && cliExt != DefaultExtension {
		cfg.Extension = cliExt
	}
	if cliBaseDir != "" {
		cfg.Catalog.BaseDir = cliBaseDir
	}
	if cliPort != 0 && cliPort != DefaultServerPort {
		cfg.Server.Port = cliPort
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
