package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Zie619/n8n-workflows/internal/categories"
)

// Environment variables recognized at load time. Each overrides its
// config-file counterpart.
const (
	EnvConfigPath = "WORKFLOWS_CONFIG_PATH"
	EnvDBPath     = "WORKFLOWS_DB_PATH"
	EnvCorpusDir  = "WORKFLOWS_DIR"
)

// Config is the full runtime configuration.
type Config struct {
	Database   DatabaseConfig    `yaml:"database"`
	Corpus     CorpusConfig      `yaml:"corpus"`
	Index      IndexConfig       `yaml:"index"`
	Categories []categories.Rule `yaml:"categories"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type CorpusConfig struct {
	Dir string `yaml:"dir"`
}

type IndexConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is present:
// database and corpus in the working directory, one indexing worker per
// CPU, built-in category rules.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "workflows.db"},
		Corpus:   CorpusConfig{Dir: "workflows"},
		Index:    IndexConfig{Workers: runtime.NumCPU()},
	}
}

// Load reads configuration from path. An empty path falls back to
// EnvConfigPath, then to "config.yaml" if it exists, then to defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvCorpusDir); v != "" {
		cfg.Corpus.Dir = v
	}
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Corpus.Dir == "" {
		return fmt.Errorf("corpus dir must not be empty")
	}
	if c.Index.Workers <= 0 {
		c.Index.Workers = runtime.NumCPU()
	}
	return nil
}
