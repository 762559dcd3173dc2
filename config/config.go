// Package config loads service configuration from an optional YAML file and
// the environment. Environment variables take precedence over the file, and
// every field has a usable default, so the zero configuration runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the address the HTTP service listens on.
	DefaultAddr = ":8000"

	// DefaultModel is the Groq model used by every pipeline stage.
	DefaultModel = "llama3-8b-8192"

	// DefaultDBPath is the SQLite job database. Empty disables persistence
	// and the server keeps job state in memory.
	DefaultDBPath = ""
)

// Config holds everything the CLI needs to assemble a pipeline and serve it.
type Config struct {
	// Addr is the listen address for the HTTP service.
	Addr string `yaml:"addr"`

	// Model is the Groq model name.
	Model string `yaml:"model"`

	// DBPath is the SQLite database file. Empty means no persistence.
	DBPath string `yaml:"db_path"`

	// GroqAPIKey authenticates against the Groq chat completions API.
	GroqAPIKey string `yaml:"groq_api_key"`

	// TavilyAPIKey authenticates against the Tavily search API.
	TavilyAPIKey string `yaml:"tavily_api_key"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:   DefaultAddr,
		Model:  DefaultModel,
		DBPath: DefaultDBPath,
	}
}

// Load builds the configuration from defaults, then the YAML file at path if
// it exists, then environment overrides. A missing file is not an error; any
// other read or parse failure is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LEADGEN_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("LEADGEN_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("LEADGEN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.GroqAPIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.TavilyAPIKey = v
	}
}
