// In file: cmd/gateway/config.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds all configuration for the gateway, loaded from the
// environment and config.yaml.
type AppConfig struct {
	// Catalog connection: the remote SaaS tool catalog.
	CatalogBaseURL string
	CatalogAPIKey  string
	// CatalogUserID is the identity every probe and every action execution
	// runs as. One identity per process.
	CatalogUserID string

	RedisAddr string

	// Toolkits is the ordered probe list. It deliberately contains duplicate
	// spellings of the same service because the catalog's accepted label
	// format is undocumented; treat this as environment-specific tuning, not
	// a fixed constant.
	Toolkits []string

	LLM struct {
		Provider   string `yaml:"provider"`
		Model      string `yaml:"model"`
		OllamaHost string `yaml:"ollama_host"`
		NumCtx     int    `yaml:"num_ctx"`
	}
	Agent struct {
		MaxIterations int `yaml:"max_iterations"`
	}
}

// fileConfig mirrors the config.yaml layout.
type fileConfig struct {
	Toolkits []string `yaml:"toolkits"`
	LLM      struct {
		Provider   string `yaml:"provider"`
		Model      string `yaml:"model"`
		OllamaHost string `yaml:"ollama_host"`
		NumCtx     int    `yaml:"num_ctx"`
	} `yaml:"llm"`
	Agent struct {
		MaxIterations int `yaml:"max_iterations"`
	} `yaml:"agent"`
}

// LoadConfig loads all configuration from a .env file, environment variables,
// and config.yaml.
func LoadConfig() (*AppConfig, error) {
	// Only attempt to load a .env file in local development. In Docker
	// (where GIN_MODE="release"), configuration is provided directly as
	// environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		CatalogBaseURL: os.Getenv("CATALOG_BASE_URL"),
		CatalogAPIKey:  os.Getenv("CATALOG_API_KEY"),
		CatalogUserID:  os.Getenv("CATALOG_USER_ID"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
	}
	if cfg.CatalogAPIKey == "" {
		return nil, fmt.Errorf("CATALOG_API_KEY environment variable is not set")
	}
	if cfg.CatalogUserID == "" {
		return nil, fmt.Errorf("CATALOG_USER_ID environment variable is not set")
	}
	if cfg.CatalogBaseURL == "" {
		cfg.CatalogBaseURL = "https://backend.composio.dev/api/v3"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}

	raw, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}

	if len(fc.Toolkits) == 0 {
		return nil, fmt.Errorf("config.yaml must list at least one toolkit label to probe")
	}
	cfg.Toolkits = fc.Toolkits
	cfg.LLM = fc.LLM
	cfg.Agent = fc.Agent

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
	}
	if cfg.LLM.Model == "" {
		return nil, fmt.Errorf("config.yaml must set llm.model")
	}
	if cfg.LLM.OllamaHost == "" {
		cfg.LLM.OllamaHost = "http://localhost:11434"
	}
	if cfg.Agent.MaxIterations <= 0 {
		cfg.Agent.MaxIterations = 5
	}

	return cfg, nil
}
