// Package config loads the application configuration from a YAML file with
// environment overrides. A missing config file or .env is not fatal; every
// setting has a workable default.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`

	Assistant struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"assistant"`
}

// Defaults applied before the file and environment are consulted.
func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Path = "mealswipe.db"
	cfg.Catalog.Path = "data/foodData.json"
	cfg.Assistant.Model = "gpt-4o-mini"
	return cfg
}

// Load reads the YAML config at path and applies environment overrides.
// OPENAI_API_KEY (or a .env carrying it) supplies the assistant credential.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if path != "" {
		log.Printf("Config file %s not found, using defaults", path)
	}

	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Assistant.APIKey = v
	}
	if v := os.Getenv("ASSISTANT_MODEL"); v != "" {
		cfg.Assistant.Model = v
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	return cfg, nil
}
