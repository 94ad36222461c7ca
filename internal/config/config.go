package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/padelyzer/bracket-engine/internal/bracket"
)

type DatabaseConfig struct {
	Filename      string `yaml:"filename"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	LogLevel    string `yaml:"log_level"`
}

type BracketsConfig struct {
	DefaultSeeding string `yaml:"default_seeding"`
}

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Brackets BracketsConfig `yaml:"brackets"`
}

// Load reads the YAML file at configPath, after loading an optional .env file from the same
// directory. PADELYZER_DB_PATH and PADELYZER_PORT override the file.
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if path, ok := os.LookupEnv("PADELYZER_DB_PATH"); ok {
		cfg.Database.Filename = path
	}
	if raw, ok := os.LookupEnv("PADELYZER_PORT"); ok {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PADELYZER_PORT %q: %w", raw, err)
		}
		cfg.App.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "padelyzer-brackets",
			Environment: "development",
			Port:        8080,
			LogLevel:    "info",
		},
		Database: DatabaseConfig{
			Filename:      "data/padelyzer.db",
			BusyTimeoutMS: 5000,
		},
		Brackets: BracketsConfig{
			DefaultSeeding: string(bracket.SeedRandom),
		},
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port %d is out of range", c.App.Port)
	}
	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", c.App.LogLevel)
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required")
	}
	if c.Database.BusyTimeoutMS < 0 {
		return fmt.Errorf("database busy timeout must not be negative")
	}
	if _, err := bracket.ParseSeedingMethod(c.Brackets.DefaultSeeding); err != nil {
		return fmt.Errorf("brackets.default_seeding: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
