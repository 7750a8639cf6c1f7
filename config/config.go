package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the club review service configuration. Values come from an
// optional YAML file first, then environment variables override.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port      string `yaml:"port"`
	LogFormat string `yaml:"logFormat"`
	LogLevel  string `yaml:"logLevel"`
}

// DatabaseConfig holds the relational store settings. Driver is "postgres"
// for production or "sqlite" for local development.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	// Path is the database file for the sqlite driver.
	Path string `yaml:"path"`
}

// SeedConfig controls bootstrap seeding of the club directory.
type SeedConfig struct {
	ClubsFile string `yaml:"clubsFile"`
}

// DSN builds the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads the optional config file and applies environment overrides.
// A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	cfg := defaultConfig()

	if configPath == "" {
		configPath = getEnv("CONFIG_FILE", "config/config.yaml")
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.LogFormat = getEnv("LOG_FORMAT", cfg.Server.LogFormat)
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", cfg.Server.LogLevel)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)

	cfg.Seed.ClubsFile = getEnv("SEED_CLUBS_FILE", cfg.Seed.ClubsFile)

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8080",
			LogFormat: "json",
			LogLevel:  "info",
		},
		Database: DatabaseConfig{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			User:    "user",
			Name:    "clubreview",
			SSLMode: "disable",
			Path:    "clubreview.db",
		},
	}
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
