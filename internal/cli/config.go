package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/estate-finder/internal/search"
	"github.com/evcraddock/estate-finder/internal/session"
)

const (
	defaultPort      = 8080
	defaultServerURL = "http://localhost:8080"
	envFile          = ".env"
)

// Config holds CLI configuration. Values come from the config file, then
// a .env file in the working directory, then EF_* environment variables.
type Config struct {
	CatalogPath   string `yaml:"catalog_path,omitempty" json:"catalog_path,omitempty"`
	DBPath        string `yaml:"db_path,omitempty" json:"db_path,omitempty"`
	Port          int    `yaml:"port,omitempty" json:"port,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Dev           bool   `yaml:"dev,omitempty" json:"dev,omitempty"`
	PostcodeMode  string `yaml:"postcode_mode,omitempty" json:"postcode_mode,omitempty"`
	SessionTTL    string `yaml:"session_ttl,omitempty" json:"session_ttl,omitempty"`
	SweepSchedule string `yaml:"sweep_schedule,omitempty" json:"sweep_schedule,omitempty"`
	ServerURL     string `yaml:"server_url,omitempty" json:"server_url,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ef", "config.yaml"), nil
}

// loadConfigFile reads the config file.
// Returns a zero-value config if the file doesn't exist.
func loadConfigFile() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// loadConfig returns the effective configuration with defaults filled in.
func loadConfig() (Config, error) {
	cfg, err := loadConfigFile()
	if err != nil {
		return Config{}, err
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("EF_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("EF_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("EF_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EF_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("EF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("EF_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EF_DEV %q: %w", v, err)
		}
		cfg.Dev = dev
	}
	if v := os.Getenv("EF_POSTCODE_MODE"); v != "" {
		cfg.PostcodeMode = v
	}
	if v := os.Getenv("EF_SESSION_TTL"); v != "" {
		cfg.SessionTTL = v
	}
	if v := os.Getenv("EF_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	cfg.PostcodeMode = string(search.ParsePostcodeMode(cfg.PostcodeMode))
	if cfg.SessionTTL == "" {
		cfg.SessionTTL = session.DefaultTTL.String()
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = session.DefaultSweepSchedule
	}
}

// sessionTTL parses the configured idle timeout.
func (c Config) sessionTTL() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(c.SessionTTL))
	if err != nil {
		return 0, fmt.Errorf("invalid session_ttl %q: %w", c.SessionTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("session_ttl must be positive, got %s", d)
	}
	return d, nil
}
