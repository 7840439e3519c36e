package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/todosphere/internal/directory"
	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/store"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ErrInvalidBackend is returned for a backend other than json or sqlite.
var ErrInvalidBackend = errors.New("invalid backend")

// Config represents the application configuration
type Config struct {
	DataDir       string       `yaml:"data_dir"`
	Backend       string       `yaml:"backend"`
	Seed          *bool        `yaml:"seed"`
	ShareBaseURL  string       `yaml:"share_base_url"`
	Theme         string       `yaml:"theme"`
	LogLevel      string       `yaml:"log_level"`
	User          model.User   `yaml:"user"`
	Collaborators []model.User `yaml:"collaborators"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory, then applies
// TODOSPHERE_* environment overrides.
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		c := &Config{}
		c.applyEnv()
		c.applyDefaults()
		return c, c.Validate()
	}
	return LoadFile(configPath)
}

// LoadFile loads config from an explicit path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	config.applyEnv()
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that have a closed set of spellings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
		return nil
	}
	return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidBackend, c.Backend, BackendJSON, BackendSQLite)
}

// SeedEnabled reports whether a first run should create the welcome lists.
func (c *Config) SeedEnabled() bool { return c.Seed == nil || *c.Seed }

// Directory builds the collaborator directory from the configured users.
func (c *Config) Directory() *directory.Directory {
	return directory.New(c.User, c.Collaborators)
}

// Path returns where Load reads the config from.
func Path() (string, error) { return getConfigPath() }

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "todosphere", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "todosphere", "config.yaml"), nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("TODOSPHERE_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOSPHERE_BACKEND")); v != "" {
		c.Backend = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	c.Backend = strings.ToLower(c.Backend)
	if c.Backend == "" {
		c.Backend = BackendJSON
	}
	if c.ShareBaseURL == "" {
		c.ShareBaseURL = "http://localhost:8080"
	}
	if c.Theme == "" {
		c.Theme = "classic"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.User.ID == "" {
		c.User = store.DefaultUser
	}
	if len(c.Collaborators) == 0 {
		c.Collaborators = append([]model.User(nil), directory.DefaultCollaborators...)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todosphere"
	}
	return filepath.Join(home, ".todosphere")
}
