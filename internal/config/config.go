package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultMetadataDir is the conventional metadata subdirectory scanned inside
// each cloned repository unless a catalog entry overrides it via rfnoc_path.
const DefaultMetadataDir = "rfnoc"

// Config represents the application configuration.
type Config struct {
	SourcesDir   string       `yaml:"sources_dir"`
	WorkspaceDir string       `yaml:"workspace_dir"`
	OutputDir    string       `yaml:"output_dir"`
	CloneDepth   int          `yaml:"clone_depth"`
	MetadataDir  string       `yaml:"metadata_dir"`
	HistoryDB    string       `yaml:"history_db,omitempty"`
	Site         SiteConfig   `yaml:"site"`
	Daemon       DaemonConfig `yaml:"daemon"`
}

// SiteConfig describes the external static-site tool invoked after page
// generation (the pre-build hook target). Empty Command disables the step.
type SiteConfig struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
	Dir     string   `yaml:"dir,omitempty"`
}

// DaemonConfig holds settings for continuous regeneration mode.
type DaemonConfig struct {
	Listen   string `yaml:"listen,omitempty"`
	Interval string `yaml:"interval,omitempty"`
}

// SyncInterval returns the parsed periodic regeneration interval.
// Callers must have validated the config via Load first.
func (d DaemonConfig) SyncInterval() time.Duration {
	dur, err := time.ParseDuration(d.Interval)
	if err != nil || dur <= 0 {
		return 30 * time.Minute
	}
	return dur
}

// Default returns a configuration with all defaults applied, used when no
// configuration file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file. Environment variables in
// the YAML content are expanded, so secrets can stay out of the file itself.
func Load(configPath string) (*Config, error) {
	// Best effort: .env is a developer convenience, not a requirement.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SourcesDir == "" {
		c.SourcesDir = "sources"
	}
	if c.WorkspaceDir == "" {
		c.WorkspaceDir = "cloned_repos"
	}
	if c.OutputDir == "" {
		c.OutputDir = "autogen"
	}
	if c.CloneDepth <= 0 {
		c.CloneDepth = 1
	}
	if c.MetadataDir == "" {
		c.MetadataDir = DefaultMetadataDir
	}
	if c.Daemon.Listen == "" {
		c.Daemon.Listen = ":9267"
	}
	if c.Daemon.Interval == "" {
		c.Daemon.Interval = "30m"
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.Daemon.Interval); err != nil {
		return fmt.Errorf("invalid daemon interval %q: %w", c.Daemon.Interval, err)
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := `# shopgen configuration
sources_dir: sources
workspace_dir: cloned_repos
output_dir: autogen
clone_depth: 1
metadata_dir: rfnoc

# Optional: invoke the static site tool after page generation.
# site:
#   command: sphinx-build
#   args: ["-M", "html", "source", "build"]
#   dir: .

# Optional: record run history in a SQLite database.
# history_db: shopgen-history.db

daemon:
  listen: ":9267"
  interval: 30m
`
	if err := os.WriteFile(configPath, []byte(example), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
