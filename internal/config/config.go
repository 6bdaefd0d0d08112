package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListen         = "127.0.0.1:8080"
	DefaultAPIBaseURL     = "https://fsa-crud-2aa9294fe819.herokuapp.com/api"
	DefaultCohort         = "2aa9294fe819"
	DefaultRequestTimeout = 15 * time.Second
	DefaultSnapshotWidth  = 1280
	DefaultSnapshotHeight = 960
)

// Environment variables that override values read from the config file.
const (
	EnvListen   = "PARTYPLANNER_LISTEN"
	EnvAPIURL   = "PARTYPLANNER_API_URL"
	EnvCohort   = "PARTYPLANNER_COHORT"
	EnvLogLevel = "PARTYPLANNER_LOG_LEVEL"
	EnvRefresh  = "PARTYPLANNER_REFRESH"
)

// APIConfig describes the remote party collection.
type APIConfig struct {
	// BaseURL is the API root, without the cohort segment.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Cohort is the path segment that scopes the collection.
	Cohort string `yaml:"cohort" json:"cohort"`
	// RequestTimeout bounds each outbound call. Zero disables the timeout.
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// SnapshotConfig holds the viewport used by `partyplanner snapshot`.
type SnapshotConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the web UI.
	Listen string `yaml:"listen" json:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	API APIConfig `yaml:"api" json:"api"`

	// RefreshCron is an optional cron expression (e.g. "*/5 * * * *").
	// When set, the party list is re-fetched on that schedule.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	Snapshot SnapshotConfig `yaml:"snapshot" json:"snapshot"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:   DefaultListen,
		LogLevel: "info",
		API: APIConfig{
			BaseURL:        DefaultAPIBaseURL,
			Cohort:         DefaultCohort,
			RequestTimeout: DefaultRequestTimeout,
		},
		Snapshot: SnapshotConfig{
			Width:  DefaultSnapshotWidth,
			Height: DefaultSnapshotHeight,
		},
	}
}

// Normalize fills in missing values with defaults so that partially
// filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	c.API.Cohort = strings.Trim(c.API.Cohort, "/")
	if c.API.RequestTimeout < 0 {
		c.API.RequestTimeout = DefaultRequestTimeout
	}
	c.RefreshCron = strings.TrimSpace(c.RefreshCron)
	if c.Snapshot.Width <= 0 {
		c.Snapshot.Width = DefaultSnapshotWidth
	}
	if c.Snapshot.Height <= 0 {
		c.Snapshot.Height = DefaultSnapshotHeight
	}
}

// Validate reports configuration values that cannot work at runtime.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: unsupported scheme %q", u.Scheme)
	}
	if c.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
	}
	return nil
}

// EventsURL is the collection endpoint: <base_url>/<cohort>/events.
func (c *Config) EventsURL() string {
	if c.API.Cohort == "" {
		return c.API.BaseURL + "/events"
	}
	return c.API.BaseURL + "/" + c.API.Cohort + "/events"
}

// ApplyEnv overrides config values with PARTYPLANNER_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvCohort); ok {
		c.API.Cohort = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvRefresh); ok {
		c.RefreshCron = v
	}
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms (parent directory created as needed).
//   - Otherwise the YAML is read and unmarshalled.
//   - In both cases environment overrides are applied, then defaults are
//     normalized and the result validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg, err := readOrCreate(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readOrCreate(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save normalizes cfg and writes it to path as YAML with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := writeAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeAtomic replaces path with data. Readers see either the old file or
// the complete new one; the temp file never outlives the call.
func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
