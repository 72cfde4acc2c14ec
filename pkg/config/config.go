package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vplanctl/pkg/vplan"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	SchoolNumber string `json:"school_number,omitempty"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	Class        string `json:"class,omitempty"`
	ShowDate     *bool  `json:"show_date,omitempty"`
	MatchPolicy  string `json:"match_policy,omitempty"`
	BaseURL      string `json:"base_url,omitempty"` // proxy in front of stundenplan24.de
	CacheMinutes int    `json:"cache_minutes,omitempty"`
	AccentColor  string `json:"accent_color,omitempty"`
}

// ErrIncomplete is returned by Validate when a required field is missing.
var ErrIncomplete = errors.New("please configure school number, username, password and class")

// getConfigPath returns the absolute path to ~/.vplanctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".vplanctl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
// The file holds the vendor password, so it is only readable by the user.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ShowDateEnabled defaults to true when the setting was never stored.
func (c *AppConfig) ShowDateEnabled() bool {
	return c.ShowDate == nil || *c.ShowDate
}

// SetShowDate stores an explicit show_date value.
func (c *AppConfig) SetShowDate(v bool) {
	c.ShowDate = &v
}

// ValidateLogin checks the fields needed to fetch a feed.
func (c *AppConfig) ValidateLogin() error {
	if strings.TrimSpace(c.SchoolNumber) == "" || c.Username == "" || c.Password == "" {
		return ErrIncomplete
	}
	return nil
}

// Validate checks the fields needed to fetch and extract a plan.
func (c *AppConfig) Validate() error {
	if err := c.ValidateLogin(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Class) == "" {
		return ErrIncomplete
	}
	if _, err := vplan.ParseMatchPolicy(c.MatchPolicy); err != nil {
		return err
	}
	return nil
}

// Query builds the extraction query for the configured class.
func (c *AppConfig) Query() (vplan.Query, error) {
	policy, err := vplan.ParseMatchPolicy(c.MatchPolicy)
	if err != nil {
		return vplan.Query{}, err
	}
	return vplan.Query{Class: c.Class, Policy: policy}, nil
}

// CacheTTL returns the raw feed cache lifetime; zero disables caching.
func (c *AppConfig) CacheTTL() time.Duration {
	if c.CacheMinutes <= 0 {
		return 0
	}
	return time.Duration(c.CacheMinutes) * time.Minute
}
