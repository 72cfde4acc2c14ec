package vpmobil

import (
	"vplanctl/pkg/config"
	"vplanctl/pkg/logging"
)

// FromConfig builds a client honouring the configured proxy and cache.
func FromConfig(cfg *config.AppConfig, l *logging.Logger) *Client {
	c := NewClient().WithCache(cfg.CacheTTL()).WithLogger(l)
	if cfg.BaseURL != "" {
		c.WithBaseURL(cfg.BaseURL)
	}
	return c
}

// CredentialsFrom returns the login stored in cfg.
func CredentialsFrom(cfg *config.AppConfig) Credentials {
	return Credentials{Username: cfg.Username, Password: cfg.Password}
}
