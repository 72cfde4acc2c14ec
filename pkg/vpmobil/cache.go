package vpmobil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
	Body      []byte    `json:"body"`
}

func getCachePath(url string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".vplanctl_cache")
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	return filepath.Join(cacheDir, cacheKey(url)+".json"), nil
}

func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

// readCache returns the cached body for url if it is younger than ttl
func readCache(url string, ttl time.Duration) ([]byte, bool) {
	path, err := getCachePath(url)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.URL != url || time.Since(entry.Timestamp) > ttl {
		return nil, false
	}

	return entry.Body, true
}

// writeCache saves the raw feed to disk
func writeCache(url string, body []byte) error {
	path, err := getCachePath(url)
	if err != nil {
		return err
	}

	data, err := json.Marshal(CacheEntry{
		Timestamp: time.Now(),
		URL:       url,
		Body:      body,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
