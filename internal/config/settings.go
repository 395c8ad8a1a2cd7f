package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings is the runtime-editable configuration document: the sections the
// API exposes for reading and writing. The processor treats one Settings
// snapshot as read-only input per run.
type Settings struct {
	LLM    LLMConfig    `mapstructure:"llm" json:"llm"`
	OCR    OCRConfig    `mapstructure:"ocr" json:"ocr"`
	Resume ResumeConfig `mapstructure:"resume" json:"resume"`
	Email  EmailConfig  `mapstructure:"email" json:"email"`
	Search SearchConfig `mapstructure:"search" json:"search"`
}

type LLMConfig struct {
	Provider string `mapstructure:"provider" json:"provider"`
	APIKey   string `mapstructure:"api_key" json:"apiKey"`
	Model    string `mapstructure:"model" json:"model"`
	BaseURL  string `mapstructure:"base_url" json:"baseUrl,omitempty"`
}

type OCRConfig struct {
	Provider string `mapstructure:"provider" json:"provider"`
	APIKey   string `mapstructure:"api_key" json:"apiKey,omitempty"`
}

type ResumeConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

type EmailConfig struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	From     string `mapstructure:"from" json:"from"`
	To       string `mapstructure:"to" json:"to"`
}

type SearchConfig struct {
	SerpAPIKey          string `mapstructure:"serp_api_key" json:"serpApiKey"`
	DefaultQuery        string `mapstructure:"default_query" json:"defaultQuery"`
	DefaultLocation     string `mapstructure:"default_location" json:"defaultLocation"`
	AutoScrape          bool   `mapstructure:"auto_scrape" json:"autoScrape"`
	ScrapeIntervalHours int    `mapstructure:"scrape_interval_hours" json:"scrapeInterval"`
}

// SettingsStore persists the Settings document as a JSON file. Writes replace
// the whole document, last writer wins; that matches the store contract and
// is the documented hazard for concurrent writers.
type SettingsStore struct {
	path     string
	fallback Settings
	mu       sync.Mutex
}

// NewSettingsStore creates a store at path. fallback supplies the document
// served before the first save, typically the viper-loaded settings.
func NewSettingsStore(path string, fallback Settings) *SettingsStore {
	return &SettingsStore{path: path, fallback: fallback}
}

// Read returns the current settings snapshot. A missing file yields the
// fallback document rather than an error.
func (s *SettingsStore) Read() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.fallback, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// Write replaces the persisted settings document.
func (s *SettingsStore) Write(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
