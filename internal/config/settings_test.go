package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStoreFallback(t *testing.T) {
	fallback := Settings{
		LLM: LLMConfig{Provider: "groq", Model: "llama3-8b-8192"},
		OCR: OCRConfig{Provider: "tesseract"},
	}
	store := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"), fallback)

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, fallback, got)
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"), Settings{})

	want := Settings{
		LLM:    LLMConfig{Provider: "together", APIKey: "key", Model: "mistral-7b"},
		OCR:    OCRConfig{Provider: "google", APIKey: "vision-key"},
		Resume: ResumeConfig{Path: "/home/user/resume.txt"},
		Search: SearchConfig{DefaultQuery: "backend engineer", DefaultLocation: "Remote"},
	}
	require.NoError(t, store.Write(want))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewSettingsStore(path, Settings{})
	_, err := store.Read()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "groq", cfg.Settings.LLM.Provider)
	assert.Equal(t, "tesseract", cfg.Settings.OCR.Provider)
	assert.Equal(t, 1920, cfg.Render.ViewportWidth)
	assert.Equal(t, 24, cfg.Settings.Search.ScrapeIntervalHours)
}
