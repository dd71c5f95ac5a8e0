package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qifconv.yaml")
	cfg := &Config{
		TemplatesDir:    "/tmp/templates",
		DefaultTemplate: "bank",
		DateFormat:      "%d.%m.%Y",
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	got, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.TemplatesDir)

	path := filepath.Join(dir, "qifconv.yaml")
	require.NoError(t, Save(path, &Config{DefaultTemplate: "bank"}))
	got, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "bank", got.DefaultTemplate)
	// templates_dir falls back when the file omits it.
	assert.NotEmpty(t, got.TemplatesDir)
}
