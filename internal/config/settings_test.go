package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", s.Model)
	assert.Equal(t, DefaultSystemPrompt, s.SystemPrompt)
	assert.InDelta(t, 0.7, s.Temperature, 1e-9)
	assert.InDelta(t, 0.95, s.TopP, 1e-9)
	assert.Equal(t, 40, s.TopK)
}

func TestLoadSettings_PartialFile(t *testing.T) {
	root := t.TempDir()
	data := []byte("model: gemini-2.5-flash\ntemperature: 0.2\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, SettingsFile), data, 0o644))

	s, err := LoadSettings(root)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", s.Model)
	assert.InDelta(t, 0.2, s.Temperature, 1e-9)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultSystemPrompt, s.SystemPrompt)
	assert.Equal(t, 40, s.TopK)
}

func TestLoadSettings_BadYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, SettingsFile), []byte(":\n\t-"), 0o644))

	_, err := LoadSettings(root)
	require.Error(t, err)
}
