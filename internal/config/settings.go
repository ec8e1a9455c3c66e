package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the optional per-project settings file name.
const SettingsFile = "urban.yaml"

// DefaultSystemPrompt is the assistant persona used when a project does not
// override it.
const DefaultSystemPrompt = "You are an AI assistant supporting urban research. " +
	"Understand the user's request precisely, suggest concrete next actions when useful, " +
	"and ask follow-up questions to sharpen vague problems. Keep answers concise and actionable."

// Settings holds per-project chat defaults, loaded from <root>/urban.yaml.
type Settings struct {
	Model        string  `yaml:"model"`
	SystemPrompt string  `yaml:"system_prompt"`
	Temperature  float64 `yaml:"temperature"`
	TopP         float64 `yaml:"top_p"`
	TopK         int     `yaml:"top_k"`
}

// DefaultSettings returns the built-in chat defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Model:        "gemini-2.5-pro",
		SystemPrompt: DefaultSystemPrompt,
		Temperature:  0.7,
		TopP:         0.95,
		TopK:         40,
	}
}

// LoadSettings reads <root>/urban.yaml, falling back to defaults for a
// missing file and for any field left unset.
func LoadSettings(root string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(filepath.Join(root, SettingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if file.Model != "" {
		s.Model = file.Model
	}
	if file.SystemPrompt != "" {
		s.SystemPrompt = file.SystemPrompt
	}
	if file.Temperature != 0 {
		s.Temperature = file.Temperature
	}
	if file.TopP != 0 {
		s.TopP = file.TopP
	}
	if file.TopK != 0 {
		s.TopK = file.TopK
	}
	return s, nil
}
