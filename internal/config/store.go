// Package config provides the persisted key/value store and per-project
// settings for the Urban Researcher CLI.
//
// The store is a flat JSON file at ~/.urban_researcher/config.json.
// Environment variables of the form UR_<KEY> (key uppercased, dashes to
// underscores) override stored values on read.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the persisted configuration file.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.urban_researcher/config.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".urban_researcher", "config.json")
	}
	return filepath.Join(home, ".urban_researcher", "config.json")
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// read loads the file into a map. A missing or corrupt file reads as empty.
func (s *Store) read() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return map[string]string{}
	}
	return out
}

// write persists the map atomically: temp file in the same directory, then
// rename over the target.
func (s *Store) write(data map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// Set stores a value under key.
func (s *Store) Set(key, value string) error {
	data := s.read()
	data[key] = value
	return s.write(data)
}

// Get returns the value for key. The UR_<KEY> environment variable takes
// precedence over the stored value.
func (s *Store) Get(key string) (string, bool) {
	if v, ok := os.LookupEnv(EnvKey(key)); ok {
		return v, true
	}
	return s.Stored(key)
}

// Stored returns the value for key from the file only, with no environment
// overlay. The chat credential resolver uses this so its env checks stay
// explicit and ordered.
func (s *Store) Stored(key string) (string, bool) {
	v, ok := s.read()[key]
	return v, ok
}

// Unset removes key from the store and reports whether it existed.
func (s *Store) Unset(key string) (bool, error) {
	data := s.read()
	if _, ok := data[key]; !ok {
		return false, nil
	}
	delete(data, key)
	if err := s.write(data); err != nil {
		return false, err
	}
	return true, nil
}

// All returns every stored key with environment overrides applied.
func (s *Store) All() map[string]string {
	data := s.read()
	for k := range data {
		if v, ok := os.LookupEnv(EnvKey(k)); ok {
			data[k] = v
		}
	}
	return data
}

// EnvKey maps a config key to its override variable, e.g.
// "api-key" -> "UR_API_KEY".
func EnvKey(key string) string {
	up := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	return "UR_" + up
}

// Mask hides the middle of a secret, keeping two characters at each end.
// Values too short to keep anything are masked entirely.
func Mask(value string) string {
	const keep = 2
	if value == "" {
		return ""
	}
	if len(value) <= keep*2 {
		return strings.Repeat("*", len(value))
	}
	return value[:keep] + strings.Repeat("*", len(value)-keep*2) + value[len(value)-keep:]
}
