// Package chat implements the interactive REPL: credential resolution,
// transcript logging, the progress spinner, and the key persistence policy.
package chat

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables and config keys consulted for the Gemini API key,
// in priority order. The two environment names are checked before either
// stored config key.
const (
	EnvPrimaryKey = "UR_GEMINI_API_KEY"
	EnvAliasKey   = "GOOGLE_API_KEY"

	ConfigPrimaryKey = "gemini-api-key"
	ConfigAliasKey   = "google-api-key"
)

// KeyStore is the slice of the config store the chat core needs. Stored
// reads the persisted value only, with no environment overlay.
type KeyStore interface {
	Stored(key string) (string, bool)
	Set(key, value string) error
	Unset(key string) (bool, error)
}

// Source identifies where the active API key came from.
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceConfig      Source = "persisted-config"
	SourceNone        Source = "none"
)

// Credential is an API key paired with its provenance.
type Credential struct {
	Value  string
	Source Source
}

// ResolveKey finds the active API key. Priority: UR_GEMINI_API_KEY,
// GOOGLE_API_KEY, stored gemini-api-key, stored google-api-key. A value
// that is empty or whitespace-only is treated as absent. No side effects.
func ResolveKey(store KeyStore) Credential {
	for _, env := range []string{EnvPrimaryKey, EnvAliasKey} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return Credential{Value: v, Source: SourceEnvironment}
		}
	}
	for _, key := range []string{ConfigPrimaryKey, ConfigAliasKey} {
		if v, ok := store.Stored(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return Credential{Value: v, Source: SourceConfig}
			}
		}
	}
	return Credential{Source: SourceNone}
}

// ErrNoAPIKey is returned when no usable key exists anywhere. The message
// names every way to supply one.
var ErrNoAPIKey = fmt.Errorf(
	"a Gemini API key is required. Set one of:\n"+
		" - environment: %s or %s\n"+
		" - config file: urban config set --key %s --value YOUR_KEY (alias: %s)",
	EnvPrimaryKey, EnvAliasKey, ConfigPrimaryKey, ConfigAliasKey)
