package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory KeyStore for tests.
type memStore struct {
	data    map[string]string
	setErr  error
	setKeys []string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Stored(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memStore) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *memStore) Unset(key string) (bool, error) {
	_, ok := m.data[key]
	delete(m.data, key)
	return ok, nil
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvPrimaryKey, "")
	t.Setenv(EnvAliasKey, "")
}

func TestResolveKey_AllSourcesEmpty(t *testing.T) {
	clearKeyEnv(t)

	cred := ResolveKey(newMemStore())
	assert.Equal(t, SourceNone, cred.Source)
	assert.Empty(t, cred.Value)
}

func TestResolveKey_PriorityOrder(t *testing.T) {
	store := newMemStore()
	store.data[ConfigPrimaryKey] = "cfg-primary"
	store.data[ConfigAliasKey] = "cfg-alias"

	// All four populated: env primary wins.
	t.Setenv(EnvPrimaryKey, "env-primary")
	t.Setenv(EnvAliasKey, "env-alias")
	cred := ResolveKey(store)
	assert.Equal(t, Credential{Value: "env-primary", Source: SourceEnvironment}, cred)

	// Drop env primary: env alias wins.
	t.Setenv(EnvPrimaryKey, "")
	cred = ResolveKey(store)
	assert.Equal(t, Credential{Value: "env-alias", Source: SourceEnvironment}, cred)

	// Drop both env vars: stored primary wins.
	t.Setenv(EnvAliasKey, "")
	cred = ResolveKey(store)
	assert.Equal(t, Credential{Value: "cfg-primary", Source: SourceConfig}, cred)

	// Drop stored primary: stored alias wins.
	delete(store.data, ConfigPrimaryKey)
	cred = ResolveKey(store)
	assert.Equal(t, Credential{Value: "cfg-alias", Source: SourceConfig}, cred)
}

func TestResolveKey_WhitespaceIsAbsent(t *testing.T) {
	store := newMemStore()
	store.data[ConfigPrimaryKey] = "   "
	store.data[ConfigAliasKey] = "cfg-alias"

	t.Setenv(EnvPrimaryKey, "   ")
	t.Setenv(EnvAliasKey, "\t")

	cred := ResolveKey(store)
	assert.Equal(t, Credential{Value: "cfg-alias", Source: SourceConfig}, cred)
}

func TestResolveKey_TrimsValue(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv(EnvPrimaryKey, "  padded-key  ")

	cred := ResolveKey(newMemStore())
	assert.Equal(t, "padded-key", cred.Value)
}

func TestNewSession_NoKeyEnumeratesSources(t *testing.T) {
	clearKeyEnv(t)

	_, err := NewSession(newMemStore(), "gemini-2.5-pro", "sys", 0.7)
	require.Error(t, err)

	for _, want := range []string{EnvPrimaryKey, EnvAliasKey, ConfigPrimaryKey, ConfigAliasKey} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestNewSession_PersistPending(t *testing.T) {
	clearKeyEnv(t)

	// Environment key, nothing stored: pending.
	t.Setenv(EnvPrimaryKey, "env-key")
	store := newMemStore()
	sess, err := NewSession(store, "m", "s", 0.7)
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, sess.KeySource)
	assert.True(t, sess.PersistPending())

	// Environment key but a stored key already exists: not pending.
	store.data[ConfigAliasKey] = "stored"
	sess, err = NewSession(store, "m", "s", 0.7)
	require.NoError(t, err)
	assert.False(t, sess.PersistPending())

	// Key came from persisted config: never pending.
	t.Setenv(EnvPrimaryKey, "")
	sess, err = NewSession(store, "m", "s", 0.7)
	require.NoError(t, err)
	assert.Equal(t, SourceConfig, sess.KeySource)
	assert.False(t, sess.PersistPending())
}
