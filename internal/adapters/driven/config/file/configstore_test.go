package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfigStore returns a store in a temp dir with no environment overrides.
func newTestConfigStore(t *testing.T, env map[string]string) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	store.lookup = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[[[ nope"), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestConfigStore(t, nil)
	require.NoError(t, store.Set("llm.model", "gpt-4o"))
	require.NoError(t, store.Set("llm.max_tokens", 1000))
	require.NoError(t, store.Set("ui.compact", true))
	require.NoError(t, store.Set("ui.columns", []string{"title", "tag"}))

	assert.Equal(t, "gpt-4o", store.GetString("llm.model"))
	assert.Equal(t, 1000, store.GetInt("llm.max_tokens"))
	assert.True(t, store.GetBool("ui.compact"))
	assert.Equal(t, []string{"title", "tag"}, store.GetStringSlice("ui.columns"))

	assert.Empty(t, store.GetString("llm.max_tokens"))
	assert.Zero(t, store.GetInt("llm.model"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	store := newTestConfigStore(t, nil)
	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("storage.bucket", "curata-media"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), "[llm]")
	assert.Contains(t, string(data), "[storage]")
	assert.Contains(t, string(data), "bucket = 'curata-media'")
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("llm.provider", "anthropic"))
	require.NoError(t, first.Set("llm.requests_per_minute", 30))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", second.GetString("llm.provider"))
	assert.Equal(t, 30, second.GetInt("llm.requests_per_minute"))
	assert.Equal(t, []string{"llm.provider", "llm.requests_per_minute"}, second.Keys())
}

func TestConfigStore_SetEmptyStringRemovesKey(t *testing.T) {
	store := newTestConfigStore(t, nil)
	require.NoError(t, store.Set("llm.api_key", "sk-test"))

	require.NoError(t, store.Set("llm.api_key", ""))

	_, ok := store.Get("llm.api_key")
	assert.False(t, ok)
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "api_key")
}

func TestConfigStore_EnvironmentOverride(t *testing.T) {
	store := newTestConfigStore(t, map[string]string{
		"CURATA_LLM_API_KEY":               "sk-env",
		"CURATA_LLM_MAX_TOKENS":            "512",
		"CURATA_STORAGE_SECRET_ACCESS_KEY": "",
	})
	require.NoError(t, store.Set("llm.api_key", "sk-file"))
	require.NoError(t, store.Set("storage.secret_access_key", "from-file"))

	assert.Equal(t, "sk-env", store.GetString("llm.api_key"))
	assert.Equal(t, 512, store.GetInt("llm.max_tokens"))
	assert.Equal(t, "from-file", store.GetString("storage.secret_access_key"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-env")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestConfigStore(t, nil)
	require.NoError(t, store.Set("data.dir", "/tmp/curata"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestConfigStore(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("llm.max_tokens", n)
			_ = store.GetInt("llm.max_tokens")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("llm.max_tokens")
	assert.True(t, ok)
}

func TestNest(t *testing.T) {
	got := nest(map[string]any{
		"llm":            "flat",
		"llm.model":      "x",
		"storage.bucket": "b",
	})

	assert.Equal(t, "flat", got["llm"])
	assert.Equal(t, "x", got["llm.model"])
	assert.Equal(t, map[string]any{"bucket": "b"}, got["storage"])
}
