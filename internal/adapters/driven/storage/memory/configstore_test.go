package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.url", "https://app.example.com"))

	val, ok := store.Get("api.url")
	assert.True(t, ok)
	assert.Equal(t, "https://app.example.com", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("callback.port", 8765)
	_ = store.Set("api.rate_limit", 2.5)
	_ = store.Set("ui.locale", "ru")
	_ = store.Set("from.toml", int64(9))

	assert.Equal(t, 8765, store.GetInt("callback.port"))
	assert.Equal(t, 2, store.GetInt("api.rate_limit"))
	assert.Equal(t, 9, store.GetInt("from.toml"))
	assert.Equal(t, 2.5, store.GetFloat("api.rate_limit"))
	assert.Equal(t, 8765.0, store.GetFloat("callback.port"))
	assert.Equal(t, 9.0, store.GetFloat("from.toml"))
	assert.Equal(t, "ru", store.GetString("ui.locale"))

	assert.Empty(t, store.GetString("callback.port"))
	assert.Zero(t, store.GetInt("ui.locale"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_UnsetAndKeys(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("ui.locale", "en")
	_ = store.Set("api.url", "http://localhost:8080")

	assert.Equal(t, []string{"api.url", "ui.locale"}, store.Keys())

	require.NoError(t, store.Unset("ui.locale"))
	require.NoError(t, store.Unset("never.set"))

	assert.Equal(t, []string{"api.url"}, store.Keys())
}

func TestConfigStore_Persistence(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("callback.port", i)
			_ = store.GetInt("callback.port")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("callback.port")
	assert.True(t, ok)
}
