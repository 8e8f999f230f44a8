package memory

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("github.token", "abc"))
	require.NoError(t, store.Set("history.enabled", true))
	require.NoError(t, store.Set("batch.concurrency", int64(4)))
	require.NoError(t, store.Set("languages.extra", []any{"vue", 3, "svelte"}))

	assert.Equal(t, "abc", store.GetString("github.token"))
	assert.True(t, store.GetBool("history.enabled"))
	assert.Equal(t, 4, store.GetInt("batch.concurrency"))
	assert.Equal(t, []string{"vue", "svelte"}, store.GetStringSlice("languages.extra"))
}

func TestConfigStore_WrongTypesReturnZeroValues(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{
		"output.format":     42,
		"history.enabled":   "true",
		"rules.disabled":    "empty-answer",
		"batch.concurrency": "8",
	})

	assert.Empty(t, store.GetString("output.format"))
	assert.False(t, store.GetBool("history.enabled"))
	assert.Nil(t, store.GetStringSlice("rules.disabled"))
	assert.Zero(t, store.GetInt("batch.concurrency"))
}

func TestConfigStore_Missing(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{"languages.extra": []string{"vue"}})

	got := store.GetStringSlice("languages.extra")
	got[0] = "changed"

	assert.Equal(t, []string{"vue"}, store.GetStringSlice("languages.extra"))
}

func TestConfigStore_KeysSaveLoadPath(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{"b": 1, "a": 2})

	assert.Equal(t, []string{"a", "b"}, store.Keys())
	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	assert.Equal(t, 2, store.Saves())
	require.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key." + strconv.Itoa(id)
			_ = store.Set(key, id)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 50)
}
