package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("weather.user_agent", "ua/1.0"))
	require.NoError(t, store.Set("weather.user_agent", "ua/2.0"))

	val, ok := store.Get("weather.user_agent")
	assert.True(t, ok)
	assert.Equal(t, "ua/2.0", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("str", "value")
	_ = store.Set("num", 42)

	assert.Equal(t, "value", store.GetString("str"))
	assert.Empty(t, store.GetString("num"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int", 5)
	_ = store.Set("int64", int64(7))
	_ = store.Set("float", 3.9)
	_ = store.Set("str", "5")

	assert.Equal(t, 5, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("float", 12.5)
	_ = store.Set("int", 30)
	_ = store.Set("int64", int64(2))
	_ = store.Set("str", "1.5")

	assert.InDelta(t, 12.5, store.GetFloat("float"), 0.0001)
	assert.InDelta(t, 30.0, store.GetFloat("int"), 0.0001)
	assert.InDelta(t, 2.0, store.GetFloat("int64"), 0.0001)
	assert.Zero(t, store.GetFloat("str"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("key", "value")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "value", store.GetString("key"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			assert.Equal(t, n, store.GetInt(key))
		}(i)
	}
	wg.Wait()
}
