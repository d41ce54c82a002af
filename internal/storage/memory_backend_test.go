package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInMemoryBackend(t *testing.T) {
	t.Run("empty profile returns error", func(t *testing.T) {
		_, err := NewInMemoryBackend("")
		assert.Error(t, err)
	})

	t.Run("valid profile succeeds", func(t *testing.T) {
		b, err := NewInMemoryBackend("test-profile")
		require.NoError(t, err)
		assert.NotNil(t, b)
	})
}

func TestInMemoryBackend_GetSet(t *testing.T) {
	t.Cleanup(ClearAllInMemory)

	b, err := NewInMemoryBackend("mem-getset")
	require.NoError(t, err)

	value, ok, err := b.Get("calculatorHistory")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)

	require.NoError(t, b.Set("calculatorHistory", "[]"))
	value, ok, err = b.Get("calculatorHistory")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	_, _, err = b.Get("")
	assert.Error(t, err)
	assert.Error(t, b.Set("", "x"))
	assert.NoError(t, b.Close())
}

func TestInMemoryBackend_SharedByProfile(t *testing.T) {
	t.Cleanup(ClearAllInMemory)

	writer, err := NewInMemoryBackend("shared")
	require.NoError(t, err)
	reader, err := NewInMemoryBackend("shared")
	require.NoError(t, err)
	other, err := NewInMemoryBackend("isolated")
	require.NoError(t, err)

	require.NoError(t, writer.Set("slot", "value"))

	value, ok, err := reader.Get("slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	_, ok, err = other.Get("slot")
	require.NoError(t, err)
	assert.False(t, ok, "profiles must not share slots")
}

func TestClearAllInMemory(t *testing.T) {
	b, err := NewInMemoryBackend("clear-all")
	require.NoError(t, err)
	require.NoError(t, b.Set("slot", "value"))

	ClearAllInMemory()

	_, ok, err := b.Get("slot")
	require.NoError(t, err)
	assert.False(t, ok)
}
