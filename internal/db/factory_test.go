package db

import (
	"path/filepath"
	"testing"

	"mergebench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("sqlite", func(t *testing.T) {
		store, err := NewStore(StoreConfig{Type: "sqlite", ConnectionString: filepath.Join(dir, "a.db")})
		require.NoError(t, err)
		defer store.Close()
		_, ok := store.(*SQLiteStore)
		assert.True(t, ok)
	})

	t.Run("json", func(t *testing.T) {
		store, err := NewStore(StoreConfig{Type: "JSON", ConnectionString: filepath.Join(dir, "h", "suites.json")})
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Save(benchmark.Suite{Label: "x"}))
		latest, err := store.LoadLatest()
		require.NoError(t, err)
		assert.Equal(t, "x", latest.Label)
	})

	t.Run("postgres requires dsn", func(t *testing.T) {
		_, err := NewStore(StoreConfig{Type: "postgres"})
		assert.EqualError(t, err, "postgres connection string is required")
	})

	t.Run("json requires path", func(t *testing.T) {
		_, err := NewStore(StoreConfig{Type: "json"})
		assert.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewStore(StoreConfig{Type: "mongo"})
		assert.EqualError(t, err, "unsupported store type: mongo")
	})
}
