package db

import (
	"fmt"
	"strings"

	"mergebench/internal/benchmark"
)

// StoreConfig holds configuration for the storage backend
type StoreConfig struct {
	Type             string // "sqlite", "postgres" or "json"
	ConnectionString string // File path for SQLite and JSON, DSN for Postgres
}

// DefaultSQLitePath is used when no connection string is configured.
const DefaultSQLitePath = ".mergebench.db"

// jsonStore adapts the file based history to Store.
type jsonStore struct {
	*benchmark.FileStore
}

func (jsonStore) Close() error { return nil }

// NewStore creates a new Store instance based on the provided configuration
func NewStore(config StoreConfig) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3", "":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultSQLitePath
		}
		return NewSQLiteStore(config.ConnectionString)
	case "json":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("json history path is required")
		}
		fs, err := benchmark.NewFileStore(config.ConnectionString)
		if err != nil {
			return nil, err
		}
		return jsonStore{fs}, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
