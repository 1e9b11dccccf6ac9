// Package storage persists filter state snapshots between runs.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/config"
	"github.com/ocp-advisor/filterstate/internal/filters"
	redisstore "github.com/ocp-advisor/filterstate/internal/storage/redis"
	"github.com/ocp-advisor/filterstate/internal/storage/sqlite"
	"github.com/ocp-advisor/filterstate/internal/storage/tomlfile"
)

// Storage persists the filter state of views.
type Storage interface {
	// Load returns the persisted views. Views never saved are absent.
	Load(ctx context.Context) (filters.Snapshot, error)
	// Save upserts the record of one view.
	Save(ctx context.Context, view filters.View, state filters.State) error
	// Clear forgets every persisted view.
	Clear(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
}

// Backend names accepted by the storage_backend setting.
const (
	BackendSQLite = "sqlite"
	BackendTOML   = "toml"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var (
	_ Storage = (*sqlite.Storage)(nil)
	_ Storage = (*tomlfile.Storage)(nil)
	_ Storage = (*redisstore.Storage)(nil)
	_ Storage = (*Memory)(nil)
)

// Options carries backend specific settings.
type Options struct {
	SQLitePath   string
	TOMLPath     string
	RedisAddr    string
	RedisPrefix  string
	RedisTimeout time.Duration
}

// OptionsFromConfig reads backend settings from the global configuration.
func OptionsFromConfig() Options {
	return Options{
		SQLitePath:   config.Get("sqlite_path", ""),
		TOMLPath:     config.Get("toml_path", ""),
		RedisAddr:    config.Get("redis_addr", ""),
		RedisPrefix:  config.Get("redis_prefix", redisstore.DefaultPrefix),
		RedisTimeout: config.GetDuration("redis_timeout", 5*time.Second),
	}
}

// NewFromConfig creates the backend named by storage_backend.
// config.Load must have been called.
func NewFromConfig(ctx context.Context) (Storage, error) {
	return NewForBackend(ctx, config.Get("storage_backend", BackendSQLite), OptionsFromConfig())
}

// NewForBackend creates a storage backend for the provided backend name.
// Unknown names fall back to SQLite with a warning.
func NewForBackend(ctx context.Context, backend string, opts Options) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendTOML:
		return tomlfile.New(opts.TOMLPath)
	case BackendRedis:
		return redisstore.New(ctx, redisstore.Options{
			Addr:    opts.RedisAddr,
			Prefix:  opts.RedisPrefix,
			Timeout: opts.RedisTimeout,
		})
	case "", BackendSQLite:
		return sqlite.New(opts.SQLitePath)
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to %s", backend, BackendSQLite))
		return sqlite.New(opts.SQLitePath)
	}
}
