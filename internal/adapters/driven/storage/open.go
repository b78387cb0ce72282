// Package storage selects an event store implementation from a connection string.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/convivio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/convivio/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/convivio/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
	"github.com/custodia-labs/convivio/internal/logger"
)

// Backend names a store implementation.
type Backend string

// Supported backends.
const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Resolve maps a connection string to a backend and its driver-specific target.
//
//	""                          -> memory
//	sqlite:///path/events.db    -> sqlite, /path/events.db
//	/path/events.db             -> sqlite, /path/events.db
//	postgres://... postgresql:// -> postgres, unchanged
func Resolve(dsn string) (Backend, string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "" || dsn == "memory" || dsn == "memory://":
		return BackendMemory, "", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return BackendSQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return BackendSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", dsn)
	}
}

// Open returns the event store for dsn. The caller owns the returned store.
func Open(ctx context.Context, dsn string) (driven.EventStore, error) {
	backend, target, err := Resolve(dsn)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendSQLite:
		store, err := sqlite.NewStore(target)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("using sqlite event store at %s", store.Path())
		return store.EventStore(), nil
	case BackendPostgres:
		store, err := postgres.NewStore(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		logger.Debug("using postgres event store")
		return store, nil
	default:
		logger.Debug("using in-memory event store")
		return memory.NewEventStore(), nil
	}
}
