package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/convivio/internal/adapters/driven/storage/storetest"
	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	path := filepath.Join(dir, "events.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	first, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.EventStore().SaveEvent(context.Background(), domain.Event{
		ID: "ev-1", Name: "Cena", Currency: "EUR",
	}))
	require.NoError(t, first.Close())

	second, err := NewStore(path)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	event, err := second.EventStore().GetEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Cena", event.Name)
}

func TestEventStore_Conformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) driven.EventStore {
		return setupTestStore(t).EventStore()
	})
}

func TestEventStore_TagsStoredAsJSON(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	events := store.EventStore()

	require.NoError(t, events.SaveEvent(ctx, domain.Event{ID: "ev-1", Name: "Cena", Currency: "EUR"}))
	require.NoError(t, events.AddParticipant(ctx, "ev-1", domain.Participant{
		ID: "p-1", Name: "Anna", Intolerances: []string{"glutine", "frutta a guscio, noci"}, Weight: 1,
	}))

	var intolerances, preferences string
	require.NoError(t, store.db.QueryRow(
		"SELECT intolerances, preferences FROM participants WHERE id = 'p-1'",
	).Scan(&intolerances, &preferences))
	assert.JSONEq(t, `["glutine", "frutta a guscio, noci"]`, intolerances)
	assert.Equal(t, "[]", preferences)
}

func TestEventStore_PositionsAreDense(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	events := store.EventStore()

	require.NoError(t, events.SaveEvent(ctx, domain.Event{ID: "ev-1", Name: "A", Currency: "EUR"}))
	require.NoError(t, events.SaveEvent(ctx, domain.Event{ID: "ev-2", Name: "B", Currency: "EUR"}))
	require.NoError(t, events.AddParticipant(ctx, "ev-1", domain.Participant{ID: "p-1", Name: "X", Weight: 1}))
	require.NoError(t, events.AddParticipant(ctx, "ev-2", domain.Participant{ID: "p-2", Name: "Y", Weight: 1}))
	require.NoError(t, events.AddParticipant(ctx, "ev-1", domain.Participant{ID: "p-3", Name: "Z", Weight: 1}))

	var pos int
	require.NoError(t, store.db.QueryRow("SELECT position FROM participants WHERE id = 'p-3'").Scan(&pos))
	assert.Equal(t, 1, pos)
	require.NoError(t, store.db.QueryRow("SELECT position FROM participants WHERE id = 'p-2'").Scan(&pos))
	assert.Equal(t, 0, pos)
}

func TestEventStore_DuplicateEventID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	events := store.EventStore()

	require.NoError(t, events.SaveEvent(ctx, domain.Event{ID: "ev-1", Name: "A", Currency: "EUR"}))
	assert.Error(t, events.SaveEvent(ctx, domain.Event{ID: "ev-1", Name: "B", Currency: "EUR"}))
}

func TestDecodeTags(t *testing.T) {
	tags, err := decodeTags("")
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags)

	tags, err = decodeTags(`[" a ", "", "b, c"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b, c"}, tags)

	_, err = decodeTags("glutine,lattosio")
	assert.Error(t, err)
}

func TestEncodeTags(t *testing.T) {
	assert.Equal(t, "[]", encodeTags(nil))
	assert.Equal(t, `["a","b, c"]`, encodeTags([]string{"a", "b, c"}))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", nullString("x"))

	assert.Nil(t, nullFloat(nil))
	v := 2.5
	assert.Equal(t, 2.5, nullFloat(&v))
}
