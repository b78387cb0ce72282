// Package storetest holds the behaviour every driven.EventStore must share.
// Each store adapter runs the same suite against its own backend.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
)

// Factory returns an empty store. Cleanup is the factory's responsibility.
type Factory func(t *testing.T) driven.EventStore

func ptr[T any](v T) *T { return &v }

func seedEvent(t *testing.T, store driven.EventStore, id string) domain.Event {
	t.Helper()
	event := domain.Event{
		ID:       id,
		Name:     "Cena di squadra",
		Date:     "2025-03-10 20:00",
		Location: "Milano",
		Budget:   ptr(250.5),
		Currency: "EUR",
		Notes:    "portare il dolce",
	}
	require.NoError(t, store.SaveEvent(context.Background(), event))
	return event
}

// Run executes the conformance suite.
func Run(t *testing.T, newStore Factory) {
	t.Run("get unknown event returns nil", func(t *testing.T) {
		store := newStore(t)
		event, err := store.GetEvent(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("save and get event", func(t *testing.T) {
		store := newStore(t)
		seedEvent(t, store, "ev-1")

		got, err := store.GetEvent(context.Background(), "ev-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Cena di squadra", got.Name)
		assert.Equal(t, "2025-03-10 20:00", got.Date)
		assert.Equal(t, "Milano", got.Location)
		require.NotNil(t, got.Budget)
		assert.InDelta(t, 250.5, *got.Budget, 0.001)
		assert.Equal(t, "EUR", got.Currency)
		assert.Equal(t, "portare il dolce", got.Notes)
		assert.NotNil(t, got.Participants)
		assert.Empty(t, got.Participants)
	})

	t.Run("event without budget or notes", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.SaveEvent(ctx, domain.Event{ID: "ev-2", Name: "Pizza", Currency: "EUR"}))

		got, err := store.GetEvent(ctx, "ev-2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Budget)
		assert.Empty(t, got.Notes)
	})

	t.Run("participants keep insertion order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-1")

		for _, name := range []string{"Anna", "Bruno", "Carla"} {
			require.NoError(t, store.AddParticipant(ctx, "ev-1", domain.Participant{
				ID:           "p-" + name,
				Name:         name,
				Intolerances: []string{"glutine"},
				Preferences:  []string{"italiana", "pesce"},
				Weight:       1,
			}))
		}

		participants, err := store.ListParticipants(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, participants, 3)
		assert.Equal(t, "Anna", participants[0].Name)
		assert.Equal(t, "Carla", participants[2].Name)
		assert.Equal(t, []string{"italiana", "pesce"}, participants[1].Preferences)

		got, err := store.GetEvent(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, got.Participants, 3)
		assert.Equal(t, "p-Bruno", got.Participants[1].ID)
	})

	t.Run("participant with no tags reads back empty", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-1")
		require.NoError(t, store.AddParticipant(ctx, "ev-1", domain.Participant{ID: "p-1", Name: "Dario", Weight: 2}))

		participants, err := store.ListParticipants(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, participants, 1)
		assert.Empty(t, participants[0].Intolerances)
		assert.Empty(t, participants[0].Preferences)
		assert.Equal(t, 2.0, participants[0].Weight)
	})

	t.Run("tags containing commas read back whole", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-1")
		require.NoError(t, store.AddParticipant(ctx, "ev-1", domain.Participant{
			ID:           "p-1",
			Name:         "Elena",
			Intolerances: []string{"frutta a guscio, noci"},
			Preferences:  []string{"pizza, pasta", "vino"},
			Weight:       1,
		}))

		participants, err := store.ListParticipants(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, participants, 1)
		assert.Equal(t, []string{"frutta a guscio, noci"}, participants[0].Intolerances)
		assert.Equal(t, []string{"pizza, pasta", "vino"}, participants[0].Preferences)

		updated, err := store.UpdateParticipant(ctx, "ev-1", "p-1", domain.ParticipantUpdate{
			Intolerances: []string{"vegano, gluten-free"},
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, []string{"vegano, gluten-free"}, updated.Intolerances)

		got, err := store.GetEvent(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, got.Participants, 1)
		assert.Equal(t, []string{"vegano, gluten-free"}, got.Participants[0].Intolerances)
	})

	t.Run("add participant to unknown event fails", func(t *testing.T) {
		store := newStore(t)
		err := store.AddParticipant(context.Background(), "missing", domain.Participant{ID: "p-1", Name: "X", Weight: 1})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-1")
		require.NoError(t, store.AddParticipant(ctx, "ev-1", domain.Participant{
			ID:           "p-1",
			Name:         "Elena",
			Intolerances: []string{"lattosio"},
			Preferences:  []string{"carne"},
			Weight:       1,
		}))

		updated, err := store.UpdateParticipant(ctx, "ev-1", "p-1", domain.ParticipantUpdate{
			Preferences: []string{"vegetariano"},
			Weight:      ptr(2.5),
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, []string{"lattosio"}, updated.Intolerances)
		assert.Equal(t, []string{"vegetariano"}, updated.Preferences)
		assert.Equal(t, 2.5, updated.Weight)

		participants, err := store.ListParticipants(ctx, "ev-1")
		require.NoError(t, err)
		assert.Equal(t, 2.5, participants[0].Weight)
		assert.Equal(t, []string{"vegetariano"}, participants[0].Preferences)
	})

	t.Run("non-positive weight is ignored", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-1")
		require.NoError(t, store.AddParticipant(ctx, "ev-1", domain.Participant{ID: "p-1", Name: "F", Weight: 1.5}))

		updated, err := store.UpdateParticipant(ctx, "ev-1", "p-1", domain.ParticipantUpdate{Weight: ptr(0.0)})
		require.NoError(t, err)
		assert.Equal(t, 1.5, updated.Weight)
	})

	t.Run("update unknown participant returns nil", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-1")
		seedEvent(t, store, "ev-2")
		require.NoError(t, store.AddParticipant(ctx, "ev-2", domain.Participant{ID: "p-2", Name: "G", Weight: 1}))

		updated, err := store.UpdateParticipant(ctx, "ev-1", "missing", domain.ParticipantUpdate{})
		require.NoError(t, err)
		assert.Nil(t, updated)

		// Participant exists but belongs to another event.
		updated, err = store.UpdateParticipant(ctx, "ev-1", "p-2", domain.ParticipantUpdate{})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("list participants of unknown event is empty", func(t *testing.T) {
		store := newStore(t)
		participants, err := store.ListParticipants(context.Background(), "missing")
		require.NoError(t, err)
		assert.Empty(t, participants)
	})

	t.Run("list events in creation order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-b")
		seedEvent(t, store, "ev-a")
		require.NoError(t, store.AddParticipant(ctx, "ev-a", domain.Participant{ID: "p-1", Name: "H", Weight: 1}))

		events, err := store.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "ev-b", events[0].ID)
		assert.Equal(t, "ev-a", events[1].ID)
		assert.Len(t, events[1].Participants, 1)
	})

	t.Run("returned values do not alias the store", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seedEvent(t, store, "ev-1")
		require.NoError(t, store.AddParticipant(ctx, "ev-1", domain.Participant{
			ID: "p-1", Name: "I", Intolerances: []string{"glutine"}, Weight: 1,
		}))

		got, err := store.GetEvent(ctx, "ev-1")
		require.NoError(t, err)
		got.Name = "changed"
		got.Participants[0].Intolerances[0] = "changed"

		again, err := store.GetEvent(ctx, "ev-1")
		require.NoError(t, err)
		assert.Equal(t, "Cena di squadra", again.Name)
		assert.Equal(t, "glutine", again.Participants[0].Intolerances[0])
	})

	t.Run("ping", func(t *testing.T) {
		store := newStore(t)
		assert.NoError(t, store.Ping(context.Background()))
	})
}
