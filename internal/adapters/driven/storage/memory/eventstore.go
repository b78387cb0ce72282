// Package memory provides in-memory implementations of driven port interfaces.
// It is selected when no database URL is configured and is used by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
)

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore is an in-memory implementation of driven.EventStore.
// Values are copied on the way in and out so callers never share state
// with the store.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
	order  map[string]int
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		events: make(map[string]*domain.Event),
		order:  make(map[string]int),
	}
}

// SaveEvent stores a new event.
func (s *EventStore) SaveEvent(_ context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := event.Clone()
	stored.Participants = []domain.Participant{}
	if _, exists := s.order[event.ID]; !exists {
		s.order[event.ID] = len(s.order)
	}
	s.events[event.ID] = &stored
	return nil
}

// GetEvent retrieves an event by ID, or nil if it does not exist.
func (s *EventStore) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	clone := event.Clone()
	return &clone, nil
}

// ListEvents returns all events in creation order.
func (s *EventStore) ListEvents(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Event, 0, len(s.events))
	for _, event := range s.events {
		result = append(result, event.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return s.order[result[i].ID] < s.order[result[j].ID]
	})
	return result, nil
}

// AddParticipant appends a participant to an event.
func (s *EventStore) AddParticipant(_ context.Context, eventID string, participant domain.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	event.Participants = append(event.Participants, participant.Clone())
	return nil
}

// UpdateParticipant applies a partial update, returning nil if the participant is unknown.
func (s *EventStore) UpdateParticipant(
	_ context.Context,
	eventID, participantID string,
	update domain.ParticipantUpdate,
) (*domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return nil, nil
	}
	target := event.FindParticipant(participantID)
	if target == nil {
		return nil, nil
	}
	target.Apply(update)
	clone := target.Clone()
	return &clone, nil
}

// ListParticipants returns the participants of an event in insertion order.
func (s *EventStore) ListParticipants(_ context.Context, eventID string) ([]domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[eventID]
	if !ok {
		return []domain.Participant{}, nil
	}
	return event.Clone().Participants, nil
}

// Ping always succeeds.
func (s *EventStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (s *EventStore) Close() error {
	return nil
}
