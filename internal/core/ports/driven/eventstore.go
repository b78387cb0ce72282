package driven

import (
	"context"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

// EventStore persists events and their participants.
// Implementations must be observably identical: the service layer
// never branches on which store it was given.
type EventStore interface {
	// SaveEvent stores a new event. Participants on the value are ignored.
	SaveEvent(ctx context.Context, event domain.Event) error

	// GetEvent retrieves an event with its participants in insertion order.
	// Returns nil and no error if the event does not exist.
	GetEvent(ctx context.Context, id string) (*domain.Event, error)

	// ListEvents returns all events with their participants.
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// AddParticipant appends a participant to an event.
	// Returns domain.ErrEventNotFound if the event does not exist.
	AddParticipant(ctx context.Context, eventID string, participant domain.Participant) error

	// UpdateParticipant applies a partial update to a participant of an event.
	// Returns nil and no error if the participant does not exist.
	UpdateParticipant(
		ctx context.Context,
		eventID, participantID string,
		update domain.ParticipantUpdate,
	) (*domain.Participant, error)

	// ListParticipants returns the participants of an event in insertion order.
	ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
