package driving

import (
	"context"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

// EventService manages events, participants, restaurant suggestions and bills.
type EventService interface {
	// CreateEvent allocates a new event with a fresh id and the default currency.
	CreateEvent(ctx context.Context, input domain.NewEvent) (*domain.Event, error)

	// GetEvent retrieves an event with its participants.
	// Returns domain.ErrEventNotFound if the event does not exist.
	GetEvent(ctx context.Context, eventID string) (*domain.Event, error)

	// ListEvents returns all known events.
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// AddParticipant adds a participant with a fresh id to an existing event.
	AddParticipant(ctx context.Context, eventID string, input domain.NewParticipant) (*domain.Participant, error)

	// UpdatePreferences applies a partial update to a participant.
	// Returns domain.ErrParticipantNotFound if the participant does not exist.
	UpdatePreferences(
		ctx context.Context,
		eventID, participantID string,
		update domain.ParticipantUpdate,
	) (*domain.Participant, error)

	// SuggestRestaurants returns catalogue entries compatible with the participants.
	// A non-positive limit selects the configured default.
	SuggestRestaurants(ctx context.Context, eventID string, limit int) ([]domain.RestaurantSuggestion, error)

	// SplitBill divides totalAmount among the participants.
	SplitBill(ctx context.Context, eventID string, totalAmount float64, mode domain.SplitMode) ([]domain.Share, error)

	// EventSummary renders the event and its participants as text.
	EventSummary(ctx context.Context, eventID string) (string, error)
}
