package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
	"github.com/custodia-labs/convivio/internal/core/ports/driving"
	"github.com/custodia-labs/convivio/internal/logger"
)

// Ensure EventService implements the interface.
var _ driving.EventService = (*EventService)(nil)

// EventService manages events among friends.
type EventService struct {
	store    driven.EventStore
	settings domain.EventSettings
	newID    func() string
}

// NewEventService creates a new event service.
func NewEventService(store driven.EventStore, settings domain.EventSettings) *EventService {
	return &EventService{
		store:    store,
		settings: settings,
		newID:    newID,
	}
}

// newID returns a 32-character hex uuid4.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateEvent allocates a new event with a fresh id and the default currency.
func (s *EventService) CreateEvent(ctx context.Context, input domain.NewEvent) (*domain.Event, error) {
	if input.Budget != nil && (*input.Budget < 0 || math.IsNaN(*input.Budget) || math.IsInf(*input.Budget, 0)) {
		return nil, domain.ValidationError("Il budget deve essere un importo non negativo.")
	}

	event := domain.Event{
		ID:           s.newID(),
		Name:         input.Name,
		Date:         input.Date,
		Location:     input.Location,
		Budget:       input.Budget,
		Currency:     s.settings.DefaultCurrency,
		Notes:        input.Notes,
		Participants: []domain.Participant{},
	}
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("saving event: %w", err)
	}

	logger.Debug("created event %s at %q", event.ID, event.Location)
	return &event, nil
}

// GetEvent retrieves an event with its participants.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}
	if event == nil {
		return nil, domain.NewError(domain.ErrEventNotFound, "Evento %s non trovato.", eventID)
	}
	return event, nil
}

// ListEvents returns all known events.
func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// AddParticipant adds a participant with a fresh id to an existing event.
// A missing or non-positive weight defaults to domain.DefaultWeight.
func (s *EventService) AddParticipant(
	ctx context.Context,
	eventID string,
	input domain.NewParticipant,
) (*domain.Participant, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	participant := domain.Participant{
		ID:           s.newID(),
		Name:         input.Name,
		Intolerances: domain.NormalizeTags(input.Intolerances),
		Preferences:  domain.NormalizeTags(input.Preferences),
		Weight:       domain.DefaultWeight,
	}
	if input.Weight != nil && *input.Weight > 0 {
		participant.Weight = *input.Weight
	}

	if err := s.store.AddParticipant(ctx, eventID, participant); err != nil {
		return nil, fmt.Errorf("adding participant: %w", err)
	}

	logger.Debug("added participant %s to event %s", participant.ID, eventID)
	return &participant, nil
}

// UpdatePreferences applies a partial update to a participant.
// Weight changes that are not positive are ignored rather than rejected.
func (s *EventService) UpdatePreferences(
	ctx context.Context,
	eventID, participantID string,
	update domain.ParticipantUpdate,
) (*domain.Participant, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	participant, err := s.store.UpdateParticipant(ctx, eventID, participantID, update)
	if err != nil {
		return nil, fmt.Errorf("updating participant: %w", err)
	}
	if participant == nil {
		return nil, domain.NewError(domain.ErrParticipantNotFound,
			"Partecipante %s non trovato per evento %s.", participantID, eventID)
	}
	return participant, nil
}

// SuggestRestaurants returns catalogue entries compatible with the participants.
//
// A candidate must support every intolerance of every participant. Among
// those, when any preference exists, its cuisine or supported tags must
// match at least one. If nothing survives the filter the unfiltered list
// for the location is returned instead.
func (s *EventService) SuggestRestaurants(
	ctx context.Context,
	eventID string,
	limit int,
) ([]domain.RestaurantSuggestion, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.settings.SuggestionLimit
	}

	intolerances := make(map[string]struct{})
	preferences := make(map[string]struct{})
	for i := range event.Participants {
		for _, tag := range event.Participants[i].Intolerances {
			intolerances[strings.ToLower(tag)] = struct{}{}
		}
		for _, tag := range event.Participants[i].Preferences {
			preferences[strings.ToLower(tag)] = struct{}{}
		}
	}

	candidates := domain.SuggestionsFor(event.Location)
	filtered := make([]domain.RestaurantSuggestion, 0, len(candidates))
	for _, c := range candidates {
		supports := make(map[string]struct{}, len(c.Supports))
		for _, tag := range c.Supports {
			supports[strings.ToLower(tag)] = struct{}{}
		}
		if !containsAll(supports, intolerances) {
			continue
		}
		if len(preferences) > 0 {
			supports[strings.ToLower(c.Cuisine)] = struct{}{}
			if !intersects(supports, preferences) {
				continue
			}
		}
		filtered = append(filtered, c)
	}

	result := filtered
	if len(result) == 0 {
		result = candidates
	}
	if len(result) > limit {
		result = result[:limit]
	}
	logger.Debug("suggested %d of %d restaurants for event %s", len(result), len(candidates), eventID)
	return result, nil
}

func containsAll(set, required map[string]struct{}) bool {
	for k := range required {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}

func intersects(a, b map[string]struct{}) bool {
	for k := range b {
		if _, ok := a[k]; ok {
			return true
		}
	}
	return false
}

// SplitBill divides totalAmount among the participants of an event.
//
// Equal shares are rounded to cents and the rounding remainder is not
// redistributed, so the shares may drift from the total by up to half a
// cent per participant. Weighted shares are proportional to each weight
// over the sum of positive weights.
func (s *EventService) SplitBill(
	ctx context.Context,
	eventID string,
	totalAmount float64,
	mode domain.SplitMode,
) ([]domain.Share, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	participants := event.Participants
	if len(participants) == 0 {
		return nil, domain.NewError(domain.ErrParticipantNotFound,
			"Nessun partecipante registrato per questo evento.")
	}
	if totalAmount < 0 || math.IsNaN(totalAmount) || math.IsInf(totalAmount, 0) {
		return nil, domain.ValidationError("L'importo totale deve essere non negativo.")
	}

	shares := make([]domain.Share, len(participants))
	switch mode {
	case domain.SplitEqual:
		quota := roundCents(totalAmount / float64(len(participants)))
		for i, p := range participants {
			shares[i] = domain.Share{ParticipantID: p.ID, Name: p.Name, Amount: quota}
		}
	case domain.SplitWeighted:
		var totalWeight float64
		for _, p := range participants {
			if p.Weight > 0 {
				totalWeight += p.Weight
			}
		}
		if totalWeight == 0 {
			return nil, domain.ValidationError("Somma pesi pari a zero.")
		}
		for i, p := range participants {
			shares[i] = domain.Share{
				ParticipantID: p.ID,
				Name:          p.Name,
				Amount:        roundCents(totalAmount * (p.Weight / totalWeight)),
			}
		}
	default:
		return nil, domain.ValidationError("Modalita' di split non supportata (usa 'equal' o 'weighted').")
	}

	logger.Debug("split %.2f %s among %d participants (%s)", totalAmount, event.Currency, len(shares), mode)
	return shares, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// EventSummary renders the event and its participants as text.
func (s *EventService) EventSummary(ctx context.Context, eventID string) (string, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return "", err
	}

	var participants string
	if len(event.Participants) == 0 {
		participants = "Nessun partecipante."
	} else {
		lines := make([]string, len(event.Participants))
		for i, p := range event.Participants {
			lines[i] = fmt.Sprintf("- %s (intolleranze: %s, preferenze: %s, peso: %s)",
				p.Name, joinOr(p.Intolerances, "nessuna"), joinOr(p.Preferences, "nessuna"),
				formatNumber(p.Weight))
		}
		participants = strings.Join(lines, "\n")
	}

	budget := "n.d."
	if event.Budget != nil {
		budget = formatNumber(*event.Budget) + " " + event.Currency
	}
	notes := event.Notes
	if notes == "" {
		notes = "-"
	}

	return fmt.Sprintf("Evento: %s\nData: %s\nLuogo: %s\nBudget: %s\nNote: %s\nPartecipanti:\n%s",
		event.Name, event.Date, event.Location, budget, notes, participants), nil
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
