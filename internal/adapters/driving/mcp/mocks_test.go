package mcp

import (
	"context"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

// mockEventService is a mock implementation of driving.EventService.
type mockEventService struct {
	event  *domain.Event
	shares []domain.Share
	err    error

	lastMode  domain.SplitMode
	lastLimit int
}

func (m *mockEventService) CreateEvent(_ context.Context, _ domain.NewEvent) (*domain.Event, error) {
	return m.event, m.err
}

func (m *mockEventService) GetEvent(_ context.Context, _ string) (*domain.Event, error) {
	return m.event, m.err
}

func (m *mockEventService) ListEvents(_ context.Context) ([]domain.Event, error) {
	if m.event == nil {
		return nil, m.err
	}
	return []domain.Event{*m.event}, m.err
}

func (m *mockEventService) AddParticipant(
	_ context.Context,
	_ string,
	_ domain.NewParticipant,
) (*domain.Participant, error) {
	return nil, m.err
}

func (m *mockEventService) UpdatePreferences(
	_ context.Context,
	_, _ string,
	_ domain.ParticipantUpdate,
) (*domain.Participant, error) {
	return nil, m.err
}

func (m *mockEventService) SuggestRestaurants(
	_ context.Context,
	_ string,
	limit int,
) ([]domain.RestaurantSuggestion, error) {
	m.lastLimit = limit
	return nil, m.err
}

func (m *mockEventService) SplitBill(
	_ context.Context,
	_ string,
	_ float64,
	mode domain.SplitMode,
) ([]domain.Share, error) {
	m.lastMode = mode
	return m.shares, m.err
}

func (m *mockEventService) EventSummary(_ context.Context, _ string) (string, error) {
	return "", m.err
}

// mockWeatherService is a mock implementation of driving.WeatherService.
type mockWeatherService struct {
	alerts []domain.Alert
	bundle *domain.ForecastBundle
	err    error

	lastState   string
	lastPeriods *int
}

func (m *mockWeatherService) AlertsForState(_ context.Context, state string) ([]domain.Alert, error) {
	m.lastState = state
	return m.alerts, m.err
}

func (m *mockWeatherService) ForecastForCoordinates(
	_ context.Context,
	_, _ float64,
	periods *int,
) (*domain.ForecastBundle, error) {
	m.lastPeriods = periods
	return m.bundle, m.err
}
