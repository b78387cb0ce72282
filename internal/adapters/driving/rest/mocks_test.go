package rest

import (
	"context"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

// mockWeatherService is a mock implementation of driving.WeatherService.
type mockWeatherService struct {
	alerts []domain.Alert
	bundle *domain.ForecastBundle
	err    error

	lastLat, lastLon float64
	lastPeriods      *int
}

func (m *mockWeatherService) AlertsForState(_ context.Context, _ string) ([]domain.Alert, error) {
	return m.alerts, m.err
}

func (m *mockWeatherService) ForecastForCoordinates(
	_ context.Context,
	latitude, longitude float64,
	periods *int,
) (*domain.ForecastBundle, error) {
	m.lastLat, m.lastLon, m.lastPeriods = latitude, longitude, periods
	return m.bundle, m.err
}

// mockChecker is a mock HealthChecker.
type mockChecker struct {
	err error
}

func (m *mockChecker) Ping(_ context.Context) error {
	return m.err
}
