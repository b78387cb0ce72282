package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
	"github.com/custodia-labs/convivio/internal/core/ports/driving"
	"github.com/custodia-labs/convivio/internal/logger"
)

// Ensure WeatherService implements the interface.
var _ driving.WeatherService = (*WeatherService)(nil)

// WeatherService validates weather lookups and composes upstream calls.
type WeatherService struct {
	client   driven.WeatherClient
	settings domain.WeatherSettings
}

// NewWeatherService creates a new weather service.
func NewWeatherService(client driven.WeatherClient, settings domain.WeatherSettings) *WeatherService {
	return &WeatherService{
		client:   client,
		settings: settings,
	}
}

// AlertsForState returns active alerts for a state code.
// The code is trimmed and upper-cased; anything but two characters is
// rejected without contacting the upstream.
func (s *WeatherService) AlertsForState(ctx context.Context, state string) ([]domain.Alert, error) {
	normalized := strings.ToUpper(strings.TrimSpace(state))
	if len([]rune(normalized)) != 2 {
		return nil, domain.ValidationError("Il codice dello stato deve contenere due lettere.")
	}

	logger.Debug("fetching alerts for %s", normalized)
	alerts, err := s.client.FetchAlerts(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("fetching alerts: %w", err)
	}
	return alerts, nil
}

// ForecastForCoordinates resolves the gridpoint for a coordinate pair and
// returns the first periods of its forecast, in upstream order.
func (s *WeatherService) ForecastForCoordinates(
	ctx context.Context,
	latitude, longitude float64,
	periods *int,
) (*domain.ForecastBundle, error) {
	limit := s.settings.ForecastPeriods
	if periods != nil {
		limit = *periods
	}
	if limit <= 0 {
		return nil, domain.ValidationError("Il numero di periodi richiesti deve essere maggiore di zero.")
	}

	logger.Debug("resolving gridpoint for %f,%f", latitude, longitude)
	gridpoint, err := s.client.ResolveGridpoint(ctx, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("resolving gridpoint: %w", err)
	}

	forecast, err := s.client.FetchForecast(ctx, gridpoint.ForecastURL)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	if len(forecast) > limit {
		forecast = forecast[:limit]
	}

	return &domain.ForecastBundle{
		Office:  gridpoint.Office,
		GridID:  gridpoint.GridID,
		GridX:   gridpoint.GridX,
		GridY:   gridpoint.GridY,
		Periods: forecast,
	}, nil
}
