package driven

import (
	"context"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

// WeatherClient fetches data from the weather API.
// Each call is an independent upstream request.
type WeatherClient interface {
	// FetchAlerts returns active alerts for a two-letter US state code.
	FetchAlerts(ctx context.Context, state string) ([]domain.Alert, error)

	// ResolveGridpoint maps coordinates to a forecast gridpoint.
	ResolveGridpoint(ctx context.Context, latitude, longitude float64) (*domain.Gridpoint, error)

	// FetchForecast downloads and normalises the periods at forecastURL.
	FetchForecast(ctx context.Context, forecastURL string) ([]domain.ForecastPeriod, error)
}
